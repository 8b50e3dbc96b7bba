// Package session owns the directory of registered users and the notion of
// the currently authenticated user. All mutations write through the store
// immediately; there is no in-memory state that can outlive a crash beyond
// the single active pointer.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tasknest/tasknest/internal/model"
	"github.com/tasknest/tasknest/internal/store"
)

var (
	ErrUsernameTaken      = errors.New("session: username already exists")
	ErrInvalidCredentials = errors.New("session: invalid username or password")
	ErrNoSession          = errors.New("session: no active session")
)

type RegisterInput struct {
	Username string
	Password string
	FullName string
	Email    string
	Phone    string
}

func (in RegisterInput) validate() error {
	if strings.TrimSpace(in.Username) == "" {
		return errors.New("session: username is required")
	}
	if in.Password == "" {
		return errors.New("session: password is required")
	}
	if in.Email != "" && !model.ValidEmail(in.Email) {
		return fmt.Errorf("session: malformed email %q", in.Email)
	}
	if in.Phone != "" && !model.ValidPhone(in.Phone) {
		return fmt.Errorf("session: malformed phone %q", in.Phone)
	}
	return nil
}

// ProfileUpdate is a partial update: nil fields are left unchanged.
type ProfileUpdate struct {
	FullName *string
	Email    *string
	Phone    *string
}

type Manager struct {
	store   *store.Store
	ids     *model.IDGenerator
	current *model.User
}

func NewManager(st *store.Store, ids *model.IDGenerator) *Manager {
	if ids == nil {
		ids = model.NewIDGenerator()
	}
	return &Manager{store: st, ids: ids}
}

// Current returns the active user, or nil when logged out. The returned
// pointer is the canonical session state; callers must not retain it across
// logins.
func (m *Manager) Current() *model.User {
	return m.current
}

func (m *Manager) Active() bool {
	return m.current != nil
}

// Resume restores a previously persisted session at startup, merging the
// user's separately persisted task collection onto the snapshot. Reports nil
// without error when no session was stored.
func (m *Manager) Resume(ctx context.Context) (*model.User, error) {
	saved, err := m.store.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		return nil, nil
	}
	tasks, err := m.store.Tasks(ctx, saved.ID)
	if err != nil {
		return nil, err
	}
	saved.Tasks = tasks
	m.current = saved
	return m.current, nil
}

// Register creates a new directory entry and establishes it as the active
// session. Usernames are matched case-sensitively; a duplicate fails with
// ErrUsernameTaken and leaves the directory untouched.
func (m *Manager) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	users, err := m.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	for _, existing := range users {
		if existing.Username == in.Username {
			return nil, ErrUsernameTaken
		}
	}

	user := model.User{
		ID:       m.ids.Next(),
		Username: in.Username,
		Password: in.Password,
		FullName: in.FullName,
		Email:    in.Email,
		Phone:    in.Phone,
		Tasks:    []model.Task{},
	}
	users = append(users, user)
	if err := m.store.SetUsers(ctx, users); err != nil {
		return nil, err
	}

	m.current = &user
	if err := m.store.SetCurrentUser(ctx, m.current); err != nil {
		return nil, err
	}
	return m.current, nil
}

// Login authenticates against the directory with an exact username/password
// match, loads the user's persisted tasks, and establishes the session.
func (m *Manager) Login(ctx context.Context, username, password string) (*model.User, error) {
	users, err := m.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	for _, candidate := range users {
		if candidate.Username != username || candidate.Password != password {
			continue
		}
		tasks, err := m.store.Tasks(ctx, candidate.ID)
		if err != nil {
			return nil, err
		}
		user := candidate
		user.Tasks = tasks
		m.current = &user
		if err := m.store.SetCurrentUser(ctx, m.current); err != nil {
			return nil, err
		}
		return m.current, nil
	}
	return nil, ErrInvalidCredentials
}

// Logout clears the active session pointer and the persisted session key.
// Directory entries and per-user task collections are retained.
func (m *Manager) Logout(ctx context.Context) error {
	m.current = nil
	return m.store.ClearCurrentUser(ctx)
}

// UpdateProfile merges the provided fields into the active user and the
// matching directory entry. Fields left nil are unchanged.
func (m *Manager) UpdateProfile(ctx context.Context, update ProfileUpdate) (*model.User, error) {
	if m.current == nil {
		return nil, ErrNoSession
	}
	if update.Email != nil && *update.Email != "" && !model.ValidEmail(*update.Email) {
		return nil, fmt.Errorf("session: malformed email %q", *update.Email)
	}
	if update.Phone != nil && *update.Phone != "" && !model.ValidPhone(*update.Phone) {
		return nil, fmt.Errorf("session: malformed phone %q", *update.Phone)
	}

	if update.FullName != nil {
		m.current.FullName = *update.FullName
	}
	if update.Email != nil {
		m.current.Email = *update.Email
	}
	if update.Phone != nil {
		m.current.Phone = *update.Phone
	}

	users, err := m.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == m.current.ID {
			users[i].FullName = m.current.FullName
			users[i].Email = m.current.Email
			users[i].Phone = m.current.Phone
		}
	}
	if err := m.store.SetUsers(ctx, users); err != nil {
		return nil, err
	}
	if err := m.store.SetCurrentUser(ctx, m.current); err != nil {
		return nil, err
	}
	return m.current, nil
}

// ReplaceTasks installs tasks as the active user's canonical collection and
// persists both the per-user task key and the session snapshot. It is the
// single write path the task mutator goes through after every operation.
func (m *Manager) ReplaceTasks(ctx context.Context, tasks []model.Task) error {
	if m.current == nil {
		return ErrNoSession
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	m.current.Tasks = tasks
	if err := m.store.SetTasks(ctx, m.current.ID, tasks); err != nil {
		return err
	}
	return m.store.SetCurrentUser(ctx, m.current)
}
