package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tasknest/tasknest/internal/model"
)

// Fixed storage keys. Task collections live under a per-user key so the
// directory payload stays small on every save.
const (
	KeyTheme         = "theme"
	KeyCustomTheme   = "customTheme"
	KeyCollaborators = "collaborators"
	KeyUsers         = "users"
	KeyCurrentUser   = "currentUser"
	taskKeyPrefix    = "tasks_"
)

func TaskKey(userID string) string {
	return taskKeyPrefix + userID
}

func getJSON[T any](ctx context.Context, s *Store, key string, out *T) (bool, error) {
	raw, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func setJSON(ctx context.Context, s *Store, key string, in any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, string(raw))
}

// Theme reads the persisted theme preference, defaulting to light.
func (s *Store) Theme(ctx context.Context) (model.Theme, error) {
	raw, err := s.Get(ctx, KeyTheme)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.ThemeLight, nil
		}
		return "", err
	}
	theme := model.Theme(raw)
	if !theme.IsValid() {
		return model.ThemeLight, nil
	}
	return theme, nil
}

func (s *Store) SetTheme(ctx context.Context, theme model.Theme) error {
	if !theme.IsValid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidTheme, theme)
	}
	return s.Set(ctx, KeyTheme, string(theme))
}

func (s *Store) CustomTheme(ctx context.Context) (model.CustomTheme, error) {
	out := model.DefaultCustomTheme()
	if _, err := getJSON(ctx, s, KeyCustomTheme, &out); err != nil {
		return model.CustomTheme{}, err
	}
	return out, nil
}

func (s *Store) SetCustomTheme(ctx context.Context, theme model.CustomTheme) error {
	if err := theme.Validate(); err != nil {
		return err
	}
	return setJSON(ctx, s, KeyCustomTheme, theme)
}

func (s *Store) Collaborators(ctx context.Context) ([]string, error) {
	out := []string{}
	if _, err := getJSON(ctx, s, KeyCollaborators, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) SetCollaborators(ctx context.Context, emails []string) error {
	if emails == nil {
		emails = []string{}
	}
	return setJSON(ctx, s, KeyCollaborators, emails)
}

// AddCollaborator appends email to the collaborator list unless it is already
// present, preserving insertion order. The second result reports whether the
// list changed.
func (s *Store) AddCollaborator(ctx context.Context, email string) ([]string, bool, error) {
	current, err := s.Collaborators(ctx)
	if err != nil {
		return nil, false, err
	}
	for _, existing := range current {
		if existing == email {
			return current, false, nil
		}
	}
	updated := append(current, email)
	if err := s.SetCollaborators(ctx, updated); err != nil {
		return nil, false, err
	}
	return updated, true, nil
}

// Users reads the full user directory. Directory entries carry no task
// collections; see Tasks.
func (s *Store) Users(ctx context.Context) ([]model.User, error) {
	out := []model.User{}
	if _, err := getJSON(ctx, s, KeyUsers, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) SetUsers(ctx context.Context, users []model.User) error {
	slim := make([]model.User, len(users))
	for i, u := range users {
		slim[i] = u.WithoutTasks()
	}
	return setJSON(ctx, s, KeyUsers, slim)
}

// CurrentUser reads the persisted session snapshot, tasks included. A nil
// user with nil error means no session is stored.
func (s *Store) CurrentUser(ctx context.Context) (*model.User, error) {
	var out model.User
	found, err := getJSON(ctx, s, KeyCurrentUser, &out)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &out, nil
}

func (s *Store) SetCurrentUser(ctx context.Context, user *model.User) error {
	if user == nil {
		return errors.New("store: nil current user")
	}
	return setJSON(ctx, s, KeyCurrentUser, user)
}

func (s *Store) ClearCurrentUser(ctx context.Context) error {
	return s.Delete(ctx, KeyCurrentUser)
}

// Tasks reads the task collection persisted for userID, empty when none has
// been written yet.
func (s *Store) Tasks(ctx context.Context, userID string) ([]model.Task, error) {
	out := []model.Task{}
	if _, err := getJSON(ctx, s, TaskKey(userID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) SetTasks(ctx context.Context, userID string, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return setJSON(ctx, s, TaskKey(userID), tasks)
}
