package model

import (
	"errors"
	"strings"
)

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Tasks    []Task `json:"tasks"`
}

func (u User) Validate() error {
	if strings.TrimSpace(u.ID) == "" {
		return errors.New("model: user id is required")
	}
	if strings.TrimSpace(u.Username) == "" {
		return errors.New("model: username is required")
	}
	if u.Password == "" {
		return errors.New("model: password is required")
	}
	return nil
}

// WithoutTasks returns a copy suitable for the shared user directory, which
// stores task collections separately keyed by user id.
func (u User) WithoutTasks() User {
	out := u
	out.Tasks = nil
	return out
}

// Clone deep-copies the user including the full task tree, so callers can
// hand the result out without aliasing canonical state.
func (u User) Clone() User {
	out := u
	out.Tasks = CloneTasks(u.Tasks)
	return out
}

func CloneTasks(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		copied := t
		if t.Subtasks != nil {
			copied.Subtasks = append([]Subtask(nil), t.Subtasks...)
		}
		if t.Comments != nil {
			copied.Comments = append([]Comment(nil), t.Comments...)
		}
		out[i] = copied
	}
	return out
}
