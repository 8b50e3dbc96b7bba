// Package export writes and reads portable JSON snapshots of a user's task
// collection. Imports are validated against an embedded JSON Schema before
// anything is accepted.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	_ "embed"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/tasknest/tasknest/internal/model"
)

//go:embed schema.json
var schemaJSON string

const snapshotVersion = 1

// Snapshot is the portable export payload.
type Snapshot struct {
	Version       int          `json:"version"`
	ExportedAt    string       `json:"exportedAt,omitempty"`
	Theme         model.Theme  `json:"theme,omitempty"`
	Collaborators []string     `json:"collaborators,omitempty"`
	Tasks         []model.Task `json:"tasks"`
}

// ValidationError names the JSON pointer that failed schema validation.
type ValidationError struct {
	Pointer string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Pointer == "" {
		return fmt.Sprintf("export: invalid snapshot: %s", e.Message)
	}
	return fmt.Sprintf("export: invalid snapshot at %s: %s", e.Pointer, e.Message)
}

var compiledSchema = jsonschema.MustCompileString("snapshot.json", schemaJSON)

// Write serializes the snapshot to w with the version and timestamp set.
func Write(w io.Writer, snap Snapshot, now time.Time) error {
	snap.Version = snapshotVersion
	snap.ExportedAt = now.UTC().Format(time.RFC3339)
	if snap.Tasks == nil {
		snap.Tasks = []model.Task{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("export: encode snapshot: %w", err)
	}
	return nil
}

// Read parses and validates a snapshot. The payload is checked against the
// schema first so a typed error names the failing field instead of a partial
// decode landing in the store.
func Read(r io.Reader) (Snapshot, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Snapshot{}, fmt.Errorf("export: read snapshot: %w", err)
	}

	var loose any
	if err := json.Unmarshal(raw, &loose); err != nil {
		return Snapshot{}, &ValidationError{Message: "payload is not valid JSON"}
	}
	if err := compiledSchema.Validate(loose); err != nil {
		return Snapshot{}, mapSchemaError(err)
	}

	var snap Snapshot
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("export: decode snapshot: %w", err)
	}
	if snap.Tasks == nil {
		snap.Tasks = []model.Task{}
	}
	return snap, nil
}

func mapSchemaError(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return &ValidationError{Message: err.Error()}
	}
	var result *ValidationError
	collectLeaf(ve, &result)
	if result != nil {
		return result
	}
	return &ValidationError{Pointer: ve.InstanceLocation, Message: ve.Message}
}

func collectLeaf(err *jsonschema.ValidationError, result **ValidationError) {
	if err == nil || *result != nil {
		return
	}
	if len(err.Causes) == 0 {
		*result = &ValidationError{Pointer: err.InstanceLocation, Message: err.Message}
		return
	}
	for _, cause := range err.Causes {
		collectLeaf(cause, result)
	}
}
