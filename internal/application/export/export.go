// Package export moves whole store snapshots in and out of the process as
// json, yaml or toml documents.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/taskmaster/tasklist/internal/application/store"
	"github.com/taskmaster/tasklist/internal/domain/entities"
)

// Format names a document encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned for encodings other than json, yaml and toml
var ErrUnknownFormat = errors.New("unknown export format")

// Formats lists the supported encodings
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatTOML}
}

// ParseFormat resolves a user supplied format name. "yml" is accepted for yaml.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Snapshot is the exported document: both persisted states side by side
type Snapshot struct {
	Todo  entities.TodoState  `json:"todo" yaml:"todo" toml:"todo"`
	Theme entities.ThemeState `json:"theme" yaml:"theme" toml:"theme"`
}

// Take copies the current state of both stores
func Take(todos *store.TodoStore, theme *store.ThemeStore) Snapshot {
	return Snapshot{
		Todo:  todos.Snapshot(),
		Theme: theme.Snapshot(),
	}
}

// Restore replaces both stores with the snapshot. Listeners are notified
// as for any other mutation, so an attached persistor writes it through.
func Restore(snapshot Snapshot, todos *store.TodoStore, theme *store.ThemeStore) {
	todos.Replace(snapshot.Todo)
	theme.Replace(snapshot.Theme)
}

// Encode renders the snapshot in the given format.
func Encode(snapshot Snapshot, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(snapshot); err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(snapshot); err != nil {
			return nil, fmt.Errorf("failed to encode toml: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Decode parses a document produced by Encode. Missing sections keep their
// initial values and the result is normalized.
func Decode(data []byte, format Format) (Snapshot, error) {
	snapshot := Snapshot{
		Todo:  entities.InitialTodoState(),
		Theme: entities.InitialThemeState(),
	}

	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &snapshot)
	case FormatYAML:
		err = yaml.Unmarshal(data, &snapshot)
	case FormatTOML:
		_, err = toml.Decode(string(data), &snapshot)
	default:
		return Snapshot{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode %s: %w", format, err)
	}

	snapshot.Todo.Normalize()
	return snapshot, nil
}
