package task

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"
)

const fileMode = 0o600

// Seed file formats.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

//go:embed seed.yml
var defaultSeed []byte

// seedFile is the on-disk shape of a seed: a list of tasks under "tasks".
type seedFile struct {
	Tasks []*Task `yaml:"tasks" toml:"tasks"`
}

// FormatForPath picks the seed format from a file extension.
func FormatForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported seed file %q: expected .yml, .yaml or .toml", path)
	}
}

// ParseSeed decodes seed tasks from data in the given format. It does not
// validate the tasks; see Normalize.
func ParseSeed(data []byte, format string) ([]*Task, error) {
	var sf seedFile
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &sf); err != nil {
			return nil, fmt.Errorf("parsing YAML seed: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &sf); err != nil {
			return nil, fmt.Errorf("parsing TOML seed: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported seed format %q", format)
	}
	return sf.Tasks, nil
}

// ReadSeed reads a seed file and normalizes its tasks leniently: malformed
// entries are skipped and returned as warnings.
func ReadSeed(path string) ([]*Task, []ReadWarning, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // seed path from trusted config
	if err != nil {
		return nil, nil, fmt.Errorf("reading seed file: %w", err)
	}
	tasks, err := ParseSeed(data, format)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	valid, warnings := Normalize(tasks)
	for i := range warnings {
		warnings[i].File = path
	}
	return valid, warnings, nil
}

// DefaultSeed returns the built-in demo tasks.
func DefaultSeed() ([]*Task, error) {
	tasks, err := ParseSeed(defaultSeed, FormatYAML)
	if err != nil {
		return nil, err
	}
	valid, warnings := Normalize(tasks)
	if len(warnings) > 0 {
		return nil, errors.Join(warnings[0].Err, fmt.Errorf("built-in seed has %d invalid tasks", len(warnings)))
	}
	return valid, nil
}

// WriteSeed serializes tasks to path in the format implied by its extension.
func WriteSeed(path string, tasks []*Task) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}

	sf := seedFile{Tasks: tasks}
	var buf bytes.Buffer
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(sf); err != nil {
			return fmt.Errorf("marshaling TOML seed: %w", err)
		}
	default:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2) //nolint:mnd // match hand-written seed files
		if err := enc.Encode(sf); err != nil {
			return fmt.Errorf("marshaling YAML seed: %w", err)
		}
		_ = enc.Close()
	}

	return os.WriteFile(path, buf.Bytes(), fileMode)
}
