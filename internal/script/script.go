// Package script applies ordered batches of board operations. A script is a
// YAML or TOML document listing operations; later steps can refer to tasks
// created by earlier ones as "$N", where N is the 1-based step number.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"

	"github.com/twiced-technology-gmbh/deskboard/internal/clierr"
)

// Operation names.
const (
	OpAdd    = "add"
	OpMove   = "move"
	OpEdit   = "edit"
	OpDelete = "delete"
	OpStatus = "status"
)

// Script formats.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Op is one board operation.
//
// Column is the target column for add, move and status. For move, Index is
// the destination index (end of column when nil) and FromIndex the expected
// current index (looked up when nil). For edit, a nil Title or Description
// keeps the current value.
type Op struct {
	Op          string  `yaml:"op" toml:"op" json:"op"`
	ID          string  `yaml:"id,omitempty" toml:"id,omitempty" json:"id,omitempty"`
	Column      string  `yaml:"column,omitempty" toml:"column,omitempty" json:"column,omitempty"`
	Index       *int    `yaml:"index,omitempty" toml:"index,omitempty" json:"index,omitempty"`
	FromIndex   *int    `yaml:"from_index,omitempty" toml:"from_index,omitempty" json:"from_index,omitempty"`
	Title       *string `yaml:"title,omitempty" toml:"title,omitempty" json:"title,omitempty"`
	Description *string `yaml:"description,omitempty" toml:"description,omitempty" json:"description,omitempty"`
}

// Script is the document form: a list of operations under "ops".
type Script struct {
	Ops []Op `yaml:"ops" toml:"ops" json:"ops"`
}

// Ops returns the names of all supported operations.
func Ops() []string {
	return []string{OpAdd, OpMove, OpEdit, OpDelete, OpStatus}
}

// FormatForPath picks the script format from a file extension. Anything
// that is not .toml is read as YAML.
func FormatForPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Parse decodes and validates a script. YAML scripts may also be a bare
// list of operations. Unknown fields are rejected.
func Parse(data []byte, format string) ([]Op, error) {
	var s Script
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, invalid("parsing TOML script: %v", err)
		}
	case FormatYAML:
		ops, err := parseYAML(data)
		if err != nil {
			return nil, err
		}
		s.Ops = ops
	default:
		return nil, invalid("unsupported script format %q", format)
	}

	if len(s.Ops) == 0 {
		return nil, invalid("script has no operations")
	}
	for i, op := range s.Ops {
		if err := op.Validate(i + 1); err != nil {
			return nil, err
		}
	}
	return s.Ops, nil
}

func parseYAML(data []byte) ([]Op, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, invalid("parsing YAML script: %v", err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if root.Content[0].Kind == yaml.SequenceNode {
		var ops []Op
		if err := dec.Decode(&ops); err != nil {
			return nil, invalid("parsing YAML script: %v", err)
		}
		return ops, nil
	}
	var s Script
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, invalid("parsing YAML script: %v", err)
	}
	return s.Ops, nil
}

// Load reads a script from path, or from r when path is "-".
func Load(path string, r io.Reader) ([]Op, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(r)
	} else {
		data, err = os.ReadFile(path) //nolint:gosec // user-supplied script path
	}
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return Parse(data, FormatForPath(path))
}

// Validate checks that op names a known operation and carries the fields it
// needs. step is the 1-based position used in error messages.
func (o Op) Validate(step int) error {
	need := func(field, value string) error {
		if value == "" {
			return invalid("step %d (%s): %s is required", step, o.Op, field)
		}
		return nil
	}

	switch o.Op {
	case OpAdd:
		return need("column", o.Column)
	case OpMove, OpStatus:
		if err := need("id", o.ID); err != nil {
			return err
		}
		return need("column", o.Column)
	case OpEdit:
		if err := need("id", o.ID); err != nil {
			return err
		}
		if o.Title == nil && o.Description == nil {
			return invalid("step %d (edit): title or description is required", step)
		}
		return nil
	case OpDelete:
		return need("id", o.ID)
	case "":
		return invalid("step %d: op is required", step)
	default:
		return clierr.Newf(clierr.InvalidScript, "step %d: unknown op %q", step, o.Op).
			WithDetails(map[string]any{"step": step, "op": o.Op, "allowed": Ops()})
	}
}

func invalid(format string, args ...any) *clierr.Error {
	return clierr.Newf(clierr.InvalidScript, format, args...)
}
