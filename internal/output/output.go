// Package output handles formatting CLI output as table, compact lines,
// JSON or YAML.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Format represents an output format.
type Format int

const (
	// FormatAuto uses the default format (table).
	FormatAuto Format = iota
	// FormatJSON outputs JSON.
	FormatJSON
	// FormatTable outputs a human-readable table.
	FormatTable
	// FormatCompact outputs one-line-per-record compact format.
	FormatCompact
	// FormatYAML outputs YAML.
	FormatYAML
)

// EnvVar selects the output format when no flag does.
const EnvVar = "DESKBOARD_OUTPUT"

// Detect returns the appropriate format based on flags and environment.
// Default is table when no explicit format is set.
func Detect(jsonFlag, yamlFlag, tableFlag, compactFlag bool) Format {
	switch {
	case jsonFlag:
		return FormatJSON
	case yamlFlag:
		return FormatYAML
	case compactFlag:
		return FormatCompact
	case tableFlag:
		return FormatTable
	}

	switch os.Getenv(EnvVar) {
	case "json":
		return FormatJSON
	case "yaml", "yml":
		return FormatYAML
	case "compact", "oneline":
		return FormatCompact
	case "table":
		return FormatTable
	}
	return FormatTable
}

// Structured reports whether f is a machine-readable format.
func (f Format) Structured() bool {
	return f == FormatJSON || f == FormatYAML
}

// DisableColor strips all styling from table output by forcing an ASCII
// color profile.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
