// Package date provides a Label type that marshals as a short "Jan 2" string.
package date

import (
	"encoding/json"
	"fmt"
	"time"

	"go.yaml.in/yaml/v3"
)

const format = "Jan 2"

// Label is a month and day without year, time or timezone. The zero Label
// means "no date" and renders as an empty string.
type Label struct {
	month time.Month
	day   int
}

// New returns the label for t in t's location.
func New(t time.Time) Label {
	return Label{month: t.Month(), day: t.Day()}
}

// Of builds a label from month and day. Day overflow is not normalized.
func Of(month time.Month, day int) Label {
	return Label{month: month, day: day}
}

// Parse parses a "Jun 20" style label. Two-digit days ("Jun 01") are accepted.
// An empty string parses to the zero Label.
func Parse(s string) (Label, error) {
	if s == "" {
		return Label{}, nil
	}
	t, err := time.Parse(format, s)
	if err != nil {
		return Label{}, fmt.Errorf("invalid date %q: expected a label like \"Jun 20\"", s)
	}
	return New(t), nil
}

// IsZero reports whether the label is unset.
func (l Label) IsZero() bool {
	return l.month == 0
}

// Month returns the label's month.
func (l Label) Month() time.Month { return l.month }

// Day returns the label's day of month.
func (l Label) Day() int { return l.day }

// Before reports whether l falls earlier in the year than other.
// Zero labels sort after every set label.
func (l Label) Before(other Label) bool {
	switch {
	case l.IsZero():
		return false
	case other.IsZero():
		return true
	case l.month != other.month:
		return l.month < other.month
	default:
		return l.day < other.day
	}
}

// String returns the label as "Jan 2", or "" for the zero Label.
func (l Label) String() string {
	if l.IsZero() {
		return ""
	}
	return time.Date(2000, l.month, l.day, 0, 0, 0, 0, time.UTC).Format(format) //nolint:mnd // leap year keeps Feb 29 intact
}

// MarshalYAML implements yaml.Marshaler.
func (l Label) MarshalYAML() (interface{}, error) {
	return l.String(), nil
}

// UnmarshalYAML implements yaml.v3 Unmarshaler.
func (l *Label) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := Parse(value.Value)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler. TOML seeds go through it.
func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Label) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (l Label) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *Label) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
