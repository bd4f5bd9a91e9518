package date

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func TestNewFormatsShortMonthDay(t *testing.T) {
	l := New(time.Date(2026, time.June, 20, 15, 4, 5, 0, time.UTC))
	assert.Equal(t, "Jun 20", l.String())

	l = New(time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "Jan 2", l.String())
}

func TestParse(t *testing.T) {
	l, err := Parse("Jun 22")
	require.NoError(t, err)
	assert.Equal(t, time.June, l.Month())
	assert.Equal(t, 22, l.Day())

	l, err = Parse("Jun 01")
	require.NoError(t, err)
	assert.Equal(t, "Jun 1", l.String())

	l, err = Parse("")
	require.NoError(t, err)
	assert.True(t, l.IsZero())

	_, err = Parse("2026-06-20")
	assert.Error(t, err)
}

func TestBefore(t *testing.T) {
	jun20 := Of(time.June, 20)
	jun22 := Of(time.June, 22)
	jan5 := Of(time.January, 5)

	assert.True(t, jun20.Before(jun22))
	assert.False(t, jun22.Before(jun20))
	assert.True(t, jan5.Before(jun20))
	assert.True(t, jun20.Before(Label{}))
	assert.False(t, Label{}.Before(jun20))
}

func TestYAMLAndJSON(t *testing.T) {
	type holder struct {
		Date Label `yaml:"date" json:"date"`
	}

	out, err := yaml.Marshal(holder{Date: Of(time.June, 20)})
	require.NoError(t, err)
	assert.Equal(t, "date: Jun 20\n", string(out))

	var h holder
	require.NoError(t, yaml.Unmarshal([]byte("date: Jun 22\n"), &h))
	assert.Equal(t, Of(time.June, 22), h.Date)

	data, err := json.Marshal(holder{Date: Of(time.March, 3)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"Mar 3"}`, string(data))

	require.NoError(t, json.Unmarshal([]byte(`{"date":"Dec 31"}`), &h))
	assert.Equal(t, Of(time.December, 31), h.Date)

	assert.Error(t, json.Unmarshal([]byte(`{"date":"nope"}`), &h))
}
