package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/deskboard/internal/clierr"
)

func TestSum(t *testing.T) {
	got := Sum(Series())
	assert.Equal(t, 7, got.Days)
	assert.Equal(t, 980, got.Orders)
	assert.Equal(t, 16600, got.Revenue)
	assert.Equal(t, "Jun 05", got.PeakRevenueDay)
	assert.InDelta(t, 16.94, got.AvgOrderValue, 0.01)

	assert.Equal(t, Totals{}, Sum(nil))
}

func TestBreakdown(t *testing.T) {
	weekly, err := Breakdown(RangeWeekly)
	require.NoError(t, err)
	require.Len(t, weekly, 4)
	assert.Equal(t, "India", weekly[0].Name)
	assert.Equal(t, 400, weekly[0].Value)
	assert.InDelta(t, 33.33, weekly[0].Percent, 0.01)

	yearly, err := Breakdown(RangeYearly)
	require.NoError(t, err)
	assert.Equal(t, "Germany", yearly[3].Name)
	assert.Equal(t, 6000, yearly[3].Value)
	assert.InDelta(t, 16.67, yearly[3].Percent, 0.01)

	_, err = Breakdown("daily")
	assert.True(t, clierr.HasCode(err, clierr.InvalidRange))
}

func TestBreakdownSharesSumToHundred(t *testing.T) {
	for _, r := range Ranges() {
		slices, err := Breakdown(r)
		require.NoError(t, err)
		total := 0.0
		for _, s := range slices {
			total += s.Percent
		}
		assert.InDelta(t, 100, total, 1e-9, r)
	}
}

func TestBuild(t *testing.T) {
	o, err := Build("")
	require.NoError(t, err)
	assert.Equal(t, RangeWeekly, o.Range)
	assert.Equal(t, 24500, o.Stats.Users)
	require.Len(t, o.Cards, 4)
	assert.False(t, o.Cards[2].Positive)
	assert.Equal(t, "%", o.Cards[3].Unit)
	assert.Len(t, o.Projects, 4)

	o, err = Build(RangeMonthly)
	require.NoError(t, err)
	assert.Equal(t, 1000, o.Breakdown[0].Value)

	_, err = Build("hourly")
	assert.True(t, clierr.HasCode(err, clierr.InvalidRange))
}
