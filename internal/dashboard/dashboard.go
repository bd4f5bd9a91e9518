// Package dashboard holds the overview metrics shown next to the board:
// headline stat cards, a seven day sales series, per-country breakdowns and
// project progress.
package dashboard

import "github.com/twiced-technology-gmbh/deskboard/internal/clierr"

// Breakdown ranges.
const (
	RangeWeekly  = "weekly"
	RangeMonthly = "monthly"
	RangeYearly  = "yearly"
)

// Stats are the headline figures.
type Stats struct {
	Users      int     `json:"users" yaml:"users"`
	Orders     int     `json:"orders" yaml:"orders"`
	Revenue    int     `json:"revenue" yaml:"revenue"`
	Conversion float64 `json:"conversion" yaml:"conversion"`
}

// Card is one stat card with its period-over-period change.
type Card struct {
	Title    string  `json:"title" yaml:"title"`
	Value    float64 `json:"value" yaml:"value"`
	Unit     string  `json:"unit,omitempty" yaml:"unit,omitempty"`
	Change   string  `json:"change" yaml:"change"`
	Positive bool    `json:"positive" yaml:"positive"`
}

// Point is one day of the sales series.
type Point struct {
	Date    string `json:"date" yaml:"date"`
	Orders  int    `json:"orders" yaml:"orders"`
	Revenue int    `json:"revenue" yaml:"revenue"`
}

// Slice is one country's share of a breakdown.
type Slice struct {
	Name    string  `json:"name" yaml:"name"`
	Value   int     `json:"value" yaml:"value"`
	Percent float64 `json:"percent" yaml:"percent"`
}

// Project is a tracked project and its progress.
type Project struct {
	Title    string `json:"title" yaml:"title"`
	Progress int    `json:"progress" yaml:"progress"`
	DaysLeft int    `json:"days_left" yaml:"days_left"`
}

// Totals aggregates the sales series.
type Totals struct {
	Days           int     `json:"days" yaml:"days"`
	Orders         int     `json:"orders" yaml:"orders"`
	Revenue        int     `json:"revenue" yaml:"revenue"`
	AvgOrderValue  float64 `json:"avg_order_value" yaml:"avg_order_value"`
	PeakRevenueDay string  `json:"peak_revenue_day" yaml:"peak_revenue_day"`
}

// Overview is everything the dashboard shows for one breakdown range.
type Overview struct {
	Stats     Stats     `json:"stats" yaml:"stats"`
	Cards     []Card    `json:"cards" yaml:"cards"`
	Series    []Point   `json:"series" yaml:"series"`
	Totals    Totals    `json:"totals" yaml:"totals"`
	Range     string    `json:"range" yaml:"range"`
	Breakdown []Slice   `json:"breakdown" yaml:"breakdown"`
	Projects  []Project `json:"projects" yaml:"projects"`
}

// CurrentStats returns the headline figures.
func CurrentStats() Stats {
	return Stats{Users: 24500, Orders: 1250, Revenue: 18000, Conversion: 4.8}
}

// Cards returns the stat cards in display order.
func Cards(s Stats) []Card {
	return []Card{
		{Title: "Total Users", Value: float64(s.Users), Change: "+2.5%", Positive: true},
		{Title: "Revenue", Value: float64(s.Revenue), Change: "+8.1%", Positive: true},
		{Title: "Orders", Value: float64(s.Orders), Change: "-1.9%"},
		{Title: "Conversion", Value: s.Conversion, Unit: "%", Change: "+0.6%", Positive: true},
	}
}

// Series returns the last seven days of orders and revenue.
func Series() []Point {
	return []Point{
		{"Jun 01", 120, 2200},
		{"Jun 02", 90, 1800},
		{"Jun 03", 150, 2600},
		{"Jun 04", 80, 1700},
		{"Jun 05", 200, 3000},
		{"Jun 06", 180, 2800},
		{"Jun 07", 160, 2500},
	}
}

// Ranges returns the valid breakdown ranges.
func Ranges() []string {
	return []string{RangeWeekly, RangeMonthly, RangeYearly}
}

var breakdowns = map[string][4]int{
	RangeWeekly:  {400, 300, 300, 200},
	RangeMonthly: {1000, 700, 600, 500},
	RangeYearly:  {12000, 9500, 8500, 6000},
}

var countries = [4]string{"India", "USA", "UK", "Germany"}

// Breakdown returns the per-country sales for rng with each country's share.
func Breakdown(rng string) ([]Slice, error) {
	values, ok := breakdowns[rng]
	if !ok {
		return nil, clierr.Newf(clierr.InvalidRange, "invalid range %q", rng).
			WithDetails(map[string]any{"range": rng, "allowed": Ranges()})
	}

	total := 0
	for _, v := range values {
		total += v
	}
	out := make([]Slice, 0, len(values))
	for i, v := range values {
		out = append(out, Slice{Name: countries[i], Value: v, Percent: float64(v) * 100 / float64(total)})
	}
	return out, nil
}

// Sum aggregates a series. An empty series yields zero totals.
func Sum(series []Point) Totals {
	t := Totals{Days: len(series)}
	peak := -1
	for _, p := range series {
		t.Orders += p.Orders
		t.Revenue += p.Revenue
		if p.Revenue > peak {
			peak = p.Revenue
			t.PeakRevenueDay = p.Date
		}
	}
	if t.Orders > 0 {
		t.AvgOrderValue = float64(t.Revenue) / float64(t.Orders)
	}
	return t
}

// Projects returns the tracked projects.
func Projects() []Project {
	return []Project{
		{"Website Redesign", 75, 12},
		{"Mobile App", 45, 24},
		{"API Integration", 90, 5},
		{"Dashboard UI", 30, 18},
	}
}

// Build assembles the dashboard for a breakdown range.
func Build(rng string) (Overview, error) {
	if rng == "" {
		rng = RangeWeekly
	}
	breakdown, err := Breakdown(rng)
	if err != nil {
		return Overview{}, err
	}
	stats := CurrentStats()
	series := Series()
	return Overview{
		Stats:     stats,
		Cards:     Cards(stats),
		Series:    series,
		Totals:    Sum(series),
		Range:     rng,
		Breakdown: breakdown,
		Projects:  Projects(),
	}, nil
}
