package model

import "time"

// Recommendation labels. The thresholds that pick between them are local to
// the selected day.
const (
	LabelApplePie   = "APPLE PIE TIME"
	LabelCheesecake = "CHEESECAKE TIME"
	LabelFlexible   = "FLEXIBLE BAKING HOUR"
)

// Recommendation is a pure function of one price and the day's thresholds.
type Recommendation struct {
	Label       string   `json:"label"`
	Severity    Severity `json:"severity"`
	Style       string   `json:"style"`
	BakeCostEUR float64  `json:"bake_cost_eur"`
}

// Panel is one of the two rendered recommendation blocks: the latest available
// hour or the day average.
type Panel struct {
	Recommendation
	Time *time.Time `json:"time,omitempty"`
	// CentsPerKWh is the price behind the recommendation.
	CentsPerKWh float64 `json:"cents_per_kwh"`
	// DeltaVsAvgPct is nil when the day average is zero and the delta is
	// undefined.
	DeltaVsAvgPct *float64 `json:"delta_vs_avg_pct,omitempty"`
}

// Thresholds are the day-local quantile cutoffs, in €/kWh.
type Thresholds struct {
	LowKWh  float64 `json:"low_kwh"`
	HighKWh float64 `json:"high_kwh"`
}

// Advice is the full result for one market/date selection.
type Advice struct {
	Market     string       `json:"market"`
	Date       string       `json:"date"`
	Current    Panel        `json:"current"`
	DayAverage Panel        `json:"day_average"`
	Thresholds Thresholds   `json:"thresholds"`
	Chart      []ChartPoint `json:"chart"`
	Cheapest   []RankedHour `json:"cheapest"`
	Priciest   []RankedHour `json:"priciest"`
}
