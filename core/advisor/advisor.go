// Package advisor turns a day slice of wholesale prices into a baking
// recommendation. Every function is pure: the same slice and parameters
// always produce the same advice.
package advisor

import (
	"gonum.org/v1/gonum/stat"

	"github.com/bakewatt/bakewatt/core/model"
)

// Default oven parameters. A 2.5 kW oven running for one hour.
const (
	DefaultOvenPowerKW = 2.5
	DefaultBakeHours   = 1.0
)

// Quantiles bounding the cheap and expensive buckets of the selected day.
const (
	lowQuantile  = 0.33
	highQuantile = 0.66
)

// MaxTopN caps the cheapest/priciest ranking length.
const MaxTopN = 8

// Advisor evaluates day slices with a fixed oven profile.
type Advisor struct {
	OvenPowerKW float64
	BakeHours   float64
}

// New returns an Advisor with the default oven profile.
func New() Advisor {
	return Advisor{OvenPowerKW: DefaultOvenPowerKW, BakeHours: DefaultBakeHours}
}

// ToKwh converts a €/MWh slice to €/kWh.
func ToKwh(slice []model.PricePoint) []model.PricePoint {
	out := make([]model.PricePoint, len(slice))
	for i, p := range slice {
		out[i] = model.PricePoint{Time: p.Time, Price: p.Price / 1000}
	}
	return out
}

// LatestHour returns the last point of a non-empty, time-ordered slice.
func LatestHour(slice []model.PricePoint) model.PricePoint {
	return slice[len(slice)-1]
}

// DailyAverage returns the arithmetic mean price of a non-empty slice.
func DailyAverage(slice []model.PricePoint) float64 {
	prices := make([]float64, len(slice))
	for i, p := range slice {
		prices[i] = p.Price
	}
	return stat.Mean(prices, nil)
}

// Thresholds returns the day-local 33rd and 66th percentile prices.
func Thresholds(slice []model.PricePoint) (low, high float64) {
	prices := make([]float64, len(slice))
	for i, p := range slice {
		prices[i] = p.Price
	}
	return quantile(prices, lowQuantile), quantile(prices, highQuantile)
}

// Recommend classifies a price against the day thresholds. The favorable
// branch is checked first: on a flat day (low == high) a price equal to both
// classifies as favorable.
func (a Advisor) Recommend(price, low, high float64) model.Recommendation {
	var label string
	var sev model.Severity
	switch {
	case price <= low:
		label, sev = model.LabelApplePie, model.SeverityFavorable
	case price >= high:
		label, sev = model.LabelCheesecake, model.SeverityUnfavorable
	default:
		label, sev = model.LabelFlexible, model.SeverityNeutral
	}
	return model.Recommendation{
		Label:       label,
		Severity:    sev,
		Style:       sev.Style(),
		BakeCostEUR: a.BakingCost(price),
	}
}

// BakingCost estimates the cost of one bake at the given €/kWh price.
func (a Advisor) BakingCost(priceKWh float64) float64 {
	return a.OvenPowerKW * a.BakeHours * priceKWh
}

// PercentDelta returns the percent difference of current vs baseline. The
// second result is false when baseline is zero and the delta is undefined.
func PercentDelta(current, baseline float64) (float64, bool) {
	if baseline == 0 {
		return 0, false
	}
	return (current - baseline) / baseline * 100, true
}

// Advise assembles the full advice for one day slice. slice is in €/MWh as
// returned by the table; n is the ranking length, clamped to [1, MaxTopN].
func (a Advisor) Advise(market, date string, slice []model.PricePoint, n int) *model.Advice {
	kwh := ToKwh(slice)

	current := LatestHour(kwh)
	avg := DailyAverage(kwh)
	low, high := Thresholds(kwh)

	currentPanel := model.Panel{
		Recommendation: a.Recommend(current.Price, low, high),
		Time:           &current.Time,
		CentsPerKWh:    current.Price * 100,
	}
	if pct, ok := PercentDelta(current.Price, avg); ok {
		currentPanel.DeltaVsAvgPct = &pct
	}

	avgPanel := model.Panel{
		Recommendation: a.Recommend(avg, low, high),
		CentsPerKWh:    avg * 100,
	}

	chart := make([]model.ChartPoint, len(kwh))
	for i, p := range kwh {
		chart[i] = model.ChartPoint{Time: p.Time, CentsPerKWh: p.Price * 100}
	}

	cheapest, priciest := RankExtremes(kwh, n)

	return &model.Advice{
		Market:     market,
		Date:       date,
		Current:    currentPanel,
		DayAverage: avgPanel,
		Thresholds: model.Thresholds{LowKWh: low, HighKWh: high},
		Chart:      chart,
		Cheapest:   a.rankedHours(cheapest),
		Priciest:   a.rankedHours(priciest),
	}
}

func (a Advisor) rankedHours(points []model.PricePoint) []model.RankedHour {
	out := make([]model.RankedHour, len(points))
	for i, p := range points {
		out[i] = model.RankedHour{
			Time:        p.Time,
			CentsPerKWh: p.Price * 100,
			BakeCostEUR: a.BakingCost(p.Price),
		}
	}
	return out
}
