package model

import "time"

// PricePoint is one hour of one market. The unit depends on the stage of the
// pipeline: €/MWh straight out of the gold table, €/kWh after conversion.
type PricePoint struct {
	Time  time.Time `json:"time"`
	Price float64   `json:"price"`
}

// RankedHour is a table row of the cheapest/priciest rankings, in cents/kWh as
// rendered to the user.
type RankedHour struct {
	Time        time.Time `json:"time"`
	CentsPerKWh float64   `json:"cents_per_kwh"`
	BakeCostEUR float64   `json:"bake_cost_eur"`
}

// ChartPoint is one sample of the day chart, in cents/kWh.
type ChartPoint struct {
	Time        time.Time `json:"time"`
	CentsPerKWh float64   `json:"cents_per_kwh"`
}
