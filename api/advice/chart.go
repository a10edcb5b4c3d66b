package advice

import (
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/google/uuid"

	"github.com/bakewatt/bakewatt/core/advisor"
)

// handleChart renders the selected day as a line chart in cents/kWh.
func (h *Handler) handleChart(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	table, err := h.store.Get(h.dataPath)
	if err != nil {
		h.writeError(w, reqID, err)
		return
	}
	market := r.URL.Query().Get("market")
	if market == "" {
		market = h.marketDefault(table)
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = table.LatestDate()
	}

	slice, err := table.SelectSlice(market, date)
	if err != nil {
		h.writeError(w, reqID, err)
		return
	}
	kwh := advisor.ToKwh(slice)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Hourly electricity price: " + market + " " + date}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Hour"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "cents/kWh"}),
	)

	xAxis := make([]string, len(kwh))
	yAxis := make([]opts.LineData, len(kwh))
	for i, p := range kwh {
		xAxis[i] = p.Time.Format("15:04")
		yAxis[i] = opts.LineData{Value: p.Price * 100}
	}
	line.SetXAxis(xAxis).AddSeries("cents/kWh", yAxis)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Request-ID", reqID)
	if err := line.Render(w); err != nil {
		h.log.Errorf("chart render: %v", err)
	}
}
