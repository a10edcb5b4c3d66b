// Package advice exposes the price advisor over a JSON HTTP API.
package advice

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/bakewatt/bakewatt/core/advisor"
	coremetrics "github.com/bakewatt/bakewatt/core/metrics"
	"github.com/bakewatt/bakewatt/core/model"
	"github.com/bakewatt/bakewatt/core/pricetable"
	"github.com/bakewatt/bakewatt/infra/logger"
	"github.com/bakewatt/bakewatt/infra/store"
)

// Handler serves the market, date and advice endpoints from one gold table.
type Handler struct {
	store         *store.Store
	dataPath      string
	adv           advisor.Advisor
	defaultMarket string
	defaultTop    int
	log           logger.Logger
	sink          coremetrics.Sink
}

// New creates a Handler. defaultMarket may be empty, in which case the table's
// own default is used. sink may be nil.
func New(st *store.Store, dataPath string, adv advisor.Advisor, defaultMarket string, defaultTop int, log logger.Logger, sink coremetrics.Sink) *Handler {
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Handler{
		store:         st,
		dataPath:      dataPath,
		adv:           adv,
		defaultMarket: defaultMarket,
		defaultTop:    defaultTop,
		log:           log,
		sink:          sink,
	}
}

// Register installs the handler routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/markets", h.handleMarkets)
	mux.HandleFunc("/api/dates", h.handleDates)
	mux.HandleFunc("/api/advice", h.handleAdvice)
	mux.HandleFunc("/chart", h.handleChart)
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id"`
}

func (h *Handler) handleMarkets(w http.ResponseWriter, r *http.Request) {
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
	h.writeJSON(w, reqID, struct {
		Markets []string `json:"markets"`
		Default string   `json:"default"`
	}{table.Markets(), h.marketDefault(table)})
}

func (h *Handler) handleDates(w http.ResponseWriter, r *http.Request) {
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
	h.writeJSON(w, reqID, struct {
		Dates   []string `json:"dates"`
		Default string   `json:"default"`
	}{table.Dates(), table.LatestDate()})
}

func (h *Handler) handleAdvice(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	start := time.Now()

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
	top := h.defaultTop
	if raw := r.URL.Query().Get("top"); raw != "" {
		top, err = strconv.Atoi(raw)
		if err != nil || top < 1 || top > advisor.MaxTopN {
			h.record(market, "bad_request", start)
			h.writeStatus(w, reqID, http.StatusBadRequest, "top must be an integer in [1, 8]")
			return
		}
	}

	slice, err := table.SelectSlice(market, date)
	if err != nil {
		h.record(market, sliceStatus(err), start)
		h.writeError(w, reqID, err)
		return
	}

	result := h.adv.Advise(market, date, slice, top)
	h.record(market, "ok", start)
	h.log.Debugw("advice served", map[string]any{
		"request_id": reqID,
		"market":     market,
		"date":       date,
		"top":        top,
	})
	h.writeJSON(w, reqID, result)
}

// marketDefault prefers the configured default when the table carries it.
func (h *Handler) marketDefault(table *pricetable.Table) string {
	if h.defaultMarket != "" && table.HasMarket(h.defaultMarket) {
		return h.defaultMarket
	}
	return table.DefaultMarket()
}

func (h *Handler) record(market, status string, start time.Time) {
	if err := h.sink.RecordAdviceRequest(market, status, time.Since(start)); err != nil {
		h.log.Warnf("metrics sink: %v", err)
	}
}

func sliceStatus(err error) string {
	var empty *model.EmptySliceError
	if errors.As(err, &empty) {
		return "empty"
	}
	var unknown *model.UnknownMarketError
	if errors.As(err, &unknown) {
		return "bad_request"
	}
	return "error"
}

func (h *Handler) writeJSON(w http.ResponseWriter, reqID string, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", reqID)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, reqID string, err error) {
	status := http.StatusInternalServerError
	var unknown *model.UnknownMarketError
	var empty *model.EmptySliceError
	var notFound *model.DataNotFoundError
	switch {
	case errors.As(err, &unknown):
		status = http.StatusBadRequest
	case errors.As(err, &empty):
		status = http.StatusNotFound
	case errors.As(err, &notFound):
		status = http.StatusServiceUnavailable
	}
	h.log.Errorf("request %s failed: %v", reqID, err)
	h.writeStatus(w, reqID, status, err.Error())
}

func (h *Handler) writeStatus(w http.ResponseWriter, reqID string, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", reqID)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg, RequestID: reqID})
}
