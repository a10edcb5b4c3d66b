package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records advice requests in Prometheus metrics.
type PromSink struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewPromSink registers advice metrics on the provided Prometheus registerer.
// If reg is nil, the default registerer is used. If the collectors are already
// registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "advice_requests_total",
		Help: "Total number of advice requests",
	}, []string{"market", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "advice_request_duration_seconds",
		Help:    "Time spent computing one advice request",
		Buckets: prometheus.DefBuckets,
	}, []string{"market", "status"})

	if err := reg.Register(requests); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			requests = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{requests: requests, duration: duration}, nil
}

// RecordAdviceRequest increments the request counter and observes the duration.
func (s *PromSink) RecordAdviceRequest(market, status string, d time.Duration) error {
	s.requests.WithLabelValues(market, status).Inc()
	s.duration.WithLabelValues(market, status).Observe(d.Seconds())
	return nil
}

// Close is a no-op; the registry owns the collectors.
func (s *PromSink) Close() error { return nil }
