package metrics

import (
	"time"

	coremetrics "github.com/bakewatt/bakewatt/core/metrics"
)

// MultiSink fanouts advice samples to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordAdviceRequest forwards the sample to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordAdviceRequest(market, status string, d time.Duration) error {
	for _, s := range m.Sinks {
		if err := s.RecordAdviceRequest(market, status, d); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink, returning the first error encountered.
func (m *MultiSink) Close() error {
	var first error
	for _, s := range m.Sinks {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
