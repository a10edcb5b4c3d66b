// Package metrics defines the sink interface advice handlers report into.
package metrics

import "time"

// Sink records advice request outcomes. Implementations live in
// infra/metrics.
type Sink interface {
	// RecordAdviceRequest records one advice computation with its market,
	// result status ("ok", "empty", "bad_request", "error") and duration.
	RecordAdviceRequest(market, status string, d time.Duration) error
	Close() error
}

// Config selects and parameterizes the metric sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusAddr    string `json:"prometheus_addr"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PrometheusAddr == "" {
		c.PrometheusAddr = ":9090"
	}
}

// NopSink discards every sample.
type NopSink struct{}

func (NopSink) RecordAdviceRequest(string, string, time.Duration) error { return nil }
func (NopSink) Close() error                                           { return nil }
