package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `data:
  path: "/var/lib/bakewatt/gold.csv"
advisor:
  oven_power_kw: 3.0
  default_market: "germany_de"
server:
  addr: ":9000"
metrics:
  prometheus_enabled: true
mqtt:
  enabled: true
  broker: "tcp://localhost:1883"
  topic: "home/bakewatt"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/bakewatt/gold.csv", cfg.Data.Path)
	assert.Equal(t, 3.0, cfg.Advisor.OvenPowerKW)
	assert.Equal(t, "germany_de", cfg.Advisor.DefaultMarket)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.True(t, cfg.Metrics.PrometheusEnabled)
	assert.Equal(t, "tcp://localhost:1883", cfg.MQTT.Broker)
	assert.Equal(t, "home/bakewatt", cfg.MQTT.Topic)

	// defaults
	assert.Equal(t, 1.0, cfg.Advisor.BakeHours)
	assert.Equal(t, 3, cfg.Advisor.DefaultTop)
	assert.Equal(t, ":9090", cfg.Metrics.PrometheusAddr)
	assert.Equal(t, "bakewatt", cfg.MQTT.ClientID)
	assert.Equal(t, 15, cfg.MQTT.IntervalMinutes)
	assert.Equal(t, 10, cfg.Server.ReadTimeoutSeconds)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "data:\n  path: \"gold.csv\"\nlogging:\n  level: \"loud\"\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log level")
}

func TestLoadMissingDataPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9000\"\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data.path")
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data:\n  path: \"gold.csv\"\n"), 0o644))

	t.Setenv("BW_SERVER__ADDR", ":7070")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
}

func TestLoadRejectsMqttWithoutBroker(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "data:\n  path: \"gold.csv\"\nmqtt:\n  enabled: true\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker")
}

func TestLoadUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("x = 1\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsBadTop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "data:\n  path: \"gold.csv\"\nadvisor:\n  default_top: 12\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_top")
}
