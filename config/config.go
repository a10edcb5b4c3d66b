package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/bakewatt/bakewatt/core/advisor"
	"github.com/bakewatt/bakewatt/core/metrics"
	"github.com/bakewatt/bakewatt/infra/mqtt"
)

type Config struct {
	Data    DataConfig     `json:"data"`
	Advisor AdvisorConfig  `json:"advisor"`
	Server  ServerConfig   `json:"server"`
	Metrics metrics.Config `json:"metrics"`
	MQTT    mqtt.Config    `json:"mqtt"`
	Logging LoggingConfig  `json:"logging"`
}

// DataConfig locates the gold table.
type DataConfig struct {
	// Path is the gold CSV file location.
	Path string `json:"path"`
}

// Validate checks mandatory fields.
func (c DataConfig) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("data.path is required")
	}
	return nil
}

// AdvisorConfig parameterizes the baking-cost estimate and defaults of the
// user-facing selectors.
type AdvisorConfig struct {
	OvenPowerKW   float64 `json:"oven_power_kw"`
	BakeHours     float64 `json:"bake_hours"`
	DefaultMarket string  `json:"default_market"`
	DefaultTop    int     `json:"default_top"`
}

// SetDefaults applies sane defaults.
func (c *AdvisorConfig) SetDefaults() {
	if c.OvenPowerKW == 0 {
		c.OvenPowerKW = advisor.DefaultOvenPowerKW
	}
	if c.BakeHours == 0 {
		c.BakeHours = advisor.DefaultBakeHours
	}
	if c.DefaultTop == 0 {
		c.DefaultTop = 3
	}
}

// Validate checks field ranges.
func (c AdvisorConfig) Validate() error {
	if c.OvenPowerKW <= 0 {
		return fmt.Errorf("advisor.oven_power_kw must be positive")
	}
	if c.BakeHours <= 0 {
		return fmt.Errorf("advisor.bake_hours must be positive")
	}
	if c.DefaultTop < 1 || c.DefaultTop > advisor.MaxTopN {
		return fmt.Errorf("advisor.default_top must be in [1, %d]", advisor.MaxTopN)
	}
	return nil
}

// ServerConfig parameterizes the advice HTTP API.
type ServerConfig struct {
	Addr                string `json:"addr"`
	ReadTimeoutSeconds  int    `json:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `json:"write_timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.ReadTimeoutSeconds == 0 {
		c.ReadTimeoutSeconds = 10
	}
	if c.WriteTimeoutSeconds == 0 {
		c.WriteTimeoutSeconds = 10
	}
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("BW_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "bw_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Advisor.SetDefaults()
	cfg.Server.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.MQTT.SetDefaults()
	cfg.Logging.SetDefaults()
	if err := cfg.Data.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Advisor.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.MQTT.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
