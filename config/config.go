// Package config loads the service configuration from a JSON or YAML file
// with optional environment overrides.
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

	"github.com/skyops/skycoord/core/metrics"
	"github.com/skyops/skycoord/infra/mqtt"
)

type Config struct {
	Store   StoreConfig    `json:"store"`
	Audit   AuditConfig    `json:"audit"`
	Metrics metrics.Config `json:"metrics"`
	MQTT    MQTTConfig     `json:"mqtt"`
	Sweep   SweepConfig    `json:"sweep"`
	API     APIConfig      `json:"api"`
}

// StoreConfig locates the entity snapshot on disk.
type StoreConfig struct {
	SnapshotPath string `json:"snapshot_path"`
}

// SetDefaults applies sane defaults.
func (c *StoreConfig) SetDefaults() {
	if c.SnapshotPath == "" {
		c.SnapshotPath = "skycoord.json"
	}
}

// MQTTConfig wraps the broker settings with an enable switch; field
// notifications are optional.
type MQTTConfig struct {
	Enabled           bool        `json:"enabled"`
	AckTimeoutSeconds int         `json:"ack_timeout_seconds"`
	Client            mqtt.Config `json:"client"`
}

// SweepConfig controls the periodic conflict detection sweep.
type SweepConfig struct {
	Enabled         bool `json:"enabled"`
	IntervalSeconds int  `json:"interval_seconds"`
}

// SetDefaults applies sane defaults.
func (c *SweepConfig) SetDefaults() {
	if c.IntervalSeconds <= 0 {
		c.IntervalSeconds = 60
	}
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Enabled bool   `json:"enabled"`
	Address string `json:"address"`
}

// SetDefaults applies sane defaults.
func (c *APIConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
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
	if err := k.Load(env.Provider("SKY_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "sky_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Store.SetDefaults()
	cfg.Audit.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Sweep.SetDefaults()
	cfg.API.SetDefaults()
	if err := cfg.Audit.Validate(); err != nil {
		return nil, err
	}
	if cfg.MQTT.Enabled && cfg.MQTT.Client.Broker == "" {
		return nil, fmt.Errorf("mqtt enabled but no broker configured")
	}
	return &cfg, nil
}
