package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nzeb-model/internal/model"
	"nzeb-model/internal/strategy"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	CORS     CORSConfig     `yaml:"cors"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Storage  StorageConfig  `yaml:"storage"`
	// BatteryDir holds battery preset files (examples/batteries/*.yaml).
	BatteryDir string `yaml:"battery_dir"`
}

type ServerConfig struct {
	Port      string `yaml:"port"`
	Env       string `yaml:"env"`
	StaticDir string `yaml:"static_dir"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type DefaultsConfig struct {
	InitialSOC float64 `yaml:"initial_soc"`
	Strategy   string  `yaml:"strategy"`
}

type StorageConfig struct {
	// DatabasePath is a sqlite file path; ":memory:" keeps run history in memory,
	// an empty path disables run history.
	DatabasePath string `yaml:"database_path"`
}

// BatteryConfig is the YAML shape of a battery preset.
type BatteryConfig struct {
	Name                string   `yaml:"name"`
	CapacityKWh         float64  `yaml:"capacity_kwh"`
	ChargeEfficiency    float64  `yaml:"eta_c"`
	DischargeEfficiency float64  `yaml:"eta_d"`
	InitialSOC          *float64 `yaml:"initial_soc"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:      "8080",
			Env:       "development",
			StaticDir: "./web/dist",
		},
		CORS: CORSConfig{AllowedOrigins: []string{"*"}},
		Defaults: DefaultsConfig{
			InitialSOC: model.DefaultInitialSOC,
			Strategy:   "surplus",
		},
		Storage:    StorageConfig{DatabasePath: ":memory:"},
		BatteryDir: "examples/batteries",
	}
}

// Load reads path (optional) over the defaults, applies environment overrides
// and validates the result.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyEnv(os.Getenv)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads the file over the defaults, but does not validate it or
// apply the environment.
func LoadUnchecked(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	// Relative battery dirs are resolved against the config file directory when
	// that location exists, else left relative to the working directory.
	if c.BatteryDir != "" && !filepath.IsAbs(c.BatteryDir) {
		cand := filepath.Join(filepath.Dir(path), c.BatteryDir)
		if _, err := os.Stat(cand); err == nil {
			c.BatteryDir = cand
		}
	}
	return c, nil
}

// ApplyEnv overlays environment variables onto the config.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("API_PORT"); v != "" {
		c.Server.Port = v
	}
	if v := getenv("API_ENV"); v != "" {
		c.Server.Env = v
	}
	if v := getenv("STATIC_DIR"); v != "" {
		c.Server.StaticDir = v
	}
	if v := getenv("BATTERY_DIR"); v != "" {
		c.BatteryDir = v
	}
	if v, ok := lookup(getenv, "DATABASE_PATH"); ok {
		c.Storage.DatabasePath = v
	}
	if v := getenv("CORS_ORIGINS"); v != "" {
		c.CORS.AllowedOrigins = splitList(v)
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if c.Defaults.InitialSOC < 0 || c.Defaults.InitialSOC > 1 {
		return errors.New("defaults.initial_soc must be within [0, 1]")
	}
	if _, ok := strategy.ByName(c.Defaults.Strategy); !ok {
		return fmt.Errorf("defaults.strategy: unsupported strategy %q", c.Defaults.Strategy)
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// ToModelParams converts a preset to battery parameters.
func (b BatteryConfig) ToModelParams() model.BatteryParams {
	return model.BatteryParams{
		CapacityKWh:         b.CapacityKWh,
		ChargeEfficiency:    b.ChargeEfficiency,
		DischargeEfficiency: b.DischargeEfficiency,
	}
}

type batteryFileWrapper struct {
	Battery BatteryConfig `yaml:"battery"`
}

// LoadBatteryFile reads a battery preset file with a top-level "battery" key.
func LoadBatteryFile(path string) (BatteryConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return BatteryConfig{}, err
	}
	var w batteryFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return BatteryConfig{}, err
	}
	return w.Battery, nil
}

// BatteryOverride carries the battery fields a caller set explicitly.
// A nil field leaves the base value alone; a non-nil zero replaces it.
type BatteryOverride struct {
	Name                string
	CapacityKWh         *float64
	ChargeEfficiency    *float64
	DischargeEfficiency *float64
	InitialSOC          *float64
}

// MergeBattery overlays the fields set in override onto base.
// This is used when loading a battery preset and then applying overrides from the request.
func MergeBattery(base BatteryConfig, override BatteryOverride) BatteryConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.CapacityKWh != nil {
		out.CapacityKWh = *override.CapacityKWh
	}
	if override.ChargeEfficiency != nil {
		out.ChargeEfficiency = *override.ChargeEfficiency
	}
	if override.DischargeEfficiency != nil {
		out.DischargeEfficiency = *override.DischargeEfficiency
	}
	if override.InitialSOC != nil {
		soc := *override.InitialSOC
		out.InitialSOC = &soc
	}
	return out
}

// lookup treats "-" as an explicit empty value.
func lookup(getenv func(string) string, key string) (string, bool) {
	v := getenv(key)
	if v == "" {
		return "", false
	}
	if v == "-" {
		return "", true
	}
	return v, true
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
