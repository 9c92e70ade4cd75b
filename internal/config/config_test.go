package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadUnchecked_DefaultsWithoutFile(t *testing.T) {
	c, err := LoadUnchecked("")
	require.NoError(t, err)

	assert.Equal(t, "8080", c.Server.Port)
	assert.Equal(t, 0.5, c.Defaults.InitialSOC)
	assert.Equal(t, "surplus", c.Defaults.Strategy)
	assert.Equal(t, []string{"*"}, c.CORS.AllowedOrigins)
	assert.Equal(t, ":memory:", c.Storage.DatabasePath)
	assert.NoError(t, c.Validate())
}

func TestLoadUnchecked_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "presets/a.yaml", "battery:\n  capacity_kwh: 1\n")
	path := writeFile(t, dir, "config.yaml", `
server:
  port: "9090"
defaults:
  initial_soc: 0.2
battery_dir: presets
`)

	c, err := LoadUnchecked(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", c.Server.Port)
	assert.Equal(t, 0.2, c.Defaults.InitialSOC)
	// Untouched sections keep their defaults.
	assert.Equal(t, "surplus", c.Defaults.Strategy)
	assert.Equal(t, filepath.Join(dir, "presets"), c.BatteryDir)
}

func TestLoadUnchecked_Errors(t *testing.T) {
	_, err := LoadUnchecked(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := writeFile(t, t.TempDir(), "bad.yaml", "server: [unterminated")
	_, err = LoadUnchecked(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"API_PORT":      "7000",
		"API_ENV":       "production",
		"BATTERY_DIR":   "/srv/batteries",
		"DATABASE_PATH": "-",
		"CORS_ORIGINS":  "https://a.example, https://b.example",
	}
	c := Default()
	c.ApplyEnv(func(k string) string { return env[k] })

	assert.Equal(t, "7000", c.Server.Port)
	assert.True(t, c.IsProduction())
	assert.Equal(t, "/srv/batteries", c.BatteryDir)
	assert.Equal(t, "", c.Storage.DatabasePath)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.CORS.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	c := Default()
	c.Defaults.InitialSOC = 1.2
	assert.Error(t, c.Validate())

	c = Default()
	c.Defaults.Strategy = "oracle"
	assert.Error(t, c.Validate())

	c = Default()
	c.Server.Port = ""
	assert.Error(t, c.Validate())

	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())
}

func TestLoadBatteryFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "home.yaml", `
battery:
  name: Home
  capacity_kwh: 13.5
  eta_c: 0.95
  eta_d: 0.9
  initial_soc: 0
`)
	b, err := LoadBatteryFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Home", b.Name)
	assert.Equal(t, 13.5, b.CapacityKWh)
	require.NotNil(t, b.InitialSOC)
	assert.Equal(t, 0.0, *b.InitialSOC)

	p := b.ToModelParams()
	assert.Equal(t, 13.5, p.CapacityKWh)
	assert.Equal(t, 0.95, p.ChargeEfficiency)
	assert.Equal(t, 0.9, p.DischargeEfficiency)
}

func TestMergeBattery(t *testing.T) {
	half := 0.5
	zero := 0.0
	base := BatteryConfig{Name: "base", CapacityKWh: 10, ChargeEfficiency: 0.9, DischargeEfficiency: 0.9, InitialSOC: &half}

	twenty := 20.0
	out := MergeBattery(base, BatteryOverride{CapacityKWh: &twenty, InitialSOC: &zero})
	assert.Equal(t, "base", out.Name)
	assert.Equal(t, 20.0, out.CapacityKWh)
	assert.Equal(t, 0.9, out.ChargeEfficiency)
	require.NotNil(t, out.InitialSOC)
	assert.Equal(t, 0.0, *out.InitialSOC)

	out = MergeBattery(base, BatteryOverride{})
	assert.Equal(t, base.CapacityKWh, out.CapacityKWh)
	assert.Equal(t, 0.5, *out.InitialSOC)

	// An explicit zero replaces the base value; validation rejects it later.
	out = MergeBattery(base, BatteryOverride{CapacityKWh: &zero, DischargeEfficiency: &zero})
	assert.Equal(t, 0.0, out.CapacityKWh)
	assert.Equal(t, 0.9, out.ChargeEfficiency)
	assert.Equal(t, 0.0, out.DischargeEfficiency)
}
