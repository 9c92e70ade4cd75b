package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJSON_Example(t *testing.T) {
	var req struct {
		SolarInputs struct {
			AreaPV float64 `json:"area_pv"`
		} `json:"solar_inputs"`
		Scenario string `json:"scenario"`
	}
	require.NoError(t, LoadJSON(filepath.Join("..", "..", "examples", "request.json"), &req))

	assert.Equal(t, 10.0, req.SolarInputs.AreaPV)
	assert.Equal(t, "grid_outage", req.Scenario)
}

func TestLoadJSON_Errors(t *testing.T) {
	dir := t.TempDir()
	var v map[string]any

	err := LoadJSON(filepath.Join(dir, "missing.json"), &v)
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"solar_inputs": `), 0o644))
	err = LoadJSON(bad, &v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.json")
}
