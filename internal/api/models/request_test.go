package models

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRequest_MissingFieldsUseJSONNames(t *testing.T) {
	raw := strings.Replace(sampleJSON, `"area_pv": 10, `, "", 1)

	_, err := DecodeRequest([]byte(raw))
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 1)
	assert.Equal(t, "area_pv", verrs[0].Field())
	assert.Equal(t, "SimulateRequest.solar_inputs.area_pv", verrs[0].Namespace())
	assert.Equal(t, "required", verrs[0].Tag())
}

func TestDecodeRequest_ZeroIsPresent(t *testing.T) {
	raw := strings.Replace(sampleJSON, `"grid_energy": 5`, `"grid_energy": 0`, 1)

	req, err := DecodeRequest([]byte(raw))
	require.NoError(t, err)
	require.NotNil(t, req.GridEnergy)
	assert.Equal(t, 0.0, *req.GridEnergy)
}

func TestDecodeRequest_PresetRelaxesBatteryFields(t *testing.T) {
	raw := strings.Replace(sampleJSON, `"battery_inputs": {"capacity": 10, "eta_c": 0.9, "eta_d": 0.9}`, `"battery_inputs": {"preset": "home"}`, 1)

	req, err := DecodeRequest([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "home", req.BatteryInputs.Preset)

	raw = strings.Replace(sampleJSON, `"battery_inputs": {"capacity": 10, "eta_c": 0.9, "eta_d": 0.9}`, `"battery_inputs": {}`, 1)
	_, err = DecodeRequest([]byte(raw))
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 3)
}

func TestDecodeRequest_Malformed(t *testing.T) {
	_, err := DecodeRequest([]byte(`[1, 2`))
	require.Error(t, err)

	var verrs validator.ValidationErrors
	assert.False(t, errors.As(err, &verrs))
}

func TestValidateRequest_ExampleFile(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", "..", "examples", "request.json"))
	require.NoError(t, err)

	var req SimulateRequest
	require.NoError(t, json.Unmarshal(raw, &req))
	require.NoError(t, ValidateRequest(&req))
	assert.Equal(t, "grid_outage", req.Scenario)

	req.CO2Inputs = nil
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(ValidateRequest(&req), &verrs))
}
