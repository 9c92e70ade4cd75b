package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnergyBalance_Additive(t *testing.T) {
	tests := []struct {
		gen, grid, load float64
	}{
		{10, 5, 12},
		{0, 0, 0},
		{3, 0, 8},
		{-2, 4, -1},
		{1e6, -3, 2.5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.gen+tt.grid-tt.load, EnergyBalance(tt.gen, tt.grid, tt.load))
	}
}

func TestGridOutage(t *testing.T) {
	t.Run("partial coverage", func(t *testing.T) {
		res := GridOutage(50, 100)
		assert.InDelta(t, -50, res.ExcessKWh, 1e-12)
		assert.InDelta(t, 50, res.UptimePercent, 1e-12)
	})

	t.Run("uptime capped at 100", func(t *testing.T) {
		res := GridOutage(150, 100)
		assert.InDelta(t, 50, res.ExcessKWh, 1e-12)
		assert.Equal(t, 100.0, res.UptimePercent)
	})

	t.Run("no load", func(t *testing.T) {
		res := GridOutage(7, 0)
		assert.Equal(t, 7.0, res.ExcessKWh)
		assert.Equal(t, 100.0, res.UptimePercent)
	})
}

func TestCO2Reduction(t *testing.T) {
	assert.Equal(t, 50.0, CO2Reduction(100, 0.5))
	assert.Equal(t, 0.0, CO2Reduction(0, 0.7))
}

func TestActionFromBalance(t *testing.T) {
	assert.Equal(t, ActionCharging, ActionFromBalance(10, 5))
	assert.Equal(t, ActionDischarging, ActionFromBalance(5, 10))
	assert.Equal(t, ActionIdle, ActionFromBalance(5, 5))
}
