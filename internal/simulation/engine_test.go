package simulation

import (
	"bytes"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"

	"nzeb-model/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleInputs generates 1.6 kWh PV + 4.2336 kWh wind + 10.5 kWh biogas = 16.3336 kWh.
func sampleInputs() model.Inputs {
	return model.Inputs{
		Solar: model.SolarParams{AreaM2: 10, Efficiency: 0.2, IrradianceKWM2: 0.8},
		Wind: model.WindParams{
			AirDensity: 1.225, SweptAreaM2: 10, PowerCoefficient: 0.4,
			SpeedMS: 12, CutInMS: 3, RatedMS: 12, CutOutMS: 25,
			PRatedKW: 5, DeltaTHours: 1,
		},
		Biogas:     model.BiogasParams{MethaneYield: 0.3, MassFeedstockKg: 240, Efficiency: 0.35, HHVKWhM3: 10},
		LoadKWh:    20,
		GridKWh:    5,
		Battery:    model.BatteryParams{CapacityKWh: 10, ChargeEfficiency: 0.9, DischargeEfficiency: 0.9},
		InitialSOC: 0.5,
		Financial: model.FinancialParams{
			InitialCost: 1000, AnnualOMCost: 10, ReplacementCost: 100, SalvageValue: 20,
			DiscountRate: 0.05, Years: 1,
		},
		EmissionFactor: 0.5,
	}
}

const sampleTotal = 16.3336

func TestEngine_Run(t *testing.T) {
	res, err := New().Run(sampleInputs())
	require.NoError(t, err)

	assert.InDelta(t, 1.6, res.Generation.PVKWh, 1e-9)
	assert.InDelta(t, 4.2336, res.Generation.WindKWh, 1e-9)
	assert.InDelta(t, 10.5, res.Generation.BiogasKWh, 1e-9)
	assert.InDelta(t, sampleTotal, res.Generation.TotalKWh, 1e-9)

	// Balance uses the gross generation plus grid.
	assert.InDelta(t, sampleTotal+5-20, res.BalanceKWh, 1e-9)

	// Deficit of 3.6664 kWh is covered from the battery.
	deficit := 20 - sampleTotal
	assert.Equal(t, "surplus", res.Battery.Strategy)
	assert.Equal(t, model.ActionDischarging, res.Battery.Action)
	assert.InDelta(t, -deficit, res.Battery.RequestedKWh, 1e-9)
	assert.InDelta(t, deficit, res.Battery.EnergyKWh, 1e-9)
	assert.InDelta(t, 0.5, res.Battery.SOCStart, 1e-12)
	assert.InDelta(t, 0.5-deficit/0.9/10, res.Battery.SOCEnd, 1e-9)
	assert.InDelta(t, res.Battery.SOCEnd*100, res.Battery.SOCPercent, 1e-9)
	assert.InDelta(t, 20, res.Battery.NetGeneratedKWh, 1e-9)

	assert.InDelta(t, sampleTotal*8760, res.Financial.AnnualEnergyKWh, 1e-6)
	assert.InDelta(t, 1000+90/1.05, res.Financial.LCC, 1e-9)
	assert.InDelta(t, (1000+90/1.05)/(sampleTotal*8760/1.05), res.Financial.LCOE, 1e-12)

	assert.InDelta(t, sampleTotal*0.5, res.CO2ReductionKg, 1e-9)

	assert.Nil(t, res.Outage)
	assert.InDelta(t, 2.0, res.Regression.Slope, 1e-9)
}

func TestEngine_ChargesSurplusToFull(t *testing.T) {
	in := sampleInputs()
	in.LoadKWh = 10

	res, err := New().Run(in)
	require.NoError(t, err)

	assert.Equal(t, model.ActionCharging, res.Battery.Action)
	assert.Equal(t, 1.0, res.Battery.SOCEnd)
	assert.InDelta(t, 100, res.Battery.SOCPercent, 1e-12)
	assert.InDelta(t, 5/0.9, res.Battery.EnergyKWh, 1e-9)
	assert.InDelta(t, sampleTotal-5/0.9, res.Battery.NetGeneratedKWh, 1e-9)
}

func TestEngine_GridOutageScenario(t *testing.T) {
	in := sampleInputs()
	in.Scenario = model.ScenarioGridOutage

	res, err := New().Run(in)
	require.NoError(t, err)
	require.NotNil(t, res.Outage)

	assert.InDelta(t, sampleTotal-20, res.Outage.ExcessKWh, 1e-9)
	assert.InDelta(t, sampleTotal/20*100, res.Outage.UptimePercent, 1e-9)
	// The normal balance still includes the grid.
	assert.InDelta(t, sampleTotal+5-20, res.BalanceKWh, 1e-9)
}

func TestEngine_ZeroGenerationGivesInfiniteLCOE(t *testing.T) {
	in := sampleInputs()
	in.Solar.IrradianceKWM2 = 0
	in.Wind.SpeedMS = 0
	in.Biogas.MassFeedstockKg = 0

	res, err := New().Run(in)
	require.NoError(t, err)
	assert.True(t, math.IsInf(res.Financial.LCOE, 1))
}

func TestEngine_InputErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *model.Inputs)
	}{
		{"wind thresholds out of order", func(in *model.Inputs) { in.Wind.RatedMS = 30 }},
		{"zero battery capacity", func(in *model.Inputs) { in.Battery.CapacityKWh = 0 }},
		{"soc above one", func(in *model.Inputs) { in.InitialSOC = 1.5 }},
		{"zero horizon", func(in *model.Inputs) { in.Financial.Years = 0 }},
		{"unknown scenario", func(in *model.Inputs) { in.Scenario = "volcano" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sampleInputs()
			tt.mutate(&in)

			res, err := New().Run(in)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, IsInputError(err), "expected input error, got %v", err)
		})
	}
}

func TestEngine_DegenerateDiscountRateIsComputationError(t *testing.T) {
	in := sampleInputs()
	in.Financial.DiscountRate = -1

	res, err := New().Run(in)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.False(t, IsInputError(err))
	assert.ErrorIs(t, err, model.ErrDegenerateDiscountRate)
}

func TestEngine_DiscountFactorUnderflowIsComputationError(t *testing.T) {
	in := sampleInputs()
	in.Financial.DiscountRate = -0.9
	in.Financial.Years = 400

	res, err := New().Run(in)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.False(t, IsInputError(err))
	assert.ErrorIs(t, err, model.ErrDegenerateDiscountRate)
}

func TestEngine_OverflowIsComputationError(t *testing.T) {
	in := sampleInputs()
	in.Solar.AreaM2 = 1e308
	in.Solar.Efficiency = 10

	res, err := New().Run(in)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.False(t, IsInputError(err))
	assert.ErrorIs(t, err, ErrNonFinite)
	assert.Contains(t, err.Error(), "solar_pv_kWh")
}

func TestEngine_NilStrategy(t *testing.T) {
	_, err := NewWithStrategy(nil).Run(sampleInputs())
	assert.Error(t, err)
}

func TestEngine_RunsAreIsolated(t *testing.T) {
	e := New()
	in := sampleInputs()

	first, err := e.Run(in)
	require.NoError(t, err)
	second, err := e.Run(in)
	require.NoError(t, err)

	assert.Equal(t, first.Battery, second.Battery)
}

func TestEncodeReportCSV(t *testing.T) {
	in := sampleInputs()
	in.Scenario = model.ScenarioGridOutage
	res, err := New().Run(in)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeReportCSV(&buf, res))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)
	assert.Equal(t, []string{"metric", "value"}, records[0])

	byMetric := map[string]string{}
	for _, r := range records[1:] {
		byMetric[r[0]] = r[1]
	}
	assert.Equal(t, "1.600000", byMetric["solar_pv_kwh"])
	assert.Equal(t, "DISCHARGING", byMetric["battery_action"])
	assert.Contains(t, byMetric, "outage_uptime_percent")
}

func TestWriteReportCSV_InfiniteLCOE(t *testing.T) {
	in := sampleInputs()
	in.Solar.IrradianceKWM2 = 0
	in.Wind.SpeedMS = 0
	in.Biogas.MassFeedstockKg = 0
	res, err := New().Run(in)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, WriteReportCSV(path, res))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "lcoe,inf")
}

func TestWriteReportCSV_ReportsWriteFailure(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	res, err := New().Run(sampleInputs())
	require.NoError(t, err)

	assert.Error(t, WriteReportCSV("/dev/full", res))
}
