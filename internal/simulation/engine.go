package simulation

import (
	"fmt"
	"math"

	"nzeb-model/internal/analysis"
	"nzeb-model/internal/model"
	"nzeb-model/internal/strategy"
)

type Engine struct {
	strategy strategy.Strategy
}

// New returns an engine using the surplus dispatch strategy.
func New() *Engine { return &Engine{strategy: &strategy.SurplusStrategy{}} }

// NewWithStrategy returns an engine using s for the battery decision.
func NewWithStrategy(s strategy.Strategy) *Engine { return &Engine{strategy: s} }

// Run computes one snapshot. The battery is built from the inputs and lives only
// for this call; any error aborts the run with no partial result.
func (e *Engine) Run(in model.Inputs) (*Result, error) {
	if e.strategy == nil {
		return nil, fmt.Errorf("strategy is nil")
	}
	if err := validate(in); err != nil {
		return nil, err
	}

	batt, err := model.NewBattery(in.Battery, in.InitialSOC)
	if err != nil {
		return nil, inputError("battery_inputs", err)
	}

	// Generation
	gen := Generation{
		PVKWh:     model.SolarEnergy(in.Solar),
		WindKWh:   model.WindEnergy(in.Wind),
		BiogasKWh: model.BiogasEnergy(in.Biogas),
	}
	gen.TotalKWh = model.TotalGenerated(gen.PVKWh, gen.WindKWh, gen.BiogasKWh)

	// Battery: one charge or one discharge, chosen from generation vs load.
	out := strategy.Apply(e.strategy, strategy.Context{
		GeneratedKWh: gen.TotalKWh,
		LoadKWh:      in.LoadKWh,
		Battery:      batt,
	})

	// Economics use the gross generation, extrapolated flat over a year.
	annualKWh := model.AnnualEnergy(gen.TotalKWh)
	lcc, err := model.LifeCycleCost(in.Financial)
	if err != nil {
		return nil, fmt.Errorf("life-cycle cost: %w", err)
	}
	lcoe, err := model.LevelizedCost(lcc, annualKWh, in.Financial.DiscountRate, in.Financial.Years)
	if err != nil {
		return nil, fmt.Errorf("levelized cost: %w", err)
	}

	res := &Result{
		Generation: gen,
		LoadKWh:    in.LoadKWh,
		GridKWh:    in.GridKWh,
		BalanceKWh: model.EnergyBalance(gen.TotalKWh, in.GridKWh, in.LoadKWh),
		Battery: BatteryReport{
			Strategy:        e.strategy.Name(),
			Action:          out.Flow.Action,
			RequestedKWh:    out.Requested.EnergyKWh,
			EnergyKWh:       out.Flow.EnergyKWh,
			SOCStart:        out.Flow.SOCStart,
			SOCEnd:          batt.State.SOC,
			SOCPercent:      batt.SOCPercent(),
			NetGeneratedKWh: out.NetGeneratedKWh,
		},
		Financial: Financial{
			AnnualEnergyKWh: annualKWh,
			LCC:             lcc,
			LCOE:            lcoe,
		},
		// All generated energy is assumed to displace the reference source.
		CO2ReductionKg: model.CO2Reduction(gen.TotalKWh, in.EmissionFactor),
		Scenario:       in.Scenario,
		Regression:     analysis.FitPVRegression(in.Solar.AreaM2, in.Solar.Efficiency),
	}

	if in.Scenario == model.ScenarioGridOutage {
		o := model.GridOutage(gen.TotalKWh, in.LoadKWh)
		res.Outage = &OutageReport{ExcessKWh: o.ExcessKWh, UptimePercent: o.UptimePercent}
	}

	if err := checkFinite(res); err != nil {
		return nil, err
	}
	return res, nil
}

// checkFinite rejects results that cannot be reported. LCOE may be +Inf
// (nothing generated) but never NaN.
func checkFinite(res *Result) error {
	figures := []figure{
		{"solar_pv_kWh", res.Generation.PVKWh},
		{"wind_turbine_kWh", res.Generation.WindKWh},
		{"biogas_kWh", res.Generation.BiogasKWh},
		{"total_generated_kWh", res.Generation.TotalKWh},
		{"excess_or_curtailed_energy_kWh", res.BalanceKWh},
		{"energy_flow_kWh", res.Battery.EnergyKWh},
		{"net_generated_kWh", res.Battery.NetGeneratedKWh},
		{"annual_energy_kWh", res.Financial.AnnualEnergyKWh},
		{"life_cycle_cost_LCC", res.Financial.LCC},
		{"co2_emission_reduction_kg", res.CO2ReductionKg},
		{"regression slope", res.Regression.Slope},
		{"regression intercept", res.Regression.Intercept},
		{"regression r_squared", res.Regression.RSquared},
	}
	if res.Outage != nil {
		figures = append(figures,
			figure{"excess_energy_during_outage_kWh", res.Outage.ExcessKWh},
			figure{"system_uptime_percentage", res.Outage.UptimePercent},
		)
	}
	for _, f := range figures {
		if isNonFinite(f.value) {
			return fmt.Errorf("%s: %w", f.name, ErrNonFinite)
		}
	}
	if math.IsNaN(res.Financial.LCOE) {
		return fmt.Errorf("levelized_cost_of_energy_LCOE: %w", ErrNonFinite)
	}
	for i := range res.Regression.PVOutput {
		if isNonFinite(res.Regression.PVOutput[i]) || isNonFinite(res.Regression.Predicted[i]) {
			return fmt.Errorf("regression samples: %w", ErrNonFinite)
		}
	}
	return nil
}

type figure struct {
	name  string
	value float64
}

func isNonFinite(x float64) bool {
	return math.IsNaN(x) || math.IsInf(x, 0)
}

func validate(in model.Inputs) error {
	if err := in.Wind.Validate(); err != nil {
		return inputError("wind_inputs", err)
	}
	if in.Financial.Years < 1 {
		return inputError("lcca_inputs.n", model.ErrInvalidHorizon)
	}
	switch in.Scenario {
	case model.ScenarioNone, model.ScenarioGridOutage:
	default:
		return inputError("scenario", fmt.Errorf("unsupported scenario %q", in.Scenario))
	}
	return nil
}
