package simulation

import (
	"nzeb-model/internal/analysis"
	"nzeb-model/internal/model"
)

// Generation is the per-source output for the interval.
type Generation struct {
	PVKWh     float64
	WindKWh   float64
	BiogasKWh float64
	TotalKWh  float64
}

// BatteryReport captures the one battery call made for the request.
type BatteryReport struct {
	Strategy string
	Action   model.Action

	RequestedKWh float64
	EnergyKWh    float64

	SOCStart   float64
	SOCEnd     float64
	SOCPercent float64

	// NetGeneratedKWh is generation after the battery flow.
	NetGeneratedKWh float64
}

// Financial holds the life-cycle economics.
type Financial struct {
	AnnualEnergyKWh float64
	LCC             float64
	// LCOE is +Inf when the system generates nothing.
	LCOE float64
}

// OutageReport is present only when the grid outage scenario is requested.
type OutageReport struct {
	ExcessKWh     float64
	UptimePercent float64
}

// Result is the full snapshot produced by one run.
// This is the primary artifact for "what happened" in a simulation.
type Result struct {
	Generation Generation

	LoadKWh    float64
	GridKWh    float64
	BalanceKWh float64

	Battery BatteryReport

	Financial Financial

	CO2ReductionKg float64

	Scenario model.Scenario
	Outage   *OutageReport

	Regression analysis.PVRegression
}
