package model

// Scenario names an optional what-if variant computed alongside the base case.
type Scenario string

const (
	ScenarioNone       Scenario = ""
	ScenarioGridOutage Scenario = "grid_outage"
)

// Inputs represents a canonical "inputs to the system" object: one snapshot of
// the microgrid for a single interval, already converted from the wire format.
type Inputs struct {
	Solar  SolarParams
	Wind   WindParams
	Biogas BiogasParams

	LoadKWh float64
	GridKWh float64

	Battery    BatteryParams
	InitialSOC float64

	Financial      FinancialParams
	EmissionFactor float64 // kg CO2/kWh of the displaced source

	Scenario Scenario
}
