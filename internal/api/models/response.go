package models

import (
	"encoding/json"
	"time"
)

// SimulateResponse represents the response from one model run
type SimulateResponse struct {
	ID                      string                   `json:"id,omitempty"`
	EnergyGeneration        EnergyGeneration         `json:"energy_generation"`
	EnergyBalance           EnergyBalance            `json:"energy_balance"`
	BatteryStatus           BatteryStatus            `json:"battery_status"`
	FinancialAnalysis       FinancialAnalysis        `json:"financial_analysis"`
	EnvironmentalImpact     EnvironmentalImpact      `json:"environmental_impact"`
	ScenarioModelingResults *ScenarioModelingResults `json:"scenario_modeling_results,omitempty"`
	RegressionAnalysis      RegressionAnalysis       `json:"regression_analysis"`
}

type EnergyGeneration struct {
	SolarPVKWh        float64 `json:"solar_pv_kWh"`
	WindTurbineKWh    float64 `json:"wind_turbine_kWh"`
	BiogasKWh         float64 `json:"biogas_kWh"`
	TotalGeneratedKWh float64 `json:"total_generated_kWh"`
}

type EnergyBalance struct {
	LoadDemandKWh float64 `json:"load_demand_kWh"`
	GridEnergyKWh float64 `json:"grid_energy_kWh"`
	// Positive is surplus, negative is unmet load.
	ExcessOrCurtailedKWh float64 `json:"excess_or_curtailed_energy_kWh"`
}

type BatteryStatus struct {
	StateOfChargePercent float64 `json:"state_of_charge_percent"`
	Action               string  `json:"action"` // "CHARGING", "DISCHARGING", "IDLE"
	EnergyFlowKWh        float64 `json:"energy_flow_kWh"`
	Strategy             string  `json:"strategy,omitempty"`
}

type FinancialAnalysis struct {
	LifeCycleCost float64 `json:"life_cycle_cost_LCC"`
	// LCOE is null when no energy is generated; JSON has no infinity.
	LevelizedCost   *float64 `json:"levelized_cost_of_energy_LCOE"`
	LCOEInfinite    bool     `json:"lcoe_infinite"`
	AnnualEnergyKWh float64  `json:"annual_energy_kWh"`
}

type EnvironmentalImpact struct {
	CO2EmissionReductionKg float64 `json:"co2_emission_reduction_kg"`
}

// ScenarioModelingResults holds one entry per requested what-if scenario.
type ScenarioModelingResults struct {
	GridOutage *GridOutageResult `json:"grid_outage,omitempty"`
}

type GridOutageResult struct {
	Message                  string  `json:"message"`
	ExcessEnergyDuringOutage float64 `json:"excess_energy_during_outage_kWh"`
	SystemUptimePercentage   float64 `json:"system_uptime_percentage"`
}

type RegressionAnalysis struct {
	IrradianceData    []float64 `json:"irradiance_data"`
	PVOutputData      []float64 `json:"pv_output_data"`
	PredictedPVOutput []float64 `json:"predicted_pv_output"`
	Slope             float64   `json:"slope"`
	Intercept         float64   `json:"intercept"`
	RSquared          float64   `json:"r_squared"`
}

// BatteryInfo represents information about a battery preset
type BatteryInfo struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	File  string       `json:"file"`
	Specs BatterySpecs `json:"specs"`
}

// BatterySpecs contains battery specifications
type BatterySpecs struct {
	CapacityKWh         float64  `json:"capacity_kwh"`
	ChargeEfficiency    float64  `json:"eta_c"`
	DischargeEfficiency float64  `json:"eta_d"`
	InitialSOC          *float64 `json:"initial_soc,omitempty"`
}

// ScenarioInfo describes a what-if scenario accepted in the "scenario" field
type ScenarioInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RunInfo is a stored run as returned by GET /api/v1/runs/:id
type RunInfo struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Scenario  string          `json:"scenario,omitempty"`
	Request   json.RawMessage `json:"request"`
	Response  json.RawMessage `json:"response"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewErrorResponse builds the error envelope.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}
