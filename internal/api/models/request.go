package models

import (
	"encoding/json"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SimulateRequest is the body of POST /api/nzeb_model. Every section is a pointer
// so a missing section can be told apart from a zero-valued one.
type SimulateRequest struct {
	SolarInputs   *SolarInputs   `json:"solar_inputs" binding:"required"`
	WindInputs    *WindInputs    `json:"wind_inputs" binding:"required"`
	BiogasInputs  *BiogasInputs  `json:"biogas_inputs" binding:"required"`
	LoadDemand    *float64       `json:"load_demand" binding:"required"`
	GridEnergy    *float64       `json:"grid_energy" binding:"required"`
	BatteryInputs *BatteryInputs `json:"battery_inputs" binding:"required"`
	LCCAInputs    *LCCAInputs    `json:"lcca_inputs" binding:"required"`
	CO2Inputs     *CO2Inputs     `json:"co2_inputs" binding:"required"`
	Scenario      string         `json:"scenario,omitempty"`
}

type SolarInputs struct {
	AreaPV       *float64 `json:"area_pv" binding:"required"`       // m²
	EfficiencyPV *float64 `json:"efficiency_pv" binding:"required"` // 0..1
	Irradiance   *float64 `json:"irradiance" binding:"required"`    // kWh/m² for the interval
}

type WindInputs struct {
	AirDensity       *float64 `json:"air_density" binding:"required"` // kg/m³
	SweptArea        *float64 `json:"swept_area" binding:"required"`  // m²
	PowerCoefficient *float64 `json:"power_coefficient" binding:"required"`
	WindSpeed        *float64 `json:"wind_speed" binding:"required"` // m/s
	VCutIn           *float64 `json:"v_cut_in" binding:"required"`
	VRated           *float64 `json:"v_rated" binding:"required"`
	VCutOut          *float64 `json:"v_cut_out" binding:"required"`
	PRated           *float64 `json:"p_rated" binding:"required"` // kW
	DeltaT           *float64 `json:"delta_t" binding:"required"` // hours
}

type BiogasInputs struct {
	MethaneYield  *float64 `json:"methane_yield" binding:"required"`  // m³ CH4 per kg
	MassFeedstock *float64 `json:"mass_feedstock" binding:"required"` // kg
	EfficiencyBG  *float64 `json:"efficiency_bg" binding:"required"`
	HHVCH4        *float64 `json:"hhv_ch4" binding:"required"` // kWh/m³
}

// BatteryInputs may name a preset; explicit fields override the preset's values.
type BatteryInputs struct {
	Preset     string   `json:"preset,omitempty"`
	Capacity   *float64 `json:"capacity" binding:"required_without=Preset"` // kWh
	InitialSOC *float64 `json:"initial_soc,omitempty"`                     // 0..1
	EtaC       *float64 `json:"eta_c" binding:"required_without=Preset"`
	EtaD       *float64 `json:"eta_d" binding:"required_without=Preset"`
}

type LCCAInputs struct {
	CInit *float64 `json:"c_init" binding:"required"`
	COM   *float64 `json:"c_om" binding:"required"` // per year
	CRep  *float64 `json:"c_rep" binding:"required"`
	S     *float64 `json:"s" binding:"required"` // salvage value
	R     *float64 `json:"r" binding:"required"` // discount rate
	N     *int     `json:"n" binding:"required"` // years
}

type CO2Inputs struct {
	EmissionFactor *float64 `json:"emission_factor" binding:"required"` // kg CO2/kWh
}

var registerOnce sync.Once

// RegisterValidation makes validation errors report JSON key names instead of Go
// field names. Safe to call more than once.
func RegisterValidation() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// DecodeRequest parses and validates a request body outside of gin's binding
// (websocket messages).
func DecodeRequest(raw []byte) (*SimulateRequest, error) {
	RegisterValidation()

	var req SimulateRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, err
	}
	if err := ValidateRequest(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// ValidateRequest applies the binding rules to a request decoded elsewhere.
func ValidateRequest(req *SimulateRequest) error {
	RegisterValidation()
	return binding.Validator.ValidateStruct(req)
}
