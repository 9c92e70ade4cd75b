package model

import "fmt"

// SolarParams describes the PV array for one interval.
// Units:
// - AreaM2: m²
// - Efficiency: module efficiency as a fraction
// - IrradianceKWM2: kW/m²
type SolarParams struct {
	AreaM2         float64
	Efficiency     float64
	IrradianceKWM2 float64
}

// WindParams describes the turbine power curve and the wind for one interval.
// Speeds are m/s, PRatedKW is kW and DeltaTHours is the interval length in hours.
type WindParams struct {
	AirDensity       float64 // kg/m³
	SweptAreaM2      float64
	PowerCoefficient float64
	SpeedMS          float64
	CutInMS          float64
	RatedMS          float64
	CutOutMS         float64
	PRatedKW         float64
	DeltaTHours      float64
}

// Validate checks the power curve thresholds are ordered cut-in <= rated <= cut-out.
func (w WindParams) Validate() error {
	if w.CutInMS > w.RatedMS || w.RatedMS > w.CutOutMS {
		return fmt.Errorf("wind speed thresholds must satisfy v_cut_in <= v_rated <= v_cut_out (got %g, %g, %g)",
			w.CutInMS, w.RatedMS, w.CutOutMS)
	}
	return nil
}

// BiogasParams describes the digester and generator.
// MassFeedstockKg is a daily quantity; BiogasEnergy apportions it to one hour.
type BiogasParams struct {
	MethaneYield    float64 // m³ CH4 per kg feedstock
	MassFeedstockKg float64 // kg/day
	Efficiency      float64
	HHVKWhM3        float64 // kWh/m³
}

// PVEnergy returns the PV output in kWh: area × efficiency × irradiance.
// Irradiance is not clamped; supplying a physical value is the caller's job.
func PVEnergy(areaM2, efficiency, irradianceKWM2 float64) float64 {
	return areaM2 * efficiency * irradianceKWM2
}

// SolarEnergy is PVEnergy over a SolarParams.
func SolarEnergy(p SolarParams) float64 {
	return PVEnergy(p.AreaM2, p.Efficiency, p.IrradianceKWM2)
}

// WindPower returns the turbine output in kW for the current wind speed.
//
// The curve is piecewise: zero outside [cut-in, cut-out], the cubic law
// 0.5·ρ·A·Cp·v³ (W, converted to kW) on [cut-in, rated], and flat rated power
// on (rated, cut-out]. A speed equal to the rated speed uses the cubic law.
func WindPower(p WindParams) float64 {
	v := p.SpeedMS
	switch {
	case v < p.CutInMS || v > p.CutOutMS:
		return 0
	case v <= p.RatedMS:
		return 0.5 * p.AirDensity * p.SweptAreaM2 * p.PowerCoefficient * v * v * v / 1000
	default:
		return p.PRatedKW
	}
}

// WindEnergy returns the turbine output in kWh over the interval.
func WindEnergy(p WindParams) float64 {
	return WindPower(p) * p.DeltaTHours
}

// BiogasEnergy returns the generator output in kWh for one hour:
// η × (yield × mass) × HHV / 24.
func BiogasEnergy(p BiogasParams) float64 {
	methaneM3 := p.MethaneYield * p.MassFeedstockKg
	return p.Efficiency * methaneM3 * p.HHVKWhM3 / 24
}

// TotalGenerated sums the per-source outputs.
func TotalGenerated(pvKWh, windKWh, biogasKWh float64) float64 {
	return pvKWh + windKWh + biogasKWh
}
