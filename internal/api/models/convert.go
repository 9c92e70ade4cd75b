package models

import (
	"math"

	"nzeb-model/internal/config"
	"nzeb-model/internal/model"
	"nzeb-model/internal/simulation"
)

// GridOutageMessage is echoed in the grid outage scenario block.
const GridOutageMessage = "Simulation for grid outage scenario."

// BatteryOverride returns the battery fields set explicitly in the request.
func (b *BatteryInputs) BatteryOverride() config.BatteryOverride {
	if b == nil {
		return config.BatteryOverride{}
	}
	return config.BatteryOverride{
		CapacityKWh:         b.Capacity,
		ChargeEfficiency:    b.EtaC,
		DischargeEfficiency: b.EtaD,
		InitialSOC:          b.InitialSOC,
	}
}

// ToInputs converts a validated request into model inputs.
// preset is the battery preset named by the request (nil when none); request
// fields override it. defaultSOC applies when neither sets an initial SOC.
func (r *SimulateRequest) ToInputs(preset *config.BatteryConfig, defaultSOC float64) model.Inputs {
	var base config.BatteryConfig
	if preset != nil {
		base = *preset
	}
	batt := config.MergeBattery(base, r.BatteryInputs.BatteryOverride())

	soc := defaultSOC
	if batt.InitialSOC != nil {
		soc = *batt.InitialSOC
	}

	in := model.Inputs{
		LoadKWh:    val(r.LoadDemand),
		GridKWh:    val(r.GridEnergy),
		Battery:    batt.ToModelParams(),
		InitialSOC: soc,
		Scenario:   model.Scenario(r.Scenario),
	}
	if s := r.SolarInputs; s != nil {
		in.Solar = model.SolarParams{
			AreaM2:         val(s.AreaPV),
			Efficiency:     val(s.EfficiencyPV),
			IrradianceKWM2: val(s.Irradiance),
		}
	}
	if w := r.WindInputs; w != nil {
		in.Wind = model.WindParams{
			AirDensity:       val(w.AirDensity),
			SweptAreaM2:      val(w.SweptArea),
			PowerCoefficient: val(w.PowerCoefficient),
			SpeedMS:          val(w.WindSpeed),
			CutInMS:          val(w.VCutIn),
			RatedMS:          val(w.VRated),
			CutOutMS:         val(w.VCutOut),
			PRatedKW:         val(w.PRated),
			DeltaTHours:      val(w.DeltaT),
		}
	}
	if b := r.BiogasInputs; b != nil {
		in.Biogas = model.BiogasParams{
			MethaneYield:    val(b.MethaneYield),
			MassFeedstockKg: val(b.MassFeedstock),
			Efficiency:      val(b.EfficiencyBG),
			HHVKWhM3:        val(b.HHVCH4),
		}
	}
	if l := r.LCCAInputs; l != nil {
		in.Financial = model.FinancialParams{
			InitialCost:     val(l.CInit),
			AnnualOMCost:    val(l.COM),
			ReplacementCost: val(l.CRep),
			SalvageValue:    val(l.S),
			DiscountRate:    val(l.R),
		}
		if l.N != nil {
			in.Financial.Years = *l.N
		}
	}
	if c := r.CO2Inputs; c != nil {
		in.EmissionFactor = val(c.EmissionFactor)
	}
	return in
}

// NewSimulateResponse converts an engine result to the wire shape.
func NewSimulateResponse(id string, res *simulation.Result) SimulateResponse {
	resp := SimulateResponse{
		ID: id,
		EnergyGeneration: EnergyGeneration{
			SolarPVKWh:        res.Generation.PVKWh,
			WindTurbineKWh:    res.Generation.WindKWh,
			BiogasKWh:         res.Generation.BiogasKWh,
			TotalGeneratedKWh: res.Generation.TotalKWh,
		},
		EnergyBalance: EnergyBalance{
			LoadDemandKWh:        res.LoadKWh,
			GridEnergyKWh:        res.GridKWh,
			ExcessOrCurtailedKWh: res.BalanceKWh,
		},
		BatteryStatus: BatteryStatus{
			StateOfChargePercent: res.Battery.SOCPercent,
			Action:               string(res.Battery.Action),
			EnergyFlowKWh:        res.Battery.EnergyKWh,
			Strategy:             res.Battery.Strategy,
		},
		FinancialAnalysis: FinancialAnalysis{
			LifeCycleCost:   res.Financial.LCC,
			AnnualEnergyKWh: res.Financial.AnnualEnergyKWh,
		},
		EnvironmentalImpact: EnvironmentalImpact{
			CO2EmissionReductionKg: res.CO2ReductionKg,
		},
		RegressionAnalysis: RegressionAnalysis{
			IrradianceData:    res.Regression.Irradiance,
			PVOutputData:      res.Regression.PVOutput,
			PredictedPVOutput: res.Regression.Predicted,
			Slope:             res.Regression.Slope,
			Intercept:         res.Regression.Intercept,
			RSquared:          res.Regression.RSquared,
		},
	}

	if math.IsInf(res.Financial.LCOE, 0) {
		resp.FinancialAnalysis.LCOEInfinite = true
	} else {
		lcoe := res.Financial.LCOE
		resp.FinancialAnalysis.LevelizedCost = &lcoe
	}

	if res.Outage != nil {
		resp.ScenarioModelingResults = &ScenarioModelingResults{
			GridOutage: &GridOutageResult{
				Message:                  GridOutageMessage,
				ExcessEnergyDuringOutage: res.Outage.ExcessKWh,
				SystemUptimePercentage:   res.Outage.UptimePercent,
			},
		}
	}
	return resp
}

func val(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
