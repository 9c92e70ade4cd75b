package main

import (
	"encoding/json"
	"fmt"
	"os"

	"nzeb-model/internal/api/models"
	"nzeb-model/internal/model"
	"nzeb-model/internal/simulation"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
)

// Demo:
// - Build one snapshot of a small building microgrid (PV, wind, biogas, battery)
// - Run it for a few load levels to show how the battery reacts
// - Print the full JSON response for the base case
func main() {
	scenario := pflag.String("scenario", "grid_outage", "Scenario for the JSON output (empty for none)")
	outCSV := pflag.String("out", "", "Optional path to write the base case CSV report")
	asJSON := pflag.Bool("json", true, "Print the base case as API JSON")
	pflag.Parse()

	in := sampleInputs()
	engine := simulation.New()

	fmt.Printf("Generation profile: PV %.1f m² @ %.0f%%, wind %.0f m/s, biogas %.0f kg feedstock\n\n",
		in.Solar.AreaM2, in.Solar.Efficiency*100, in.Wind.SpeedMS, in.Biogas.MassFeedstockKg)

	for _, load := range []float64{5, 10, 16, 20, 30} {
		step := in
		step.LoadKWh = load
		res, err := engine.Run(step)
		if err != nil {
			panic(err)
		}
		fmt.Printf("load=%5.1f kWh  gen=%7.3f  action=%-11s  flow=%6.3f kWh  soc=%.3f→%.3f  excess=%7.3f\n",
			load,
			res.Generation.TotalKWh,
			string(res.Battery.Action),
			res.Battery.EnergyKWh,
			res.Battery.SOCStart,
			res.Battery.SOCEnd,
			res.BalanceKWh,
		)
	}

	in.Scenario = model.Scenario(*scenario)
	res, err := engine.Run(in)
	if err != nil {
		panic(err)
	}

	if *outCSV != "" {
		if err := simulation.WriteReportCSV(*outCSV, res); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		fmt.Println()
		if err := enc.Encode(models.NewSimulateResponse(uuid.NewString(), res)); err != nil {
			panic(err)
		}
	}
}

func sampleInputs() model.Inputs {
	return model.Inputs{
		Solar: model.SolarParams{AreaM2: 10, Efficiency: 0.2, IrradianceKWM2: 0.8},
		Wind: model.WindParams{
			AirDensity:       1.225,
			SweptAreaM2:      10,
			PowerCoefficient: 0.4,
			SpeedMS:          12,
			CutInMS:          3,
			RatedMS:          12,
			CutOutMS:         25,
			PRatedKW:         5,
			DeltaTHours:      1,
		},
		Biogas:  model.BiogasParams{MethaneYield: 0.3, MassFeedstockKg: 240, Efficiency: 0.35, HHVKWhM3: 10},
		LoadKWh: 20,
		GridKWh: 5,
		Battery: model.BatteryParams{
			CapacityKWh:         10,
			ChargeEfficiency:    0.9,
			DischargeEfficiency: 0.9,
		},
		InitialSOC: model.DefaultInitialSOC,
		Financial: model.FinancialParams{
			InitialCost:     1000,
			AnnualOMCost:    10,
			ReplacementCost: 100,
			SalvageValue:    20,
			DiscountRate:    0.05,
			Years:           20,
		},
		EmissionFactor: 0.5,
	}
}
