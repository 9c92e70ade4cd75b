package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"nzeb-model/internal/api/models"
	"nzeb-model/internal/config"
	"nzeb-model/internal/data"
	"nzeb-model/internal/logging"
	"nzeb-model/internal/simulation"
	"nzeb-model/internal/strategy"

	"github.com/spf13/pflag"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	logging.Setup(false, os.Getenv("LOG_LEVEL"))

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "presets":
		cmdPresets(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --input examples/request.json [--config examples/config.yaml] [--out results/report.csv]")
	fmt.Println("  cli presets [--dir examples/batteries]")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - simulate runs one snapshot and prints generation, battery, economics and CO2")
	fmt.Println("  - the input file uses the same JSON shape as POST /api/nzeb_model")
}

func cmdSimulate(args []string) {
	fs := pflag.NewFlagSet("simulate", pflag.ExitOnError)
	inputPath := fs.StringP("input", "i", "examples/request.json", "Path to request JSON")
	cfgPath := fs.StringP("config", "c", "", "Path to YAML config (optional)")
	outPath := fs.StringP("out", "o", "", "Optional CSV report path")
	scenario := fs.String("scenario", "", "Override the request scenario (e.g. grid_outage)")
	_ = fs.Parse(args)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fail(err)
	}

	var req models.SimulateRequest
	if err := data.LoadJSON(*inputPath, &req); err != nil {
		fail(err)
	}
	if err := models.ValidateRequest(&req); err != nil {
		fail(fmt.Errorf("%s: %w", *inputPath, err))
	}
	if *scenario != "" {
		req.Scenario = *scenario
	}

	var preset *config.BatteryConfig
	if name := req.BatteryInputs.Preset; name != "" {
		p, err := data.LoadPreset(cfg.BatteryDir, name)
		if err != nil {
			fail(err)
		}
		preset = &p.Battery
	}

	strat, _ := strategy.ByName(cfg.Defaults.Strategy)
	res, err := simulation.NewWithStrategy(strat).Run(req.ToInputs(preset, cfg.Defaults.InitialSOC))
	if err != nil {
		fail(err)
	}

	printSummary(res)

	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			fail(err)
		}
		if err := simulation.WriteReportCSV(*outPath, res); err != nil {
			fail(err)
		}
		fmt.Printf("\nWrote report to %s\n", *outPath)
	}
}

func cmdPresets(args []string) {
	fs := pflag.NewFlagSet("presets", pflag.ExitOnError)
	dir := fs.StringP("dir", "d", "", "Battery preset directory (default from config)")
	cfgPath := fs.StringP("config", "c", "", "Path to YAML config (optional)")
	_ = fs.Parse(args)

	if *dir == "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			fail(err)
		}
		*dir = cfg.BatteryDir
	}

	presets, err := data.ListPresets(*dir)
	if err != nil {
		fail(err)
	}

	fmt.Printf("%-24s %-28s %-12s %-6s %-6s %-6s\n", "id", "name", "capacity", "eta_c", "eta_d", "soc0")
	for _, p := range presets {
		soc := "-"
		if p.Battery.InitialSOC != nil {
			soc = fmt.Sprintf("%.2f", *p.Battery.InitialSOC)
		}
		fmt.Printf("%-24s %-28s %-12.2f %-6.2f %-6.2f %-6s\n",
			p.ID, p.DisplayName(), p.Battery.CapacityKWh,
			p.Battery.ChargeEfficiency, p.Battery.DischargeEfficiency, soc)
	}
}

func printSummary(res *simulation.Result) {
	fmt.Printf("Generation   PV=%.3f kWh  wind=%.3f kWh  biogas=%.3f kWh  total=%.3f kWh\n",
		res.Generation.PVKWh, res.Generation.WindKWh, res.Generation.BiogasKWh, res.Generation.TotalKWh)
	fmt.Printf("Balance      load=%.3f kWh  grid=%.3f kWh  excess=%.3f kWh\n",
		res.LoadKWh, res.GridKWh, res.BalanceKWh)
	fmt.Printf("Battery      action=%s  flow=%.3f kWh  soc=%.3f->%.3f (%.1f%%)\n",
		res.Battery.Action, res.Battery.EnergyKWh, res.Battery.SOCStart, res.Battery.SOCEnd, res.Battery.SOCPercent)
	fmt.Printf("Economics    LCC=%.2f  LCOE=%s per kWh\n", res.Financial.LCC, formatLCOE(res.Financial.LCOE))
	fmt.Printf("Environment  CO2 avoided=%.3f kg\n", res.CO2ReductionKg)
	if res.Outage != nil {
		fmt.Printf("Grid outage  excess=%.3f kWh  uptime=%.1f%%\n", res.Outage.ExcessKWh, res.Outage.UptimePercent)
	}
	fmt.Printf("Regression   pv = %.4f + %.4f*irradiance  r2=%.4f\n",
		res.Regression.Intercept, res.Regression.Slope, res.Regression.RSquared)
}

func formatLCOE(x float64) string {
	if math.IsInf(x, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.4f", x)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
