package simulation

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
)

// WriteReportCSV writes the result as metric,value rows to path.
func WriteReportCSV(path string, res *Result) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return EncodeReportCSV(f, res)
}

// EncodeReportCSV writes the result as metric,value rows to w.
func EncodeReportCSV(w io.Writer, res *Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"metric", "value"}); err != nil {
		return err
	}

	rows := [][]string{
		{"solar_pv_kwh", fmtFloat(res.Generation.PVKWh)},
		{"wind_turbine_kwh", fmtFloat(res.Generation.WindKWh)},
		{"biogas_kwh", fmtFloat(res.Generation.BiogasKWh)},
		{"total_generated_kwh", fmtFloat(res.Generation.TotalKWh)},
		{"load_demand_kwh", fmtFloat(res.LoadKWh)},
		{"grid_energy_kwh", fmtFloat(res.GridKWh)},
		{"excess_or_curtailed_kwh", fmtFloat(res.BalanceKWh)},
		{"battery_action", string(res.Battery.Action)},
		{"battery_energy_kwh", fmtFloat(res.Battery.EnergyKWh)},
		{"soc_start", fmtFloat(res.Battery.SOCStart)},
		{"soc_end", fmtFloat(res.Battery.SOCEnd)},
		{"annual_energy_kwh", fmtFloat(res.Financial.AnnualEnergyKWh)},
		{"lcc", fmtFloat(res.Financial.LCC)},
		{"lcoe", fmtFloat(res.Financial.LCOE)},
		{"co2_reduction_kg", fmtFloat(res.CO2ReductionKg)},
	}
	if res.Outage != nil {
		rows = append(rows,
			[]string{"outage_excess_kwh", fmtFloat(res.Outage.ExcessKWh)},
			[]string{"outage_uptime_percent", fmtFloat(res.Outage.UptimePercent)},
		)
	}
	rows = append(rows,
		[]string{"regression_slope", fmtFloat(res.Regression.Slope)},
		[]string{"regression_intercept", fmtFloat(res.Regression.Intercept)},
	)

	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func fmtFloat(x float64) string {
	if math.IsInf(x, 1) {
		return "inf"
	}
	return strconv.FormatFloat(x, 'f', 6, 64)
}
