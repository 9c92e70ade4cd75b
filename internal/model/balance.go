package model

// EnergyBalance returns generated + grid - load in kWh.
// Positive means excess energy, negative means a shortfall.
func EnergyBalance(generatedKWh, gridKWh, loadKWh float64) float64 {
	return generatedKWh + gridKWh - loadKWh
}

// OutageResult is the energy picture with the grid unavailable.
type OutageResult struct {
	ExcessKWh     float64
	UptimePercent float64
}

// GridOutage re-runs the balance with the grid forced to zero and reports how
// much of the load local generation could cover, capped at 100%.
func GridOutage(generatedKWh, loadKWh float64) OutageResult {
	uptime := 100.0
	if loadKWh > 0 {
		uptime = generatedKWh / loadKWh * 100
		if uptime > 100 {
			uptime = 100
		}
	}
	return OutageResult{
		ExcessKWh:     EnergyBalance(generatedKWh, 0, loadKWh),
		UptimePercent: uptime,
	}
}
