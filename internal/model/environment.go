package model

// CO2Reduction returns kg of CO2 avoided by offsetting offsetKWh from a source
// with the given emission factor (kg CO2/kWh).
func CO2Reduction(offsetKWh, emissionFactor float64) float64 {
	return offsetKWh * emissionFactor
}
