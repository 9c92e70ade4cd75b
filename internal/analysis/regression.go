package analysis

import (
	"nzeb-model/internal/model"

	"gonum.org/v1/gonum/stat"
)

// IrradianceSamples is the fixed irradiance grid (kW/m²) the PV fit is drawn on.
var IrradianceSamples = []float64{0.1, 0.2, 0.4, 0.6, 0.8, 1.0}

// PVRegression is an ordinary least squares line of PV output against irradiance.
type PVRegression struct {
	Irradiance []float64
	PVOutput   []float64
	Predicted  []float64

	Slope     float64
	Intercept float64
	RSquared  float64
}

// FitPVRegression samples the PV model for the given array and fits
// output = Intercept + Slope·irradiance over the sample grid.
// Every call allocates its own slices; results are never shared.
func FitPVRegression(areaM2, efficiency float64) PVRegression {
	xs := make([]float64, len(IrradianceSamples))
	copy(xs, IrradianceSamples)

	ys := make([]float64, len(xs))
	for i, g := range xs {
		ys[i] = model.PVEnergy(areaM2, efficiency, g)
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)

	predicted := make([]float64, len(xs))
	for i, g := range xs {
		predicted[i] = alpha + beta*g
	}

	return PVRegression{
		Irradiance: xs,
		PVOutput:   ys,
		Predicted:  predicted,
		Slope:      beta,
		Intercept:  alpha,
		RSquared:   rSquared(xs, ys, alpha, beta),
	}
}

// rSquared treats a constant series (zero-area or zero-efficiency array) as a
// perfect fit instead of returning NaN.
func rSquared(xs, ys []float64, alpha, beta float64) float64 {
	if stat.Variance(ys, nil) == 0 {
		return 1
	}
	return stat.RSquared(xs, ys, nil, alpha, beta)
}
