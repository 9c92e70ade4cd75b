package model

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDegenerateDiscountRate is returned when (1+r) is zero and discounting is undefined.
	// A rate close enough to -1 that (1+r)^y underflows to zero gets the same error.
	ErrDegenerateDiscountRate = errors.New("discount rate makes the discount factor divide by zero")
	// ErrInvalidHorizon is returned for an analysis horizon shorter than one year.
	ErrInvalidHorizon = errors.New("analysis horizon must be at least 1 year")
)

// HoursPerYear extrapolates a one-hour generation figure to a full year.
const HoursPerYear = 24 * 365

// FinancialParams holds the life-cycle cost inputs.
// Costs are in currency units; DiscountRate is a fraction (0.05 = 5%).
type FinancialParams struct {
	InitialCost     float64
	AnnualOMCost    float64
	ReplacementCost float64
	SalvageValue    float64
	DiscountRate    float64
	Years           int
}

func checkDiscounting(r float64, years int) error {
	if r == -1 {
		return ErrDegenerateDiscountRate
	}
	if years < 1 {
		return ErrInvalidHorizon
	}
	return nil
}

// discountFactor returns (1+r)^y, failing when it has collapsed to zero.
func discountFactor(r float64, y int) (float64, error) {
	f := math.Pow(1+r, float64(y))
	if f == 0 {
		return 0, fmt.Errorf("%w: (1%+g)^%d", ErrDegenerateDiscountRate, r, y)
	}
	return f, nil
}

// LifeCycleCost discounts the yearly costs back to today:
//
//	LCC = C_init + Σ_{y=1..n} cost(y) / (1+r)^y
//
// cost(y) is the O&M cost every year, plus replacement minus salvage in the final year.
func LifeCycleCost(p FinancialParams) (float64, error) {
	if err := checkDiscounting(p.DiscountRate, p.Years); err != nil {
		return 0, err
	}
	total := p.InitialCost
	for y := 1; y <= p.Years; y++ {
		annual := p.AnnualOMCost
		if y == p.Years {
			annual += p.ReplacementCost - p.SalvageValue
		}
		f, err := discountFactor(p.DiscountRate, y)
		if err != nil {
			return 0, err
		}
		total += annual / f
	}
	return total, nil
}

// LevelizedCost divides the life-cycle cost by the discounted lifetime energy.
// Annual energy is held flat across the horizon. A zero discounted energy sum
// yields +Inf rather than an error.
func LevelizedCost(lcc, annualKWh, discountRate float64, years int) (float64, error) {
	if err := checkDiscounting(discountRate, years); err != nil {
		return 0, err
	}
	discounted := 0.0
	for y := 1; y <= years; y++ {
		f, err := discountFactor(discountRate, y)
		if err != nil {
			return 0, err
		}
		discounted += annualKWh / f
	}
	if discounted == 0 {
		return math.Inf(1), nil
	}
	return lcc / discounted, nil
}

// AnnualEnergy extrapolates a single-interval generation figure flat over a year.
func AnnualEnergy(intervalKWh float64) float64 {
	return intervalKWh * HoursPerYear
}
