package model

import (
	"errors"
	"math"
)

// BatteryParams defines the fixed physical parameters of the battery.
// Units:
// - CapacityKWh: kWh
// - Efficiencies: (0, 1]
type BatteryParams struct {
	CapacityKWh         float64
	ChargeEfficiency    float64
	DischargeEfficiency float64
}

// BatteryState captures mutable state.
type BatteryState struct {
	// SOC is the state of charge as a fraction [0,1].
	SOC float64
}

// Battery is a convenience wrapper bundling params + state.
// A Battery lives for a single simulation request.
type Battery struct {
	Params BatteryParams
	State  BatteryState
}

// DefaultInitialSOC is used when a request does not carry an initial state of charge.
const DefaultInitialSOC = 0.5

func NewBattery(params BatteryParams, initialSOC float64) (*Battery, error) {
	b := &Battery{
		Params: params,
		State:  BatteryState{SOC: initialSOC},
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Battery) Validate() error {
	p := b.Params
	if p.CapacityKWh <= 0 {
		return errors.New("capacity must be > 0")
	}
	if p.ChargeEfficiency <= 0 || p.ChargeEfficiency > 1 {
		return errors.New("eta_c must be in (0, 1]")
	}
	if p.DischargeEfficiency <= 0 || p.DischargeEfficiency > 1 {
		return errors.New("eta_d must be in (0, 1]")
	}
	if b.State.SOC < 0 || b.State.SOC > 1 || math.IsNaN(b.State.SOC) {
		return errors.New("initial_soc must be within [0, 1]")
	}
	return nil
}

// FlowResult captures what one charge or discharge call did.
type FlowResult struct {
	Action Action
	// EnergyKWh is the bus-side energy: offered energy absorbed while charging,
	// energy delivered while discharging, 0 when idle.
	EnergyKWh float64
	// StoredDeltaKWh is the change of stored energy inside the cells (signed).
	StoredDeltaKWh float64
	SOCStart       float64
	SOCEnd         float64
}

// Charge offers energyKWh from the bus to the battery. Storage is limited by the
// remaining headroom; the returned EnergyKWh is the part of the offer that was
// consumed (stored / chargeEfficiency), not the stored amount.
func (b *Battery) Charge(energyKWh float64) FlowResult {
	res := FlowResult{Action: ActionIdle, SOCStart: b.State.SOC, SOCEnd: b.State.SOC}
	if energyKWh <= 0 {
		return res
	}

	headroomKWh := (1 - b.State.SOC) * b.Params.CapacityKWh
	storedKWh := math.Min(headroomKWh, energyKWh*b.Params.ChargeEfficiency)
	if storedKWh <= 0 {
		return res
	}
	if storedKWh == headroomKWh {
		b.State.SOC = 1
	} else {
		b.State.SOC = clamp01(b.State.SOC + storedKWh/b.Params.CapacityKWh)
	}

	res.Action = ActionCharging
	res.EnergyKWh = storedKWh / b.Params.ChargeEfficiency
	res.StoredDeltaKWh = storedKWh
	res.SOCEnd = b.State.SOC
	return res
}

// Discharge requests energyKWh from the battery. Delivery is limited by the
// stored energy after discharge losses.
func (b *Battery) Discharge(energyKWh float64) FlowResult {
	res := FlowResult{Action: ActionIdle, SOCStart: b.State.SOC, SOCEnd: b.State.SOC}
	if energyKWh <= 0 {
		return res
	}

	availableKWh := b.State.SOC * b.Params.CapacityKWh * b.Params.DischargeEfficiency
	deliveredKWh := math.Min(availableKWh, energyKWh)
	if deliveredKWh <= 0 {
		return res
	}
	withdrawnKWh := deliveredKWh / b.Params.DischargeEfficiency
	if deliveredKWh == availableKWh {
		// Full drain lands on exactly 0, not a rounding residue.
		b.State.SOC = 0
	} else {
		b.State.SOC = clamp01(b.State.SOC - withdrawnKWh/b.Params.CapacityKWh)
	}

	res.Action = ActionDischarging
	res.EnergyKWh = deliveredKWh
	res.StoredDeltaKWh = -withdrawnKWh
	res.SOCEnd = b.State.SOC
	return res
}

// SOCPercent reports the state of charge as a percentage.
func (b *Battery) SOCPercent() float64 {
	return b.State.SOC * 100
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
