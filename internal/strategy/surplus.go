package strategy

import "nzeb-model/internal/model"

// SurplusStrategy charges the battery with any generation above the load and
// discharges it to cover any shortfall. Grid energy is not considered.
type SurplusStrategy struct{}

func (s *SurplusStrategy) Name() string { return "surplus" }

func (s *SurplusStrategy) Decide(ctx Context) Dispatch {
	switch model.ActionFromBalance(ctx.GeneratedKWh, ctx.LoadKWh) {
	case model.ActionCharging:
		return Dispatch{EnergyKWh: ctx.GeneratedKWh - ctx.LoadKWh}
	case model.ActionDischarging:
		return Dispatch{EnergyKWh: -(ctx.LoadKWh - ctx.GeneratedKWh)}
	default:
		return Dispatch{}
	}
}

// ByName returns the strategy registered under name; the empty name selects
// the surplus strategy.
func ByName(name string) (Strategy, bool) {
	switch name {
	case "", "surplus":
		return &SurplusStrategy{}, true
	default:
		return nil, false
	}
}
