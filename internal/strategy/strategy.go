package strategy

import "nzeb-model/internal/model"

// Context is what a strategy sees when choosing the battery call for a request.
type Context struct {
	GeneratedKWh float64
	LoadKWh      float64
	Battery      *model.Battery
}

// Dispatch is the single battery call a strategy asks for.
// Convention: positive kWh = charge with that much offered energy,
// negative kWh = discharge that much, zero = idle.
type Dispatch struct {
	EnergyKWh float64
}

type Strategy interface {
	Name() string
	Decide(ctx Context) Dispatch
}

// Outcome is the result of applying a dispatch to the battery.
type Outcome struct {
	Requested Dispatch
	Flow      model.FlowResult
	// NetGeneratedKWh is generation after the battery flow:
	// generation minus absorbed energy, or plus delivered energy.
	NetGeneratedKWh float64
}

// Apply asks the strategy for a dispatch and performs at most one charge or
// one discharge on the battery.
func Apply(s Strategy, ctx Context) Outcome {
	req := s.Decide(ctx)
	out := Outcome{Requested: req, NetGeneratedKWh: ctx.GeneratedKWh}

	switch {
	case req.EnergyKWh > 0:
		out.Flow = ctx.Battery.Charge(req.EnergyKWh)
		out.NetGeneratedKWh -= out.Flow.EnergyKWh
	case req.EnergyKWh < 0:
		out.Flow = ctx.Battery.Discharge(-req.EnergyKWh)
		out.NetGeneratedKWh += out.Flow.EnergyKWh
	default:
		soc := ctx.Battery.State.SOC
		out.Flow = model.FlowResult{Action: model.ActionIdle, SOCStart: soc, SOCEnd: soc}
	}
	return out
}
