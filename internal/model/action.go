package model

// Action is a human-friendly battery operating mode for a request.
// Keep these values stable; they are part of the JSON and CSV output.
type Action string

const (
	ActionCharging    Action = "CHARGING"
	ActionIdle        Action = "IDLE"
	ActionDischarging Action = "DISCHARGING"
)

// ActionFromBalance classifies the battery call implied by generation vs load:
// a surplus charges, a deficit discharges.
func ActionFromBalance(generatedKWh, loadKWh float64) Action {
	switch {
	case generatedKWh > loadKWh:
		return ActionCharging
	case generatedKWh < loadKWh:
		return ActionDischarging
	default:
		return ActionIdle
	}
}
