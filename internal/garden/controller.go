package garden

import "time"

// OutcomeKind classifies what a tool action did to a plant.
type OutcomeKind int

// Outcome kinds.
const (
	OutcomeNoOp OutcomeKind = iota
	OutcomeWatered
	OutcomeHarvested
	OutcomeDestroyed
	OutcomeDebugged
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeWatered:
		return "watered"
	case OutcomeHarvested:
		return "harvested"
	case OutcomeDestroyed:
		return "destroyed"
	case OutcomeDebugged:
		return "debugged"
	default:
		return "noop"
	}
}

// Outcome describes the effect of one tool action.
type Outcome struct {
	Kind OutcomeKind
	// StageDelta is the applied stage change after clamping.
	StageDelta int
	// Credit is the harvest count delta, 0 or 1.
	Credit int
	// FirstWatering is set when the action started the plant's growth clock.
	FirstWatering bool
	// Poisoned and Infested record which modifier turned a watering harmful.
	Poisoned bool
	Infested bool
}

// ApplyTool interprets a click on p with the selected tool while active is
// the current hazard. It returns the next plant state and the outcome; the
// input plant is not modified. Tools are mutually exclusive: a water click
// never harvests and a harvest click never waters.
func ApplyTool(p Plant, tool Tool, active Hazard, now time.Time) (Plant, Outcome) {
	switch tool {
	case ToolWater:
		return water(p, active, now)
	case ToolHarvest:
		return harvest(p)
	case ToolDebug:
		return debug(p)
	default:
		return p, Outcome{}
	}
}

func water(p Plant, active Hazard, now time.Time) (Plant, Outcome) {
	if p.Stage >= MaxStage || p.WateredThisTick {
		return p, Outcome{}
	}
	out := Outcome{Kind: OutcomeWatered}
	p.WateredThisTick = true
	if !p.Started {
		p.Started = true
		p.LastTick = now
		out.FirstWatering = true
	}

	before := p.Stage
	switch {
	case active == HazardPoison:
		p.Stage = clampStage(p.Stage - 2)
		out.Poisoned = true
	case p.Bugs:
		p.Stage = clampStage(p.Stage - 1)
		out.Infested = true
	default:
		p.Stage = clampStage(p.Stage + 1)
	}
	out.StageDelta = p.Stage - before
	return p, out
}

// harvest always clears the slot. Only a healthy stage-4 plant earns credit;
// an infested or immature crop is destroyed.
func harvest(p Plant) (Plant, Outcome) {
	if p.Dormant() {
		return p, Outcome{}
	}
	out := Outcome{Kind: OutcomeDestroyed, StageDelta: -p.Stage}
	if p.Harvestable() {
		out.Kind = OutcomeHarvested
		out.Credit = 1
	}
	return p.reset(), out
}

func debug(p Plant) (Plant, Outcome) {
	if !p.Bugs {
		return p, Outcome{}
	}
	p.Bugs = false
	return p, Outcome{Kind: OutcomeDebugged}
}
