// Package autoplay drives a garden headlessly with a scripted player. It is
// used to balance difficulties: a preset the bot cannot solve in reasonable
// virtual time is too hard for people too.
package autoplay

import "github.com/verte-zerg/gardengate/internal/garden"

// Player is a greedy strategy. Each step it debugs infested plants, then
// harvests ripe ones, then waters the rest.
type Player struct {
	// ClicksPerStep caps plant clicks per step. Zero means unlimited.
	ClicksPerStep int
	// AvoidPoison holds watering while poison is active.
	AvoidPoison bool
}

// Plan returns the actions to queue for state s. Tool switches are free and
// only emitted when the tool changes.
func (p Player) Plan(s garden.State) []garden.Action {
	var actions []garden.Action
	tool := s.Tool
	clicks := 0
	click := func(t garden.Tool, id int) bool {
		if p.ClicksPerStep > 0 && clicks >= p.ClicksPerStep {
			return false
		}
		if t != tool {
			actions = append(actions, garden.SelectToolAction(t))
			tool = t
		}
		actions = append(actions, garden.ClickPlantAction(id))
		clicks++
		return true
	}

	for _, pl := range s.Plants {
		if pl.Bugs && !click(garden.ToolDebug, pl.ID) {
			return actions
		}
	}
	for _, pl := range s.Plants {
		if pl.Stage == garden.MaxStage && !pl.Bugs && !click(garden.ToolHarvest, pl.ID) {
			return actions
		}
	}
	if p.AvoidPoison && s.Active == garden.HazardPoison {
		return actions
	}
	for _, pl := range s.Plants {
		if pl.Stage < garden.MaxStage && !pl.WateredThisTick && !pl.Bugs && !click(garden.ToolWater, pl.ID) {
			return actions
		}
	}
	return actions
}
