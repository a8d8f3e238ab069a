package autoplay

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/verte-zerg/gardengate/internal/garden"
)

func TestPlanPriorities(t *testing.T) {
	s := garden.State{
		Tool: garden.ToolWater,
		Plants: []garden.Plant{
			{ID: 0, Stage: 2, Started: true},
			{ID: 1, Stage: 4, Started: true},
			{ID: 2, Stage: 1, Started: true, Bugs: true},
			{ID: 3, Stage: 1, Started: true, WateredThisTick: true},
		},
	}

	got := Player{}.Plan(s)
	want := []garden.Action{
		garden.SelectToolAction(garden.ToolDebug),
		garden.ClickPlantAction(2),
		garden.SelectToolAction(garden.ToolHarvest),
		garden.ClickPlantAction(1),
		garden.SelectToolAction(garden.ToolWater),
		garden.ClickPlantAction(0),
	}
	assert.Equal(t, want, got)
}

func TestPlanClickBudget(t *testing.T) {
	s := garden.State{
		Tool:   garden.ToolWater,
		Plants: []garden.Plant{{ID: 0}, {ID: 1}, {ID: 2}},
	}
	got := Player{ClicksPerStep: 2}.Plan(s)
	assert.Equal(t, []garden.Action{
		garden.ClickPlantAction(0),
		garden.ClickPlantAction(1),
	}, got)
}

func TestPlanAvoidsPoison(t *testing.T) {
	s := garden.State{
		Tool:   garden.ToolWater,
		Active: garden.HazardPoison,
		Plants: []garden.Plant{{ID: 0, Stage: 1, Started: true}},
	}
	assert.Empty(t, Player{AvoidPoison: true}.Plan(s))
	assert.Len(t, Player{}.Plan(s), 1)
}
