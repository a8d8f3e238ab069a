package garden

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWaterGrowsHealthyPlant(t *testing.T) {
	p := Plant{ID: 2, Stage: 1, Started: true, LastTick: at(0)}
	next, out := ApplyTool(p, ToolWater, HazardNone, at(5))

	assert.Equal(t, 2, next.Stage)
	assert.True(t, next.WateredThisTick)
	assert.Equal(t, OutcomeWatered, out.Kind)
	assert.Equal(t, 1, out.StageDelta)
	assert.False(t, out.FirstWatering)
	assert.Equal(t, at(0), next.LastTick, "clock already started")
	assert.Equal(t, 1, p.Stage, "input plant must not change")
}

func TestFirstWateringStartsClock(t *testing.T) {
	next, out := ApplyTool(Plant{ID: 0}, ToolWater, HazardNone, at(7))

	assert.True(t, next.Started)
	assert.True(t, out.FirstWatering)
	assert.Equal(t, at(7), next.LastTick)
	assert.Equal(t, 1, next.Stage)
}

func TestWaterUnderPoison(t *testing.T) {
	tests := []struct {
		name  string
		plant Plant
		want  int
	}{
		{"drops two", Plant{Stage: 3, Started: true}, 1},
		{"clamps at zero", Plant{Stage: 1, Started: true}, 0},
		{"ignores bugs", Plant{Stage: 3, Started: true, Bugs: true}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, out := ApplyTool(tt.plant, ToolWater, HazardPoison, at(0))
			assert.Equal(t, tt.want, next.Stage)
			assert.True(t, out.Poisoned)
			assert.False(t, out.Infested)
			assert.True(t, next.WateredThisTick)
		})
	}
}

func TestWaterInfestedPlantHarmsIt(t *testing.T) {
	next, out := ApplyTool(Plant{Stage: 2, Started: true, Bugs: true}, ToolWater, HazardNone, at(0))
	assert.Equal(t, 1, next.Stage)
	assert.True(t, out.Infested)
	assert.Equal(t, -1, out.StageDelta)

	next, _ = ApplyTool(Plant{Stage: 0, Started: true, Bugs: true}, ToolWater, HazardBugs, at(0))
	assert.Equal(t, 0, next.Stage)
}

func TestWaterIgnoredWhenMatureOrAlreadyWatered(t *testing.T) {
	mature := Plant{Stage: MaxStage, Started: true}
	next, out := ApplyTool(mature, ToolWater, HazardNone, at(0))
	assert.Equal(t, mature, next)
	assert.Equal(t, OutcomeNoOp, out.Kind)

	watered := Plant{Stage: 2, Started: true, WateredThisTick: true}
	next, out = ApplyTool(watered, ToolWater, HazardNone, at(0))
	assert.Equal(t, watered, next)
	assert.Equal(t, OutcomeNoOp, out.Kind)
}

func TestHarvest(t *testing.T) {
	tests := []struct {
		name   string
		plant  Plant
		kind   OutcomeKind
		credit int
	}{
		{"ripe", Plant{ID: 3, Stage: 4, Started: true, LastTick: at(1)}, OutcomeHarvested, 1},
		{"ripe but infested", Plant{ID: 3, Stage: 4, Started: true, Bugs: true}, OutcomeDestroyed, 0},
		{"immature", Plant{ID: 3, Stage: 2, Started: true, WateredThisTick: true}, OutcomeDestroyed, 0},
		{"dormant", Plant{ID: 3}, OutcomeNoOp, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, out := ApplyTool(tt.plant, ToolHarvest, HazardNone, at(0))
			assert.Equal(t, Plant{ID: 3}, next)
			assert.True(t, next.Dormant())
			assert.Equal(t, tt.kind, out.Kind)
			assert.Equal(t, tt.credit, out.Credit)
		})
	}
}

func TestDebug(t *testing.T) {
	clean := Plant{Stage: 2, Started: true}
	next, out := ApplyTool(clean, ToolDebug, HazardBugs, at(0))
	assert.Equal(t, clean, next)
	assert.Equal(t, OutcomeNoOp, out.Kind)

	infested := Plant{ID: 1, Stage: 3, Started: true, Bugs: true, WateredThisTick: true, LastTick: at(2)}
	next, out = ApplyTool(infested, ToolDebug, HazardBugs, at(9))
	want := infested
	want.Bugs = false
	assert.Equal(t, want, next)
	assert.Equal(t, OutcomeDebugged, out.Kind)
}

func TestUnknownToolIsNoOp(t *testing.T) {
	p := Plant{Stage: 2, Started: true}
	next, out := ApplyTool(p, Tool("shovel"), HazardNone, at(0))
	assert.Equal(t, p, next)
	assert.Equal(t, OutcomeNoOp, out.Kind)
}
