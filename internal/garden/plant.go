// Package garden implements the plant-growing simulation behind the gate.
package garden

import (
	"fmt"
	"time"
)

// Stage bounds. 0 is a seed, 4 is ready for harvest.
const (
	MinStage = 0
	MaxStage = 4
)

// DefaultPlantCount is the size of the canonical garden.
const DefaultPlantCount = 6

// Plant is one slot in the garden. Its identity is stable for the session;
// harvesting resets the state, never the slot.
type Plant struct {
	ID              int
	Stage           int
	WateredThisTick bool
	Started         bool
	Bugs            bool
	// LastTick is the last growth evaluation for this plant. Zero until the
	// plant is first watered.
	LastTick time.Time
}

// Harvestable reports whether harvesting now would earn credit.
func (p Plant) Harvestable() bool {
	return p.Stage == MaxStage && !p.Bugs
}

// Dormant reports whether the plant is in its initial state.
func (p Plant) Dormant() bool {
	return p.Stage == MinStage && !p.Started && !p.Bugs && !p.WateredThisTick && p.LastTick.IsZero()
}

func (p Plant) reset() Plant {
	return Plant{ID: p.ID}
}

func newPlants(count int) []Plant {
	plants := make([]Plant, count)
	for i := range plants {
		plants[i] = Plant{ID: i}
	}
	return plants
}

func clampStage(stage int) int {
	if stage < MinStage {
		return MinStage
	}
	if stage > MaxStage {
		return MaxStage
	}
	return stage
}

func checkPlant(p Plant) {
	if p.Stage < MinStage || p.Stage > MaxStage {
		panic(fmt.Sprintf("garden: plant %d stage %d outside [%d,%d]", p.ID, p.Stage, MinStage, MaxStage))
	}
}
