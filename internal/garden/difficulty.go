package garden

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Preset names.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
	DifficultyDebug  = "debug"
)

// DefaultDifficulty is used when none is configured.
const DefaultDifficulty = DifficultyMedium

// Difficulty holds the tunables for one garden.
type Difficulty struct {
	Name          string        `validate:"required"`
	GrowthCadence time.Duration `validate:"gt=0"`
	EventCadence  time.Duration `validate:"gt=0"`
	EventChance   float64       `validate:"gte=0,lte=1"`
	// EventPool is drawn uniformly; repeat an entry to weight it.
	EventPool     []Hazard `validate:"min=1,dive,oneof=nothing poison bugs"`
	HarvestTarget int      `validate:"gte=1"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the difficulty is playable.
func (d Difficulty) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidDifficulty, d.Name, err)
	}
	return nil
}

func basePool() []Hazard {
	return []Hazard{HazardPoison, HazardBugs, HazardBugs, HazardNothing}
}

// Presets returns the built-in difficulties, easiest first.
func Presets() []Difficulty {
	return []Difficulty{
		{
			Name:          DifficultyEasy,
			GrowthCadence: 4 * time.Second,
			EventCadence:  10 * time.Second,
			EventChance:   0.5,
			EventPool:     basePool(),
			HarvestTarget: 6,
		},
		{
			Name:          DifficultyMedium,
			GrowthCadence: 5 * time.Second,
			EventCadence:  6 * time.Second,
			EventChance:   0.7,
			EventPool:     basePool(),
			HarvestTarget: 6,
		},
		{
			Name:          DifficultyHard,
			GrowthCadence: 6 * time.Second,
			EventCadence:  3 * time.Second,
			EventChance:   0.9,
			EventPool:     append(basePool(), HazardBugs),
			HarvestTarget: 6,
		},
		{
			Name:          DifficultyDebug,
			GrowthCadence: 500 * time.Millisecond,
			EventCadence:  12300 * time.Millisecond,
			EventChance:   0,
			EventPool:     []Hazard{HazardNothing},
			HarvestTarget: 2,
		},
	}
}

// Preset looks up a built-in difficulty by name.
func Preset(name string) (Difficulty, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultDifficulty
	}
	presets := Presets()
	names := make([]string, 0, len(presets))
	for _, d := range presets {
		if d.Name == key {
			return d, nil
		}
		names = append(names, d.Name)
	}
	return Difficulty{}, unknownName("difficulty", name, names)
}
