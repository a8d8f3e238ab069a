package garden

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetsAreValid(t *testing.T) {
	presets := Presets()
	require.Len(t, presets, 4)
	for _, d := range presets {
		assert.NoError(t, d.Validate(), d.Name)
	}
}

func TestPresetLookup(t *testing.T) {
	d, err := Preset("")
	require.NoError(t, err)
	assert.Equal(t, DefaultDifficulty, d.Name)

	d, err = Preset(" Hard ")
	require.NoError(t, err)
	assert.Equal(t, 6*time.Second, d.GrowthCadence)
	assert.Equal(t, 3*time.Second, d.EventCadence)
	assert.InDelta(t, 0.9, d.EventChance, 1e-9)
	assert.Len(t, d.EventPool, 5)

	d, err = Preset(DifficultyDebug)
	require.NoError(t, err)
	assert.Equal(t, 2, d.HarvestTarget)
	assert.Equal(t, []Hazard{HazardNothing}, d.EventPool)

	_, err = Preset("hrad")
	require.ErrorIs(t, err, ErrUnknownName)
	assert.Contains(t, err.Error(), `did you mean "hard"?`)
}

func TestPresetsDoNotSharePools(t *testing.T) {
	a := Presets()
	a[0].EventPool[0] = HazardNothing
	b := Presets()
	assert.Equal(t, HazardPoison, b[0].EventPool[0])
}

func TestDifficultyValidate(t *testing.T) {
	valid := quietDifficulty(time.Second, 1)
	tests := []struct {
		name   string
		mutate func(*Difficulty)
	}{
		{"no name", func(d *Difficulty) { d.Name = "" }},
		{"zero growth cadence", func(d *Difficulty) { d.GrowthCadence = 0 }},
		{"negative event cadence", func(d *Difficulty) { d.EventCadence = -time.Second }},
		{"chance above one", func(d *Difficulty) { d.EventChance = 1.5 }},
		{"negative chance", func(d *Difficulty) { d.EventChance = -0.1 }},
		{"empty pool", func(d *Difficulty) { d.EventPool = nil }},
		{"unknown hazard", func(d *Difficulty) { d.EventPool = []Hazard{"frost"} }},
		{"active-none in pool", func(d *Difficulty) { d.EventPool = []Hazard{HazardNone} }},
		{"zero target", func(d *Difficulty) { d.HarvestTarget = 0 }},
	}
	require.NoError(t, valid.Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			d.EventPool = append([]Hazard(nil), valid.EventPool...)
			tt.mutate(&d)
			assert.ErrorIs(t, d.Validate(), ErrInvalidDifficulty)
		})
	}
}
