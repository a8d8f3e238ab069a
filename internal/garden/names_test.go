package garden

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTool(t *testing.T) {
	for in, want := range map[string]Tool{
		"water":     ToolWater,
		" Harvest ": ToolHarvest,
		"debugger":  ToolDebug,
		"DEBUG":     ToolDebug,
	} {
		got, err := ParseTool(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseTool("watr")
	require.ErrorIs(t, err, ErrUnknownName)
	assert.Contains(t, err.Error(), `did you mean "water"?`)

	_, err = ParseTool("shovel")
	require.ErrorIs(t, err, ErrUnknownName)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestParseHazardAndPolicy(t *testing.T) {
	h, err := ParseHazard("Poison")
	require.NoError(t, err)
	assert.Equal(t, HazardPoison, h)

	_, err = ParseHazard("")
	assert.ErrorIs(t, err, ErrUnknownName)

	p, err := ParseGrowthPolicy("")
	require.NoError(t, err)
	assert.Equal(t, PerPlantCadence, p)

	p, err = ParseGrowthPolicy("shared")
	require.NoError(t, err)
	assert.Equal(t, SharedCadence, p)

	_, err = ParseGrowthPolicy("shard")
	require.ErrorIs(t, err, ErrUnknownName)
	assert.Contains(t, err.Error(), `"shared"`)
}

func TestSuggest(t *testing.T) {
	candidates := []string{"easy", "medium", "hard", "debug"}
	tests := []struct {
		in   string
		want string
	}{
		{"meduim", "medium"},
		{"HARD", "hard"},
		{"esy", "easy"},
		{"nightmare", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Suggest(tt.in, candidates), tt.in)
	}
}
