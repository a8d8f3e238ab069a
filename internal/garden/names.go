package garden

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Tool is the player's selected action mode.
type Tool string

// Tools.
const (
	ToolWater   Tool = "water"
	ToolDebug   Tool = "debug"
	ToolHarvest Tool = "harvest"
)

// Tools lists the tools in display order.
var Tools = []Tool{ToolWater, ToolDebug, ToolHarvest}

// Hazard is a random event type. The zero value means no event is active.
type Hazard string

// Hazards.
const (
	HazardNone    Hazard = ""
	HazardNothing Hazard = "nothing"
	HazardPoison  Hazard = "poison"
	HazardBugs    Hazard = "bugs"
)

// GrowthPolicy selects how the growth cadence is keyed.
type GrowthPolicy string

// Growth policies.
const (
	// PerPlantCadence starts each plant's clock at its first watering.
	PerPlantCadence GrowthPolicy = "per-plant"
	// SharedCadence evaluates every started plant on one garden-wide clock.
	SharedCadence GrowthPolicy = "shared"
)

var toolNames = map[string]Tool{
	"water":    ToolWater,
	"debug":    ToolDebug,
	"debugger": ToolDebug,
	"harvest":  ToolHarvest,
}

var hazardNames = map[string]Hazard{
	"nothing": HazardNothing,
	"poison":  HazardPoison,
	"bugs":    HazardBugs,
}

var policyNames = map[string]GrowthPolicy{
	"per-plant": PerPlantCadence,
	"shared":    SharedCadence,
}

// ParseTool resolves a tool name. "debugger" is accepted as an alias.
func ParseTool(name string) (Tool, error) {
	return parseName(name, "tool", toolNames)
}

// ParseHazard resolves a hazard name for event pools.
func ParseHazard(name string) (Hazard, error) {
	return parseName(name, "hazard", hazardNames)
}

// ParseGrowthPolicy resolves a growth policy name. Empty means per-plant.
func ParseGrowthPolicy(name string) (GrowthPolicy, error) {
	if strings.TrimSpace(name) == "" {
		return PerPlantCadence, nil
	}
	return parseName(name, "growth policy", policyNames)
}

func parseName[T ~string](name, kind string, known map[string]T) (T, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if v, ok := known[key]; ok {
		return v, nil
	}
	candidates := make([]string, 0, len(known))
	for k := range known {
		candidates = append(candidates, k)
	}
	var zero T
	return zero, unknownName(kind, name, candidates)
}

func unknownName(kind, got string, candidates []string) error {
	if s := Suggest(got, candidates); s != "" {
		return fmt.Errorf("%w: %s %q (did you mean %q?)", ErrUnknownName, kind, got, s)
	}
	return fmt.Errorf("%w: %s %q", ErrUnknownName, kind, got)
}

// Suggest returns the candidate closest to input by edit distance, or "" when
// nothing is close enough to be a plausible typo.
func Suggest(input string, candidates []string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}
	best := ""
	bestDist := -1
	for _, cand := range candidates {
		dist := levenshtein.ComputeDistance(input, cand)
		if dist > distanceLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist || (dist == bestDist && cand < best) {
			best = cand
			bestDist = dist
		}
	}
	return best
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
