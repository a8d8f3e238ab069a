package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/verte-zerg/gardengate/internal/garden"
)

// Apply layers the set fields of c over d and validates the result.
func (c DifficultyConfig) Apply(d garden.Difficulty) (garden.Difficulty, error) {
	var err error
	if c.GrowthCadence != nil {
		if d.GrowthCadence, err = parseCadence("growth-cadence", *c.GrowthCadence); err != nil {
			return garden.Difficulty{}, err
		}
	}
	if c.EventCadence != nil {
		if d.EventCadence, err = parseCadence("event-cadence", *c.EventCadence); err != nil {
			return garden.Difficulty{}, err
		}
	}
	if c.EventChance != nil {
		d.EventChance = *c.EventChance
	}
	if c.EventPool != nil {
		pool := make([]garden.Hazard, 0, len(c.EventPool))
		for _, name := range c.EventPool {
			h, err := garden.ParseHazard(name)
			if err != nil {
				return garden.Difficulty{}, fmt.Errorf("difficulty %q event-pool: %w", d.Name, err)
			}
			pool = append(pool, h)
		}
		d.EventPool = pool
	}
	if c.HarvestTarget != nil {
		d.HarvestTarget = *c.HarvestTarget
	}
	if err := d.Validate(); err != nil {
		return garden.Difficulty{}, err
	}
	return d, nil
}

func parseCadence(key, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}

// ResolveDifficulty looks name up among the presets and the file's
// [difficulty.*] tables, applying any override.
func (f FileConfig) ResolveDifficulty(name string) (garden.Difficulty, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = garden.DefaultDifficulty
	}
	over, custom := f.override(key)
	base, err := garden.Preset(key)
	if err != nil {
		if !custom {
			return garden.Difficulty{}, f.unknownDifficulty(name)
		}
		base, err = garden.Preset(garden.DefaultDifficulty)
		if err != nil {
			return garden.Difficulty{}, err
		}
		base.Name = key
	}
	if !custom {
		return base, nil
	}
	return over.Apply(base)
}

// Difficulties lists the presets followed by custom difficulties from the
// file, all with overrides applied.
func (f FileConfig) Difficulties() ([]garden.Difficulty, error) {
	out := make([]garden.Difficulty, 0, len(f.Difficulty)+4)
	seen := map[string]bool{}
	for _, p := range garden.Presets() {
		d, err := f.ResolveDifficulty(p.Name)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
		seen[p.Name] = true
	}
	custom := make([]string, 0, len(f.Difficulty))
	for name := range f.Difficulty {
		key := strings.ToLower(name)
		if !seen[key] {
			custom = append(custom, key)
			seen[key] = true
		}
	}
	sort.Strings(custom)
	for _, name := range custom {
		d, err := f.ResolveDifficulty(name)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (f FileConfig) override(key string) (DifficultyConfig, bool) {
	for name, c := range f.Difficulty {
		if strings.EqualFold(name, key) {
			return c, true
		}
	}
	return DifficultyConfig{}, false
}

func (f FileConfig) unknownDifficulty(name string) error {
	names := make([]string, 0, len(f.Difficulty)+4)
	for _, p := range garden.Presets() {
		names = append(names, p.Name)
	}
	for n := range f.Difficulty {
		names = append(names, n)
	}
	sort.Strings(names)
	if s := garden.Suggest(name, names); s != "" {
		return fmt.Errorf("%w: difficulty %q (did you mean %q?)", garden.ErrUnknownName, name, s)
	}
	return fmt.Errorf("%w: difficulty %q (available: %s)", garden.ErrUnknownName, name, strings.Join(names, ", "))
}
