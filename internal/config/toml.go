// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Play PlayConfig `toml:"play"`
	// Difficulty overrides presets by name. A name that matches no preset
	// defines a custom difficulty based on the default preset.
	Difficulty map[string]DifficultyConfig `toml:"difficulty"`
}

// PlayConfig maps play-related settings. Nil means unset.
type PlayConfig struct {
	Difficulty   *string `toml:"difficulty"`
	Seed         *int64  `toml:"seed"`
	GrowthPolicy *string `toml:"growth-policy"`
	LogLevel     *string `toml:"log-level"`
	LogFormat    *string `toml:"log-format"`
	DB           *string `toml:"db"`
}

// DifficultyConfig maps one [difficulty.<name>] table. Cadences are Go
// duration strings such as "4s" or "750ms".
type DifficultyConfig struct {
	GrowthCadence *string  `toml:"growth-cadence"`
	EventCadence  *string  `toml:"event-cadence"`
	EventChance   *float64 `toml:"event-chance"`
	EventPool     []string `toml:"event-pool"`
	HarvestTarget *int     `toml:"harvest-target"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Merge returns p with every field set in over replacing its value.
func (p PlayConfig) Merge(over PlayConfig) PlayConfig {
	if over.Difficulty != nil {
		p.Difficulty = over.Difficulty
	}
	if over.Seed != nil {
		p.Seed = over.Seed
	}
	if over.GrowthPolicy != nil {
		p.GrowthPolicy = over.GrowthPolicy
	}
	if over.LogLevel != nil {
		p.LogLevel = over.LogLevel
	}
	if over.LogFormat != nil {
		p.LogFormat = over.LogFormat
	}
	if over.DB != nil {
		p.DB = over.DB
	}
	return p
}
