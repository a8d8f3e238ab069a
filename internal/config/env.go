package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GARDENGATE_"

// Environment keys, without the prefix.
const (
	EnvDifficulty   = "DIFFICULTY"
	EnvSeed         = "SEED"
	EnvGrowthPolicy = "GROWTH_POLICY"
	EnvLogLevel     = "LOG_LEVEL"
	EnvLogFormat    = "LOG_FORMAT"
	EnvDB           = "DB"
)

// LoadDotEnv loads KEY=value pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// EnvConfig reads GARDENGATE_* overrides through lookup, normally
// os.LookupEnv. Empty values count as unset.
func EnvConfig(lookup func(string) (string, bool)) (PlayConfig, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key string) *string {
		v, ok := lookup(EnvPrefix + key)
		v = strings.TrimSpace(v)
		if !ok || v == "" {
			return nil
		}
		return &v
	}

	var cfg PlayConfig
	cfg.Difficulty = get(EnvDifficulty)
	cfg.GrowthPolicy = get(EnvGrowthPolicy)
	cfg.LogLevel = get(EnvLogLevel)
	cfg.LogFormat = get(EnvLogFormat)
	cfg.DB = get(EnvDB)
	if raw := get(EnvSeed); raw != nil {
		seed, err := strconv.ParseInt(*raw, 10, 64)
		if err != nil {
			return PlayConfig{}, fmt.Errorf("invalid %s%s value: %w", EnvPrefix, EnvSeed, err)
		}
		cfg.Seed = &seed
	}
	return cfg, nil
}
