// Package model defines shared data structures.
package model

import "time"

// Config defines resolved play settings.
type Config struct {
	Difficulty   string
	Seed         int64
	GrowthPolicy string
	LogLevel     string
	LogFormat    string
	DBPath       string
}

// HistoryConfig defines filters for the attempt history.
type HistoryConfig struct {
	Difficulty string
	Since      *time.Time
	Last       int
	// Window is the moving average window for solve-time curves.
	Window int
}

// Attempt captures one finished play session. Attempts are an audit log;
// a garden cannot be resumed from one.
type Attempt struct {
	ID           string
	StartedAt    time.Time
	EndedAt      time.Time
	Difficulty   string
	GrowthPolicy string
	Seed         int64
	Solved       bool
	Harvested    int
	Target       int
	DurationMs   int64

	Waterings         int
	PoisonedWaterings int
	InfestedWaterings int
	Harvests          int
	Destroyed         int
	Debugs            int
	Decays            int
	BugBites          int
	Poisons           int
	Infestations      int
}

// DifficultyAggregate summarizes attempts for one difficulty.
type DifficultyAggregate struct {
	Difficulty    string
	Attempts      int
	Solved        int
	SolvedMsSum   int64
	Destroyed     int
	HarmWaterings int
}
