// Package telemetry writes headless run results as CSV.
package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/verte-zerg/gardengate/internal/autoplay"
	"github.com/verte-zerg/gardengate/internal/stats"
)

// ResultRow is one line of results.csv.
type ResultRow struct {
	Difficulty        string  `csv:"difficulty"`
	Seed              int64   `csv:"seed"`
	Solved            bool    `csv:"solved"`
	Harvested         int     `csv:"harvested"`
	Target            int     `csv:"target"`
	DurationSec       float64 `csv:"duration_s"`
	Steps             int     `csv:"steps"`
	Clicks            int     `csv:"clicks"`
	Waterings         int     `csv:"waterings"`
	PoisonedWaterings int     `csv:"poisoned_waterings"`
	InfestedWaterings int     `csv:"infested_waterings"`
	Harvests          int     `csv:"harvests"`
	Destroyed         int     `csv:"destroyed"`
	Debugs            int     `csv:"debugs"`
	Decays            int     `csv:"decays"`
	BugBites          int     `csv:"bug_bites"`
	Poisons           int     `csv:"poisons"`
	Infestations      int     `csv:"infestations"`
	QuietRolls        int     `csv:"quiet_rolls"`
}

// SummaryRow is one line of summary.csv.
type SummaryRow struct {
	Difficulty  string  `csv:"difficulty"`
	Runs        int     `csv:"runs"`
	Solved      int     `csv:"solved"`
	SolveRate   float64 `csv:"solve_rate"`
	MeanSolveS  float64 `csv:"mean_solve_s"`
	MedianSolve float64 `csv:"median_solve_s"`
	BestSolveS  float64 `csv:"best_solve_s"`
	MeanClicks  float64 `csv:"mean_clicks"`
	HarmPerRun  float64 `csv:"harm_per_run"`
}

// NewResultRow flattens a run result.
func NewResultRow(r autoplay.Result) ResultRow {
	c := r.Counters
	return ResultRow{
		Difficulty:        r.Difficulty,
		Seed:              r.Seed,
		Solved:            r.Solved,
		Harvested:         r.Harvested,
		Target:            r.Target,
		DurationSec:       r.Duration.Seconds(),
		Steps:             r.Steps,
		Clicks:            r.Clicks,
		Waterings:         c.Waterings,
		PoisonedWaterings: c.PoisonedWaterings,
		InfestedWaterings: c.InfestedWaterings,
		Harvests:          c.Harvests,
		Destroyed:         c.Destroyed,
		Debugs:            c.Debugs,
		Decays:            c.Decays,
		BugBites:          c.BugBites,
		Poisons:           c.Poisons,
		Infestations:      c.Infestations,
		QuietRolls:        c.QuietRolls,
	}
}

// OutputManager handles structured simulation output with CSV logging.
type OutputManager struct {
	dir         string
	resultsFile *os.File

	resultsHeaderWritten bool
}

// NewOutputManager creates the output directory and results.csv.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "results.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating results.csv: %w", err)
	}
	return &OutputManager{dir: dir, resultsFile: f}, nil
}

// Dir returns the output directory, or "" when output is disabled.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// WriteResult appends one run to results.csv.
func (om *OutputManager) WriteResult(r autoplay.Result) error {
	if om == nil {
		return nil
	}
	records := []ResultRow{NewResultRow(r)}
	if !om.resultsHeaderWritten {
		if err := gocsv.Marshal(records, om.resultsFile); err != nil {
			return fmt.Errorf("writing result: %w", err)
		}
		om.resultsHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.resultsFile); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	return nil
}

// WriteSummary replaces summary.csv with the given summaries.
func (om *OutputManager) WriteSummary(summaries []stats.ResultSummary) error {
	if om == nil {
		return nil
	}
	rows := make([]SummaryRow, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, SummaryRow{
			Difficulty:  s.Difficulty,
			Runs:        s.Runs,
			Solved:      s.Solved,
			SolveRate:   s.SolveRate,
			MeanSolveS:  s.MeanSolve.Seconds(),
			MedianSolve: s.MedianSolve.Seconds(),
			BestSolveS:  s.BestSolve.Seconds(),
			MeanClicks:  s.MeanClicks,
			HarmPerRun:  s.HarmPerRun,
		})
	}
	f, err := os.Create(filepath.Join(om.dir, "summary.csv"))
	if err != nil {
		return fmt.Errorf("creating summary.csv: %w", err)
	}
	if err := gocsv.Marshal(rows, f); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing summary: %w", err)
	}
	return f.Close()
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var errs []error
	if om.resultsFile != nil {
		if err := om.resultsFile.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
