package autoplay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/verte-zerg/gardengate/internal/garden"
)

// Defaults for RunConfig.
const (
	DefaultStep        = 100 * time.Millisecond
	DefaultMaxDuration = 15 * time.Minute
)

// RunConfig tunes one headless run.
type RunConfig struct {
	Seed   int64
	Player Player
	Policy garden.GrowthPolicy
	Plants int
	// Step is the virtual frame length. The player sees the state after a
	// tick and its actions land on the next one.
	Step        time.Duration
	MaxDuration time.Duration
	Logger      *slog.Logger
}

// Result describes one headless run.
type Result struct {
	Difficulty string
	Seed       int64
	Solved     bool
	Harvested  int
	Target     int
	// Duration is virtual time until the success callback fired, or until
	// the run gave up.
	Duration time.Duration
	Steps    int
	Clicks   int
	Counters garden.Counters
}

// virtualTimer schedules the success callback on the run's clock.
type virtualTimer struct {
	now     time.Time
	due     time.Time
	f       func()
	stopped bool
}

func (v *virtualTimer) afterFunc(d time.Duration, f func()) func() bool {
	v.due = v.now.Add(d)
	v.f = f
	return func() bool {
		pending := v.f != nil && !v.stopped
		v.stopped = true
		return pending
	}
}

func (v *virtualTimer) fire() {
	if v.f == nil || v.stopped || v.now.Before(v.due) {
		return
	}
	f := v.f
	v.f = nil
	f()
}

// Run plays d to completion in virtual time. It stops when the success
// callback fires, when MaxDuration elapses, or when ctx is done.
func Run(ctx context.Context, d garden.Difficulty, cfg RunConfig) (Result, error) {
	if cfg.Step <= 0 {
		cfg.Step = DefaultStep
	}
	if cfg.MaxDuration <= 0 {
		cfg.MaxDuration = DefaultMaxDuration
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	start := time.Unix(0, 0).UTC()
	timer := &virtualTimer{now: start}
	res := Result{Difficulty: d.Name, Seed: cfg.Seed, Target: d.HarvestTarget}
	sim, err := garden.New(d, garden.Options{
		Plants:    cfg.Plants,
		Policy:    cfg.Policy,
		Seed:      cfg.Seed,
		OnSuccess: func() { res.Solved = true },
		AfterFunc: timer.afterFunc,
		Logger:    log,
	})
	if err != nil {
		return Result{}, err
	}
	defer sim.Stop()
	if err := sim.Start(start); err != nil {
		return Result{}, err
	}

	for elapsed := time.Duration(0); elapsed <= cfg.MaxDuration; elapsed += cfg.Step {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		now := start.Add(elapsed)
		timer.now = now
		res.Duration = elapsed
		res.Steps++

		if err := sim.Tick(now); err != nil && !errors.Is(err, garden.ErrNotRunning) {
			return res, fmt.Errorf("tick at %s: %w", elapsed, err)
		}
		timer.fire()
		if res.Solved {
			break
		}
		st := sim.Snapshot()
		if !st.Running {
			continue
		}
		for _, a := range cfg.Player.Plan(st) {
			if a.Kind == garden.ActionClickPlant {
				res.Clicks++
			}
			if err := sim.Enqueue(a); err != nil {
				return res, err
			}
		}
	}

	st := sim.Snapshot()
	res.Harvested = st.Harvested
	res.Counters = sim.Counters()
	log.Debug("autoplay finished",
		"seed", cfg.Seed,
		"solved", res.Solved,
		"duration", res.Duration,
		"clicks", res.Clicks,
	)
	return res, nil
}

// RunMany plays runs consecutive seeds starting at cfg.Seed.
func RunMany(ctx context.Context, d garden.Difficulty, cfg RunConfig, runs int) ([]Result, error) {
	results := make([]Result, 0, runs)
	base := cfg.Seed
	for i := 0; i < runs; i++ {
		cfg.Seed = base + int64(i)
		res, err := Run(ctx, d, cfg)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
