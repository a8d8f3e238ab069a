package garden

import (
	"fmt"
	"time"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) time.Time {
	return t0.Add(d)
}

// scriptedSource replays fixed draws. When a script runs out it keeps
// returning its last value, or 0 if it never had one.
type scriptedSource struct {
	ints   []int
	floats []float64
}

func (s *scriptedSource) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	if len(s.ints) > 1 {
		s.ints = s.ints[1:]
	}
	return v % n
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	if len(s.floats) > 1 {
		s.floats = s.floats[1:]
	}
	return v
}

type fakeTimer struct {
	delay   time.Duration
	f       func()
	calls   int
	stopped bool
}

func (ft *fakeTimer) AfterFunc(d time.Duration, f func()) func() bool {
	ft.calls++
	ft.delay = d
	ft.f = f
	return func() bool {
		wasPending := !ft.stopped
		ft.stopped = true
		return wasPending
	}
}

func (ft *fakeTimer) Fire() {
	if ft.f != nil && !ft.stopped {
		ft.f()
	}
}

type recorder struct {
	calls    []string
	progress [2]int
	tool     Tool
	events   []Hazard
	won      int
}

func (r *recorder) Stage(id, stage int) {
	r.calls = append(r.calls, fmt.Sprintf("stage %d=%d", id, stage))
}

func (r *recorder) Overlay(id int, o Overlay, visible bool) {
	name := "water"
	if o == OverlayBugs {
		name = "bugs"
	}
	r.calls = append(r.calls, fmt.Sprintf("overlay %d %s=%t", id, name, visible))
}

func (r *recorder) Won() { r.won++ }

func (r *recorder) Progress(harvested, target int) { r.progress = [2]int{harvested, target} }

func (r *recorder) Tool(t Tool) { r.tool = t }

func (r *recorder) Event(h Hazard) { r.events = append(r.events, h) }

func quietDifficulty(growth time.Duration, target int) Difficulty {
	return Difficulty{
		Name:          "test",
		GrowthCadence: growth,
		EventCadence:  time.Hour,
		EventChance:   0,
		EventPool:     []Hazard{HazardNothing},
		HarvestTarget: target,
	}
}
