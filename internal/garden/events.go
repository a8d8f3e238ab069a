package garden

import "time"

// EventScheduler rolls hazards on its own cadence, independent of growth.
type EventScheduler struct {
	cadence time.Duration
	chance  float64
	pool    []Hazard
	events  Source
	chances Source
	last    time.Time
}

// Roll is the result of one event cycle.
type Roll struct {
	// Bitten lists plants that lost a stage to an existing infestation.
	Bitten []int
	// Candidate is the hazard drawn from the pool before the chance check.
	Candidate Hazard
	// Resolved is what happened this cycle: poison, bugs or nothing.
	Resolved Hazard
	// Active is the hazard that stays in effect until the next roll.
	Active Hazard
}

// NewEventScheduler builds a scheduler over pool. events and chances must be
// independent sources.
func NewEventScheduler(cadence time.Duration, chance float64, pool []Hazard, events, chances Source) *EventScheduler {
	return &EventScheduler{
		cadence: cadence,
		chance:  chance,
		pool:    append([]Hazard(nil), pool...),
		events:  events,
		chances: chances,
	}
}

// Start anchors the event cadence at now.
func (s *EventScheduler) Start(now time.Time) {
	s.last = now
}

// Due reports whether a roll is owed at now.
func (s *EventScheduler) Due(now time.Time) bool {
	return now.Sub(s.last) >= s.cadence
}

// Roll runs one cycle against plants: existing infestations bite first, then
// a hazard is drawn and, if the chance check passes, applied.
func (s *EventScheduler) Roll(plants []Plant, now time.Time) Roll {
	s.last = now
	var r Roll

	for i := range plants {
		p := &plants[i]
		if !p.Bugs {
			continue
		}
		if p.Stage > MinStage {
			p.Stage--
			r.Bitten = append(r.Bitten, i)
		}
	}

	r.Candidate = s.pool[s.events.IntN(len(s.pool))]
	// chance 0 never fires and chance 1 always fires.
	if s.chances.Float64() >= s.chance {
		r.Resolved = HazardNothing
		return r
	}

	switch r.Candidate {
	case HazardPoison:
		r.Resolved = HazardPoison
		r.Active = HazardPoison
	case HazardBugs:
		r.Resolved = HazardBugs
		r.Active = HazardBugs
		for i := range plants {
			plants[i].Bugs = true
		}
	default:
		r.Resolved = HazardNothing
	}
	return r
}
