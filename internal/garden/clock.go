package garden

import "time"

// GrowthClock applies neglect decay on a fixed cadence. Only started plants
// are evaluated: a plant that was never watered stays dormant.
type GrowthClock struct {
	cadence time.Duration
	policy  GrowthPolicy
	last    time.Time
}

// NewGrowthClock returns a clock for the given cadence and policy.
func NewGrowthClock(cadence time.Duration, policy GrowthPolicy) *GrowthClock {
	if policy == "" {
		policy = PerPlantCadence
	}
	return &GrowthClock{cadence: cadence, policy: policy}
}

// Policy returns the cadence policy in use.
func (c *GrowthClock) Policy() GrowthPolicy {
	return c.policy
}

// Start anchors the shared cadence at now.
func (c *GrowthClock) Start(now time.Time) {
	c.last = now
}

// Advance evaluates every plant whose cadence has elapsed at now, in garden
// order, and calls visit after each one with whether it decayed. Returning
// false from visit stops the pass.
func (c *GrowthClock) Advance(plants []Plant, now time.Time, visit func(i int, decayed bool) bool) {
	if c.policy == SharedCadence {
		if now.Sub(c.last) < c.cadence {
			return
		}
		c.last = now
	}
	for i := range plants {
		p := &plants[i]
		if !p.Started {
			continue
		}
		if c.policy == PerPlantCadence && now.Sub(p.LastTick) < c.cadence {
			continue
		}
		decayed := decay(p)
		p.LastTick = now
		if visit != nil && !visit(i, decayed) {
			return
		}
	}
}

// decay drops one stage from a neglected plant and clears the watering credit.
func decay(p *Plant) bool {
	decayed := false
	if p.Stage > MinStage && !p.WateredThisTick {
		p.Stage--
		decayed = true
	}
	p.WateredThisTick = false
	return decayed
}
