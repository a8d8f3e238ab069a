package garden

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventSchedulerDue(t *testing.T) {
	s := NewEventScheduler(3*time.Second, 1, []Hazard{HazardNothing}, &scriptedSource{}, &scriptedSource{})
	s.Start(at(0))

	assert.False(t, s.Due(at(2999*time.Millisecond)))
	assert.True(t, s.Due(at(3*time.Second)))

	s.Roll(nil, at(3*time.Second))
	assert.False(t, s.Due(at(5*time.Second)))
	assert.True(t, s.Due(at(6*time.Second)))
}

func TestEventRollResolution(t *testing.T) {
	pool := []Hazard{HazardPoison, HazardBugs, HazardNothing}
	tests := []struct {
		name     string
		pick     int
		roll     float64
		chance   float64
		resolved Hazard
		active   Hazard
	}{
		{"poison fires", 0, 0.2, 0.5, HazardPoison, HazardPoison},
		{"bugs fire", 1, 0.2, 0.5, HazardBugs, HazardBugs},
		{"nothing drawn", 2, 0.2, 0.5, HazardNothing, HazardNone},
		{"chance fails", 0, 0.5, 0.5, HazardNothing, HazardNone},
		{"chance zero never fires", 0, 0, 0, HazardNothing, HazardNone},
		{"chance one always fires", 1, 0.999, 1, HazardBugs, HazardBugs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewEventScheduler(time.Second, tt.chance, pool,
				&scriptedSource{ints: []int{tt.pick}},
				&scriptedSource{floats: []float64{tt.roll}},
			)
			plants := []Plant{{ID: 0, Stage: 2, Started: true}, {ID: 1}}
			r := s.Roll(plants, at(time.Second))

			assert.Equal(t, pool[tt.pick], r.Candidate)
			assert.Equal(t, tt.resolved, r.Resolved)
			assert.Equal(t, tt.active, r.Active)
			infested := tt.resolved == HazardBugs
			assert.Equal(t, infested, plants[0].Bugs)
			assert.Equal(t, infested, plants[1].Bugs, "bugs reach dormant plants too")
		})
	}
}

func TestEventRollBitesBeforeNewInfestation(t *testing.T) {
	s := NewEventScheduler(time.Second, 1, []Hazard{HazardBugs}, &scriptedSource{}, &scriptedSource{})
	plants := []Plant{
		{ID: 0, Stage: 3, Started: true, Bugs: true},
		{ID: 1, Stage: 3, Started: true},
		{ID: 2, Stage: 0, Started: true, Bugs: true},
	}

	r := s.Roll(plants, at(time.Second))
	assert.Equal(t, []int{0}, r.Bitten)
	assert.Equal(t, 2, plants[0].Stage)
	assert.Equal(t, 3, plants[1].Stage, "newly infested plants are not bitten in the same roll")
	assert.Equal(t, 0, plants[2].Stage)

	r = s.Roll(plants, at(2*time.Second))
	assert.Equal(t, []int{0, 1}, r.Bitten)
	assert.Equal(t, 1, plants[0].Stage)
	assert.Equal(t, 2, plants[1].Stage)
}

func TestEventSchedulerCopiesPool(t *testing.T) {
	pool := []Hazard{HazardPoison}
	s := NewEventScheduler(time.Second, 1, pool, &scriptedSource{}, &scriptedSource{})
	pool[0] = HazardNothing

	r := s.Roll(nil, at(time.Second))
	assert.Equal(t, HazardPoison, r.Resolved)
}
