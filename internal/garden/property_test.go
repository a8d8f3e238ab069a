package garden

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Random play on every preset must keep each plant inside the stage bounds
// and the harvest count monotonic.
func TestRandomPlayKeepsInvariants(t *testing.T) {
	for _, d := range Presets() {
		for seed := int64(1); seed <= 20; seed++ {
			d, seed := d, seed
			t.Run(d.Name, func(t *testing.T) {
				timer := &fakeTimer{}
				sim, err := New(d, Options{Seed: seed, AfterFunc: timer.AfterFunc})
				require.NoError(t, err)
				require.NoError(t, sim.Start(at(0)))

				// #nosec G404
				r := rand.New(rand.NewPCG(uint64(seed), 99))
				now := time.Duration(0)
				lastHarvested := 0
				for step := 0; step < 2000; step++ {
					switch r.IntN(4) {
					case 0:
						now += time.Duration(r.IntN(2000)) * time.Millisecond
						if err := sim.Tick(at(now)); err != nil {
							require.ErrorIs(t, err, ErrNotRunning)
						}
					case 1:
						_ = sim.SelectTool(Tools[r.IntN(len(Tools))])
					default:
						_ = sim.ClickPlant(r.IntN(DefaultPlantCount))
					}

					st := sim.Snapshot()
					for _, p := range st.Plants {
						require.GreaterOrEqual(t, p.Stage, MinStage)
						require.LessOrEqual(t, p.Stage, MaxStage)
						if !p.Started {
							require.Equal(t, MinStage, p.Stage, "unstarted plants stay at the seed stage")
						}
					}
					require.GreaterOrEqual(t, st.Harvested, lastHarvested)
					require.LessOrEqual(t, st.Harvested, st.Target)
					lastHarvested = st.Harvested
					if st.Won {
						require.False(t, st.Running)
						require.Equal(t, st.Target, st.Harvested)
						require.Equal(t, 1, timer.calls)
					}
				}
			})
		}
	}
}
