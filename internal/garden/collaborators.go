package garden

import "time"

// Overlay is a visual flag drawn over a plant.
type Overlay int

// Overlays.
const (
	OverlayWater Overlay = iota
	OverlayBugs
)

// Renderer receives imagery updates. It is write-only: the simulation never
// reads presentation state back. Implementations are called with the
// simulation lock held and must not call back into the Simulation.
type Renderer interface {
	Stage(plantID, stage int)
	Overlay(plantID int, overlay Overlay, visible bool)
	// Won switches the presentation into its win state.
	Won()
}

// Status receives the textual progress display. Same locking rules as
// Renderer.
type Status interface {
	Progress(harvested, target int)
	Tool(tool Tool)
	// Event reports the resolution of each event roll.
	Event(resolved Hazard)
}

// AfterFunc runs f once after d on another goroutine and returns a function
// that cancels it. time.AfterFunc fits after adapting its return value.
type AfterFunc func(d time.Duration, f func()) (stop func() bool)

func timerAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

type nopRenderer struct{}

func (nopRenderer) Stage(int, int)             {}
func (nopRenderer) Overlay(int, Overlay, bool) {}
func (nopRenderer) Won()                       {}

type nopStatus struct{}

func (nopStatus) Progress(int, int) {}
func (nopStatus) Tool(Tool)         {}
func (nopStatus) Event(Hazard)      {}
