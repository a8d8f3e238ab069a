package garden

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DefaultSuccessDelay is the grace period between winning and OnSuccess.
const DefaultSuccessDelay = 5 * time.Second

// MaxPlants bounds the garden size.
const MaxPlants = 9

// Options wires a Simulation to its collaborators. Zero values pick
// defaults: six plants, per-plant cadence, seeded sources, no-op
// collaborators, a real timer and a discarding logger.
type Options struct {
	Plants int
	Policy GrowthPolicy
	// Seed derives Events and Chances when they are nil.
	Seed    int64
	Events  Source
	Chances Source

	Renderer  Renderer
	Status    Status
	OnSuccess func()
	// SuccessDelay defaults to DefaultSuccessDelay.
	SuccessDelay time.Duration
	AfterFunc    AfterFunc
	Logger       *slog.Logger
}

// ActionKind identifies a queued input action.
type ActionKind int

// Action kinds.
const (
	ActionSelectTool ActionKind = iota + 1
	ActionClickPlant
)

// Action is a user input delivered through Enqueue.
type Action struct {
	Kind    ActionKind
	Tool    Tool
	PlantID int
}

// SelectToolAction builds a queued tool selection.
func SelectToolAction(t Tool) Action {
	return Action{Kind: ActionSelectTool, Tool: t}
}

// ClickPlantAction builds a queued plant click.
func ClickPlantAction(id int) Action {
	return Action{Kind: ActionClickPlant, PlantID: id}
}

// Counters tallies what happened during a session.
type Counters struct {
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
	QuietRolls        int
}

// State is a point-in-time copy of the garden.
type State struct {
	Plants    []Plant
	Tool      Tool
	Harvested int
	Target    int
	Active    Hazard
	Running   bool
	Won       bool
	Now       time.Time
}

// Simulation owns one garden for one session. All mutation goes through its
// methods, which serialize on a single lock, so ticks and input may arrive
// from different goroutines.
type Simulation struct {
	mu sync.Mutex

	difficulty Difficulty
	plants     []Plant
	tool       Tool
	harvested  int
	active     Hazard
	queue      []Action
	counters   Counters
	now        time.Time

	started bool
	running bool
	won     bool

	growth *GrowthClock
	events *EventScheduler

	renderer     Renderer
	status       Status
	onSuccess    func()
	successDelay time.Duration
	afterFunc    AfterFunc
	stopSuccess  func() bool
	successOnce  sync.Once
	log          *slog.Logger
}

// New validates d and builds a dormant garden. Call Start before ticking.
func New(d Difficulty, opts Options) (*Simulation, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	count := opts.Plants
	if count == 0 {
		count = DefaultPlantCount
	}
	if count < 1 || count > MaxPlants {
		return nil, fmt.Errorf("plant count %d outside [1,%d]", count, MaxPlants)
	}
	policy := opts.Policy
	if policy == "" {
		policy = PerPlantCadence
	}
	if policy != PerPlantCadence && policy != SharedCadence {
		return nil, unknownName("growth policy", string(policy), []string{string(PerPlantCadence), string(SharedCadence)})
	}

	events, chances := opts.Events, opts.Chances
	if events == nil || chances == nil {
		seededEvents, seededChances := NewSources(opts.Seed)
		if events == nil {
			events = seededEvents
		}
		if chances == nil {
			chances = seededChances
		}
	}

	s := &Simulation{
		difficulty:   d,
		plants:       newPlants(count),
		tool:         ToolWater,
		growth:       NewGrowthClock(d.GrowthCadence, policy),
		events:       NewEventScheduler(d.EventCadence, d.EventChance, d.EventPool, events, chances),
		renderer:     opts.Renderer,
		status:       opts.Status,
		onSuccess:    opts.OnSuccess,
		successDelay: opts.SuccessDelay,
		afterFunc:    opts.AfterFunc,
		log:          opts.Logger,
	}
	if s.renderer == nil {
		s.renderer = nopRenderer{}
	}
	if s.status == nil {
		s.status = nopStatus{}
	}
	if s.successDelay <= 0 {
		s.successDelay = DefaultSuccessDelay
	}
	if s.afterFunc == nil {
		s.afterFunc = timerAfterFunc
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}
	s.log = s.log.With("difficulty", d.Name)
	return s, nil
}

// Difficulty returns the configuration the garden was built with.
func (s *Simulation) Difficulty() Difficulty {
	return s.difficulty
}

// Start begins the session with both clocks anchored at now.
func (s *Simulation) Start(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true
	s.running = true
	s.now = now
	s.growth.Start(now)
	s.events.Start(now)
	for i := range s.plants {
		s.renderer.Stage(i, s.plants[i].Stage)
	}
	s.status.Tool(s.tool)
	s.status.Progress(s.harvested, s.difficulty.HarvestTarget)
	s.log.Info("garden started",
		"plants", len(s.plants),
		"policy", s.growth.Policy(),
		"target", s.difficulty.HarvestTarget,
	)
	return nil
}

// Tick advances the garden to now: growth first, then the event roll, then
// any queued input.
func (s *Simulation) Tick(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return ErrNotRunning
	}
	if now.Before(s.now) {
		return fmt.Errorf("%w: %s < %s", ErrNonMonotonic, now.Format(time.RFC3339Nano), s.now.Format(time.RFC3339Nano))
	}
	s.now = now

	s.growth.Advance(s.plants, now, func(i int, decayed bool) bool {
		if decayed {
			s.counters.Decays++
			s.renderer.Stage(i, s.plants[i].Stage)
		}
		s.renderer.Overlay(i, OverlayWater, false)
		return !s.checkWin()
	})
	if !s.running {
		return nil
	}

	if s.events.Due(now) {
		s.rollEvent(now)
	}

	s.drainQueue()
	return nil
}

// SelectTool changes the tool used by subsequent clicks.
func (s *Simulation) SelectTool(t Tool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return ErrNotRunning
	}
	return s.selectTool(t)
}

// ClickPlant applies the selected tool to plant id.
func (s *Simulation) ClickPlant(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return ErrNotRunning
	}
	return s.click(id)
}

// Enqueue buffers an action until the next Tick.
func (s *Simulation) Enqueue(a Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return ErrNotRunning
	}
	s.queue = append(s.queue, a)
	return nil
}

// Stop tears the session down. No tick or action mutates the garden
// afterwards and a pending success callback is cancelled.
func (s *Simulation) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = true
	s.running = false
	s.queue = nil
	if s.stopSuccess != nil {
		s.stopSuccess()
		s.stopSuccess = nil
	}
}

// Snapshot copies the current garden state.
func (s *Simulation) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Plants:    append([]Plant(nil), s.plants...),
		Tool:      s.tool,
		Harvested: s.harvested,
		Target:    s.difficulty.HarvestTarget,
		Active:    s.active,
		Running:   s.running,
		Won:       s.won,
		Now:       s.now,
	}
}

// Counters returns the session tallies.
func (s *Simulation) Counters() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters
}

func (s *Simulation) selectTool(t Tool) error {
	switch t {
	case ToolWater, ToolDebug, ToolHarvest:
	default:
		return unknownName("tool", string(t), []string{string(ToolWater), string(ToolDebug), string(ToolHarvest)})
	}
	s.tool = t
	s.status.Tool(t)
	return nil
}

func (s *Simulation) click(id int) error {
	if id < 0 || id >= len(s.plants) {
		s.log.Error("click outside garden", "plant", id, "plants", len(s.plants))
		return fmt.Errorf("%w: %d", ErrUnknownPlant, id)
	}
	before := s.plants[id]
	next, out := ApplyTool(before, s.tool, s.active, s.now)
	checkPlant(next)
	s.plants[id] = next
	s.harvested += out.Credit
	if s.harvested < 0 {
		panic(fmt.Sprintf("garden: harvest count %d is negative", s.harvested))
	}
	s.present(id, out)
	if out.Kind == OutcomeHarvested || out.Kind == OutcomeDestroyed {
		s.checkWin()
	}
	return nil
}

func (s *Simulation) present(id int, out Outcome) {
	p := s.plants[id]
	switch out.Kind {
	case OutcomeWatered:
		s.counters.Waterings++
		if out.Poisoned {
			s.counters.PoisonedWaterings++
		}
		if out.Infested {
			s.counters.InfestedWaterings++
		}
		s.renderer.Overlay(id, OverlayWater, true)
		if out.StageDelta != 0 {
			s.renderer.Stage(id, p.Stage)
		}
	case OutcomeHarvested, OutcomeDestroyed:
		if out.Kind == OutcomeHarvested {
			s.counters.Harvests++
		} else {
			s.counters.Destroyed++
		}
		s.renderer.Overlay(id, OverlayWater, false)
		s.renderer.Overlay(id, OverlayBugs, false)
		s.renderer.Stage(id, p.Stage)
		s.status.Progress(s.harvested, s.difficulty.HarvestTarget)
		s.log.Debug("plant cleared", "plant", id, "outcome", out.Kind.String(), "harvested", s.harvested)
	case OutcomeDebugged:
		s.counters.Debugs++
		s.renderer.Overlay(id, OverlayBugs, false)
	}
}

func (s *Simulation) rollEvent(now time.Time) {
	r := s.events.Roll(s.plants, now)
	for _, i := range r.Bitten {
		s.counters.BugBites++
		s.renderer.Stage(i, s.plants[i].Stage)
	}
	s.active = r.Active
	switch r.Resolved {
	case HazardPoison:
		s.counters.Poisons++
	case HazardBugs:
		s.counters.Infestations++
		for i := range s.plants {
			s.renderer.Overlay(i, OverlayBugs, true)
		}
	default:
		s.counters.QuietRolls++
	}
	s.status.Event(r.Resolved)
	s.log.Debug("event rolled", "candidate", string(r.Candidate), "resolved", string(r.Resolved), "bitten", len(r.Bitten))
}

func (s *Simulation) drainQueue() {
	for len(s.queue) > 0 && s.running {
		a := s.queue[0]
		s.queue = s.queue[1:]
		var err error
		switch a.Kind {
		case ActionSelectTool:
			err = s.selectTool(a.Tool)
		case ActionClickPlant:
			err = s.click(a.PlantID)
		default:
			err = fmt.Errorf("unknown action kind %d", a.Kind)
		}
		if err != nil {
			s.log.Warn("queued action rejected", "kind", a.Kind, "error", err)
		}
	}
	s.queue = nil
}

// checkWin tears the session down once the target is reached and schedules
// the success callback. It reports whether the garden is won.
func (s *Simulation) checkWin() bool {
	if s.won {
		return true
	}
	if !s.running || s.harvested < s.difficulty.HarvestTarget {
		return false
	}
	s.running = false
	s.won = true
	s.queue = nil
	s.renderer.Won()
	s.log.Info("garden won", "harvested", s.harvested, "target", s.difficulty.HarvestTarget)
	s.stopSuccess = s.afterFunc(s.successDelay, s.fireSuccess)
	return true
}

func (s *Simulation) fireSuccess() {
	s.successOnce.Do(func() {
		if s.onSuccess != nil {
			s.onSuccess()
		}
	})
}
