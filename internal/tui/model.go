// Package tui provides the Bubble Tea garden interface.
package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/gardengate/internal/garden"
)

const (
	frameInterval = 100 * time.Millisecond
	colorInterval = 500 * time.Millisecond
)

var titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7BC950")).Bold(true)

type (
	frameMsg   time.Time
	colorMsg   struct{}
	successMsg struct{}
)

// Options configures a play session.
type Options struct {
	Difficulty garden.Difficulty
	Plants     int
	Policy     garden.GrowthPolicy
	Seed       int64
	Logger     *slog.Logger
	// Clock defaults to time.Now.
	Clock        func() time.Time
	SuccessDelay time.Duration
	AfterFunc    garden.AfterFunc
}

// Model implements the Bubble Tea garden UI.
type Model struct {
	sim   *garden.Simulation
	board *board
	keys  keyMap
	help  help.Model
	clock func() time.Time
	log   *slog.Logger

	width  int
	height int
	cursor int

	startedAt time.Time
	endedAt   time.Time

	success      chan struct{}
	succeeded    bool
	colorTicking bool
	winColors    []lipgloss.Color
	rng          *rand.Rand
}

// NewModel builds and starts a garden session.
func NewModel(opts Options) (*Model, error) {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	plants := opts.Plants
	if plants == 0 {
		plants = garden.DefaultPlantCount
	}
	b := newBoard(max(plants, 0))
	success := make(chan struct{}, 1)
	sim, err := garden.New(opts.Difficulty, garden.Options{
		Plants:   plants,
		Policy:   opts.Policy,
		Seed:     opts.Seed,
		Renderer: b,
		Status:   b,
		OnSuccess: func() {
			select {
			case success <- struct{}{}:
			default:
			}
		},
		SuccessDelay: opts.SuccessDelay,
		AfterFunc:    opts.AfterFunc,
		Logger:       log,
	})
	if err != nil {
		return nil, err
	}
	m := &Model{
		sim:     sim,
		board:   b,
		keys:    newKeyMap(plants),
		help:    help.New(),
		clock:   clock,
		log:     log,
		success: success,
		// #nosec G404
		rng: rand.New(rand.NewPCG(uint64(opts.Seed), 0x5eed)),
	}
	m.startedAt = clock()
	if err := sim.Start(m.startedAt); err != nil {
		return nil, err
	}
	return m, nil
}

// Simulation exposes the session for result reporting once the UI exits.
func (m *Model) Simulation() *garden.Simulation {
	return m.sim
}

// Solved reports whether the success callback fired.
func (m *Model) Solved() bool {
	return m.succeeded
}

// StartedAt returns when the garden started.
func (m *Model) StartedAt() time.Time {
	return m.startedAt
}

// EndedAt returns when the garden was won or abandoned.
func (m *Model) EndedAt() time.Time {
	return m.endedAt
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(frameTick(), m.waitSuccess())
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func colorTick() tea.Cmd {
	return tea.Tick(colorInterval, func(time.Time) tea.Msg { return colorMsg{} })
}

func (m *Model) waitSuccess() tea.Cmd {
	return func() tea.Msg {
		<-m.success
		return successMsg{}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case frameMsg:
		if m.board.won {
			return m, nil
		}
		if err := m.sim.Tick(m.clock()); err != nil {
			m.report("tick", err)
		}
		return m, tea.Batch(frameTick(), m.afterInput())
	case colorMsg:
		if m.succeeded {
			return m, nil
		}
		m.rerollColors()
		return m, colorTick()
	case successMsg:
		m.succeeded = true
		m.log.Info("gate solved", "elapsed", m.endedAt.Sub(m.startedAt))
		return m, tea.Quit
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.endedAt.IsZero() {
			m.endedAt = m.clock()
		}
		m.sim.Stop()
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.Water):
		m.selectTool(garden.ToolWater)
	case key.Matches(msg, m.keys.Debug):
		m.selectTool(garden.ToolDebug)
	case key.Matches(msg, m.keys.Harvest):
		m.selectTool(garden.ToolHarvest)
	case key.Matches(msg, m.keys.Left):
		m.cursor = (m.cursor + len(m.board.stages) - 1) % len(m.board.stages)
		return nil
	case key.Matches(msg, m.keys.Right):
		m.cursor = (m.cursor + 1) % len(m.board.stages)
		return nil
	case key.Matches(msg, m.keys.Plant):
		id := int(msg.Runes[0] - '1')
		if id >= len(m.board.stages) {
			return nil
		}
		m.cursor = id
		m.click(id)
	case key.Matches(msg, m.keys.Click):
		m.click(m.cursor)
	default:
		return nil
	}
	return m.afterInput()
}

func (m *Model) selectTool(t garden.Tool) {
	if err := m.sim.SelectTool(t); err != nil {
		m.report("select tool", err)
	}
}

func (m *Model) click(id int) {
	if err := m.sim.ClickPlant(id); err != nil {
		m.report("click", err)
	}
}

// afterInput starts the win animation the first time the garden is won.
func (m *Model) afterInput() tea.Cmd {
	if !m.board.won || m.colorTicking {
		return nil
	}
	m.colorTicking = true
	m.endedAt = m.clock()
	m.rerollColors()
	return colorTick()
}

func (m *Model) report(op string, err error) {
	if errors.Is(err, garden.ErrNotRunning) {
		return
	}
	m.log.Warn("input rejected", "op", op, "error", err)
}

func (m *Model) rerollColors() {
	n := len([]rune(winText))
	if len(m.winColors) != n {
		m.winColors = make([]lipgloss.Color, n)
	}
	for i := range m.winColors {
		m.winColors[i] = lipgloss.Color(fmt.Sprintf("#%06X", m.rng.IntN(0x1000000)))
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	title := titleStyle.Render("gardengate") + footerStyle.Render(" · "+m.sim.Difficulty().Name)

	var body string
	if m.board.won {
		body = lipgloss.JoinVertical(lipgloss.Center,
			renderWin(m.winColors),
			"",
			footerStyle.Render("Verifying your harvest..."),
		)
	} else {
		tiles := make([]string, len(m.board.stages))
		for i := range tiles {
			tiles[i] = m.board.renderTile(i, i == m.cursor)
		}
		body = layoutTiles(tiles, m.width)
	}

	parts := []string{title, "", body, "", m.board.renderStatus(m.width)}
	if !m.board.won {
		parts = append(parts, m.help.View(m.keys))
	}
	content := strings.Join(parts, "\n")
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
