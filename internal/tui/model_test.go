package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/gardengate/internal/garden"
)

type fixture struct {
	m     *Model
	now   time.Time
	delay time.Duration
	fire  func()
	stops int
}

func newFixture(t *testing.T, preset string) *fixture {
	t.Helper()
	d, err := garden.Preset(preset)
	require.NoError(t, err)
	f := &fixture{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	m, err := NewModel(Options{
		Difficulty: d,
		Seed:       7,
		Clock:      func() time.Time { return f.now },
		AfterFunc: func(d time.Duration, fn func()) func() bool {
			f.delay = d
			f.fire = fn
			return func() bool {
				f.stops++
				return true
			}
		},
	})
	require.NoError(t, err)
	f.m = m
	return f
}

func (f *fixture) press(keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = f.m.Update(keyMsg(k))
	}
	return cmd
}

func (f *fixture) frame(step time.Duration) {
	f.now = f.now.Add(step)
	f.m.Update(frameMsg(f.now))
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestModelWinsAndReportsSuccess(t *testing.T) {
	f := newFixture(t, garden.DifficultyDebug)
	require.NotNil(t, f.m.Init())

	// Grow plants 1 and 2 to bloom, one watering per cadence.
	for i := 0; i < garden.MaxStage; i++ {
		f.press("1", "2")
		if i < garden.MaxStage-1 {
			f.frame(500 * time.Millisecond)
		}
	}
	st := f.m.Simulation().Snapshot()
	require.Equal(t, garden.MaxStage, st.Plants[0].Stage)
	require.Equal(t, garden.MaxStage, st.Plants[1].Stage)

	f.press("h", "1")
	assert.False(t, f.m.board.won)
	cmd := f.press("2")
	require.True(t, f.m.board.won)
	require.NotNil(t, cmd, "winning starts the colour animation")
	assert.Len(t, f.m.winColors, len([]rune(winText)))
	assert.Equal(t, f.now, f.m.EndedAt())
	assert.Contains(t, f.m.View(), "Verifying your harvest")
	assert.False(t, f.m.Solved())

	require.NotNil(t, f.fire)
	assert.Equal(t, garden.DefaultSuccessDelay, f.delay)
	f.fire()
	msg := f.m.waitSuccess()()
	require.IsType(t, successMsg{}, msg)

	_, cmd = f.m.Update(msg)
	assert.True(t, f.m.Solved())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModelCursorAndEnter(t *testing.T) {
	f := newFixture(t, garden.DifficultyDebug)
	f.press("right", "right", "enter")
	assert.Equal(t, 2, f.m.cursor)
	assert.Equal(t, 1, f.m.Simulation().Snapshot().Plants[2].Stage)

	f.press("left", "left", "left")
	assert.Equal(t, garden.DefaultPlantCount-1, f.m.cursor)
}

func TestModelToolKeys(t *testing.T) {
	f := newFixture(t, garden.DifficultyMedium)
	f.press("d")
	assert.Equal(t, garden.ToolDebug, f.m.board.tool)
	f.press("h")
	assert.Equal(t, garden.ToolHarvest, f.m.board.tool)
	f.press("w")
	assert.Equal(t, garden.ToolWater, f.m.Simulation().Snapshot().Tool)
}

func TestModelIgnoresDigitsBeyondGarden(t *testing.T) {
	d, err := garden.Preset(garden.DifficultyDebug)
	require.NoError(t, err)
	m, err := NewModel(Options{Difficulty: d, Plants: 3})
	require.NoError(t, err)
	m.Update(keyMsg("3"))
	m.Update(keyMsg("9"))
	st := m.Simulation().Snapshot()
	assert.Len(t, st.Plants, 3)
	assert.Equal(t, 1, st.Plants[2].Stage)
	assert.Equal(t, 2, m.cursor)
}

func TestModelQuitStopsGarden(t *testing.T) {
	f := newFixture(t, garden.DifficultyEasy)
	f.now = f.now.Add(3 * time.Second)
	cmd := f.press("q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, f.m.Solved())
	assert.Equal(t, 3*time.Second, f.m.EndedAt().Sub(f.m.StartedAt()))
	assert.False(t, f.m.Simulation().Snapshot().Running)

	// Frames after teardown are harmless.
	f.frame(time.Second)
	assert.ErrorIs(t, f.m.Simulation().ClickPlant(0), garden.ErrNotRunning)
}

func TestModelWindowSize(t *testing.T) {
	f := newFixture(t, garden.DifficultyMedium)
	f.m.Update(tea.WindowSizeMsg{Width: 40, Height: 30})
	assert.Equal(t, 40, f.m.width)
	view := f.m.View()
	assert.Contains(t, view, "gardengate")
	assert.Contains(t, view, "medium")
	assert.Contains(t, view, "Harvested 0/6")
}
