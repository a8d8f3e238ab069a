package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/gardengate/internal/garden"
)

const (
	tileWidth = 9
	tileGap   = 1
)

var stageArt = [garden.MaxStage + 1][2]string{
	{"", "."},
	{"", ","},
	{"\\ /", " | "},
	{"\\o/", " | "},
	{"@@@", "\\|/"},
}

var stageNames = [garden.MaxStage + 1]string{"seed", "sprout", "stem", "bud", "bloom"}

var (
	tileStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#5C5C5C")).Width(tileWidth).Align(lipgloss.Center)
	selectedStyle = tileStyle.BorderForeground(lipgloss.Color("#C89A3A"))
	plantStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7BC950"))
	bloomStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F5A3C7"))
	waterStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4DA6FF"))
	bugStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	toolStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// board is the write-only view model the simulation draws into. It is only
// touched from the Bubble Tea event loop.
type board struct {
	stages    []int
	water     []bool
	bugs      []bool
	harvested int
	target    int
	tool      garden.Tool
	event     garden.Hazard
	won       bool
}

func newBoard(plants int) *board {
	return &board{
		stages: make([]int, plants),
		water:  make([]bool, plants),
		bugs:   make([]bool, plants),
	}
}

func (b *board) Stage(id, stage int) { b.stages[id] = stage }

func (b *board) Overlay(id int, o garden.Overlay, visible bool) {
	switch o {
	case garden.OverlayWater:
		b.water[id] = visible
	case garden.OverlayBugs:
		b.bugs[id] = visible
	}
}

func (b *board) Won() { b.won = true }

func (b *board) Progress(harvested, target int) {
	b.harvested = harvested
	b.target = target
}

func (b *board) Tool(t garden.Tool) { b.tool = t }

func (b *board) Event(resolved garden.Hazard) { b.event = resolved }

func (b *board) renderTile(i int, selected bool) string {
	stage := b.stages[i]
	overlay := ""
	switch {
	case b.bugs[i]:
		overlay = bugStyle.Render("*bugs*")
	case b.water[i]:
		overlay = waterStyle.Render("~~~~~")
	}
	style := plantStyle
	if stage == garden.MaxStage {
		style = bloomStyle
	}
	art := stageArt[stage]
	lines := []string{
		overlay,
		style.Render(art[0]),
		style.Render(art[1]),
		labelStyle.Render(fmt.Sprintf("%d %s", i+1, stageNames[stage])),
	}
	ts := tileStyle
	if selected {
		ts = selectedStyle
	}
	return ts.Render(strings.Join(lines, "\n"))
}

// layoutTiles joins tiles into as many rows as width requires.
func layoutTiles(tiles []string, width int) string {
	if len(tiles) == 0 {
		return ""
	}
	perRow := len(tiles)
	if width > 0 {
		tw := lipgloss.Width(tiles[0]) + tileGap
		perRow = max(1, min(len(tiles), (width+tileGap)/tw))
	}
	gap := strings.Repeat(" ", tileGap)
	rows := make([]string, 0, (len(tiles)+perRow-1)/perRow)
	for start := 0; start < len(tiles); start += perRow {
		end := min(start+perRow, len(tiles))
		row := make([]string, 0, 2*(end-start))
		for i, t := range tiles[start:end] {
			if i > 0 {
				row = append(row, gap)
			}
			row = append(row, t)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

func eventText(h garden.Hazard) string {
	switch h {
	case garden.HazardPoison:
		return "Poison in the water!"
	case garden.HazardBugs:
		return "Bugs! Debug your plants."
	case garden.HazardNothing:
		return "All quiet."
	default:
		return "Water a seed to start it growing."
	}
}

func (b *board) renderStatus(width int) string {
	segments := []string{
		"Tool " + toolStyle.Render(string(b.tool)),
		fmt.Sprintf("Harvested %d/%d", b.harvested, b.target),
		eventText(b.event),
	}
	line := strings.Join(segments, "  ·  ")
	if width > 0 && lipgloss.Width(line) > width {
		plain := strings.Join([]string{
			"Tool " + string(b.tool),
			fmt.Sprintf("Harvested %d/%d", b.harvested, b.target),
			eventText(b.event),
		}, "  ·  ")
		line = runewidth.Truncate(plain, width, "…")
	}
	return footerStyle.Render(line)
}

const winText = "You win!"

func renderWin(colors []lipgloss.Color) string {
	var sb strings.Builder
	for i, r := range []rune(winText) {
		style := lipgloss.NewStyle().Bold(true)
		if i < len(colors) {
			style = style.Foreground(colors[i])
		}
		sb.WriteString(style.Render(string(r)))
	}
	return sb.String()
}
