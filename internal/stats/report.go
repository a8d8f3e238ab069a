package stats

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/verte-zerg/gardengate/internal/model"
	"github.com/verte-zerg/gardengate/internal/store"
)

const (
	defaultWindow       = 10
	recentRows          = 10
	terminalWidthBackup = 80
)

// Report contains precomputed data for history rendering.
type Report struct {
	Attempts   []model.Attempt
	Aggregates []model.DifficultyAggregate
	Metrics    Metrics
	// SolveCurve is the moving average of solve times in seconds.
	SolveCurve []float64
}

// BuildReport loads and prepares data for history rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.HistoryConfig) (Report, error) {
	attempts, err := st.ListAttempts(ctx, cfg)
	if err != nil {
		return Report{}, fmt.Errorf("list attempts: %w", err)
	}
	aggs, err := st.ListDifficultyAggregates(ctx, cfg)
	if err != nil {
		return Report{}, fmt.Errorf("aggregate attempts: %w", err)
	}
	window := cfg.Window
	if window <= 0 {
		window = defaultWindow
	}
	return Report{
		Attempts:   attempts,
		Aggregates: aggs,
		Metrics:    AttemptMetrics(attempts),
		SolveCurve: MovingAverage(SolveSeconds(attempts), window),
	}, nil
}

// WriteSummary prints the report as plain text sized to width columns.
// A non-positive width uses the terminal width of stdout.
func WriteSummary(w io.Writer, r Report, width int) error {
	if width <= 0 {
		width = TerminalWidth(os.Stdout)
	}
	if len(r.Attempts) == 0 {
		_, err := fmt.Fprintln(w, "No attempts found.")
		return err
	}
	m := r.Metrics
	lines := []string{
		"Summary",
		fmt.Sprintf("Attempts: %d", m.Attempts),
		fmt.Sprintf("Solved: %d (%.1f%%)", m.Solved, m.SolveRate*100),
		fmt.Sprintf("Mean solve: %s", FormatDuration(m.MeanSolve)),
		fmt.Sprintf("Median solve: %s", FormatDuration(m.MedianSolve)),
		fmt.Sprintf("Best solve: %s", FormatDuration(m.BestSolve)),
		fmt.Sprintf("Harmful waterings per attempt: %.2f", m.HarmPerAttempt),
	}
	if len(r.SolveCurve) > 0 {
		label := "Solve time trend: "
		lines = append(lines, label+Sparkline(r.SolveCurve, width-len(label)))
	}
	lines = append(lines, "")
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if err := writeLines(w, "By Difficulty", DifficultyTable(r.Aggregates)); err != nil {
		return err
	}
	recent := r.Attempts
	if len(recent) > recentRows {
		recent = recent[len(recent)-recentRows:]
	}
	return writeLines(w, "Recent Attempts", AttemptTable(recent))
}

// DifficultyTable formats per-difficulty aggregates.
func DifficultyTable(aggs []model.DifficultyAggregate) []string {
	headers := []string{"Difficulty", "Attempts", "Solved", "Rate", "Mean solve", "Destroyed"}
	rows := make([][]string, 0, len(aggs))
	for _, a := range aggs {
		rate, mean := 0.0, time.Duration(0)
		if a.Attempts > 0 {
			rate = float64(a.Solved) / float64(a.Attempts)
		}
		if a.Solved > 0 {
			mean = time.Duration(a.SolvedMsSum/int64(a.Solved)) * time.Millisecond
		}
		rows = append(rows, []string{
			a.Difficulty,
			fmt.Sprintf("%d", a.Attempts),
			fmt.Sprintf("%d", a.Solved),
			fmt.Sprintf("%.1f%%", rate*100),
			FormatDuration(mean),
			fmt.Sprintf("%d", a.Destroyed),
		})
	}
	return formatTable(headers, rows, map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true})
}

// AttemptTable formats individual attempts, oldest first.
func AttemptTable(attempts []model.Attempt) []string {
	headers := []string{"Ended", "Difficulty", "Result", "Harvested", "Time", "Waterings"}
	rows := make([][]string, 0, len(attempts))
	for _, a := range attempts {
		result := "quit"
		if a.Solved {
			result = "solved"
		}
		rows = append(rows, []string{
			a.EndedAt.Local().Format("2006-01-02 15:04"),
			a.Difficulty,
			result,
			fmt.Sprintf("%d/%d", a.Harvested, a.Target),
			FormatDuration(time.Duration(a.DurationMs) * time.Millisecond),
			fmt.Sprintf("%d", a.Waterings),
		})
	}
	return formatTable(headers, rows, map[int]bool{3: true, 4: true, 5: true})
}

func writeLines(w io.Writer, title string, lines []string) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// FormatDuration renders d to a tenth of a second, or "-" when unset.
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.Round(100 * time.Millisecond).String()
}

// TerminalWidth returns the width of f when it is a terminal, or a fallback.
func TerminalWidth(f *os.File) int {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return terminalWidthBackup
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
