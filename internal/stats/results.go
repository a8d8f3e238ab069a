package stats

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/verte-zerg/gardengate/internal/autoplay"
)

// ResultSummary aggregates headless runs for one difficulty.
type ResultSummary struct {
	Difficulty     string
	Runs           int
	Solved         int
	SolveRate      float64
	MeanSolve      time.Duration
	MedianSolve    time.Duration
	BestSolve      time.Duration
	MeanClicks     float64
	HarmPerRun     float64
	DestroyedTotal int
}

// SummarizeResults groups results by difficulty, in first-seen order.
func SummarizeResults(results []autoplay.Result) []ResultSummary {
	index := map[string]int{}
	var out []ResultSummary
	solveTimes := map[string][]time.Duration{}
	clicks := map[string]int{}
	harm := map[string]int{}
	for _, r := range results {
		i, ok := index[r.Difficulty]
		if !ok {
			i = len(out)
			index[r.Difficulty] = i
			out = append(out, ResultSummary{Difficulty: r.Difficulty})
		}
		s := &out[i]
		s.Runs++
		s.DestroyedTotal += r.Counters.Destroyed
		clicks[r.Difficulty] += r.Clicks
		harm[r.Difficulty] += r.Counters.PoisonedWaterings + r.Counters.InfestedWaterings
		if r.Solved {
			s.Solved++
			solveTimes[r.Difficulty] = append(solveTimes[r.Difficulty], r.Duration)
		}
	}
	for i := range out {
		s := &out[i]
		s.SolveRate = float64(s.Solved) / float64(s.Runs)
		s.MeanClicks = float64(clicks[s.Difficulty]) / float64(s.Runs)
		s.HarmPerRun = float64(harm[s.Difficulty]) / float64(s.Runs)
		s.MeanSolve, s.MedianSolve, s.BestSolve = durationStats(solveTimes[s.Difficulty])
	}
	return out
}

// WriteResults prints result summaries as a table.
func WriteResults(w io.Writer, summaries []ResultSummary) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, "No runs.")
		return err
	}
	sorted := append([]ResultSummary(nil), summaries...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Difficulty < sorted[j].Difficulty })
	headers := []string{"Difficulty", "Runs", "Solved", "Rate", "Median", "Best", "Clicks", "Harm/run"}
	rows := make([][]string, 0, len(sorted))
	for _, s := range sorted {
		rows = append(rows, []string{
			s.Difficulty,
			fmt.Sprintf("%d", s.Runs),
			fmt.Sprintf("%d", s.Solved),
			fmt.Sprintf("%.1f%%", s.SolveRate*100),
			FormatDuration(s.MedianSolve),
			FormatDuration(s.BestSolve),
			fmt.Sprintf("%.1f", s.MeanClicks),
			fmt.Sprintf("%.2f", s.HarmPerRun),
		})
	}
	right := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true}
	for _, line := range formatTable(headers, rows, right) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
