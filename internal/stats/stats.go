// Package stats contains statistics calculations and reporting.
package stats

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/verte-zerg/gardengate/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Metrics summarizes a set of attempts.
type Metrics struct {
	Attempts    int
	Solved      int
	SolveRate   float64
	MeanSolve   time.Duration
	MedianSolve time.Duration
	BestSolve   time.Duration
	// HarmPerAttempt is the mean number of waterings made under poison or
	// on an infested plant.
	HarmPerAttempt float64
}

// AttemptMetrics computes solve rate and solve-time figures. Solve times
// only count solved attempts.
func AttemptMetrics(attempts []model.Attempt) Metrics {
	m := Metrics{Attempts: len(attempts)}
	if len(attempts) == 0 {
		return m
	}
	harm := 0
	solveTimes := make([]time.Duration, 0, len(attempts))
	for _, a := range attempts {
		harm += a.PoisonedWaterings + a.InfestedWaterings
		if a.Solved {
			solveTimes = append(solveTimes, time.Duration(a.DurationMs)*time.Millisecond)
		}
	}
	m.Solved = len(solveTimes)
	m.SolveRate = float64(m.Solved) / float64(m.Attempts)
	m.HarmPerAttempt = float64(harm) / float64(m.Attempts)
	m.MeanSolve, m.MedianSolve, m.BestSolve = durationStats(solveTimes)
	return m
}

func durationStats(values []time.Duration) (mean, median, best time.Duration) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	sorted := append([]time.Duration(nil), values...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	var sum time.Duration
	for _, v := range sorted {
		sum += v
	}
	mean = sum / time.Duration(len(sorted))
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		median = sorted[mid]
	} else {
		median = (sorted[mid-1] + sorted[mid]) / 2
	}
	return mean, median, sorted[0]
}

// SolveSeconds returns the solve time of each solved attempt, in order.
func SolveSeconds(attempts []model.Attempt) []float64 {
	out := make([]float64, 0, len(attempts))
	for _, a := range attempts {
		if a.Solved {
			out = append(out, float64(a.DurationMs)/1000)
		}
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values. When
// width is positive and smaller than len(values), only the most recent
// width values are drawn.
func Sparkline(values []float64, width int) string {
	if width > 0 && len(values) > width {
		values = values[len(values)-width:]
	}
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
