package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/gardengate/internal/model"
	"github.com/verte-zerg/gardengate/internal/store"
)

func seedStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "gardengate.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	for i := 0; i < 4; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Hour)
		a := model.Attempt{
			StartedAt:  start,
			EndedAt:    start.Add(time.Duration(30+10*i) * time.Second),
			Difficulty: "medium",
			Solved:     i != 2,
			Target:     6,
			Waterings:  20,
			Destroyed:  i,
		}
		if i == 3 {
			a.Difficulty = "hard"
		}
		if a.Solved {
			a.Harvested = 6
		}
		a.DurationMs = a.EndedAt.Sub(a.StartedAt).Milliseconds()
		if _, err := st.InsertAttempt(ctx, a); err != nil {
			t.Fatalf("insert attempt: %v", err)
		}
	}
	return st
}

func TestBuildReport(t *testing.T) {
	st := seedStore(t)
	report, err := BuildReport(context.Background(), st, model.HistoryConfig{Difficulty: "medium", Window: 2})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Attempts) != 3 {
		t.Fatalf("expected 3 medium attempts, got %d", len(report.Attempts))
	}
	if len(report.Aggregates) != 1 || report.Aggregates[0].Difficulty != "medium" {
		t.Fatalf("unexpected aggregates: %+v", report.Aggregates)
	}
	if report.Metrics.Solved != 2 {
		t.Fatalf("expected 2 solved, got %d", report.Metrics.Solved)
	}
	want := []float64{30, 35}
	if len(report.SolveCurve) != len(want) {
		t.Fatalf("unexpected curve: %v", report.SolveCurve)
	}
	for i := range want {
		if report.SolveCurve[i] != want[i] {
			t.Fatalf("curve[%d]: expected %v, got %v", i, want[i], report.SolveCurve[i])
		}
	}
}

func TestWriteSummary(t *testing.T) {
	st := seedStore(t)
	report, err := BuildReport(context.Background(), st, model.HistoryConfig{})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteSummary(&buf, report, 60); err != nil {
		t.Fatalf("write summary: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Attempts: 4",
		"Solved: 3 (75.0%)",
		"Median solve: 40s",
		"Best solve: 30s",
		"Solve time trend: ",
		"By Difficulty",
		"Recent Attempts",
		"quit",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestWriteSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, Report{}, 80); err != nil {
		t.Fatalf("write summary: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No attempts found." {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
