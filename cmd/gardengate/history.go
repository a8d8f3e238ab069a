package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/gardengate/internal/model"
	"github.com/verte-zerg/gardengate/internal/stats"
	"github.com/verte-zerg/gardengate/internal/statsui"
)

const defaultTrendWindow = 10

var (
	historyDifficulty string
	historySince      string
	historyLast       int
	historyWindow     int
	historyPlain      bool
	historyDB         string
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past attempts",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyDifficulty, "difficulty", "", "difficulty filter")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N attempts")
	cmd.Flags().IntVar(&historyWindow, "window", defaultTrendWindow, "moving average window for the solve time trend")
	cmd.Flags().BoolVar(&historyPlain, "plain", false, "print a plain text report instead of the TUI")
	cmd.Flags().StringVar(&historyDB, "db", "", "attempt database path")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := historyConfig()
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("db") {
		_, playCfg, err := loadPlayConfig()
		if err != nil {
			return err
		}
		if playCfg.DB != nil {
			historyDB = *playCfg.DB
		}
	}

	st, err := openStore(historyDB)
	if err != nil {
		return err
	}
	defer closeQuietly(st)

	if historyPlain {
		report, err := stats.BuildReport(cmd.Context(), st, cfg)
		if err != nil {
			return err
		}
		return stats.WriteSummary(cmd.OutOrStdout(), report, 0)
	}

	load := func(ctx context.Context, cfg model.HistoryConfig) (stats.Report, error) {
		return stats.BuildReport(ctx, st, cfg)
	}
	program := tea.NewProgram(statsui.NewModel(load, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run history TUI: %w", err)
	}
	return nil
}

func historyConfig() (model.HistoryConfig, error) {
	var since *time.Time
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return model.HistoryConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		since = &parsed
	}
	if historyLast < 0 {
		return model.HistoryConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if historyWindow < 1 {
		return model.HistoryConfig{}, fmt.Errorf("--window must be >= 1")
	}
	return model.HistoryConfig{
		Difficulty: strings.ToLower(strings.TrimSpace(historyDifficulty)),
		Since:      since,
		Last:       historyLast,
		Window:     historyWindow,
	}, nil
}
