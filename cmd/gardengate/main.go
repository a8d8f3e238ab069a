// Package main provides the CLI entrypoint for gardengate.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/gardengate/internal/config"
	"github.com/verte-zerg/gardengate/internal/garden"
	"github.com/verte-zerg/gardengate/internal/logger"
	"github.com/verte-zerg/gardengate/internal/model"
	"github.com/verte-zerg/gardengate/internal/store"
	"github.com/verte-zerg/gardengate/internal/tui"
)

// errNotSolved makes the process exit non-zero when the player gives up.
var errNotSolved = errors.New("garden gate not solved")

var (
	playDifficulty   string
	playSeed         int64
	playGrowthPolicy string
	playLogLevel     string
	playLogFormat    string
	playDB           string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gardengate",
		Short: "Garden CAPTCHA gate for the terminal",
		Long: "Grow and harvest plants to pass the gate. On success a one-time token is\n" +
			"printed to stdout and the exit status is 0.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playDifficulty, "difficulty", garden.DefaultDifficulty, "difficulty preset or [difficulty.<name>] table")
	rootCmd.Flags().Int64Var(&playSeed, "seed", 0, "random seed (default: time based)")
	rootCmd.Flags().StringVar(&playGrowthPolicy, "growth-policy", string(garden.PerPlantCadence), "growth cadence: per-plant or shared")
	rootCmd.Flags().StringVar(&playLogLevel, "log-level", logger.LevelInfo, "log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&playLogFormat, "log-format", logger.FormatText, "log format: text or json")
	rootCmd.Flags().StringVar(&playDB, "db", "", "attempt database path")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDifficultiesCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newSimulateCmd())

	return rootCmd
}

// loadPlayConfig merges the dotenv files, the environment and the TOML file.
// Environment values win over the file.
func loadPlayConfig() (config.FileConfig, config.PlayConfig, error) {
	if err := config.LoadDotEnv(config.DefaultEnvPath(), ".env"); err != nil {
		return config.FileConfig{}, config.PlayConfig{}, err
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, config.PlayConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	envCfg, err := config.EnvConfig(os.LookupEnv)
	if err != nil {
		return config.FileConfig{}, config.PlayConfig{}, err
	}
	return fileCfg, fileCfg.Play.Merge(envCfg), nil
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, playCfg, err := loadPlayConfig()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "difficulty", &playDifficulty, playCfg.Difficulty)
	applyInt64Config(cmd, "seed", &playSeed, playCfg.Seed)
	applyStringConfig(cmd, "growth-policy", &playGrowthPolicy, playCfg.GrowthPolicy)
	applyStringConfig(cmd, "log-level", &playLogLevel, playCfg.LogLevel)
	applyStringConfig(cmd, "log-format", &playLogFormat, playCfg.LogFormat)
	applyStringConfig(cmd, "db", &playDB, playCfg.DB)
	if !cmd.Flags().Changed("seed") && playCfg.Seed == nil {
		playSeed = time.Now().UnixNano()
	}

	cfg := model.Config{
		Difficulty:   playDifficulty,
		Seed:         playSeed,
		GrowthPolicy: playGrowthPolicy,
		LogLevel:     playLogLevel,
		LogFormat:    playLogFormat,
		DBPath:       playDB,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	difficulty, err := fileCfg.ResolveDifficulty(cfg.Difficulty)
	if err != nil {
		return err
	}
	policy, err := garden.ParseGrowthPolicy(cfg.GrowthPolicy)
	if err != nil {
		return err
	}

	log, logFile, err := logger.OpenFile(logConfig(cfg, "play"), config.DefaultLogPath())
	if err != nil {
		return err
	}
	defer closeQuietly(logFile)

	st, err := openStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.Warn("failed to close db", "error", cerr)
		}
	}()

	m, err := tui.NewModel(tui.Options{
		Difficulty: difficulty,
		Policy:     policy,
		Seed:       cfg.Seed,
		Logger:     log,
	})
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, runErr := program.Run()
	m.Simulation().Stop()

	attempt := buildAttempt(m, cfg, difficulty)
	if _, err := st.InsertAttempt(context.Background(), attempt); err != nil {
		log.Warn("failed to record attempt", "error", err)
	}
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run TUI: %w", runErr)
	}
	if !m.Solved() {
		return errNotSolved
	}

	token := uuid.NewString()
	log.Info("issued solve token", "token", token)
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), token); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func buildAttempt(m *tui.Model, cfg model.Config, d garden.Difficulty) model.Attempt {
	ended := m.EndedAt()
	if ended.IsZero() {
		ended = time.Now()
	}
	st := m.Simulation().Snapshot()
	c := m.Simulation().Counters()
	return model.Attempt{
		StartedAt:         m.StartedAt(),
		EndedAt:           ended,
		Difficulty:        d.Name,
		GrowthPolicy:      cfg.GrowthPolicy,
		Seed:              cfg.Seed,
		Solved:            m.Solved(),
		Harvested:         st.Harvested,
		Target:            st.Target,
		DurationMs:        ended.Sub(m.StartedAt()).Milliseconds(),
		Waterings:         c.Waterings,
		PoisonedWaterings: c.PoisonedWaterings,
		InfestedWaterings: c.InfestedWaterings,
		Harvests:          c.Harvests,
		Destroyed:         c.Destroyed,
		Debugs:            c.Debugs,
		Decays:            c.Decays,
		BugBites:          c.BugBites,
		Poisons:           c.Poisons,
		Infestations:      c.Infestations,
	}
}

func logConfig(cfg model.Config, command string) logger.Config {
	return logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Attrs:  []slog.Attr{slog.String("cmd", command)},
	}
}

func openStore(path string) (*store.Store, error) {
	if path == "" {
		path = config.DefaultDBPath()
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newDifficultiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "difficulties",
		Short: "List difficulties with their timings",
		Args:  cobra.NoArgs,
		RunE:  runDifficultiesCmd,
	}
}

func runDifficultiesCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	difficulties, err := fileCfg.Difficulties()
	if err != nil {
		return err
	}
	for _, line := range difficultyLines(difficulties) {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func difficultyLines(difficulties []garden.Difficulty) []string {
	lines := make([]string, 0, len(difficulties))
	for _, d := range difficulties {
		pool := make([]string, len(d.EventPool))
		for i, h := range d.EventPool {
			pool[i] = string(h)
		}
		lines = append(lines, fmt.Sprintf("%-8s growth=%-6s events=%-6s chance=%3.0f%%  target=%d  pool=%s",
			d.Name, d.GrowthCadence, d.EventCadence, d.EventChance*100, d.HarvestTarget, strings.Join(pool, ",")))
	}
	return lines
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# gardengate configuration
# Uncomment a value to enable it. GARDENGATE_* environment variables override
# these values and CLI flags override both.

[play]
# difficulty = %q        # easy, medium, hard, debug or a [difficulty.<name>] table
# seed = 42                   # Fixed random seed (default: time based)
# growth-policy = %q   # per-plant or shared
# log-level = %q            # debug, info, warn, error
# log-format = %q           # text or json
# db = "/path/to/gardengate.db"

# Override a preset, or define a new difficulty based on %q.
# [difficulty.hard]
# growth-cadence = "6s"
# event-cadence = "3s"
# event-chance = 0.9
# event-pool = ["poison", "bugs", "bugs", "nothing", "bugs"]
# harvest-target = 6
`,
		garden.DefaultDifficulty,
		garden.PerPlantCadence,
		logger.LevelInfo,
		logger.FormatText,
		garden.DefaultDifficulty,
	)
}

func validateConfig(cfg model.Config) error {
	if !logger.ValidLevel(cfg.LogLevel) {
		return fmt.Errorf("--log-level must be one of debug, info, warn, error")
	}
	switch strings.ToLower(cfg.LogFormat) {
	case logger.FormatText, logger.FormatJSON:
	default:
		return fmt.Errorf("--log-format must be text or json")
	}
	return nil
}

func closeQuietly(c interface{ Close() error }) {
	if err := c.Close(); err != nil {
		logErrf("failed to close: %v\n", err)
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
