package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/gardengate/internal/autoplay"
	"github.com/verte-zerg/gardengate/internal/config"
	"github.com/verte-zerg/gardengate/internal/garden"
	"github.com/verte-zerg/gardengate/internal/logger"
	"github.com/verte-zerg/gardengate/internal/model"
	"github.com/verte-zerg/gardengate/internal/stats"
	"github.com/verte-zerg/gardengate/internal/telemetry"
)

const (
	defaultSimRuns   = 100
	defaultSimClicks = 2
)

var (
	simDifficulty   string
	simRuns         int
	simSeed         int64
	simStep         time.Duration
	simMaxDuration  time.Duration
	simClicks       int
	simAvoidPoison  bool
	simGrowthPolicy string
	simOut          string
	simLogLevel     string
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play difficulties headlessly with a bot and report solve rates",
		Args:  cobra.NoArgs,
		RunE:  runSimulateCmd,
	}
	cmd.Flags().StringVar(&simDifficulty, "difficulty", "", "difficulty to simulate (default: all)")
	cmd.Flags().IntVar(&simRuns, "runs", defaultSimRuns, "runs per difficulty")
	cmd.Flags().Int64Var(&simSeed, "seed", 1, "seed of the first run; later runs use consecutive seeds")
	cmd.Flags().DurationVar(&simStep, "step", autoplay.DefaultStep, "virtual frame length")
	cmd.Flags().DurationVar(&simMaxDuration, "max-duration", autoplay.DefaultMaxDuration, "virtual time before a run gives up")
	cmd.Flags().IntVar(&simClicks, "clicks", defaultSimClicks, "plant clicks per frame (0: unlimited)")
	cmd.Flags().BoolVar(&simAvoidPoison, "avoid-poison", false, "hold watering while poison is active")
	cmd.Flags().StringVar(&simGrowthPolicy, "growth-policy", string(garden.PerPlantCadence), "growth cadence: per-plant or shared")
	cmd.Flags().StringVar(&simOut, "out", "", "directory for results.csv and summary.csv")
	cmd.Flags().StringVar(&simLogLevel, "log-level", logger.LevelWarn, "log level: debug, info, warn, error")
	return cmd
}

func runSimulateCmd(cmd *cobra.Command, _ []string) error {
	if simRuns <= 0 {
		return fmt.Errorf("--runs must be > 0")
	}
	if simStep <= 0 {
		return fmt.Errorf("--step must be > 0")
	}
	if simClicks < 0 {
		return fmt.Errorf("--clicks must be >= 0")
	}
	if !logger.ValidLevel(simLogLevel) {
		return fmt.Errorf("--log-level must be one of debug, info, warn, error")
	}
	policy, err := garden.ParseGrowthPolicy(simGrowthPolicy)
	if err != nil {
		return err
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	difficulties, err := simulatedDifficulties(fileCfg, simDifficulty)
	if err != nil {
		return err
	}

	log := logger.New(logConfig(model.Config{LogLevel: simLogLevel}, "simulate"), os.Stderr)
	om, err := telemetry.NewOutputManager(simOut)
	if err != nil {
		return err
	}
	defer closeQuietly(om)

	runCfg := autoplay.RunConfig{
		Seed:        simSeed,
		Player:      autoplay.Player{ClicksPerStep: simClicks, AvoidPoison: simAvoidPoison},
		Policy:      policy,
		Step:        simStep,
		MaxDuration: simMaxDuration,
		Logger:      log,
	}
	var all []autoplay.Result
	for _, d := range difficulties {
		log.Info("simulating", "difficulty", d.Name, "runs", simRuns)
		results, err := autoplay.RunMany(cmd.Context(), d, runCfg, simRuns)
		all = append(all, results...)
		for _, r := range results {
			if werr := om.WriteResult(r); werr != nil {
				return werr
			}
		}
		if err != nil {
			return fmt.Errorf("simulate %s: %w", d.Name, err)
		}
	}

	summaries := stats.SummarizeResults(all)
	if err := om.WriteSummary(summaries); err != nil {
		return err
	}
	if err := stats.WriteResults(cmd.OutOrStdout(), summaries); err != nil {
		return err
	}
	if dir := om.Dir(); dir != "" {
		log.Info("wrote simulation output", "dir", dir)
	}
	return nil
}

func simulatedDifficulties(fileCfg config.FileConfig, name string) ([]garden.Difficulty, error) {
	if name == "" {
		return fileCfg.Difficulties()
	}
	d, err := fileCfg.ResolveDifficulty(name)
	if err != nil {
		return nil, err
	}
	return []garden.Difficulty{d}, nil
}
