package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"

	"github.com/planfit/planfit/internal/envstruct"
	"github.com/planfit/planfit/internal/logging"
	"github.com/planfit/planfit/internal/report"
	"github.com/planfit/planfit/internal/scenario"
	"github.com/planfit/planfit/internal/sqlite"
	"github.com/planfit/planfit/internal/store"
	"github.com/planfit/planfit/internal/training"
)

type config struct {
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"PLANFIT_SQLITE_URL" envDefault:"./planfit.sqlite3"`
	// ScenariosPath is the JSON file with user scenarios. It seeds the database when the scenario table is empty.
	ScenariosPath string `env:"PLANFIT_SCENARIOS_PATH" envDefault:"./data/scenarios.json"`
	// MetricsCSVPath is where the per-episode learning curve is written as CSV.
	MetricsCSVPath string `env:"PLANFIT_METRICS_CSV" envDefault:"./learning_curve.csv"`
	// RewardCurvePath and ExerciseCurvePath are where the learning curves are rendered as PNG.
	RewardCurvePath   string `env:"PLANFIT_REWARD_CURVE" envDefault:"./reward_curve.png"`
	ExerciseCurvePath string `env:"PLANFIT_EXERCISE_CURVE" envDefault:"./exercise_curve.png"`
	// Episodes is the number of training passes over the scenario set.
	Episodes int `env:"PLANFIT_EPISODES" envDefault:"50"`
	// MaxExercises caps the plan length within an episode.
	MaxExercises int `env:"PLANFIT_MAX_EXERCISES" envDefault:"6"`
	// LearningRate is the Q-learning step size.
	LearningRate float64 `env:"PLANFIT_LEARNING_RATE" envDefault:"0.1"`
	// DiscountFactor weights future value in the Q-learning backup.
	DiscountFactor float64 `env:"PLANFIT_DISCOUNT_FACTOR" envDefault:"0.9"`
	// Epsilon is the exploration rate for workflow decisions.
	Epsilon float64 `env:"PLANFIT_EPSILON" envDefault:"0.1"`
	// UCBExploration is the exploration constant of the category bandit.
	UCBExploration float64 `env:"PLANFIT_UCB_EXPLORATION" envDefault:"2.0"`
	// Seed initializes the exploration random source so runs reproduce.
	Seed uint64 `env:"PLANFIT_SEED" envDefault:"1"`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return fmt.Errorf("populate config: %w", err)
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return fmt.Errorf("open db %s: %w", cfg.SqliteURL, err)
	}
	defer db.Close()
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	scenarios := store.NewScenarioStore(db)
	profiles, err := scenarios.List(ctx)
	if err != nil {
		return fmt.Errorf("list scenarios: %w", err)
	}
	if len(profiles) == 0 {
		if profiles, err = scenario.LoadFile(cfg.ScenariosPath); err != nil {
			return fmt.Errorf("seed scenarios: %w", err)
		}
		if err = scenarios.Import(ctx, profiles); err != nil {
			return fmt.Errorf("import scenarios: %w", err)
		}
		logger.LogAttrs(ctx, slog.LevelInfo, "seeded scenarios",
			slog.String("path", cfg.ScenariosPath),
			slog.Int("count", len(profiles)))
	}

	loop, err := training.New(training.Config{
		Episodes:            cfg.Episodes,
		MaxExercises:        cfg.MaxExercises,
		LearningRate:        cfg.LearningRate,
		DiscountFactor:      cfg.DiscountFactor,
		Epsilon:             cfg.Epsilon,
		ExplorationConstant: cfg.UCBExploration,
		Seed:                cfg.Seed,
	}, logger)
	if err != nil {
		return fmt.Errorf("init training loop: %w", err)
	}

	metrics := store.NewMetricsStore(db)
	if err = metrics.CreateRun(ctx, loop.RunID()); err != nil {
		return fmt.Errorf("create training run: %w", err)
	}

	summary, err := loop.Run(ctx, profiles, metrics)
	if err != nil {
		return fmt.Errorf("training run: %w", err)
	}

	if err = metrics.SaveArmStats(ctx, summary.RunID, summary.ArmStats); err != nil {
		return fmt.Errorf("save arm statistics: %w", err)
	}

	if err = writeReports(cfg, summary); err != nil {
		return err
	}

	// Category preferences learned during the run, strongest first.
	arms := summary.ArmStats
	sort.SliceStable(arms, func(i, j int) bool { return arms[i].AverageReward > arms[j].AverageReward })
	for _, arm := range arms {
		logger.LogAttrs(ctx, slog.LevelInfo, "category statistics",
			slog.String("category", string(arm.Arm)),
			slog.Int("pulls", arm.Pulls),
			slog.Float64("averageReward", arm.AverageReward))
	}

	first, last := summary.Episodes[0], summary.Episodes[len(summary.Episodes)-1]
	logger.LogAttrs(ctx, slog.LevelInfo, "training run complete",
		slog.String("runID", summary.RunID.String()),
		slog.Int("qTableSize", summary.QTableSize),
		slog.Float64("firstEpisodeAvgReward", first.AvgReward),
		slog.Float64("lastEpisodeAvgReward", last.AvgReward),
		slog.Float64("lastEpisodeAvgExercises", last.AvgExercises))

	return nil
}

func writeReports(cfg config, summary training.Summary) error {
	f, err := os.Create(cfg.MetricsCSVPath)
	if err != nil {
		return fmt.Errorf("create metrics csv: %w", err)
	}
	defer f.Close()
	if err = report.WriteCSV(f, summary.Episodes); err != nil {
		return fmt.Errorf("write metrics csv: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close metrics csv: %w", err)
	}

	if err = report.RenderLearningCurve(cfg.RewardCurvePath, "average reward per episode", summary.Episodes,
		func(s training.EpisodeStats) float64 { return s.AvgReward }); err != nil {
		return fmt.Errorf("render reward curve: %w", err)
	}
	if err = report.RenderLearningCurve(cfg.ExerciseCurvePath, "average exercises per episode", summary.Episodes,
		func(s training.EpisodeStats) float64 { return s.AvgExercises }); err != nil {
		return fmt.Errorf("render exercise curve: %w", err)
	}
	return nil
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelInfo,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "training failed", slog.Any("error", err))
		os.Exit(1)
	}
}
