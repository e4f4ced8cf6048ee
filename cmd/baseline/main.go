// Command baseline runs the fixed non-learning pipeline over the stored
// scenarios so its plan quality can be compared against a trained run.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/planfit/planfit/internal/envstruct"
	"github.com/planfit/planfit/internal/logging"
	"github.com/planfit/planfit/internal/plan"
	"github.com/planfit/planfit/internal/scenario"
	"github.com/planfit/planfit/internal/sqlite"
	"github.com/planfit/planfit/internal/store"
	"golang.org/x/sync/errgroup"
)

type config struct {
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"PLANFIT_SQLITE_URL" envDefault:"./planfit.sqlite3"`
	// ScenariosPath is the JSON file with user scenarios. It is used when the scenario table is empty.
	ScenariosPath string `env:"PLANFIT_SCENARIOS_PATH" envDefault:"./data/scenarios.json"`
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

	profiles, err := store.NewScenarioStore(db).List(ctx)
	if err != nil {
		return fmt.Errorf("list scenarios: %w", err)
	}
	if len(profiles) == 0 {
		if profiles, err = scenario.LoadFile(cfg.ScenariosPath); err != nil {
			return fmt.Errorf("load scenarios: %w", err)
		}
	}

	baseline := plan.NewBaselineController(plan.NewRewardCalculator(plan.DefaultRewardConfig()))

	// The baseline keeps no state between scenarios, so they can run in
	// parallel.
	results := make([]plan.BaselineResult, len(profiles))
	g, gctx := errgroup.WithContext(ctx)
	for i, profile := range profiles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := baseline.Run(profile)
			if err != nil {
				return fmt.Errorf("baseline for scenario %q: %w", profile.Name, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var total float64
	for _, result := range results {
		total += result.Quality
		logger.LogAttrs(ctx, slog.LevelInfo, "baseline plan",
			slog.String("scenario", result.Scenario),
			slog.Int("exercises", len(result.Plan.Exercises)),
			slog.Int("durationMinutes", result.Plan.EstimatedDurationMinutes()),
			slog.Float64("quality", result.Quality))
	}
	if len(results) > 0 {
		logger.LogAttrs(ctx, slog.LevelInfo, "baseline complete",
			slog.Int("scenarios", len(results)),
			slog.Float64("avgQuality", total/float64(len(results))))
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
		logger.LogAttrs(ctx, slog.LevelError, "baseline failed", slog.Any("error", err))
		os.Exit(1)
	}
}
