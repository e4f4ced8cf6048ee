package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/planfit/planfit/internal/plan"
	"github.com/planfit/planfit/internal/rl"
	"github.com/planfit/planfit/internal/sqlite"
)

// MetricsStore persists training runs and their per-episode metrics. It
// implements the training loop's Recorder interface.
type MetricsStore struct {
	db *sqlite.Database
}

// NewMetricsStore creates a metrics store backed by db.
func NewMetricsStore(db *sqlite.Database) *MetricsStore {
	return &MetricsStore{db: db}
}

// CreateRun registers a training run before its episodes are recorded.
func (s *MetricsStore) CreateRun(ctx context.Context, runID uuid.UUID) error {
	if _, err := s.db.ReadWrite.ExecContext(ctx,
		`INSERT INTO training_runs (id) VALUES (?)`, runID.String()); err != nil {
		return fmt.Errorf("insert training run %s: %w", runID, err)
	}
	return nil
}

// RecordEpisode stores the metrics of one episode.
func (s *MetricsStore) RecordEpisode(ctx context.Context, runID uuid.UUID, metrics plan.EpisodeMetrics) error {
	if _, err := s.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO episode_metrics (run_id, episode, scenario, total_reward, exercise_count)
		VALUES (?, ?, ?, ?, ?)`,
		runID.String(), metrics.Episode, metrics.Scenario, metrics.TotalReward, metrics.ExerciseCount); err != nil {
		return fmt.Errorf("insert episode %d scenario %q: %w", metrics.Episode, metrics.Scenario, err)
	}
	return nil
}

// SaveArmStats stores the final bandit counters of a finished run.
func (s *MetricsStore) SaveArmStats(ctx context.Context, runID uuid.UUID, stats []rl.ArmStats[plan.Category]) error {
	tx, err := s.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op.

	for _, arm := range stats {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO arm_statistics (run_id, category, pulls, average_reward)
			VALUES (?, ?, ?, ?)`,
			runID.String(), string(arm.Arm), arm.Pulls, arm.AverageReward); err != nil {
			return fmt.Errorf("insert arm statistics for %s: %w", arm.Arm, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit arm statistics: %w", err)
	}
	return nil
}

// EpisodeAverages returns the per-episode averages of a run in episode order,
// averaged across scenarios.
func (s *MetricsStore) EpisodeAverages(ctx context.Context, runID uuid.UUID) ([]EpisodeAverage, error) {
	rows, err := s.db.ReadOnly.QueryContext(ctx, `
		SELECT episode, AVG(total_reward), AVG(exercise_count)
		FROM episode_metrics
		WHERE run_id = ?
		GROUP BY episode
		ORDER BY episode`, runID.String())
	if err != nil {
		return nil, fmt.Errorf("query episode averages: %w", err)
	}
	defer rows.Close()

	var averages []EpisodeAverage
	for rows.Next() {
		var avg EpisodeAverage
		if err := rows.Scan(&avg.Episode, &avg.AvgReward, &avg.AvgExercises); err != nil {
			return nil, fmt.Errorf("scan episode average: %w", err)
		}
		averages = append(averages, avg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate episode averages: %w", err)
	}

	return averages, nil
}

// EpisodeAverage is one point of a stored learning curve.
type EpisodeAverage struct {
	Episode      int
	AvgReward    float64
	AvgExercises float64
}
