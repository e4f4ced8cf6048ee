// Package training runs the episode loop that teaches the planner: a fixed
// number of episodes over a set of user scenarios, sharing one Q-learner and
// one category bandit across all of them.
package training

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/planfit/planfit/internal/logging"
	"github.com/planfit/planfit/internal/plan"
	"github.com/planfit/planfit/internal/rl"
)

// ErrInvalidConfig reports training hyperparameters outside their legal
// ranges. A run is never started with a bad configuration.
var ErrInvalidConfig = errors.New("invalid training configuration")

// Config holds the hyperparameters for one training run.
type Config struct {
	// Episodes is the number of passes over the scenario set.
	Episodes int
	// MaxExercises caps the plan length within an episode.
	MaxExercises int
	// LearningRate is the Q-learning step size, in (0, 1].
	LearningRate float64
	// DiscountFactor weights future value, in [0, 1).
	DiscountFactor float64
	// Epsilon is the exploration rate of the workflow policy, in [0, 1].
	Epsilon float64
	// ExplorationConstant is the c in the UCB1 score, positive.
	ExplorationConstant float64
	// Seed initializes the exploration random source so runs reproduce.
	Seed uint64
}

// Validate checks every hyperparameter and reports all offending fields.
func (c Config) Validate() error {
	var problems []string
	if c.Episodes < 1 {
		problems = append(problems, fmt.Sprintf("episodes must be at least 1, got %d", c.Episodes))
	}
	if c.MaxExercises < 1 {
		problems = append(problems, fmt.Sprintf("max exercises must be at least 1, got %d", c.MaxExercises))
	}
	if c.LearningRate <= 0 || c.LearningRate > 1 {
		problems = append(problems, fmt.Sprintf("learning rate must be in (0, 1], got %g", c.LearningRate))
	}
	if c.DiscountFactor < 0 || c.DiscountFactor >= 1 {
		problems = append(problems, fmt.Sprintf("discount factor must be in [0, 1), got %g", c.DiscountFactor))
	}
	if c.Epsilon < 0 || c.Epsilon > 1 {
		problems = append(problems, fmt.Sprintf("epsilon must be in [0, 1], got %g", c.Epsilon))
	}
	if c.ExplorationConstant <= 0 {
		problems = append(problems, fmt.Sprintf("exploration constant must be positive, got %g", c.ExplorationConstant))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, problems)
	}
	return nil
}

// Recorder persists per-episode metrics as the run progresses. A nil
// recorder is allowed; metrics are then only aggregated in memory.
type Recorder interface {
	RecordEpisode(ctx context.Context, runID uuid.UUID, metrics plan.EpisodeMetrics) error
}

// EpisodeStats aggregates one episode's results across all scenarios.
type EpisodeStats struct {
	Episode      int
	AvgReward    float64
	AvgExercises float64
}

// Summary is the outcome of a completed training run.
type Summary struct {
	RunID uuid.UUID
	// Episodes holds per-episode averages in episode order. This is the
	// learning curve.
	Episodes []EpisodeStats
	// ArmStats reports the final bandit counters per category.
	ArmStats []rl.ArmStats[plan.Category]
	// QTableSize is the number of state-action pairs visited.
	QTableSize int
}

// Loop owns the learners for one training run and drives the episode
// controller. Construct a fresh Loop per run; the learned tables live and die
// with it.
type Loop struct {
	cfg        Config
	selector   *rl.UCB1[plan.Category]
	learner    *rl.QLearner[plan.State, plan.WorkflowAction]
	controller *plan.Controller
	logger     *slog.Logger
	runID      uuid.UUID
}

// New constructs a training loop with freshly initialized learners.
func New(cfg Config, logger *slog.Logger) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		return nil, fmt.Errorf("training loop: logger is required")
	}

	selector, err := rl.NewUCB1(plan.Categories(), cfg.ExplorationConstant)
	if err != nil {
		return nil, fmt.Errorf("init category bandit: %w", err)
	}
	learner, err := rl.NewQLearner[plan.State, plan.WorkflowAction](rl.Config{
		LearningRate:   cfg.LearningRate,
		DiscountFactor: cfg.DiscountFactor,
	})
	if err != nil {
		return nil, fmt.Errorf("init q-learner: %w", err)
	}

	policy := rl.NewEpsilonGreedy[plan.State, plan.WorkflowAction](cfg.Epsilon, cfg.Seed)
	rewards := plan.NewRewardCalculator(plan.DefaultRewardConfig())
	agent, err := plan.NewWorkoutAgent(selector, learner, policy, rewards, cfg.MaxExercises, logger)
	if err != nil {
		return nil, fmt.Errorf("init workout agent: %w", err)
	}
	controller, err := plan.NewController(agent, logger)
	if err != nil {
		return nil, fmt.Errorf("init episode controller: %w", err)
	}

	return &Loop{
		cfg:        cfg,
		selector:   selector,
		learner:    learner,
		controller: controller,
		logger:     logger,
		runID:      uuid.New(),
	}, nil
}

// RunID identifies this training run in logs and persisted metrics.
func (l *Loop) RunID() uuid.UUID {
	return l.runID
}

// Run executes the configured number of episodes over the given scenarios.
// Invalid scenarios are logged and skipped; the run continues with the rest.
// Run stops early when ctx is canceled, returning the context error.
func (l *Loop) Run(ctx context.Context, profiles []plan.Profile, recorder Recorder) (Summary, error) {
	ctx = logging.WithAttrs(ctx, slog.String("runID", l.runID.String()))

	valid := make([]plan.Profile, 0, len(profiles))
	for _, profile := range profiles {
		if err := profile.Validate(); err != nil {
			l.logger.LogAttrs(ctx, slog.LevelWarn, "skipping invalid scenario",
				slog.String("scenario", profile.Name),
				slog.String("error", err.Error()))
			continue
		}
		valid = append(valid, profile)
	}
	if len(valid) == 0 {
		return Summary{}, fmt.Errorf("training run: no valid scenarios")
	}

	l.logger.LogAttrs(ctx, slog.LevelInfo, "training started",
		slog.Int("episodes", l.cfg.Episodes),
		slog.Int("scenarios", len(valid)))

	episodes := make([]EpisodeStats, 0, l.cfg.Episodes)
	for episode := 1; episode <= l.cfg.Episodes; episode++ {
		if err := ctx.Err(); err != nil {
			return Summary{}, fmt.Errorf("training run canceled at episode %d: %w", episode, err)
		}

		var (
			rewardSum   float64
			exerciseSum int
		)
		for _, profile := range valid {
			_, metrics, err := l.controller.RunEpisode(ctx, profile, episode)
			if err != nil {
				return Summary{}, fmt.Errorf("episode %d scenario %q: %w", episode, profile.Name, err)
			}
			rewardSum += metrics.TotalReward
			exerciseSum += metrics.ExerciseCount

			if recorder != nil {
				if err := recorder.RecordEpisode(ctx, l.runID, metrics); err != nil {
					return Summary{}, fmt.Errorf("record episode %d scenario %q: %w", episode, profile.Name, err)
				}
			}
		}

		episodes = append(episodes, EpisodeStats{
			Episode:      episode,
			AvgReward:    rewardSum / float64(len(valid)),
			AvgExercises: float64(exerciseSum) / float64(len(valid)),
		})
	}

	summary := Summary{
		RunID:      l.runID,
		Episodes:   episodes,
		ArmStats:   l.selector.Stats(),
		QTableSize: l.learner.Size(),
	}

	l.logger.LogAttrs(ctx, slog.LevelInfo, "training finished",
		slog.Int("episodes", len(episodes)),
		slog.Int("qTableSize", summary.QTableSize),
		slog.Int("banditPulls", l.selector.TotalPulls()))

	return summary, nil
}
