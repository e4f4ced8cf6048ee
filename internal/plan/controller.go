package plan

import (
	"context"
	"fmt"
	"log/slog"
)

// Controller orchestrates exactly one training episode: it validates the
// scenario, drives the workout agent to a finalized plan, applies the
// intensity agent, and aggregates the episode's metrics. The learners inside
// the agent carry their state to the next episode.
type Controller struct {
	agent     *WorkoutAgent
	intensity IntensityAgent
	logger    *slog.Logger
}

// NewController constructs an episode controller.
func NewController(agent *WorkoutAgent, logger *slog.Logger) (*Controller, error) {
	if agent == nil || logger == nil {
		return nil, fmt.Errorf("controller: agent and logger are required")
	}
	return &Controller{
		agent:     agent,
		intensity: IntensityAgent{},
		logger:    logger,
	}, nil
}

// RunEpisode runs one episode for the given profile and returns the finished
// plan with its metrics. A malformed profile yields an error wrapping
// ErrInvalidScenario; everything else, including hitting the exercise cap, is
// normal control flow.
func (c *Controller) RunEpisode(ctx context.Context, profile Profile, episode int) (Plan, EpisodeMetrics, error) {
	if err := profile.Validate(); err != nil {
		return Plan{}, EpisodeMetrics{}, err
	}

	p, stepRewards, err := c.agent.Build(profile)
	if err != nil {
		return Plan{}, EpisodeMetrics{}, fmt.Errorf("build plan for scenario %q: %w", profile.Name, err)
	}

	p = c.intensity.Adjust(p, profile.Level)

	var total float64
	for _, r := range stepRewards {
		total += r
	}

	metrics := EpisodeMetrics{
		Episode:       episode,
		Scenario:      profile.Name,
		TotalReward:   total,
		ExerciseCount: len(p.Exercises),
		StepRewards:   stepRewards,
	}

	c.logger.LogAttrs(ctx, slog.LevelDebug, "episode finished",
		slog.String("scenario", profile.Name),
		slog.Int("episode", episode),
		slog.Float64("totalReward", total),
		slog.Int("exerciseCount", len(p.Exercises)))

	return p, metrics, nil
}
