package plan

import (
	"fmt"
	"log/slog"

	"github.com/planfit/planfit/internal/rl"
)

// WorkoutAgent assembles one candidate plan per episode. Each decision step
// asks the Q-learner whether to keep building or finalize; when building, the
// bandit picks the exercise category. Every decision receives exactly one
// reward and exactly one update to each learner it consulted before the next
// decision is made, which is what keeps the learning signal consistent.
//
// The agent holds references to the shared learners; their tables persist
// across episodes and only grow. The agent itself keeps no per-episode state.
type WorkoutAgent struct {
	selector     *rl.UCB1[Category]
	learner      *rl.QLearner[State, WorkflowAction]
	policy       rl.Policy[State, WorkflowAction]
	rewards      *RewardCalculator
	maxExercises int
	logger       *slog.Logger
}

// NewWorkoutAgent constructs an agent around shared learners.
func NewWorkoutAgent(
	selector *rl.UCB1[Category],
	learner *rl.QLearner[State, WorkflowAction],
	policy rl.Policy[State, WorkflowAction],
	rewards *RewardCalculator,
	maxExercises int,
	logger *slog.Logger,
) (*WorkoutAgent, error) {
	if selector == nil || learner == nil || policy == nil || rewards == nil || logger == nil {
		return nil, fmt.Errorf("workout agent: all dependencies are required")
	}
	if maxExercises < 1 {
		return nil, fmt.Errorf("workout agent: max exercises must be at least 1, got %d", maxExercises)
	}
	return &WorkoutAgent{
		selector:     selector,
		learner:      learner,
		policy:       policy,
		rewards:      rewards,
		maxExercises: maxExercises,
		logger:       logger,
	}, nil
}

// Build runs the episode state machine from BUILDING to FINALIZED and returns
// the finished plan together with the reward of every decision in order.
func (a *WorkoutAgent) Build(profile Profile) (Plan, []float64, error) {
	var (
		p           Plan
		stepRewards []float64
	)

	state := StateFor(profile, p)
	for !p.Finalized {
		action, err := a.learner.SelectAction(state, WorkflowActions(), a.policy)
		if err != nil {
			return Plan{}, nil, fmt.Errorf("select workflow action: %w", err)
		}

		// The exercise cap overrides the learned policy: once the plan is
		// full the only legal move is to finalize.
		if action == ActionAddExercise && len(p.Exercises) >= a.maxExercises {
			a.logger.Debug("exercise cap reached, forcing finalize",
				slog.String("scenario", profile.Name),
				slog.Int("cap", a.maxExercises))
			action = ActionFinalize
		}

		switch action {
		case ActionAddExercise:
			category := a.selector.Select()
			ex := Exercise{
				Category:        category,
				Intensity:       baseIntensity(profile.Level),
				DurationMinutes: a.rewards.cfg.ExerciseMinutes,
			}

			reward := a.rewards.Compute(p, ex, profile, ActionAddExercise)
			if err := a.selector.Update(category, a.rewards.CategoryReward(profile, category)); err != nil {
				return Plan{}, nil, fmt.Errorf("update bandit: %w", err)
			}

			p.Exercises = append(p.Exercises, ex)
			next := StateFor(profile, p)
			a.learner.Update(state, ActionAddExercise, reward, next, WorkflowActions())

			state = next
			stepRewards = append(stepRewards, reward)

		case ActionFinalize:
			reward := a.rewards.Compute(p, Exercise{}, profile, ActionFinalize)
			a.learner.UpdateTerminal(state, ActionFinalize, reward)
			p.Finalized = true
			stepRewards = append(stepRewards, reward)

		default:
			// The action set is a closed enumeration; anything else is a
			// programming defect, not a recoverable condition.
			panic(fmt.Sprintf("workout agent: workflow action %q outside enumerated domain", action))
		}
	}

	if len(p.Exercises) > a.maxExercises {
		panic(fmt.Sprintf("workout agent: plan length %d exceeds cap %d", len(p.Exercises), a.maxExercises))
	}

	return p, stepRewards, nil
}
