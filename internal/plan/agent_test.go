package plan

import (
	"errors"
	"testing"

	"github.com/planfit/planfit/internal/rl"
	"github.com/planfit/planfit/internal/testhelpers"
)

// alwaysAdd is a policy that never finalizes voluntarily, so the exercise cap
// is the only thing ending the episode.
type alwaysAdd struct{}

func (alwaysAdd) Choose(_ State, _ []WorkflowAction, _ func(State, WorkflowAction) float64) WorkflowAction {
	return ActionAddExercise
}

// alwaysFinalize stops immediately.
type alwaysFinalize struct{}

func (alwaysFinalize) Choose(_ State, _ []WorkflowAction, _ func(State, WorkflowAction) float64) WorkflowAction {
	return ActionFinalize
}

func newTestAgent(t *testing.T, policy rl.Policy[State, WorkflowAction], maxExercises int) (*WorkoutAgent, *rl.UCB1[Category]) {
	t.Helper()

	selector, err := rl.NewUCB1(Categories(), rl.DefaultExplorationConstant)
	if err != nil {
		t.Fatalf("NewUCB1() error = %v", err)
	}
	learner, err := rl.NewQLearner[State, WorkflowAction](rl.Config{
		LearningRate:   0.1,
		DiscountFactor: 0.9,
	})
	if err != nil {
		t.Fatalf("NewQLearner() error = %v", err)
	}
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	agent, err := NewWorkoutAgent(selector, learner, policy, NewRewardCalculator(DefaultRewardConfig()), maxExercises, logger)
	if err != nil {
		t.Fatalf("NewWorkoutAgent() error = %v", err)
	}
	return agent, selector
}

func TestNewWorkoutAgentValidation(t *testing.T) {
	selector, err := rl.NewUCB1(Categories(), rl.DefaultExplorationConstant)
	if err != nil {
		t.Fatalf("NewUCB1() error = %v", err)
	}
	learner, err := rl.NewQLearner[State, WorkflowAction](rl.Config{LearningRate: 0.1, DiscountFactor: 0.9})
	if err != nil {
		t.Fatalf("NewQLearner() error = %v", err)
	}
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	rewards := NewRewardCalculator(DefaultRewardConfig())

	if _, err := NewWorkoutAgent(nil, learner, alwaysAdd{}, rewards, 6, logger); err == nil {
		t.Error("NewWorkoutAgent() with nil selector should fail")
	}
	if _, err := NewWorkoutAgent(selector, learner, alwaysAdd{}, rewards, 0, logger); err == nil {
		t.Error("NewWorkoutAgent() with zero cap should fail")
	}
}

func TestBuildStopsAtExerciseCap(t *testing.T) {
	const maxExercises = 6
	agent, selector := newTestAgent(t, alwaysAdd{}, maxExercises)
	profile := Profile{Name: "cap", Goal: GoalStrength, Level: LevelBeginner, TimeAvailableMinutes: 30}

	p, stepRewards, err := agent.Build(profile)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if !p.Finalized {
		t.Error("Build() returned unfinalized plan")
	}
	if got := len(p.Exercises); got != maxExercises {
		t.Errorf("plan length = %d, want %d", got, maxExercises)
	}
	// One reward per add plus one for the forced finalize.
	if got, want := len(stepRewards), maxExercises+1; got != want {
		t.Errorf("step rewards = %d, want %d", got, want)
	}
	if got := selector.TotalPulls(); got != maxExercises {
		t.Errorf("bandit pulls = %d, want %d", got, maxExercises)
	}
}

func TestBuildCapHoldsAcrossEpisodes(t *testing.T) {
	const maxExercises = 4
	agent, _ := newTestAgent(t, alwaysAdd{}, maxExercises)
	profile := Profile{Name: "cap", Goal: GoalCardio, Level: LevelAdvanced, TimeAvailableMinutes: 60}

	for episode := range 50 {
		p, _, err := agent.Build(profile)
		if err != nil {
			t.Fatalf("episode %d: Build() error = %v", episode, err)
		}
		if len(p.Exercises) > maxExercises {
			t.Fatalf("episode %d: plan length %d exceeds cap %d", episode, len(p.Exercises), maxExercises)
		}
	}
}

func TestBuildImmediateFinalize(t *testing.T) {
	agent, selector := newTestAgent(t, alwaysFinalize{}, 6)
	profile := Profile{Name: "empty", Goal: GoalStrength, Level: LevelBeginner, TimeAvailableMinutes: 30}

	p, stepRewards, err := agent.Build(profile)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(p.Exercises) != 0 {
		t.Errorf("plan length = %d, want 0", len(p.Exercises))
	}
	if !p.Finalized {
		t.Error("Build() returned unfinalized plan")
	}
	if len(stepRewards) != 1 {
		t.Fatalf("step rewards = %d, want 1", len(stepRewards))
	}
	if want := DefaultRewardConfig().EmptyFinalizePenalty; stepRewards[0] != want {
		t.Errorf("empty finalize reward = %g, want %g", stepRewards[0], want)
	}
	if selector.TotalPulls() != 0 {
		t.Errorf("bandit pulls = %d, want 0", selector.TotalPulls())
	}
}

func TestBuildExploresCategoriesInCanonicalOrder(t *testing.T) {
	agent, _ := newTestAgent(t, alwaysAdd{}, len(Categories()))
	profile := Profile{Name: "explore", Goal: GoalStrength, Level: LevelBeginner, TimeAvailableMinutes: 200}

	p, _, err := agent.Build(profile)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// A fresh bandit pulls every unpulled arm first, in canonical order.
	for i, want := range Categories() {
		if got := p.Exercises[i].Category; got != want {
			t.Errorf("exercise %d category = %s, want %s", i, got, want)
		}
	}
}

func TestBuildRejectsNilPolicyError(t *testing.T) {
	agent, _ := newTestAgent(t, alwaysAdd{}, 6)
	agent.policy = nil
	profile := Profile{Name: "broken", Goal: GoalStrength, Level: LevelBeginner, TimeAvailableMinutes: 30}

	if _, _, err := agent.Build(profile); err == nil {
		t.Error("Build() with nil policy should fail")
	} else if errors.Is(err, ErrInvalidScenario) {
		t.Errorf("Build() error should not be a scenario error, got %v", err)
	}
}
