// Package plan provides functionality to assemble personalized workout plans
// through simulated trial and error. A tabular Q-learner decides when to keep
// adding exercises and when to stop, a UCB1 bandit picks which exercise
// category to add, and a shared reward signal ties the two together.
package plan

import (
	"errors"
	"fmt"
)

// Goal is a user's primary training objective.
type Goal string

// Goal constants.
const (
	GoalStrength    Goal = "strength"
	GoalCardio      Goal = "cardio"
	GoalFlexibility Goal = "flexibility"
	GoalWeightLoss  Goal = "weight_loss"
)

// Goals returns all goals in canonical order.
func Goals() []Goal {
	return []Goal{GoalStrength, GoalCardio, GoalFlexibility, GoalWeightLoss}
}

// FitnessLevel describes how experienced a user is.
type FitnessLevel string

// Fitness level constants, ordered from least to most experienced.
const (
	LevelBeginner     FitnessLevel = "beginner"
	LevelIntermediate FitnessLevel = "intermediate"
	LevelAdvanced     FitnessLevel = "advanced"
)

// FitnessLevels returns all fitness levels in canonical order.
func FitnessLevels() []FitnessLevel {
	return []FitnessLevel{LevelBeginner, LevelIntermediate, LevelAdvanced}
}

// Category represents the type of exercise.
type Category string

// Category constants.
const (
	CategoryStrength    Category = "strength"
	CategoryCardio      Category = "cardio"
	CategoryFlexibility Category = "flexibility"
	CategoryCompound    Category = "compound"
	CategoryIsolation   Category = "isolation"
	CategoryHIIT        Category = "hiit"
	CategoryPlyometric  Category = "plyometric"
	CategoryYoga        Category = "yoga"
	CategoryLowImpact   Category = "low_impact"
)

// Categories returns all exercise categories in canonical order. The order is
// also the deterministic tie-break order for the bandit.
func Categories() []Category {
	return []Category{
		CategoryStrength,
		CategoryCardio,
		CategoryFlexibility,
		CategoryCompound,
		CategoryIsolation,
		CategoryHIIT,
		CategoryPlyometric,
		CategoryYoga,
		CategoryLowImpact,
	}
}

// WorkflowAction is a high-level planning decision: keep building the plan or
// stop and finalize it.
type WorkflowAction string

// Workflow action constants. ActionAddExercise comes first in canonical
// order, so an untrained learner favors building over stopping.
const (
	ActionAddExercise WorkflowAction = "add_exercise"
	ActionFinalize    WorkflowAction = "finalize"
)

// WorkflowActions returns all workflow actions in canonical order.
func WorkflowActions() []WorkflowAction {
	return []WorkflowAction{ActionAddExercise, ActionFinalize}
}

// Intensity is the difficulty label assigned to a planned exercise.
type Intensity string

// Intensity constants, ordered from easiest to hardest.
const (
	IntensityLight    Intensity = "light"
	IntensityModerate Intensity = "moderate"
	IntensityHard     Intensity = "hard"
)

// Profile describes one user scenario. It is immutable for the duration of an
// episode and supplied by the external scenario source.
type Profile struct {
	// Name identifies the scenario in logs, errors, and metrics.
	Name string
	// Goal is the user's primary training objective.
	Goal Goal
	// Level is the user's fitness level.
	Level FitnessLevel
	// TimeAvailableMinutes is the workout time budget.
	TimeAvailableMinutes int
}

// ErrInvalidScenario reports a malformed user scenario. Episodes for invalid
// scenarios are skipped; training continues with the next scenario.
var ErrInvalidScenario = errors.New("invalid scenario")

// Validate checks that all profile fields are present and within range.
func (p Profile) Validate() error {
	var problems []string
	if p.Name == "" {
		problems = append(problems, "name is empty")
	}
	if !validGoal(p.Goal) {
		problems = append(problems, fmt.Sprintf("unknown goal %q", p.Goal))
	}
	if !validLevel(p.Level) {
		problems = append(problems, fmt.Sprintf("unknown fitness level %q", p.Level))
	}
	if p.TimeAvailableMinutes <= 0 {
		problems = append(problems, fmt.Sprintf("time available must be positive, got %d", p.TimeAvailableMinutes))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: scenario %q: %v", ErrInvalidScenario, p.Name, problems)
	}
	return nil
}

func validGoal(g Goal) bool {
	for _, known := range Goals() {
		if g == known {
			return true
		}
	}
	return false
}

func validLevel(l FitnessLevel) bool {
	for _, known := range FitnessLevels() {
		if l == known {
			return true
		}
	}
	return false
}

// Exercise is one planned exercise slot: a category with an assigned
// intensity and an estimated duration.
type Exercise struct {
	Category        Category
	Intensity       Intensity
	DurationMinutes int
}

// Plan is the ordered sequence of exercises chosen during one episode. It
// grows only by appending and is finalized exactly once, after which it is
// not modified.
type Plan struct {
	Exercises []Exercise
	Finalized bool
}

// EstimatedDurationMinutes sums the planned exercise durations.
func (p Plan) EstimatedDurationMinutes() int {
	var total int
	for _, ex := range p.Exercises {
		total += ex.DurationMinutes
	}
	return total
}

// LastCategory returns the category of the most recently added exercise, or
// false if the plan is empty.
func (p Plan) LastCategory() (Category, bool) {
	if len(p.Exercises) == 0 {
		return "", false
	}
	return p.Exercises[len(p.Exercises)-1].Category, true
}

// EpisodeMetrics captures the outcome of a single training episode.
type EpisodeMetrics struct {
	// Episode is the 1-based episode index within the training run.
	Episode int
	// Scenario names the profile the episode ran against.
	Scenario string
	// TotalReward is the sum of all per-step rewards in the episode.
	TotalReward float64
	// ExerciseCount is the length of the finalized plan.
	ExerciseCount int
	// StepRewards lists the reward of each decision in order.
	StepRewards []float64
}
