package plan

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCategoryReward(t *testing.T) {
	rc := NewRewardCalculator(DefaultRewardConfig())

	tests := []struct {
		name     string
		goal     Goal
		category Category
		want     float64
	}{
		{name: "strength best match", goal: GoalStrength, category: CategoryStrength, want: 1.0},
		{name: "strength good match", goal: GoalStrength, category: CategoryCompound, want: 0.5},
		{name: "strength bad match", goal: GoalStrength, category: CategoryYoga, want: -0.2},
		{name: "strength neutral", goal: GoalStrength, category: CategoryHIIT, want: 0},
		{name: "cardio best match", goal: GoalCardio, category: CategoryCardio, want: 1.0},
		{name: "cardio bad match", goal: GoalCardio, category: CategoryIsolation, want: -0.2},
		{name: "flexibility good match", goal: GoalFlexibility, category: CategoryYoga, want: 0.5},
		{name: "weight loss best is hiit", goal: GoalWeightLoss, category: CategoryHIIT, want: 1.0},
		{name: "weight loss good match", goal: GoalWeightLoss, category: CategoryCardio, want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := Profile{Name: "test", Goal: tt.goal, Level: LevelBeginner, TimeAvailableMinutes: 30}
			got := rc.CategoryReward(profile, tt.category)
			if !almostEqual(got, tt.want) {
				t.Errorf("CategoryReward(%s, %s) = %g, want %g", tt.goal, tt.category, got, tt.want)
			}
		})
	}
}

func TestStepReward(t *testing.T) {
	cfg := DefaultRewardConfig()
	rc := NewRewardCalculator(cfg)
	profile := Profile{Name: "test", Goal: GoalStrength, Level: LevelBeginner, TimeAvailableMinutes: 30}
	strengthExercise := Exercise{Category: CategoryStrength, Intensity: IntensityLight, DurationMinutes: cfg.ExerciseMinutes}

	t.Run("first goal-aligned add pays match minus add cost", func(t *testing.T) {
		got := rc.Compute(Plan{}, strengthExercise, profile, ActionAddExercise)
		want := cfg.MatchReward - cfg.AddCost
		if !almostEqual(got, want) {
			t.Errorf("Compute() = %g, want %g", got, want)
		}
	})

	t.Run("immediate repeat is penalized", func(t *testing.T) {
		p := Plan{Exercises: []Exercise{strengthExercise}}
		got := rc.Compute(p, strengthExercise, profile, ActionAddExercise)
		want := cfg.MatchReward - cfg.AddCost - cfg.RepeatPenalty
		if !almostEqual(got, want) {
			t.Errorf("Compute() = %g, want %g", got, want)
		}
	})

	t.Run("non-adjacent repeat is not penalized", func(t *testing.T) {
		p := Plan{Exercises: []Exercise{strengthExercise, {Category: CategoryCompound, DurationMinutes: 0}}}
		got := rc.Compute(p, strengthExercise, profile, ActionAddExercise)
		want := cfg.MatchReward - cfg.AddCost
		if !almostEqual(got, want) {
			t.Errorf("Compute() = %g, want %g", got, want)
		}
	})

	t.Run("overshoot penalty grows with excess", func(t *testing.T) {
		twoFull := Plan{Exercises: []Exercise{strengthExercise, strengthExercise}}
		threeFull := Plan{Exercises: []Exercise{strengthExercise, strengthExercise, strengthExercise}}

		third := rc.Compute(twoFull, strengthExercise, profile, ActionAddExercise)
		fourth := rc.Compute(threeFull, strengthExercise, profile, ActionAddExercise)
		if fourth >= third {
			t.Errorf("deeper overshoot should score worse: third add %g, fourth add %g", third, fourth)
		}

		// Third exercise overshoots the 30-minute budget by one full
		// exercise block.
		want := cfg.MatchReward - cfg.AddCost - cfg.RepeatPenalty - cfg.OvershootPenalty
		if !almostEqual(third, want) {
			t.Errorf("third add reward = %g, want %g", third, want)
		}
	})

	t.Run("identical inputs give identical rewards", func(t *testing.T) {
		p := Plan{Exercises: []Exercise{strengthExercise}}
		first := rc.Compute(p, strengthExercise, profile, ActionAddExercise)
		for range 10 {
			if got := rc.Compute(p, strengthExercise, profile, ActionAddExercise); !almostEqual(got, first) {
				t.Fatalf("Compute() = %g, expected deterministic %g", got, first)
			}
		}
	})
}

func TestFinalReward(t *testing.T) {
	cfg := DefaultRewardConfig()
	rc := NewRewardCalculator(cfg)
	profile := Profile{Name: "test", Goal: GoalStrength, Level: LevelBeginner, TimeAvailableMinutes: 30}
	strengthExercise := Exercise{Category: CategoryStrength, Intensity: IntensityLight, DurationMinutes: cfg.ExerciseMinutes}

	t.Run("empty plan is penalized", func(t *testing.T) {
		got := rc.Compute(Plan{}, Exercise{}, profile, ActionFinalize)
		if !almostEqual(got, cfg.EmptyFinalizePenalty) {
			t.Errorf("Compute() = %g, want %g", got, cfg.EmptyFinalizePenalty)
		}
	})

	t.Run("plan within budget earns time fit bonus", func(t *testing.T) {
		p := Plan{Exercises: []Exercise{strengthExercise, {Category: CategoryCompound, DurationMinutes: cfg.ExerciseMinutes}}}
		got := rc.Compute(p, Exercise{}, profile, ActionFinalize)
		want := cfg.VarietyWeight*2 + cfg.TimeFitBonus + cfg.AlignmentBest + cfg.AlignmentGood
		if !almostEqual(got, want) {
			t.Errorf("Compute() = %g, want %g", got, want)
		}
	})

	t.Run("plan over budget is penalized instead", func(t *testing.T) {
		p := Plan{Exercises: []Exercise{strengthExercise, strengthExercise, strengthExercise}}
		got := rc.Compute(p, Exercise{}, profile, ActionFinalize)
		want := cfg.VarietyWeight*1 - cfg.TimeOverPenalty + 3*cfg.AlignmentBest
		if !almostEqual(got, want) {
			t.Errorf("Compute() = %g, want %g", got, want)
		}
	})

	t.Run("variety scales with distinct categories", func(t *testing.T) {
		uniform := Plan{Exercises: []Exercise{strengthExercise, strengthExercise}}
		varied := Plan{Exercises: []Exercise{strengthExercise, {Category: CategoryCompound, DurationMinutes: cfg.ExerciseMinutes}}}

		uniformScore := rc.Compute(uniform, Exercise{}, profile, ActionFinalize)
		variedScore := rc.Compute(varied, Exercise{}, profile, ActionFinalize)
		if variedScore <= uniformScore {
			t.Errorf("varied plan should outscore uniform plan: varied %g, uniform %g", variedScore, uniformScore)
		}
	})
}
