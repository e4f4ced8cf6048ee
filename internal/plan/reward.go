package plan

// RewardConfig holds the reward-shaping constants. These are tunable
// hyperparameters: the defaults are chosen so that short, goal-aligned plans
// score best, and the typical learned plan length settles around two
// exercises as a consequence rather than a hardcoded target.
type RewardConfig struct {
	// MatchReward is paid when the chosen category is the goal's best match.
	MatchReward float64
	// GoodReward is paid for a decent but not ideal category.
	GoodReward float64
	// BadPenalty is subtracted for a category that works against the goal.
	BadPenalty float64
	// AddCost is the flat cost of adding any exercise, so that plans do not
	// grow without bound.
	AddCost float64
	// RepeatPenalty is subtracted when a category immediately repeats the
	// previous exercise.
	RepeatPenalty float64
	// OvershootPenalty is subtracted per exercise-length block that the plan
	// runs over the user's available time.
	OvershootPenalty float64
	// VarietyWeight scales the number of distinct categories in the terminal
	// quality score.
	VarietyWeight float64
	// TimeFitBonus is paid at finalize when the plan fits the time budget.
	TimeFitBonus float64
	// TimeOverPenalty is subtracted at finalize when the plan overshoots.
	TimeOverPenalty float64
	// AlignmentBest and AlignmentGood are paid per planned exercise at
	// finalize according to how well its category matches the goal.
	AlignmentBest float64
	AlignmentGood float64
	// EmptyFinalizePenalty is the reward for finalizing an empty plan.
	EmptyFinalizePenalty float64
	// ExerciseMinutes is the estimated duration of a single exercise.
	ExerciseMinutes int
}

// DefaultRewardConfig returns the reward constants used in training.
func DefaultRewardConfig() RewardConfig {
	return RewardConfig{
		MatchReward:          1.0,
		GoodReward:           0.5,
		BadPenalty:           0.2,
		AddCost:              0.05,
		RepeatPenalty:        0.15,
		OvershootPenalty:     0.5,
		VarietyWeight:        0.3,
		TimeFitBonus:         0.5,
		TimeOverPenalty:      0.3,
		AlignmentBest:        0.4,
		AlignmentGood:        0.2,
		EmptyFinalizePenalty: -1.0,
		ExerciseMinutes:      15,
	}
}

// categoryAffinity describes how well each category serves a goal.
type categoryAffinity struct {
	best Category
	good []Category
	bad  []Category
}

// goalAffinities maps each goal to its preferred and discouraged categories.
var goalAffinities = map[Goal]categoryAffinity{
	GoalStrength: {
		best: CategoryStrength,
		good: []Category{CategoryCompound, CategoryIsolation},
		bad:  []Category{CategoryYoga, CategoryLowImpact},
	},
	GoalCardio: {
		best: CategoryCardio,
		good: []Category{CategoryHIIT, CategoryPlyometric},
		bad:  []Category{CategoryIsolation},
	},
	GoalFlexibility: {
		best: CategoryFlexibility,
		good: []Category{CategoryYoga, CategoryLowImpact},
		bad:  []Category{CategoryPlyometric, CategoryHIIT},
	},
	GoalWeightLoss: {
		best: CategoryHIIT,
		good: []Category{CategoryCardio, CategoryPlyometric},
		bad:  []Category{CategoryIsolation},
	},
}

// RewardCalculator computes the learning signal. It is pure: identical inputs
// always yield the identical reward, with no hidden random state, so reward
// computation is independently testable.
type RewardCalculator struct {
	cfg RewardConfig
}

// NewRewardCalculator constructs a calculator with the given constants.
func NewRewardCalculator(cfg RewardConfig) *RewardCalculator {
	return &RewardCalculator{cfg: cfg}
}

// CategoryReward scores a single category choice against the user's goal.
// This is the observed reward fed back into the bandit.
func (rc *RewardCalculator) CategoryReward(profile Profile, category Category) float64 {
	affinity, ok := goalAffinities[profile.Goal]
	if !ok {
		return 0
	}
	if category == affinity.best {
		return rc.cfg.MatchReward
	}
	for _, c := range affinity.good {
		if category == c {
			return rc.cfg.GoodReward
		}
	}
	for _, c := range affinity.bad {
		if category == c {
			return -rc.cfg.BadPenalty
		}
	}
	return 0
}

// Compute returns the reward for taking action with the given exercise
// against the partial plan p. For ActionAddExercise the exercise is the one
// about to be appended; for ActionFinalize the exercise is ignored and the
// reward judges the finished plan.
func (rc *RewardCalculator) Compute(p Plan, ex Exercise, profile Profile, action WorkflowAction) float64 {
	if action == ActionFinalize {
		return rc.finalReward(p, profile)
	}
	return rc.stepReward(p, ex, profile)
}

// stepReward scores adding one exercise: goal alignment of the category,
// minus the flat add cost, an immediate-repeat penalty, and a time penalty
// that grows with how far past the budget the plan would run.
func (rc *RewardCalculator) stepReward(p Plan, ex Exercise, profile Profile) float64 {
	reward := rc.CategoryReward(profile, ex.Category) - rc.cfg.AddCost

	if last, ok := p.LastCategory(); ok && last == ex.Category {
		reward -= rc.cfg.RepeatPenalty
	}

	newDuration := p.EstimatedDurationMinutes() + ex.DurationMinutes
	if over := newDuration - profile.TimeAvailableMinutes; over > 0 && rc.cfg.ExerciseMinutes > 0 {
		reward -= rc.cfg.OvershootPenalty * float64(over) / float64(rc.cfg.ExerciseMinutes)
	}

	return reward
}

// finalReward scores the finished plan: variety across categories, whether
// the plan fits the time budget, and per-exercise goal alignment. Finalizing
// an empty plan is penalized outright.
func (rc *RewardCalculator) finalReward(p Plan, profile Profile) float64 {
	if len(p.Exercises) == 0 {
		return rc.cfg.EmptyFinalizePenalty
	}

	distinct := make(map[Category]struct{}, len(p.Exercises))
	for _, ex := range p.Exercises {
		distinct[ex.Category] = struct{}{}
	}
	quality := rc.cfg.VarietyWeight * float64(len(distinct))

	if p.EstimatedDurationMinutes() <= profile.TimeAvailableMinutes {
		quality += rc.cfg.TimeFitBonus
	} else {
		quality -= rc.cfg.TimeOverPenalty
	}

	affinity := goalAffinities[profile.Goal]
	for _, ex := range p.Exercises {
		if ex.Category == affinity.best {
			quality += rc.cfg.AlignmentBest
			continue
		}
		for _, c := range affinity.good {
			if ex.Category == c {
				quality += rc.cfg.AlignmentGood
				break
			}
		}
	}

	return quality
}
