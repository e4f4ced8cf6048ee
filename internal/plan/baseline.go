package plan

// baselineExerciseCount is the fixed plan length the baseline always
// produces.
const baselineExerciseCount = 3

// BaselineController is the non-learning comparison pipeline: every user gets
// the same fixed strategy of three strength exercises regardless of goal or
// time budget. It exists only to show what the system does without learning.
type BaselineController struct {
	rewards   *RewardCalculator
	intensity IntensityAgent
}

// NewBaselineController constructs the fixed-rule pipeline.
func NewBaselineController(rewards *RewardCalculator) *BaselineController {
	return &BaselineController{
		rewards:   rewards,
		intensity: IntensityAgent{},
	}
}

// BaselineResult is the outcome of the fixed pipeline for one scenario.
type BaselineResult struct {
	Scenario string
	Plan     Plan
	// Quality is the same terminal score the RL reward assigns, so the two
	// pipelines are comparable.
	Quality float64
}

// Run produces the fixed plan for a profile. It never learns and keeps no
// state, so calls are safe to make concurrently.
func (b *BaselineController) Run(profile Profile) (BaselineResult, error) {
	if err := profile.Validate(); err != nil {
		return BaselineResult{}, err
	}

	var p Plan
	for range baselineExerciseCount {
		p.Exercises = append(p.Exercises, Exercise{
			Category:        CategoryStrength,
			Intensity:       baseIntensity(profile.Level),
			DurationMinutes: b.rewards.cfg.ExerciseMinutes,
		})
	}
	p.Finalized = true
	p = b.intensity.Adjust(p, profile.Level)

	return BaselineResult{
		Scenario: profile.Name,
		Plan:     p,
		Quality:  b.rewards.finalReward(p, profile),
	}, nil
}
