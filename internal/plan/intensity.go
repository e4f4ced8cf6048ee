package plan

// longPlanThreshold is the plan position from which intensity is stepped
// down, so long workouts finish lighter than they start.
const longPlanThreshold = 4

// IntensityAgent assigns difficulty labels to planned exercises. It is
// stateless and does not learn; it runs once after a plan is finalized and
// never feeds back into the learners.
type IntensityAgent struct{}

// Recommend returns the intensity for an exercise at the given position in
// the plan. Intensity rises with fitness level and steps down one notch late
// in long plans to avoid overloading them.
func (IntensityAgent) Recommend(level FitnessLevel, position int) Intensity {
	base := baseIntensity(level)
	if position >= longPlanThreshold {
		return stepDown(base)
	}
	return base
}

// Adjust relabels every exercise of a finalized plan according to the user's
// fitness level and the exercise's position.
func (a IntensityAgent) Adjust(p Plan, level FitnessLevel) Plan {
	adjusted := Plan{
		Exercises: make([]Exercise, len(p.Exercises)),
		Finalized: p.Finalized,
	}
	for i, ex := range p.Exercises {
		ex.Intensity = a.Recommend(level, i)
		adjusted.Exercises[i] = ex
	}
	return adjusted
}

func baseIntensity(level FitnessLevel) Intensity {
	switch level {
	case LevelBeginner:
		return IntensityLight
	case LevelIntermediate:
		return IntensityModerate
	case LevelAdvanced:
		return IntensityHard
	default:
		return IntensityLight
	}
}

func stepDown(i Intensity) Intensity {
	switch i {
	case IntensityHard:
		return IntensityModerate
	case IntensityModerate:
		return IntensityLight
	default:
		return IntensityLight
	}
}
