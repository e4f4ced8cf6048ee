package plan

// TimeBucket discretizes the remaining workout time into a small enumerated
// domain so it can participate in the Q-table key.
type TimeBucket string

// Time bucket constants.
const (
	TimePlenty  TimeBucket = "plenty"
	TimeMedium  TimeBucket = "medium"
	TimeLimited TimeBucket = "limited"
)

// maxCountBucket caps the exercise-count component of the state. Plans longer
// than this all look the same to the learner, which keeps the state space
// small.
const maxCountBucket = 3

// State is the Q-table row key: the user's goal and level combined with the
// partial plan's progress. The domain is finite and all fields are
// comparable.
type State struct {
	Goal          Goal
	Level         FitnessLevel
	ExerciseCount int
	Time          TimeBucket
}

// StateFor encodes the current decision point for a profile and partial plan.
func StateFor(profile Profile, p Plan) State {
	count := len(p.Exercises)
	if count > maxCountBucket {
		count = maxCountBucket
	}
	return State{
		Goal:          profile.Goal,
		Level:         profile.Level,
		ExerciseCount: count,
		Time:          timeBucketFor(p, profile.TimeAvailableMinutes),
	}
}

// timeBucketFor estimates the remaining time after the exercises planned so
// far and maps it to a bucket.
func timeBucketFor(p Plan, availableMinutes int) TimeBucket {
	remaining := availableMinutes - p.EstimatedDurationMinutes()
	switch {
	case remaining > 30:
		return TimePlenty
	case remaining > 15:
		return TimeMedium
	default:
		return TimeLimited
	}
}
