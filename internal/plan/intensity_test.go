package plan

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIntensityRecommend(t *testing.T) {
	agent := IntensityAgent{}

	tests := []struct {
		name     string
		level    FitnessLevel
		position int
		want     Intensity
	}{
		{name: "beginner starts light", level: LevelBeginner, position: 0, want: IntensityLight},
		{name: "intermediate starts moderate", level: LevelIntermediate, position: 0, want: IntensityModerate},
		{name: "advanced starts hard", level: LevelAdvanced, position: 0, want: IntensityHard},
		{name: "advanced steps down late in plan", level: LevelAdvanced, position: 4, want: IntensityModerate},
		{name: "intermediate steps down late in plan", level: LevelIntermediate, position: 5, want: IntensityLight},
		{name: "beginner cannot step below light", level: LevelBeginner, position: 4, want: IntensityLight},
		{name: "position just before threshold keeps base", level: LevelAdvanced, position: 3, want: IntensityHard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := agent.Recommend(tt.level, tt.position); got != tt.want {
				t.Errorf("Recommend(%s, %d) = %s, want %s", tt.level, tt.position, got, tt.want)
			}
		})
	}
}

func TestIntensityAdjust(t *testing.T) {
	agent := IntensityAgent{}
	p := Plan{
		Exercises: []Exercise{
			{Category: CategoryStrength, Intensity: IntensityLight, DurationMinutes: 15},
			{Category: CategoryCompound, Intensity: IntensityLight, DurationMinutes: 15},
			{Category: CategoryCardio, Intensity: IntensityLight, DurationMinutes: 15},
			{Category: CategoryStrength, Intensity: IntensityLight, DurationMinutes: 15},
			{Category: CategoryIsolation, Intensity: IntensityLight, DurationMinutes: 15},
		},
		Finalized: true,
	}

	got := agent.Adjust(p, LevelAdvanced)

	want := Plan{
		Exercises: []Exercise{
			{Category: CategoryStrength, Intensity: IntensityHard, DurationMinutes: 15},
			{Category: CategoryCompound, Intensity: IntensityHard, DurationMinutes: 15},
			{Category: CategoryCardio, Intensity: IntensityHard, DurationMinutes: 15},
			{Category: CategoryStrength, Intensity: IntensityHard, DurationMinutes: 15},
			{Category: CategoryIsolation, Intensity: IntensityModerate, DurationMinutes: 15},
		},
		Finalized: true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Adjust() mismatch (-want +got):\n%s", diff)
	}

	// The input plan must not be mutated.
	for i, ex := range p.Exercises {
		if ex.Intensity != IntensityLight {
			t.Errorf("input exercise %d intensity changed to %s", i, ex.Intensity)
		}
	}
}
