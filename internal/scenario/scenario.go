// Package scenario loads user scenarios from JSON files. Scenarios are the
// simulated users the planner trains against.
package scenario

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/planfit/planfit/internal/plan"
)

// Record is the on-disk form of one user scenario.
type Record struct {
	Name                 string `json:"name"`
	Goal                 string `json:"goal"`
	FitnessLevel         string `json:"fitness_level"`
	TimeAvailableMinutes int    `json:"time_available_minutes"`
}

// Profile converts the record to the domain profile. The result is not
// validated here; the training loop validates and skips malformed scenarios
// so one bad record does not abort a run.
func (r Record) Profile() plan.Profile {
	return plan.Profile{
		Name:                 r.Name,
		Goal:                 plan.Goal(r.Goal),
		Level:                plan.FitnessLevel(r.FitnessLevel),
		TimeAvailableMinutes: r.TimeAvailableMinutes,
	}
}

// Parse decodes a JSON array of scenario records.
func Parse(r io.Reader) ([]plan.Profile, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode scenarios: %w", err)
	}

	profiles := make([]plan.Profile, len(records))
	for i, rec := range records {
		profiles[i] = rec.Profile()
	}
	return profiles, nil
}

// LoadFile reads scenarios from the JSON file at path.
func LoadFile(path string) ([]plan.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenario file: %w", err)
	}
	defer f.Close()

	profiles, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("scenario file %s: %w", path, err)
	}
	return profiles, nil
}
