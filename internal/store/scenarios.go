// Package store persists scenarios and training metrics in SQLite.
package store

import (
	"context"
	"fmt"

	"github.com/planfit/planfit/internal/plan"
	"github.com/planfit/planfit/internal/sqlite"
)

// ScenarioStore reads and writes user scenarios.
type ScenarioStore struct {
	db *sqlite.Database
}

// NewScenarioStore creates a scenario store backed by db.
func NewScenarioStore(db *sqlite.Database) *ScenarioStore {
	return &ScenarioStore{db: db}
}

// List returns all stored scenarios ordered by name.
func (s *ScenarioStore) List(ctx context.Context) ([]plan.Profile, error) {
	rows, err := s.db.ReadOnly.QueryContext(ctx, `
		SELECT name, goal, fitness_level, time_available_minutes
		FROM scenarios
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query scenarios: %w", err)
	}
	defer rows.Close()

	var profiles []plan.Profile
	for rows.Next() {
		var p plan.Profile
		if err := rows.Scan(&p.Name, &p.Goal, &p.Level, &p.TimeAvailableMinutes); err != nil {
			return nil, fmt.Errorf("scan scenario: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scenarios: %w", err)
	}

	return profiles, nil
}

// Import upserts the given scenarios by name.
func (s *ScenarioStore) Import(ctx context.Context, profiles []plan.Profile) error {
	tx, err := s.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op.

	for _, p := range profiles {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO scenarios (name, goal, fitness_level, time_available_minutes)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (name) DO UPDATE SET goal                   = excluded.goal,
			                                 fitness_level          = excluded.fitness_level,
			                                 time_available_minutes = excluded.time_available_minutes`,
			p.Name, string(p.Goal), string(p.Level), p.TimeAvailableMinutes); err != nil {
			return fmt.Errorf("upsert scenario %q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit scenarios: %w", err)
	}
	return nil
}
