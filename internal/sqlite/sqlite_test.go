package sqlite_test

import (
	"context"
	"testing"

	"github.com/planfit/planfit/internal/sqlite"
	"github.com/planfit/planfit/internal/testhelpers"
)

func TestNewDatabaseAppliesSchema(t *testing.T) {
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	ctx := context.Background()

	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("NewDatabase() error = %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})

	for _, table := range []string{"scenarios", "training_runs", "episode_metrics", "arm_statistics"} {
		var name string
		err := db.ReadOnly.QueryRowContext(ctx,
			`SELECT name FROM sqlite_schema WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s is missing: %v", table, err)
		}
	}

	// The read-only connection must reject writes.
	if _, err := db.ReadOnly.ExecContext(ctx,
		`INSERT INTO training_runs (id) VALUES ('test')`); err == nil {
		t.Error("write through read-only connection should fail")
	}
}

func TestNewDatabaseIsIdempotent(t *testing.T) {
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	ctx := context.Background()
	url := t.TempDir() + "/planfit.sqlite3"

	for range 2 {
		db, err := sqlite.NewDatabase(ctx, url, logger)
		if err != nil {
			t.Fatalf("NewDatabase() error = %v", err)
		}
		if err := db.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
	}
}
