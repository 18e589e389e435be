package sqlite_test

import (
	"testing"

	"github.com/lifeonlars/styrkur/internal/sqlite"
	"github.com/lifeonlars/styrkur/internal/testhelpers"
)

func TestNewDatabase(t *testing.T) {
	ctx := t.Context()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	db, err := sqlite.NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close database: %v", err)
		}
	})

	// Schema is applied on startup.
	if _, err := db.ReadWrite.ExecContext(ctx,
		"INSERT INTO storage_records (scope, key, value, updated_at) VALUES ('s', 'k', 'v', '2024-01-01T00:00:00.000Z')",
	); err != nil {
		t.Fatalf("insert into storage_records: %v", err)
	}

	var value string
	if err := db.ReadOnly.QueryRowContext(ctx,
		"SELECT value FROM storage_records WHERE scope = 's' AND key = 'k'",
	).Scan(&value); err != nil {
		t.Fatalf("read back storage record: %v", err)
	}
	if value != "v" {
		t.Errorf("got value %q, want %q", value, "v")
	}

	// The read-only pool must reject writes.
	if _, err := db.ReadOnly.ExecContext(ctx,
		"INSERT INTO storage_records (scope, key, value, updated_at) VALUES ('s2', 'k', 'v', '2024-01-01T00:00:00.000Z')",
	); err == nil {
		t.Error("expected write on read-only pool to fail")
	}
}
