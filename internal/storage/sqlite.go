package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lifeonlars/styrkur/internal/sqlite"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"

// SQLiteStore persists records in the storage_records table using the
// read-write and read-only pools of [sqlite.Database].
type SQLiteStore struct {
	db *sqlite.Database
}

func NewSQLiteStore(db *sqlite.Database) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(ctx context.Context, scope, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.ReadOnly.QueryRowContext(ctx,
		"SELECT value FROM storage_records WHERE scope = ? AND key = ?",
		scope, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query storage record: %w", err)
	}
	return value, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, scope, key string, value []byte) error {
	updatedAt := time.Now().UTC().Format(timestampFormat)
	if _, err := s.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO storage_records (scope, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (scope, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		scope, key, value, updatedAt,
	); err != nil {
		return fmt.Errorf("upsert storage record: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Remove(ctx context.Context, scope, key string) error {
	if _, err := s.db.ReadWrite.ExecContext(ctx,
		"DELETE FROM storage_records WHERE scope = ? AND key = ?",
		scope, key,
	); err != nil {
		return fmt.Errorf("delete storage record: %w", err)
	}
	return nil
}
