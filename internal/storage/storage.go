// Package storage defines the key-value persistence port that repositories
// and the session store are built on. Records are JSON documents addressed by
// (scope, key) where scope identifies one browser's storage and key is a
// record name such as "workouts" or "active_session".
package storage

import "context"

// Store is the persistence port. Implementations must treat values as opaque
// bytes and must not invent records: Get reports found=false for keys that
// were never set or have been removed.
type Store interface {
	// Get returns the value stored under key in scope. found is false when
	// the record does not exist; that is not an error.
	Get(ctx context.Context, scope, key string) (value []byte, found bool, err error)

	// Set stores value under key in scope, overwriting any previous value.
	Set(ctx context.Context, scope, key string, value []byte) error

	// Remove deletes the record. Removing an absent record is a no-op.
	Remove(ctx context.Context, scope, key string) error
}
