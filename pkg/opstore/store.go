package opstore

import (
	"context"
	"time"
)

// DefaultTTL is how long a staged operation survives without being executed
// or cancelled. The same window bounds undo after execution.
const DefaultTTL = 10 * time.Minute

// Store is the staged-operation store. Keys are operation ids; records expire
// after their TTL so dismissed confirmation dialogs clean themselves up.
type Store interface {
	// Store persists the record with the given TTL, overwriting a duplicate id.
	Store(ctx context.Context, op *StagedOperation, ttl time.Duration) error

	// Get returns the record, or nil if missing or expired.
	Get(ctx context.Context, opId string) (*StagedOperation, error)

	// Delete removes the record. Returns true iff something was removed.
	Delete(ctx context.Context, opId string) (bool, error)

	// TTL returns seconds remaining, or -1 if the key is absent.
	TTL(ctx context.Context, opId string) (int64, error)

	// Extend resets the TTL. No-op (false) if the key is absent.
	Extend(ctx context.Context, opId string, ttl time.Duration) (bool, error)

	// HealthCheck round-trips the backing store.
	HealthCheck(ctx context.Context) error
}
