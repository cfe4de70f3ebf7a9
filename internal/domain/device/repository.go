package device

import (
	"context"
	"time"
)

// Repository defines the interface for device association persistence
type Repository interface {
	// Upsert inserts the association or refreshes its last-seen timestamp.
	// Must be idempotent under concurrent calls for the same pair.
	Upsert(ctx context.Context, deviceID string, accountID uint, seenAt time.Time) error

	// CountDistinctDevices counts distinct device IDs associated with the
	// account. Callers must invoke this after Upsert commits, never from a
	// cache, so concurrent tracking cannot undercount.
	CountDistinctDevices(ctx context.Context, accountID uint) (int, error)

	// ListByAccount lists an account's associations, most recently seen first.
	ListByAccount(ctx context.Context, accountID uint) ([]*Association, error)

	// DeleteByDevice removes all associations for a device (pruning).
	// The device-limit soft ban self-heals once devices are pruned.
	DeleteByDevice(ctx context.Context, deviceID string) error
}
