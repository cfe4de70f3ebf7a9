package device

import (
	"context"
	"fmt"
	"time"

	"courtside/internal/domain/ban"
	"courtside/internal/shared/logger"
)

// Tracker records device sightings and enforces the device-limit policy.
type Tracker struct {
	repo     Repository
	registry *ban.Registry
	limit    int
	logger   logger.Interface
}

// NewTracker creates a tracker with the configured distinct-device limit.
func NewTracker(repo Repository, registry *ban.Registry, limit int, logger logger.Interface) *Tracker {
	return &Tracker{
		repo:     repo,
		registry: registry,
		limit:    limit,
		logger:   logger,
	}
}

// Track upserts the association and applies the abuse checks.
// Returns ErrBanned when the account is banned, ErrTooManyDevices when the
// distinct-device count exceeds the limit. Ban always wins over the limit.
func (t *Tracker) Track(ctx context.Context, accountID uint, deviceID string) error {
	if accountID == 0 {
		return fmt.Errorf("account ID is required")
	}
	if deviceID == "" {
		return fmt.Errorf("device ID is required")
	}

	banned, err := t.registry.IsAccountBanned(ctx, accountID)
	if err != nil {
		// Fail closed: an unverifiable account is treated as banned.
		return fmt.Errorf("%w: ban check failed", ErrBanned)
	}
	if banned {
		return ErrBanned
	}

	now := time.Now().UTC()
	if err := t.repo.Upsert(ctx, deviceID, accountID, now); err != nil {
		return fmt.Errorf("failed to upsert device association: %w", err)
	}

	// Count after the upsert commits so concurrent sightings can't undercount.
	count, err := t.repo.CountDistinctDevices(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to count devices: %w", err)
	}

	if count > t.limit {
		t.logger.Warnw("device limit exceeded",
			"account_id", accountID,
			"device_id", deviceID,
			"count", count,
			"limit", t.limit)
		return ErrTooManyDevices
	}

	return nil
}

// Limit returns the configured distinct-device limit.
func (t *Tracker) Limit() int {
	return t.limit
}
