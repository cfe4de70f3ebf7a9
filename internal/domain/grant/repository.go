package grant

import (
	"context"
	"time"
)

// Repository defines the interface for grant persistence operations
type Repository interface {
	// Create creates a new grant
	Create(ctx context.Context, g *Grant) error

	// Update updates an existing grant
	Update(ctx context.Context, g *Grant) error

	// GetBySID retrieves a grant by its short ID
	GetBySID(ctx context.Context, sid string) (*Grant, error)

	// ActiveCourseGrant returns an active course grant for (account, course)
	// at the given instant, applying the source-kind qualification rule.
	// Returns (nil, nil) when none exists.
	ActiveCourseGrant(ctx context.Context, accountID, courseID uint, now time.Time) (*Grant, error)

	// ActiveCardGrant returns an active card grant for (account, card).
	// Returns (nil, nil) when none exists.
	ActiveCardGrant(ctx context.Context, accountID, cardID uint, now time.Time) (*Grant, error)

	// ActiveMonthGrant returns an active month grant for (account, course, month).
	// Returns (nil, nil) when none exists.
	ActiveMonthGrant(ctx context.Context, accountID, courseID uint, monthNumber int, now time.Time) (*Grant, error)

	// FindMergeable returns the grant a reissue for (account, scope) should be
	// merged into: the most recent non-revoked grant for that exact scope.
	// Returns (nil, nil) when a fresh grant must be created instead.
	FindMergeable(ctx context.Context, accountID uint, scope Scope) (*Grant, error)

	// ListByAccount retrieves all grants held by an account, newest first.
	ListByAccount(ctx context.Context, accountID uint) ([]*Grant, error)

	// MarkExpired flips date-expired active grants to expired status and
	// returns how many rows changed. Maintenance path only; the read path
	// never depends on it because the window rule is applied at query time.
	MarkExpired(ctx context.Context, now time.Time) (int64, error)
}
