package grant

import (
	"fmt"
	"time"
)

// Grant represents the grant aggregate root.
// It records that an account holds time-bounded access to a scope.
type Grant struct {
	id         uint
	sid        string
	accountID  uint
	scope      Scope
	startAt    time.Time
	endAt      *time.Time // nil means unbounded
	status     Status
	sourceKind SourceKind
	metadata   map[string]any
	createdAt  time.Time
	updatedAt  time.Time
	version    int
}

// NewGrant creates a new active grant starting now.
// endAt nil means the grant never expires.
func NewGrant(accountID uint, scope Scope, sourceKind SourceKind, endAt *time.Time, sid string) (*Grant, error) {
	if accountID == 0 {
		return nil, fmt.Errorf("account ID is required")
	}
	if !scope.Type().IsValid() {
		return nil, fmt.Errorf("invalid scope type: %s", scope.Type())
	}
	if !sourceKind.IsValid() {
		return nil, fmt.Errorf("invalid source kind: %s", sourceKind)
	}
	if sid == "" {
		return nil, fmt.Errorf("grant SID is required")
	}

	now := time.Now().UTC()
	if endAt != nil && !endAt.After(now) {
		return nil, fmt.Errorf("grant end time must be in the future")
	}

	return &Grant{
		sid:        sid,
		accountID:  accountID,
		scope:      scope,
		startAt:    now,
		endAt:      endAt,
		status:     StatusActive,
		sourceKind: sourceKind,
		metadata:   make(map[string]any),
		createdAt:  now,
		updatedAt:  now,
		version:    1,
	}, nil
}

// ReconstructParams carries every persisted field of a grant row.
type ReconstructParams struct {
	ID         uint
	SID        string
	AccountID  uint
	Scope      Scope
	StartAt    time.Time
	EndAt      *time.Time
	Status     Status
	SourceKind SourceKind
	Metadata   map[string]any
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Version    int
}

// ReconstructGrant reconstructs a grant from persistence.
// Unlike NewGrant it tolerates unknown source kinds: rows provisioned by
// paths this service doesn't know about must round-trip unchanged, they are
// just never honored as course access.
func ReconstructGrant(p ReconstructParams) (*Grant, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("grant ID cannot be zero")
	}
	if p.AccountID == 0 {
		return nil, fmt.Errorf("account ID is required")
	}
	if !p.Scope.Type().IsValid() {
		return nil, fmt.Errorf("invalid scope type: %s", p.Scope.Type())
	}
	if !p.Status.IsValid() {
		return nil, fmt.Errorf("invalid grant status: %s", p.Status)
	}
	if p.Metadata == nil {
		p.Metadata = make(map[string]any)
	}

	return &Grant{
		id:         p.ID,
		sid:        p.SID,
		accountID:  p.AccountID,
		scope:      p.Scope,
		startAt:    p.StartAt,
		endAt:      p.EndAt,
		status:     p.Status,
		sourceKind: p.SourceKind,
		metadata:   p.Metadata,
		createdAt:  p.CreatedAt,
		updatedAt:  p.UpdatedAt,
		version:    p.Version,
	}, nil
}

// ID returns the grant ID
func (g *Grant) ID() uint {
	return g.id
}

// SID returns the grant short ID
func (g *Grant) SID() string {
	return g.sid
}

// AccountID returns the subject account ID
func (g *Grant) AccountID() uint {
	return g.accountID
}

// Scope returns the grant scope
func (g *Grant) Scope() Scope {
	return g.scope
}

// StartAt returns when the grant window opens
func (g *Grant) StartAt() time.Time {
	return g.startAt
}

// EndAt returns when the grant window closes, nil for unbounded grants
func (g *Grant) EndAt() *time.Time {
	return g.endAt
}

// Status returns the grant status
func (g *Grant) Status() Status {
	return g.status
}

// SourceKind returns how the grant was created
func (g *Grant) SourceKind() SourceKind {
	return g.sourceKind
}

// Metadata returns the grant metadata
func (g *Grant) Metadata() map[string]any {
	return g.metadata
}

// CreatedAt returns when the grant was created
func (g *Grant) CreatedAt() time.Time {
	return g.createdAt
}

// UpdatedAt returns when the grant was last updated
func (g *Grant) UpdatedAt() time.Time {
	return g.updatedAt
}

// Version returns the aggregate version for optimistic locking
func (g *Grant) Version() int {
	return g.version
}

// SetID sets the grant ID (only for persistence layer use)
func (g *Grant) SetID(id uint) error {
	if g.id != 0 {
		return fmt.Errorf("grant ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("grant ID cannot be zero")
	}
	g.id = id
	return nil
}

// IsActive checks if the grant is honored at the given instant.
// A grant is active iff its status is active and its window contains now.
func (g *Grant) IsActive(now time.Time) bool {
	if g.status != StatusActive {
		return false
	}
	if g.endAt != nil && !g.endAt.After(now) {
		return false
	}
	return true
}

// UnlocksCourse checks if the grant is honored as full course access.
// Only the three known source kinds qualify; anything else is treated as a
// not-yet-qualifying row.
func (g *Grant) UnlocksCourse(now time.Time) bool {
	return g.IsActive(now) && g.sourceKind.QualifiesForCourseAccess()
}

// ExtendWindow applies the merge-on-reissue rule: the effective window keeps
// the earliest start and the latest end; an unbounded reissue makes the grant
// unbounded. Reissuing with an identical window is a no-op on the window
// (idempotent), but still bumps the version so the write is observable.
func (g *Grant) ExtendWindow(newEndAt *time.Time, now time.Time) {
	if now.Before(g.startAt) {
		g.startAt = now
	}
	switch {
	case g.endAt == nil:
		// already unbounded, nothing can widen it
	case newEndAt == nil:
		g.endAt = nil
	case newEndAt.After(*g.endAt):
		end := *newEndAt
		g.endAt = &end
	}
	// A reissue always reactivates an expired grant.
	if g.status == StatusExpired {
		g.status = StatusActive
	}
	g.updatedAt = now
	g.version++
}

// Revoke revokes the grant
func (g *Grant) Revoke() error {
	if g.status == StatusRevoked {
		return nil // Already revoked
	}
	g.status = StatusRevoked
	g.updatedAt = time.Now().UTC()
	g.version++
	return nil
}

// Expire marks the grant as expired
func (g *Grant) Expire() error {
	if g.status == StatusExpired {
		return nil // Already expired
	}
	if g.status == StatusRevoked {
		return fmt.Errorf("cannot expire revoked grant")
	}
	g.status = StatusExpired
	g.updatedAt = time.Now().UTC()
	g.version++
	return nil
}

// SetMetadata sets a metadata value
func (g *Grant) SetMetadata(key string, value any) {
	if g.metadata == nil {
		g.metadata = make(map[string]any)
	}
	g.metadata[key] = value
	g.updatedAt = time.Now().UTC()
	g.version++
}
