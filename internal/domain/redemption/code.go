// Package redemption provides the redeemable code aggregate. A code is an
// opaque token with a redemption budget that mints a grant when consumed.
package redemption

import (
	"fmt"
	"time"

	"courtside/internal/domain/grant"
)

// ScopeType represents what content a code unlocks when redeemed
type ScopeType string

const (
	// ScopeTypeCourse unlocks a whole course
	ScopeTypeCourse ScopeType = "course"
	// ScopeTypePackageCourse unlocks a course as exposed through a package
	ScopeTypePackageCourse ScopeType = "package_course"
	// ScopeTypeCard unlocks a single player card
	ScopeTypeCard ScopeType = "card"
)

// IsValid checks if the scope type is valid
func (st ScopeType) IsValid() bool {
	switch st {
	case ScopeTypeCourse, ScopeTypePackageCourse, ScopeTypeCard:
		return true
	default:
		return false
	}
}

// String returns the string representation of the scope type
func (st ScopeType) String() string {
	return string(st)
}

// Code represents the redemption code aggregate root.
type Code struct {
	id             uint
	code           string
	scopeType      ScopeType
	courseID       uint // course and package_course scopes
	packageID      uint // package_course scope only
	cardID         uint // card scope only
	maxRedemptions int
	redemptions    int
	durationDays   int
	metadata       map[string]any
	createdAt      time.Time
	updatedAt      time.Time
}

// NewCodeParams carries the inputs for minting a code.
type NewCodeParams struct {
	Code           string
	ScopeType      ScopeType
	CourseID       uint
	PackageID      uint
	CardID         uint
	MaxRedemptions int
	DurationDays   int
}

// NewCode creates an unredeemed code.
func NewCode(p NewCodeParams) (*Code, error) {
	if p.Code == "" {
		return nil, fmt.Errorf("code token is required")
	}
	if !p.ScopeType.IsValid() {
		return nil, fmt.Errorf("invalid code scope type: %s", p.ScopeType)
	}
	if p.MaxRedemptions < 1 {
		return nil, fmt.Errorf("max redemptions must be at least 1")
	}
	if p.DurationDays < 1 {
		return nil, fmt.Errorf("duration days must be at least 1")
	}

	switch p.ScopeType {
	case ScopeTypeCourse:
		if p.CourseID == 0 {
			return nil, fmt.Errorf("course ID is required for course-scoped codes")
		}
	case ScopeTypePackageCourse:
		if p.CourseID == 0 || p.PackageID == 0 {
			return nil, fmt.Errorf("course and package IDs are required for package-scoped codes")
		}
	case ScopeTypeCard:
		if p.CardID == 0 {
			return nil, fmt.Errorf("card ID is required for card-scoped codes")
		}
	}

	now := time.Now().UTC()
	return &Code{
		code:           p.Code,
		scopeType:      p.ScopeType,
		courseID:       p.CourseID,
		packageID:      p.PackageID,
		cardID:         p.CardID,
		maxRedemptions: p.MaxRedemptions,
		durationDays:   p.DurationDays,
		metadata:       make(map[string]any),
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructParams carries every persisted field of a code row.
type ReconstructParams struct {
	ID             uint
	Code           string
	ScopeType      ScopeType
	CourseID       uint
	PackageID      uint
	CardID         uint
	MaxRedemptions int
	Redemptions    int
	DurationDays   int
	Metadata       map[string]any
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ReconstructCode reconstructs a code from persistence.
func ReconstructCode(p ReconstructParams) (*Code, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("code ID cannot be zero")
	}
	if p.Code == "" {
		return nil, fmt.Errorf("code token is required")
	}
	if !p.ScopeType.IsValid() {
		return nil, fmt.Errorf("invalid code scope type: %s", p.ScopeType)
	}
	if p.Redemptions < 0 {
		return nil, fmt.Errorf("redemption count cannot be negative")
	}
	if p.Metadata == nil {
		p.Metadata = make(map[string]any)
	}

	return &Code{
		id:             p.ID,
		code:           p.Code,
		scopeType:      p.ScopeType,
		courseID:       p.CourseID,
		packageID:      p.PackageID,
		cardID:         p.CardID,
		maxRedemptions: p.MaxRedemptions,
		redemptions:    p.Redemptions,
		durationDays:   p.DurationDays,
		metadata:       p.Metadata,
		createdAt:      p.CreatedAt,
		updatedAt:      p.UpdatedAt,
	}, nil
}

func (c *Code) ID() uint             { return c.id }
func (c *Code) Code() string         { return c.code }
func (c *Code) ScopeType() ScopeType { return c.scopeType }
func (c *Code) CourseID() uint       { return c.courseID }
func (c *Code) PackageID() uint      { return c.packageID }
func (c *Code) CardID() uint         { return c.cardID }
func (c *Code) MaxRedemptions() int  { return c.maxRedemptions }
func (c *Code) Redemptions() int     { return c.redemptions }
func (c *Code) DurationDays() int    { return c.durationDays }

// Metadata returns a copy of the code metadata
func (c *Code) Metadata() map[string]any {
	metadata := make(map[string]any, len(c.metadata))
	for k, v := range c.metadata {
		metadata[k] = v
	}
	return metadata
}

func (c *Code) CreatedAt() time.Time { return c.createdAt }
func (c *Code) UpdatedAt() time.Time { return c.updatedAt }

// SetID sets the code ID (only for persistence layer use)
func (c *Code) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("code ID is already set")
	}
	c.id = id
	return nil
}

// IsExhausted reports whether the redemption budget is spent.
// An exhausted code is permanently unusable.
func (c *Code) IsExhausted() bool {
	return c.redemptions >= c.maxRedemptions
}

// Remaining returns how many redemptions are left.
func (c *Code) Remaining() int {
	if c.IsExhausted() {
		return 0
	}
	return c.maxRedemptions - c.redemptions
}

// GrantScope maps the code's scope to the grant scope it mints.
// A package-scoped code still mints a course grant: the package only
// restricts which age groups are visible, never who holds access.
func (c *Code) GrantScope() (grant.Scope, error) {
	switch c.scopeType {
	case ScopeTypeCourse, ScopeTypePackageCourse:
		return grant.CourseScope(c.courseID)
	case ScopeTypeCard:
		return grant.CardScope(c.cardID)
	default:
		return grant.Scope{}, fmt.Errorf("invalid code scope type: %s", c.scopeType)
	}
}

// GrantWindow returns the expiry a redemption at the given instant produces.
func (c *Code) GrantWindow(now time.Time) time.Time {
	return now.Add(time.Duration(c.durationDays) * 24 * time.Hour)
}
