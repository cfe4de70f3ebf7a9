// Package grant provides domain models and business logic for time-bounded
// access grants. A grant links an account to a scope (a whole course, a single
// player card, or a single course month) for a time window.
package grant

// ScopeType represents the kind of content a grant unlocks
type ScopeType string

const (
	// ScopeTypeCourse unlocks a whole course
	ScopeTypeCourse ScopeType = "course"
	// ScopeTypeCard unlocks exactly one player card's content tree
	ScopeTypeCard ScopeType = "card"
	// ScopeTypeMonth unlocks a single month within a course
	ScopeTypeMonth ScopeType = "month"
)

// IsValid checks if the scope type is valid
func (st ScopeType) IsValid() bool {
	switch st {
	case ScopeTypeCourse, ScopeTypeCard, ScopeTypeMonth:
		return true
	default:
		return false
	}
}

// String returns the string representation of the scope type
func (st ScopeType) String() string {
	return string(st)
}

// SourceKind represents how a grant came to exist
type SourceKind string

const (
	// SourceKindCode indicates the grant was minted by redeeming a code
	SourceKindCode SourceKind = "code"
	// SourceKindManual indicates the grant was created by support staff
	SourceKindManual SourceKind = "manual"
	// SourceKindAdmin indicates the grant was created from the admin panel
	SourceKindAdmin SourceKind = "admin"
)

// IsValid checks if the source kind is valid
func (sk SourceKind) IsValid() bool {
	switch sk {
	case SourceKindCode, SourceKindManual, SourceKindAdmin:
		return true
	default:
		return false
	}
}

// String returns the string representation of the source kind
func (sk SourceKind) String() string {
	return string(sk)
}

// QualifiesForCourseAccess reports whether a course grant with this source kind
// is honored as full access. Rows provisioned through any other path (e.g. a
// pending payment flow) must not unlock content.
func (sk SourceKind) QualifiesForCourseAccess() bool {
	return sk.IsValid()
}

// Status represents the lifecycle status of a grant
type Status string

const (
	// StatusActive indicates the grant is active and honored
	StatusActive Status = "active"
	// StatusExpired indicates the grant's window has elapsed
	StatusExpired Status = "expired"
	// StatusRevoked indicates the grant was revoked by an administrator
	StatusRevoked Status = "revoked"
)

// IsValid checks if the status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusExpired, StatusRevoked:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}
