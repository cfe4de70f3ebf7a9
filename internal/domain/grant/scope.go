package grant

import "fmt"

// Scope is the tagged union of the three grant targets. Only the fields
// meaningful for the scope type are set; accessors enforce the pairing so
// course/card/month columns can never be mixed up.
type Scope struct {
	scopeType   ScopeType
	courseID    uint
	cardID      uint
	monthNumber int
}

// CourseScope builds a scope unlocking a whole course.
func CourseScope(courseID uint) (Scope, error) {
	if courseID == 0 {
		return Scope{}, fmt.Errorf("course ID is required")
	}
	return Scope{scopeType: ScopeTypeCourse, courseID: courseID}, nil
}

// CardScope builds a scope unlocking a single player card.
func CardScope(cardID uint) (Scope, error) {
	if cardID == 0 {
		return Scope{}, fmt.Errorf("card ID is required")
	}
	return Scope{scopeType: ScopeTypeCard, cardID: cardID}, nil
}

// MonthScope builds a scope unlocking one month of a course.
func MonthScope(courseID uint, monthNumber int) (Scope, error) {
	if courseID == 0 {
		return Scope{}, fmt.Errorf("course ID is required")
	}
	if monthNumber < 1 {
		return Scope{}, fmt.Errorf("month number must be positive, got %d", monthNumber)
	}
	return Scope{scopeType: ScopeTypeMonth, courseID: courseID, monthNumber: monthNumber}, nil
}

// ReconstructScope rebuilds a scope from persistence columns.
func ReconstructScope(scopeType ScopeType, courseID, cardID uint, monthNumber int) (Scope, error) {
	switch scopeType {
	case ScopeTypeCourse:
		return CourseScope(courseID)
	case ScopeTypeCard:
		return CardScope(cardID)
	case ScopeTypeMonth:
		return MonthScope(courseID, monthNumber)
	default:
		return Scope{}, fmt.Errorf("invalid scope type: %s", scopeType)
	}
}

// Type returns the scope type.
func (s Scope) Type() ScopeType {
	return s.scopeType
}

// CourseID returns the course ID for course and month scopes, zero otherwise.
func (s Scope) CourseID() uint {
	return s.courseID
}

// CardID returns the card ID for card scopes, zero otherwise.
func (s Scope) CardID() uint {
	return s.cardID
}

// MonthNumber returns the month number for month scopes, zero otherwise.
func (s Scope) MonthNumber() int {
	return s.monthNumber
}

// Equal reports whether two scopes target the same content.
func (s Scope) Equal(other Scope) bool {
	return s == other
}

// String returns a human-readable description, used in logs and summaries.
func (s Scope) String() string {
	switch s.scopeType {
	case ScopeTypeCourse:
		return fmt.Sprintf("course:%d", s.courseID)
	case ScopeTypeCard:
		return fmt.Sprintf("card:%d", s.cardID)
	case ScopeTypeMonth:
		return fmt.Sprintf("course:%d/month:%d", s.courseID, s.monthNumber)
	default:
		return "invalid"
	}
}
