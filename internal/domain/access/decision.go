// Package access implements entitlement resolution over the content
// hierarchy: deciding, per request, whether a viewer receives full content,
// a restricted preview, or nothing.
package access

import "errors"

// Decision represents the outcome of resolving a content request
type Decision string

const (
	// DecisionFullAccess grants the real content tree with playable URLs
	DecisionFullAccess Decision = "full_access"
	// DecisionPreviewOnly grants the restricted projection only
	DecisionPreviewOnly Decision = "preview_only"
	// DecisionDenied refuses the request entirely
	DecisionDenied Decision = "denied"
)

// IsValid checks if the decision is valid
func (d Decision) IsValid() bool {
	switch d {
	case DecisionFullAccess, DecisionPreviewOnly, DecisionDenied:
		return true
	default:
		return false
	}
}

// String returns the string representation of the decision
func (d Decision) String() string {
	return string(d)
}

// Deny reasons carried alongside DecisionDenied so callers can pick the
// right response: a package picker, a blocked screen, or a sign-in prompt.
const (
	ReasonAccountBanned    = "account_banned"
	ReasonBanCheckFailed   = "ban_check_failed"
	ReasonNoPreviewContent = "no_preview_content"
	ReasonPackageSelection = "package_selection_required"
)

// Resolution is the full outcome of a resolve call.
type Resolution struct {
	Decision Decision
	// RequiresPackageSelection is set on Denied when the course is sold
	// through packages and the request carried no package context. Callers
	// must render a package picker, not an error.
	RequiresPackageSelection bool
	// Reason qualifies Denied outcomes; empty otherwise.
	Reason string
}

// ErrContentNotFound covers both a locator referencing absent rows and
// content filtered out by a package allowlist. The two are deliberately
// indistinguishable so callers cannot probe catalog structure they are not
// shown.
var ErrContentNotFound = errors.New("content not found")
