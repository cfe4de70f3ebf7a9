package grant

import (
	"context"
	"fmt"
	"time"

	"courtside/internal/shared/id"
)

// Issuer is the domain service that creates grants, applying the
// merge-on-reissue rule: when the account already holds a grant for the same
// scope, the existing grant's window is widened instead of adding a row.
// The merge happens here, at issuance time, never at read time.
type Issuer struct {
	repo Repository
}

// NewIssuer creates a new grant issuer.
func NewIssuer(repo Repository) *Issuer {
	return &Issuer{repo: repo}
}

// Issue creates or extends a grant for (accountID, scope).
// endAt nil issues an unbounded grant. Returns the effective grant.
func (s *Issuer) Issue(ctx context.Context, accountID uint, scope Scope, sourceKind SourceKind, endAt *time.Time) (*Grant, error) {
	if accountID == 0 {
		return nil, fmt.Errorf("account ID is required")
	}
	if !sourceKind.IsValid() {
		return nil, fmt.Errorf("invalid source kind: %s", sourceKind)
	}

	existing, err := s.repo.FindMergeable(ctx, accountID, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to look up existing grant: %w", err)
	}

	now := time.Now().UTC()

	if existing != nil {
		existing.ExtendWindow(endAt, now)
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to extend grant: %w", err)
		}
		return existing, nil
	}

	sid, err := id.NewGrantSID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate grant SID: %w", err)
	}

	g, err := NewGrant(accountID, scope, sourceKind, endAt, sid)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to create grant: %w", err)
	}
	return g, nil
}
