package usecases

import (
	"context"
	"fmt"
	"time"

	"courtside/internal/domain/grant"
	"courtside/internal/shared/errors"
	"courtside/internal/shared/logger"
)

type GrantAccessCommand struct {
	AccountID   uint
	ScopeType   string
	CourseID    uint
	CardID      uint
	MonthNumber int
	SourceKind  string
	EndAt       *time.Time
}

type GrantAccessResult struct {
	SID       string     `json:"sid"`
	AccountID uint       `json:"account_id"`
	Scope     string     `json:"scope"`
	StartAt   time.Time  `json:"start_at"`
	EndAt     *time.Time `json:"end_at"`
	Status    string     `json:"status"`
}

// GrantAccessUseCase issues a grant from the admin surface. Reissues for a
// subject that already holds a grant merge windows instead of stacking rows.
type GrantAccessUseCase struct {
	issuer *grant.Issuer
	logger logger.Interface
}

func NewGrantAccessUseCase(issuer *grant.Issuer, logger logger.Interface) *GrantAccessUseCase {
	return &GrantAccessUseCase{
		issuer: issuer,
		logger: logger,
	}
}

func (uc *GrantAccessUseCase) Execute(ctx context.Context, cmd GrantAccessCommand) (*GrantAccessResult, error) {
	if cmd.AccountID == 0 {
		return nil, errors.NewValidationError("account ID is required")
	}

	sourceKind := grant.SourceKind(cmd.SourceKind)
	if sourceKind != grant.SourceKindManual && sourceKind != grant.SourceKindAdmin {
		return nil, errors.NewValidationError("source kind must be manual or admin")
	}
	if cmd.EndAt != nil && !cmd.EndAt.After(time.Now()) {
		return nil, errors.NewValidationError("end time must be in the future")
	}

	scope, err := uc.buildScope(cmd)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	issued, err := uc.issuer.Issue(ctx, cmd.AccountID, scope, sourceKind, cmd.EndAt)
	if err != nil {
		return nil, fmt.Errorf("failed to issue grant: %w", err)
	}

	uc.logger.Infow("grant issued",
		"account_id", cmd.AccountID,
		"scope", issued.Scope().String(),
		"sid", issued.SID(),
	)

	return &GrantAccessResult{
		SID:       issued.SID(),
		AccountID: issued.AccountID(),
		Scope:     issued.Scope().String(),
		StartAt:   issued.StartAt(),
		EndAt:     issued.EndAt(),
		Status:    issued.Status().String(),
	}, nil
}

func (uc *GrantAccessUseCase) buildScope(cmd GrantAccessCommand) (grant.Scope, error) {
	switch grant.ScopeType(cmd.ScopeType) {
	case grant.ScopeTypeCourse:
		return grant.CourseScope(cmd.CourseID)
	case grant.ScopeTypeCard:
		return grant.CardScope(cmd.CardID)
	case grant.ScopeTypeMonth:
		return grant.MonthScope(cmd.CourseID, cmd.MonthNumber)
	default:
		return grant.Scope{}, fmt.Errorf("invalid scope type: %s", cmd.ScopeType)
	}
}
