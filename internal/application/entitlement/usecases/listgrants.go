package usecases

import (
	"context"
	"fmt"
	"time"

	"courtside/internal/domain/grant"
	"courtside/internal/shared/errors"
	"courtside/internal/shared/logger"
)

type ListGrantsQuery struct {
	AccountID uint
}

type GrantSummary struct {
	SID        string     `json:"sid"`
	Scope      string     `json:"scope"`
	SourceKind string     `json:"source_kind"`
	Status     string     `json:"status"`
	StartAt    time.Time  `json:"start_at"`
	EndAt      *time.Time `json:"end_at"`
	Active     bool       `json:"active"`
}

type ListGrantsResult struct {
	AccountID uint           `json:"account_id"`
	Grants    []GrantSummary `json:"grants"`
}

type ListGrantsUseCase struct {
	grants grant.Repository
	logger logger.Interface
}

func NewListGrantsUseCase(grants grant.Repository, logger logger.Interface) *ListGrantsUseCase {
	return &ListGrantsUseCase{
		grants: grants,
		logger: logger,
	}
}

func (uc *ListGrantsUseCase) Execute(ctx context.Context, query ListGrantsQuery) (*ListGrantsResult, error) {
	if query.AccountID == 0 {
		return nil, errors.NewValidationError("account ID is required")
	}

	grants, err := uc.grants.ListByAccount(ctx, query.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list grants: %w", err)
	}

	now := time.Now().UTC()
	result := &ListGrantsResult{
		AccountID: query.AccountID,
		Grants:    make([]GrantSummary, 0, len(grants)),
	}
	for _, g := range grants {
		result.Grants = append(result.Grants, GrantSummary{
			SID:        g.SID(),
			Scope:      g.Scope().String(),
			SourceKind: g.SourceKind().String(),
			Status:     g.Status().String(),
			StartAt:    g.StartAt(),
			EndAt:      g.EndAt(),
			Active:     g.IsActive(now),
		})
	}
	return result, nil
}
