package usecases

import (
	"context"
	"fmt"
	"time"

	"courtside/internal/domain/grant"
	"courtside/internal/shared/logger"
)

type ExpireSweepResult struct {
	Expired int64 `json:"expired"`
}

// ExpireSweepUseCase flips date-expired grants to expired status. The read
// path applies the time-window rule at query time, so the sweep is purely a
// bookkeeping pass that keeps listings and reporting honest.
type ExpireSweepUseCase struct {
	grants grant.Repository
	logger logger.Interface
}

func NewExpireSweepUseCase(grants grant.Repository, logger logger.Interface) *ExpireSweepUseCase {
	return &ExpireSweepUseCase{
		grants: grants,
		logger: logger,
	}
}

func (uc *ExpireSweepUseCase) Execute(ctx context.Context) (*ExpireSweepResult, error) {
	expired, err := uc.grants.MarkExpired(ctx, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to mark expired grants: %w", err)
	}

	if expired > 0 {
		uc.logger.Infow("expired grants swept", "count", expired)
	}
	return &ExpireSweepResult{Expired: expired}, nil
}
