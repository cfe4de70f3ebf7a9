package usecases

import (
	"context"
	"fmt"

	"courtside/internal/domain/grant"
	"courtside/internal/shared/errors"
	"courtside/internal/shared/logger"
)

type RevokeGrantCommand struct {
	SID string
}

// RevokeGrantUseCase revokes a grant. Revocation is terminal: a later
// reissue for the same subject creates a fresh grant instead of reviving
// the revoked row.
type RevokeGrantUseCase struct {
	grants grant.Repository
	logger logger.Interface
}

func NewRevokeGrantUseCase(grants grant.Repository, logger logger.Interface) *RevokeGrantUseCase {
	return &RevokeGrantUseCase{
		grants: grants,
		logger: logger,
	}
}

func (uc *RevokeGrantUseCase) Execute(ctx context.Context, cmd RevokeGrantCommand) error {
	if cmd.SID == "" {
		return errors.NewValidationError("grant SID is required")
	}

	g, err := uc.grants.GetBySID(ctx, cmd.SID)
	if err != nil {
		return fmt.Errorf("failed to get grant: %w", err)
	}
	if g == nil {
		return errors.NewNotFoundError("grant not found")
	}

	if err := g.Revoke(); err != nil {
		return errors.NewConflictError(err.Error())
	}

	if err := uc.grants.Update(ctx, g); err != nil {
		return fmt.Errorf("failed to update grant: %w", err)
	}

	uc.logger.Infow("grant revoked", "sid", cmd.SID, "account_id", g.AccountID())
	return nil
}
