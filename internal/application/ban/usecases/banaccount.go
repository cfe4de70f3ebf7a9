package usecases

import (
	"context"
	"fmt"
	"time"

	"courtside/internal/domain/ban"
	"courtside/internal/shared/errors"
	"courtside/internal/shared/logger"
)

type BanAccountCommand struct {
	AccountID   uint
	Reason      string
	BannedUntil *time.Time
}

type BanAccountResult struct {
	ID          uint       `json:"id"`
	AccountID   uint       `json:"account_id"`
	Reason      string     `json:"reason"`
	BannedUntil *time.Time `json:"banned_until"`
}

type BanAccountUseCase struct {
	bans   ban.Repository
	logger logger.Interface
}

func NewBanAccountUseCase(bans ban.Repository, logger logger.Interface) *BanAccountUseCase {
	return &BanAccountUseCase{
		bans:   bans,
		logger: logger,
	}
}

func (uc *BanAccountUseCase) Execute(ctx context.Context, cmd BanAccountCommand) (*BanAccountResult, error) {
	if cmd.AccountID == 0 {
		return nil, errors.NewValidationError("account ID is required")
	}

	existing, err := uc.bans.GetAccountBan(ctx, cmd.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing ban: %w", err)
	}
	if existing != nil && existing.Enforced(time.Now().UTC()) {
		return nil, errors.NewConflictError("account is already banned")
	}

	b, err := ban.NewAccountBan(cmd.AccountID, cmd.BannedUntil, cmd.Reason)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.bans.CreateAccountBan(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to create account ban: %w", err)
	}

	uc.logger.Infow("account banned", "account_id", cmd.AccountID, "reason", cmd.Reason)

	return &BanAccountResult{
		ID:          b.ID(),
		AccountID:   b.AccountID(),
		Reason:      b.Reason(),
		BannedUntil: b.BannedUntil(),
	}, nil
}
