package usecases

import (
	"context"
	"fmt"

	"courtside/internal/domain/ban"
	"courtside/internal/shared/errors"
	"courtside/internal/shared/logger"
)

type LiftDeviceBanCommand struct {
	DeviceID string
}

type LiftAccountBanCommand struct {
	AccountID uint
}

// LiftBanUseCase deactivates bans. Lifting keeps the row for audit; only the
// active flag changes.
type LiftBanUseCase struct {
	bans   ban.Repository
	logger logger.Interface
}

func NewLiftBanUseCase(bans ban.Repository, logger logger.Interface) *LiftBanUseCase {
	return &LiftBanUseCase{
		bans:   bans,
		logger: logger,
	}
}

func (uc *LiftBanUseCase) ExecuteDevice(ctx context.Context, cmd LiftDeviceBanCommand) error {
	if cmd.DeviceID == "" {
		return errors.NewValidationError("device ID is required")
	}

	b, err := uc.bans.GetDeviceBan(ctx, cmd.DeviceID)
	if err != nil {
		return fmt.Errorf("failed to get device ban: %w", err)
	}
	if b == nil {
		return errors.NewNotFoundError("device ban not found")
	}

	b.Lift()
	if err := uc.bans.UpdateDeviceBan(ctx, b); err != nil {
		return fmt.Errorf("failed to update device ban: %w", err)
	}

	uc.logger.Infow("device ban lifted", "device_id", cmd.DeviceID)
	return nil
}

func (uc *LiftBanUseCase) ExecuteAccount(ctx context.Context, cmd LiftAccountBanCommand) error {
	if cmd.AccountID == 0 {
		return errors.NewValidationError("account ID is required")
	}

	b, err := uc.bans.GetAccountBan(ctx, cmd.AccountID)
	if err != nil {
		return fmt.Errorf("failed to get account ban: %w", err)
	}
	if b == nil {
		return errors.NewNotFoundError("account ban not found")
	}

	b.Lift()
	if err := uc.bans.UpdateAccountBan(ctx, b); err != nil {
		return fmt.Errorf("failed to update account ban: %w", err)
	}

	uc.logger.Infow("account ban lifted", "account_id", cmd.AccountID)
	return nil
}
