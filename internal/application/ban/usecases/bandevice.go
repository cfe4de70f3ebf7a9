package usecases

import (
	"context"
	"fmt"
	"time"

	"courtside/internal/domain/ban"
	"courtside/internal/shared/errors"
	"courtside/internal/shared/logger"
)

type BanDeviceCommand struct {
	DeviceID    string
	Reason      string
	BannedUntil *time.Time
}

type BanDeviceResult struct {
	ID          uint       `json:"id"`
	DeviceID    string     `json:"device_id"`
	Reason      string     `json:"reason"`
	BannedUntil *time.Time `json:"banned_until"`
}

type BanDeviceUseCase struct {
	bans   ban.Repository
	logger logger.Interface
}

func NewBanDeviceUseCase(bans ban.Repository, logger logger.Interface) *BanDeviceUseCase {
	return &BanDeviceUseCase{
		bans:   bans,
		logger: logger,
	}
}

func (uc *BanDeviceUseCase) Execute(ctx context.Context, cmd BanDeviceCommand) (*BanDeviceResult, error) {
	if cmd.DeviceID == "" {
		return nil, errors.NewValidationError("device ID is required")
	}

	existing, err := uc.bans.GetDeviceBan(ctx, cmd.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing ban: %w", err)
	}
	if existing != nil && existing.Enforced(time.Now().UTC()) {
		return nil, errors.NewConflictError("device is already banned")
	}

	b, err := ban.NewDeviceBan(cmd.DeviceID, cmd.BannedUntil, cmd.Reason)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.bans.CreateDeviceBan(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to create device ban: %w", err)
	}

	uc.logger.Infow("device banned", "device_id", cmd.DeviceID, "reason", cmd.Reason)

	return &BanDeviceResult{
		ID:          b.ID(),
		DeviceID:    b.DeviceID(),
		Reason:      b.Reason(),
		BannedUntil: b.BannedUntil(),
	}, nil
}
