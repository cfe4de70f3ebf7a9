package usecases

import (
	"context"
	"fmt"

	"courtside/internal/domain/device"
	"courtside/internal/shared/errors"
	"courtside/internal/shared/logger"
)

type PruneDeviceCommand struct {
	DeviceID string
}

// PruneDeviceUseCase deletes a device's associations. Because the device
// limit is evaluated on the live count, pruning immediately restores access
// for an account that was over the limit.
type PruneDeviceUseCase struct {
	devices device.Repository
	logger  logger.Interface
}

func NewPruneDeviceUseCase(devices device.Repository, logger logger.Interface) *PruneDeviceUseCase {
	return &PruneDeviceUseCase{
		devices: devices,
		logger:  logger,
	}
}

func (uc *PruneDeviceUseCase) Execute(ctx context.Context, cmd PruneDeviceCommand) error {
	if cmd.DeviceID == "" {
		return errors.NewValidationError("device ID is required")
	}

	if err := uc.devices.DeleteByDevice(ctx, cmd.DeviceID); err != nil {
		return fmt.Errorf("failed to prune device: %w", err)
	}

	uc.logger.Infow("device associations pruned", "device_id", cmd.DeviceID)
	return nil
}
