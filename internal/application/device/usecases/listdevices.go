package usecases

import (
	"context"
	"fmt"
	"time"

	"courtside/internal/domain/device"
	"courtside/internal/shared/errors"
	"courtside/internal/shared/logger"
)

type ListDevicesQuery struct {
	AccountID uint
}

type DeviceSummary struct {
	DeviceID   string    `json:"device_id"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

type ListDevicesResult struct {
	AccountID uint            `json:"account_id"`
	Devices   []DeviceSummary `json:"devices"`
	Limit     int             `json:"limit"`
}

type ListDevicesUseCase struct {
	devices device.Repository
	limit   int
	logger  logger.Interface
}

func NewListDevicesUseCase(devices device.Repository, limit int, logger logger.Interface) *ListDevicesUseCase {
	return &ListDevicesUseCase{
		devices: devices,
		limit:   limit,
		logger:  logger,
	}
}

func (uc *ListDevicesUseCase) Execute(ctx context.Context, query ListDevicesQuery) (*ListDevicesResult, error) {
	if query.AccountID == 0 {
		return nil, errors.NewValidationError("account ID is required")
	}

	associations, err := uc.devices.ListByAccount(ctx, query.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	result := &ListDevicesResult{
		AccountID: query.AccountID,
		Devices:   make([]DeviceSummary, 0, len(associations)),
		Limit:     uc.limit,
	}
	for _, a := range associations {
		result.Devices = append(result.Devices, DeviceSummary{
			DeviceID:   a.DeviceID(),
			LastSeenAt: a.LastSeenAt(),
		})
	}
	return result, nil
}
