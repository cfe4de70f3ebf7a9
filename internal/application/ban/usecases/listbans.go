package usecases

import (
	"context"
	"fmt"
	"time"

	"courtside/internal/domain/ban"
	"courtside/internal/shared/logger"
)

type ListBansQuery struct {
	ActiveOnly bool
}

type DeviceBanSummary struct {
	ID          uint       `json:"id"`
	DeviceID    string     `json:"device_id"`
	Reason      string     `json:"reason"`
	Active      bool       `json:"active"`
	BannedUntil *time.Time `json:"banned_until"`
	CreatedAt   time.Time  `json:"created_at"`
}

type AccountBanSummary struct {
	ID          uint       `json:"id"`
	AccountID   uint       `json:"account_id"`
	Reason      string     `json:"reason"`
	Active      bool       `json:"active"`
	BannedUntil *time.Time `json:"banned_until"`
	CreatedAt   time.Time  `json:"created_at"`
}

type ListBansResult struct {
	DeviceBans  []DeviceBanSummary  `json:"device_bans"`
	AccountBans []AccountBanSummary `json:"account_bans"`
}

type ListBansUseCase struct {
	bans   ban.Repository
	logger logger.Interface
}

func NewListBansUseCase(bans ban.Repository, logger logger.Interface) *ListBansUseCase {
	return &ListBansUseCase{
		bans:   bans,
		logger: logger,
	}
}

func (uc *ListBansUseCase) Execute(ctx context.Context, query ListBansQuery) (*ListBansResult, error) {
	deviceBans, err := uc.bans.ListDeviceBans(ctx, query.ActiveOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list device bans: %w", err)
	}
	accountBans, err := uc.bans.ListAccountBans(ctx, query.ActiveOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list account bans: %w", err)
	}

	result := &ListBansResult{
		DeviceBans:  make([]DeviceBanSummary, 0, len(deviceBans)),
		AccountBans: make([]AccountBanSummary, 0, len(accountBans)),
	}
	for _, b := range deviceBans {
		result.DeviceBans = append(result.DeviceBans, DeviceBanSummary{
			ID:          b.ID(),
			DeviceID:    b.DeviceID(),
			Reason:      b.Reason(),
			Active:      b.Active(),
			BannedUntil: b.BannedUntil(),
			CreatedAt:   b.CreatedAt(),
		})
	}
	for _, b := range accountBans {
		result.AccountBans = append(result.AccountBans, AccountBanSummary{
			ID:          b.ID(),
			AccountID:   b.AccountID(),
			Reason:      b.Reason(),
			Active:      b.Active(),
			BannedUntil: b.BannedUntil(),
			CreatedAt:   b.CreatedAt(),
		})
	}
	return result, nil
}
