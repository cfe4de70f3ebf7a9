package usecases

import (
	"context"
	goerrors "errors"

	"courtside/internal/domain/access"
	"courtside/internal/domain/device"
	"courtside/internal/shared/errors"
	"courtside/internal/shared/logger"
)

// DeviceBanChecker is the pre-auth device ban probe. It is fail-open: a
// lookup failure reads as not banned so a store hiccup never blocks the
// whole anonymous audience.
type DeviceBanChecker interface {
	IsDeviceBanned(ctx context.Context, deviceID string) bool
}

// DeviceTracker records device/account associations and enforces the
// distinct device limit.
type DeviceTracker interface {
	Track(ctx context.Context, accountID uint, deviceID string) error
}

type GetContentQuery struct {
	AccountID     uint
	Authenticated bool
	IsAdmin       bool
	DeviceID      string
	CourseID      uint
	PackageID     uint
	AgeGroupID    uint
	CardID        uint
	MonthNumber   int
	VideoID       uint
}

type GetContentResult struct {
	Decision                 string              `json:"decision"`
	RequiresPackageSelection bool                `json:"requires_package_selection"`
	Reason                   string              `json:"reason,omitempty"`
	Tree                     *access.ContentTree `json:"tree,omitempty"`
}

// GetContentUseCase runs one content request end to end: device ban probe,
// device tracking, entitlement resolution, then the matching tree projection.
type GetContentUseCase struct {
	deviceBans DeviceBanChecker
	tracker    DeviceTracker
	resolver   *access.Resolver
	trees      *access.TreeBuilder
	logger     logger.Interface
}

func NewGetContentUseCase(
	deviceBans DeviceBanChecker,
	tracker DeviceTracker,
	resolver *access.Resolver,
	trees *access.TreeBuilder,
	logger logger.Interface,
) *GetContentUseCase {
	return &GetContentUseCase{
		deviceBans: deviceBans,
		tracker:    tracker,
		resolver:   resolver,
		trees:      trees,
		logger:     logger,
	}
}

func (uc *GetContentUseCase) Execute(ctx context.Context, query GetContentQuery) (*GetContentResult, error) {
	locator := access.ContentLocator{
		CourseID:    query.CourseID,
		PackageID:   query.PackageID,
		AgeGroupID:  query.AgeGroupID,
		CardID:      query.CardID,
		MonthNumber: query.MonthNumber,
		VideoID:     query.VideoID,
	}
	if err := locator.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	// Admins are exempt from device enforcement entirely.
	if !query.IsAdmin {
		if query.DeviceID != "" && uc.deviceBans.IsDeviceBanned(ctx, query.DeviceID) {
			uc.logger.Infow("content denied to banned device", "device_id", query.DeviceID)
			return &GetContentResult{Decision: access.DecisionDenied.String(), Reason: "device_banned"}, nil
		}

		if query.Authenticated && query.DeviceID != "" {
			if err := uc.tracker.Track(ctx, query.AccountID, query.DeviceID); err != nil {
				switch {
				case goerrors.Is(err, device.ErrBanned):
					uc.logger.Infow("content denied by device tracker",
						"account_id", query.AccountID, "device_id", query.DeviceID, "error", err)
					return &GetContentResult{Decision: access.DecisionDenied.String(), Reason: access.ReasonAccountBanned}, nil
				case goerrors.Is(err, device.ErrTooManyDevices):
					uc.logger.Infow("content denied by device tracker",
						"account_id", query.AccountID, "device_id", query.DeviceID, "error", err)
					return &GetContentResult{Decision: access.DecisionDenied.String(), Reason: "device_limit"}, nil
				}
				return nil, err
			}
		}
	}

	identity := access.Identity{
		AccountID:     query.AccountID,
		Authenticated: query.Authenticated,
		IsAdmin:       query.IsAdmin,
	}

	resolution, err := uc.resolver.Resolve(ctx, identity, locator)
	if err != nil {
		if goerrors.Is(err, access.ErrContentNotFound) {
			return nil, errors.NewNotFoundError("content not found")
		}
		return nil, err
	}

	result := &GetContentResult{
		Decision:                 resolution.Decision.String(),
		RequiresPackageSelection: resolution.RequiresPackageSelection,
		Reason:                   resolution.Reason,
	}

	switch resolution.Decision {
	case access.DecisionFullAccess:
		result.Tree, err = uc.trees.BuildFull(ctx, locator)
	case access.DecisionPreviewOnly:
		result.Tree, err = uc.trees.BuildPreview(ctx, locator)
	}
	if err != nil {
		if goerrors.Is(err, access.ErrContentNotFound) {
			return nil, errors.NewNotFoundError("content not found")
		}
		return nil, err
	}

	return result, nil
}
