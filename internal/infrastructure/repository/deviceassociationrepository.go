package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"courtside/internal/domain/device"
	"courtside/internal/infrastructure/persistence/mappers"
	"courtside/internal/infrastructure/persistence/models"
	"courtside/internal/shared/logger"
)

// DeviceAssociationRepositoryImpl implements the device.Repository interface
type DeviceAssociationRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewDeviceAssociationRepository creates a new device association repository
func NewDeviceAssociationRepository(database *gorm.DB, logger logger.Interface) device.Repository {
	return &DeviceAssociationRepositoryImpl{
		db:     database,
		logger: logger,
	}
}

// Upsert inserts or refreshes the (device, account) association. The unique
// index on the pair makes this idempotent under concurrent requests.
func (r *DeviceAssociationRepositoryImpl) Upsert(ctx context.Context, deviceID string, accountID uint, seenAt time.Time) error {
	model := &models.DeviceAssociationModel{
		DeviceID:   deviceID,
		AccountID:  accountID,
		LastSeenAt: seenAt,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "device_id"}, {Name: "account_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"last_seen_at": seenAt}),
		}).
		Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert device association",
			"device_id", deviceID, "account_id", accountID, "error", err)
		return fmt.Errorf("failed to upsert device association: %w", err)
	}

	return nil
}

// CountDistinctDevices counts the devices associated with an account. Always
// read live, after the upsert commits; caching here would undercount and let
// an account sail past the device limit.
func (r *DeviceAssociationRepositoryImpl) CountDistinctDevices(ctx context.Context, accountID uint) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.DeviceAssociationModel{}).
		Where("account_id = ?", accountID).
		Distinct("device_id").
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count devices", "account_id", accountID, "error", err)
		return 0, fmt.Errorf("failed to count devices: %w", err)
	}

	return int(count), nil
}

// ListByAccount retrieves an account's device associations, most recent first
func (r *DeviceAssociationRepositoryImpl) ListByAccount(ctx context.Context, accountID uint) ([]*device.Association, error) {
	var associationModels []*models.DeviceAssociationModel
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("last_seen_at DESC").
		Find(&associationModels).Error
	if err != nil {
		r.logger.Errorw("failed to list device associations", "account_id", accountID, "error", err)
		return nil, fmt.Errorf("failed to list device associations: %w", err)
	}

	return mappers.ToAssociations(associationModels)
}

// DeleteByDevice removes all associations for a device
func (r *DeviceAssociationRepositoryImpl) DeleteByDevice(ctx context.Context, deviceID string) error {
	result := r.db.WithContext(ctx).
		Where("device_id = ?", deviceID).
		Delete(&models.DeviceAssociationModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete device associations", "device_id", deviceID, "error", result.Error)
		return fmt.Errorf("failed to delete device associations: %w", result.Error)
	}

	r.logger.Infow("device associations deleted",
		"device_id", deviceID, "rows", result.RowsAffected)
	return nil
}
