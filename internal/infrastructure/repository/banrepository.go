package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"courtside/internal/domain/ban"
	"courtside/internal/infrastructure/persistence/mappers"
	"courtside/internal/infrastructure/persistence/models"
	"courtside/internal/shared/errors"
	"courtside/internal/shared/logger"
)

// BanRepositoryImpl implements the ban.Repository interface
type BanRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.BanMapper
	logger logger.Interface
}

// NewBanRepository creates a new ban repository instance
func NewBanRepository(database *gorm.DB, logger logger.Interface) ban.Repository {
	return &BanRepositoryImpl{
		db:     database,
		mapper: mappers.NewBanMapper(),
		logger: logger,
	}
}

// CreateDeviceBan persists a new device ban
func (r *BanRepositoryImpl) CreateDeviceBan(ctx context.Context, b *ban.DeviceBan) error {
	model := r.mapper.ToDeviceBanModel(b)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create device ban", "device_id", b.DeviceID(), "error", err)
		return fmt.Errorf("failed to create device ban: %w", err)
	}

	if err := b.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set device ban ID: %w", err)
	}

	r.logger.Infow("device ban created", "id", model.ID, "device_id", model.DeviceID)
	return nil
}

// CreateAccountBan persists a new account ban
func (r *BanRepositoryImpl) CreateAccountBan(ctx context.Context, b *ban.AccountBan) error {
	model := r.mapper.ToAccountBanModel(b)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create account ban", "account_id", b.AccountID(), "error", err)
		return fmt.Errorf("failed to create account ban: %w", err)
	}

	if err := b.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set account ban ID: %w", err)
	}

	r.logger.Infow("account ban created", "id", model.ID, "account_id", model.AccountID)
	return nil
}

// UpdateDeviceBan updates an existing device ban
func (r *BanRepositoryImpl) UpdateDeviceBan(ctx context.Context, b *ban.DeviceBan) error {
	model := r.mapper.ToDeviceBanModel(b)

	result := r.db.WithContext(ctx).
		Model(&models.DeviceBanModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"active":       model.Active,
			"banned_until": model.BannedUntil,
			"reason":       model.Reason,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update device ban", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update device ban: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("device ban not found")
	}

	return nil
}

// UpdateAccountBan updates an existing account ban
func (r *BanRepositoryImpl) UpdateAccountBan(ctx context.Context, b *ban.AccountBan) error {
	model := r.mapper.ToAccountBanModel(b)

	result := r.db.WithContext(ctx).
		Model(&models.AccountBanModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"active":       model.Active,
			"banned_until": model.BannedUntil,
			"reason":       model.Reason,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update account ban", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update account ban: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("account ban not found")
	}

	return nil
}

// GetDeviceBan retrieves the most recent ban row for a device
func (r *BanRepositoryImpl) GetDeviceBan(ctx context.Context, deviceID string) (*ban.DeviceBan, error) {
	var model models.DeviceBanModel
	err := r.db.WithContext(ctx).
		Where("device_id = ?", deviceID).
		Order("id DESC").
		First(&model).Error
	if err != nil {
		if errors.IsRecordNotFoundError(err) {
			return nil, nil
		}
		r.logger.Errorw("failed to get device ban", "device_id", deviceID, "error", err)
		return nil, fmt.Errorf("failed to get device ban: %w", err)
	}

	return r.mapper.ToDeviceBanEntity(&model)
}

// GetAccountBan retrieves the most recent ban row for an account
func (r *BanRepositoryImpl) GetAccountBan(ctx context.Context, accountID uint) (*ban.AccountBan, error) {
	var model models.AccountBanModel
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("id DESC").
		First(&model).Error
	if err != nil {
		if errors.IsRecordNotFoundError(err) {
			return nil, nil
		}
		r.logger.Errorw("failed to get account ban", "account_id", accountID, "error", err)
		return nil, fmt.Errorf("failed to get account ban: %w", err)
	}

	return r.mapper.ToAccountBanEntity(&model)
}

// ListDeviceBans lists device bans, newest first
func (r *BanRepositoryImpl) ListDeviceBans(ctx context.Context, activeOnly bool) ([]*ban.DeviceBan, error) {
	var banModels []*models.DeviceBanModel
	query := r.db.WithContext(ctx).Order("id DESC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	if err := query.Find(&banModels).Error; err != nil {
		r.logger.Errorw("failed to list device bans", "error", err)
		return nil, fmt.Errorf("failed to list device bans: %w", err)
	}

	return r.mapper.ToDeviceBanEntities(banModels)
}

// ListAccountBans lists account bans, newest first
func (r *BanRepositoryImpl) ListAccountBans(ctx context.Context, activeOnly bool) ([]*ban.AccountBan, error) {
	var banModels []*models.AccountBanModel
	query := r.db.WithContext(ctx).Order("id DESC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	if err := query.Find(&banModels).Error; err != nil {
		r.logger.Errorw("failed to list account bans", "error", err)
		return nil, fmt.Errorf("failed to list account bans: %w", err)
	}

	return r.mapper.ToAccountBanEntities(banModels)
}
