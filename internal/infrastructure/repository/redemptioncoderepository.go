package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"courtside/internal/domain/redemption"
	"courtside/internal/infrastructure/persistence/mappers"
	"courtside/internal/infrastructure/persistence/models"
	"courtside/internal/shared/db"
	"courtside/internal/shared/errors"
	"courtside/internal/shared/logger"
)

// RedemptionCodeRepositoryImpl implements the redemption.Repository interface
type RedemptionCodeRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.RedemptionCodeMapper
	logger logger.Interface
}

// NewRedemptionCodeRepository creates a new redemption code repository
func NewRedemptionCodeRepository(database *gorm.DB, logger logger.Interface) redemption.Repository {
	return &RedemptionCodeRepositoryImpl{
		db:     database,
		mapper: mappers.NewRedemptionCodeMapper(),
		logger: logger,
	}
}

func (r *RedemptionCodeRepositoryImpl) conn(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db)
}

// Create persists a new code
func (r *RedemptionCodeRepositoryImpl) Create(ctx context.Context, code *redemption.Code) error {
	model, err := r.mapper.ToModel(code)
	if err != nil {
		return fmt.Errorf("failed to map code: %w", err)
	}

	if err := r.conn(ctx).WithContext(ctx).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("code already exists")
		}
		r.logger.Errorw("failed to create code", "error", err)
		return fmt.Errorf("failed to create code: %w", err)
	}

	if err := code.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set code ID: %w", err)
	}

	return nil
}

// CreateBatch persists a batch of codes in one round trip
func (r *RedemptionCodeRepositoryImpl) CreateBatch(ctx context.Context, codes []*redemption.Code) error {
	if len(codes) == 0 {
		return nil
	}

	codeModels, err := r.mapper.ToModels(codes)
	if err != nil {
		return fmt.Errorf("failed to map codes: %w", err)
	}

	if err := r.conn(ctx).WithContext(ctx).Create(&codeModels).Error; err != nil {
		r.logger.Errorw("failed to create code batch", "count", len(codes), "error", err)
		return fmt.Errorf("failed to create code batch: %w", err)
	}

	for i, model := range codeModels {
		if err := codes[i].SetID(model.ID); err != nil {
			return fmt.Errorf("failed to set code ID: %w", err)
		}
	}

	r.logger.Infow("code batch created", "count", len(codes))
	return nil
}

// GetByCode retrieves a code by its opaque token
func (r *RedemptionCodeRepositoryImpl) GetByCode(ctx context.Context, token string) (*redemption.Code, error) {
	var model models.RedemptionCodeModel
	err := r.conn(ctx).WithContext(ctx).
		Where("code = ?", token).
		First(&model).Error
	if err != nil {
		if errors.IsRecordNotFoundError(err) {
			return nil, nil
		}
		r.logger.Errorw("failed to get code", "error", err)
		return nil, fmt.Errorf("failed to get code: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// Consume atomically spends one redemption of the code. The conditional
// UPDATE is the entire race guard: of N concurrent redeemers of a code with
// K redemptions left, exactly min(N, K) see an affected row.
func (r *RedemptionCodeRepositoryImpl) Consume(ctx context.Context, token string) error {
	result := r.conn(ctx).WithContext(ctx).
		Model(&models.RedemptionCodeModel{}).
		Where("code = ? AND redemptions < max_redemptions", token).
		UpdateColumn("redemptions", gorm.Expr("redemptions + 1"))
	if result.Error != nil {
		r.logger.Errorw("failed to consume code", "error", result.Error)
		return fmt.Errorf("failed to consume code: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		// Distinguish absent from exhausted for the caller's error mapping.
		var count int64
		if err := r.conn(ctx).WithContext(ctx).
			Model(&models.RedemptionCodeModel{}).
			Where("code = ?", token).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check code existence: %w", err)
		}
		if count == 0 {
			return redemption.ErrCodeNotFound
		}
		return redemption.ErrCodeExhausted
	}

	return nil
}

// List retrieves codes with pagination, newest first
func (r *RedemptionCodeRepositoryImpl) List(ctx context.Context, offset, limit int) ([]*redemption.Code, int64, error) {
	var total int64
	if err := r.conn(ctx).WithContext(ctx).
		Model(&models.RedemptionCodeModel{}).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count codes: %w", err)
	}

	var codeModels []*models.RedemptionCodeModel
	err := r.conn(ctx).WithContext(ctx).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&codeModels).Error
	if err != nil {
		r.logger.Errorw("failed to list codes", "error", err)
		return nil, 0, fmt.Errorf("failed to list codes: %w", err)
	}

	codes, err := r.mapper.ToEntities(codeModels)
	if err != nil {
		return nil, 0, err
	}
	return codes, total, nil
}
