package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"courtside/internal/domain/grant"
	"courtside/internal/infrastructure/persistence/mappers"
	"courtside/internal/infrastructure/persistence/models"
	"courtside/internal/shared/db"
	"courtside/internal/shared/errors"
	"courtside/internal/shared/logger"
)

// GrantRepositoryImpl implements the grant.Repository interface
type GrantRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.GrantMapper
	logger logger.Interface
}

// NewGrantRepository creates a new grant repository instance
func NewGrantRepository(database *gorm.DB, logger logger.Interface) grant.Repository {
	return &GrantRepositoryImpl{
		db:     database,
		mapper: mappers.NewGrantMapper(),
		logger: logger,
	}
}

func (r *GrantRepositoryImpl) conn(ctx context.Context) *gorm.DB {
	return db.GetTxFromContext(ctx, r.db)
}

// Create creates a new grant
func (r *GrantRepositoryImpl) Create(ctx context.Context, g *grant.Grant) error {
	model, err := r.mapper.ToModel(g)
	if err != nil {
		return fmt.Errorf("failed to map grant: %w", err)
	}

	if err := r.conn(ctx).WithContext(ctx).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("grant already exists")
		}
		r.logger.Errorw("failed to create grant",
			"account_id", g.AccountID(),
			"scope", g.Scope().String(),
			"error", err)
		return fmt.Errorf("failed to create grant: %w", err)
	}

	if err := g.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set grant ID: %w", err)
	}

	r.logger.Infow("grant created",
		"id", model.ID,
		"sid", model.SID,
		"account_id", model.AccountID,
		"scope_type", model.ScopeType)

	return nil
}

// Update updates an existing grant using optimistic locking
func (r *GrantRepositoryImpl) Update(ctx context.Context, g *grant.Grant) error {
	model, err := r.mapper.ToModel(g)
	if err != nil {
		return fmt.Errorf("failed to map grant: %w", err)
	}

	result := r.conn(ctx).WithContext(ctx).
		Model(&models.GrantModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]interface{}{
			"status":   model.Status,
			"start_at": model.StartAt,
			"end_at":   model.EndAt,
			"metadata": model.Metadata,
			"version":  model.Version,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update grant", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update grant: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewConflictError("grant was modified concurrently")
	}

	return nil
}

// GetBySID retrieves a grant by its short ID
func (r *GrantRepositoryImpl) GetBySID(ctx context.Context, sid string) (*grant.Grant, error) {
	var model models.GrantModel
	err := r.conn(ctx).WithContext(ctx).
		Where("sid = ?", sid).
		First(&model).Error
	if err != nil {
		if errors.IsRecordNotFoundError(err) {
			return nil, nil
		}
		r.logger.Errorw("failed to get grant", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get grant: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// ActiveCourseGrant returns an active course grant for (account, course) at
// the given instant. The source-kind qualification rule is applied here so
// every read path sees the same semantics.
func (r *GrantRepositoryImpl) ActiveCourseGrant(ctx context.Context, accountID, courseID uint, now time.Time) (*grant.Grant, error) {
	return r.activeGrant(ctx, now, map[string]interface{}{
		"account_id": accountID,
		"scope_type": grant.ScopeTypeCourse.String(),
		"course_id":  courseID,
	}, true)
}

// ActiveCardGrant returns an active card grant for (account, card).
func (r *GrantRepositoryImpl) ActiveCardGrant(ctx context.Context, accountID, cardID uint, now time.Time) (*grant.Grant, error) {
	return r.activeGrant(ctx, now, map[string]interface{}{
		"account_id": accountID,
		"scope_type": grant.ScopeTypeCard.String(),
		"card_id":    cardID,
	}, false)
}

// ActiveMonthGrant returns an active month grant for (account, course, month).
func (r *GrantRepositoryImpl) ActiveMonthGrant(ctx context.Context, accountID, courseID uint, monthNumber int, now time.Time) (*grant.Grant, error) {
	return r.activeGrant(ctx, now, map[string]interface{}{
		"account_id":   accountID,
		"scope_type":   grant.ScopeTypeMonth.String(),
		"course_id":    courseID,
		"month_number": monthNumber,
	}, false)
}

func (r *GrantRepositoryImpl) activeGrant(ctx context.Context, now time.Time, conditions map[string]interface{}, courseQualified bool) (*grant.Grant, error) {
	query := r.conn(ctx).WithContext(ctx).
		Where(conditions).
		Where("status = ?", grant.StatusActive.String()).
		Where("(end_at IS NULL OR end_at > ?)", now)

	if courseQualified {
		query = query.Where("source_kind IN ?", []string{
			grant.SourceKindCode.String(),
			grant.SourceKindManual.String(),
			grant.SourceKindAdmin.String(),
		})
	}

	var model models.GrantModel
	if err := query.Order("id DESC").First(&model).Error; err != nil {
		if errors.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query active grant: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// FindMergeable returns the most recent non-revoked grant for (account, scope)
func (r *GrantRepositoryImpl) FindMergeable(ctx context.Context, accountID uint, scope grant.Scope) (*grant.Grant, error) {
	query := r.conn(ctx).WithContext(ctx).
		Where("account_id = ? AND scope_type = ?", accountID, scope.Type().String()).
		Where("status <> ?", grant.StatusRevoked.String())

	switch scope.Type() {
	case grant.ScopeTypeCourse:
		query = query.Where("course_id = ?", scope.CourseID())
	case grant.ScopeTypeCard:
		query = query.Where("card_id = ?", scope.CardID())
	case grant.ScopeTypeMonth:
		query = query.Where("course_id = ? AND month_number = ?", scope.CourseID(), scope.MonthNumber())
	}

	var model models.GrantModel
	if err := query.Order("id DESC").First(&model).Error; err != nil {
		if errors.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find mergeable grant: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// ListByAccount retrieves all grants held by an account, newest first
func (r *GrantRepositoryImpl) ListByAccount(ctx context.Context, accountID uint) ([]*grant.Grant, error) {
	var grantModels []*models.GrantModel
	err := r.conn(ctx).WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("id DESC").
		Find(&grantModels).Error
	if err != nil {
		r.logger.Errorw("failed to list grants", "account_id", accountID, "error", err)
		return nil, fmt.Errorf("failed to list grants: %w", err)
	}

	return r.mapper.ToEntities(grantModels)
}

// MarkExpired flips date-expired active grants to expired status
func (r *GrantRepositoryImpl) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.conn(ctx).WithContext(ctx).
		Model(&models.GrantModel{}).
		Where("status = ?", grant.StatusActive.String()).
		Where("end_at IS NOT NULL AND end_at <= ?", now).
		Updates(map[string]interface{}{
			"status":     grant.StatusExpired.String(),
			"updated_at": now,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to mark expired grants", "error", result.Error)
		return 0, fmt.Errorf("failed to mark expired grants: %w", result.Error)
	}

	return result.RowsAffected, nil
}
