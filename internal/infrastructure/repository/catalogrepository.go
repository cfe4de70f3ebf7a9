package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"courtside/internal/domain/catalog"
	"courtside/internal/infrastructure/persistence/mappers"
	"courtside/internal/infrastructure/persistence/models"
	"courtside/internal/shared/errors"
	"courtside/internal/shared/logger"
)

// CatalogRepositoryImpl implements the catalog.Repository interface.
// The catalog tables are owned by the external admin CMS; everything
// here is read-only.
type CatalogRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(database *gorm.DB, logger logger.Interface) catalog.Repository {
	return &CatalogRepositoryImpl{
		db:     database,
		logger: logger,
	}
}

// GetPackage retrieves a package by ID
func (r *CatalogRepositoryImpl) GetPackage(ctx context.Context, id uint) (*catalog.Package, error) {
	var model models.PackageModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	return mappers.ToPackage(&model), nil
}

// GetCourse retrieves a course by ID
func (r *CatalogRepositoryImpl) GetCourse(ctx context.Context, id uint) (*catalog.Course, error) {
	var model models.CourseModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return mappers.ToCourse(&model), nil
}

// GetAgeGroup retrieves an age group by ID
func (r *CatalogRepositoryImpl) GetAgeGroup(ctx context.Context, id uint) (*catalog.AgeGroup, error) {
	var model models.AgeGroupModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get age group: %w", err)
	}
	return mappers.ToAgeGroup(&model), nil
}

// GetPlayerCard retrieves a player card by ID
func (r *CatalogRepositoryImpl) GetPlayerCard(ctx context.Context, id uint) (*catalog.PlayerCard, error) {
	var model models.PlayerCardModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get player card: %w", err)
	}
	return mappers.ToPlayerCard(&model), nil
}

// GetMonth retrieves the training month with the given number inside an age group
func (r *CatalogRepositoryImpl) GetMonth(ctx context.Context, ageGroupID uint, number int) (*catalog.TrainingMonth, error) {
	var model models.TrainingMonthModel
	err := r.db.WithContext(ctx).
		Where("age_group_id = ? AND number = ?", ageGroupID, number).
		First(&model).Error
	if err != nil {
		if errors.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get training month: %w", err)
	}
	return mappers.ToTrainingMonth(&model), nil
}

// GetMonthByID retrieves a training month by primary key
func (r *CatalogRepositoryImpl) GetMonthByID(ctx context.Context, id uint) (*catalog.TrainingMonth, error) {
	var model models.TrainingMonthModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get training month: %w", err)
	}
	return mappers.ToTrainingMonth(&model), nil
}

// GetDay retrieves a training day by ID
func (r *CatalogRepositoryImpl) GetDay(ctx context.Context, id uint) (*catalog.TrainingDay, error) {
	var model models.TrainingDayModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get training day: %w", err)
	}
	return mappers.ToTrainingDay(&model), nil
}

// GetVideo retrieves a video by ID
func (r *CatalogRepositoryImpl) GetVideo(ctx context.Context, id uint) (*catalog.Video, error) {
	var model models.VideoModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	return mappers.ToVideo(&model), nil
}

// CountPackages returns how many active packages expose the course.
// A package is linked to a course through its allowlist rows, so only
// packages with at least one row for the course count.
func (r *CatalogRepositoryImpl) CountPackages(ctx context.Context, courseID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PackageAgeGroupModel{}).
		Joins("JOIN packages ON packages.id = package_age_groups.package_id").
		Where("package_age_groups.course_id = ? AND packages.active = ?", courseID, true).
		Distinct("package_age_groups.package_id").
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count packages", "course_id", courseID, "error", err)
		return 0, fmt.Errorf("failed to count packages: %w", err)
	}
	return count, nil
}

// AllowedAgeGroups returns the age group IDs the package exposes for the
// course. Empty means unrestricted.
func (r *CatalogRepositoryImpl) AllowedAgeGroups(ctx context.Context, packageID, courseID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.PackageAgeGroupModel{}).
		Where("package_id = ? AND course_id = ?", packageID, courseID).
		Pluck("age_group_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get allowed age groups: %w", err)
	}
	return ids, nil
}

// ListAgeGroups returns a course's age groups in display order
func (r *CatalogRepositoryImpl) ListAgeGroups(ctx context.Context, courseID uint) ([]*catalog.AgeGroup, error) {
	var groupModels []*models.AgeGroupModel
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("sort_order ASC, id ASC").
		Find(&groupModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list age groups: %w", err)
	}
	return mappers.ToAgeGroups(groupModels), nil
}

// ListPlayerCards returns an age group's player cards in display order
func (r *CatalogRepositoryImpl) ListPlayerCards(ctx context.Context, ageGroupID uint) ([]*catalog.PlayerCard, error) {
	var cardModels []*models.PlayerCardModel
	err := r.db.WithContext(ctx).
		Where("age_group_id = ?", ageGroupID).
		Order("sort_order ASC, id ASC").
		Find(&cardModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list player cards: %w", err)
	}
	return mappers.ToPlayerCards(cardModels), nil
}

// ListMonths returns an age group's training months in display order
func (r *CatalogRepositoryImpl) ListMonths(ctx context.Context, ageGroupID uint) ([]*catalog.TrainingMonth, error) {
	var monthModels []*models.TrainingMonthModel
	err := r.db.WithContext(ctx).
		Where("age_group_id = ?", ageGroupID).
		Order("number ASC").
		Find(&monthModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list training months: %w", err)
	}
	return mappers.ToTrainingMonths(monthModels), nil
}

// ListDays returns a month's training days in display order
func (r *CatalogRepositoryImpl) ListDays(ctx context.Context, monthID uint) ([]*catalog.TrainingDay, error) {
	var dayModels []*models.TrainingDayModel
	err := r.db.WithContext(ctx).
		Where("month_id = ?", monthID).
		Order("number ASC").
		Find(&dayModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list training days: %w", err)
	}
	return mappers.ToTrainingDays(dayModels), nil
}

// ListVideos returns a day's videos in display order
func (r *CatalogRepositoryImpl) ListVideos(ctx context.Context, dayID uint) ([]*catalog.Video, error) {
	var videoModels []*models.VideoModel
	err := r.db.WithContext(ctx).
		Where("day_id = ?", dayID).
		Order("sort_order ASC, id ASC").
		Find(&videoModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	return mappers.ToVideos(videoModels), nil
}

// HasFreePreview reports whether any video on the scoped path is flagged as
// free preview. Zero ageGroupID/monthNumber leave that axis unscoped.
func (r *CatalogRepositoryImpl) HasFreePreview(ctx context.Context, courseID, ageGroupID uint, monthNumber int) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.VideoModel{}).
		Joins("JOIN training_days ON training_days.id = videos.day_id").
		Joins("JOIN training_months ON training_months.id = training_days.month_id").
		Joins("JOIN age_groups ON age_groups.id = training_months.age_group_id").
		Where("age_groups.course_id = ? AND videos.is_free_preview = ?", courseID, true)
	if ageGroupID != 0 {
		query = query.Where("age_groups.id = ?", ageGroupID)
	}
	if monthNumber > 0 {
		query = query.Where("training_months.number = ?", monthNumber)
	}
	err := query.Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to probe free preview", "course_id", courseID, "error", err)
		return false, fmt.Errorf("failed to probe free preview: %w", err)
	}
	return count > 0, nil
}
