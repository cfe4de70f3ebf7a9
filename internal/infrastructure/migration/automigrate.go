package migration

import (
	"fmt"

	"gorm.io/gorm"

	"courtside/internal/infrastructure/persistence/models"
	"courtside/internal/shared/logger"
)

// GormAutoMigrateStrategy migrates schema from the model structs directly.
// Development convenience only; deployed environments run SQL scripts.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.automigrate"),
	}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	s.logger.Infow("starting gorm auto migration", "models_count", len(models))

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}

	s.logger.Infow("gorm auto migration completed")
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

// AutoMigrateModels returns the models this subsystem owns. Catalog tables
// are authored by external admin tooling and are deliberately absent.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.GrantModel{},
		&models.DeviceBanModel{},
		&models.AccountBanModel{},
		&models.DeviceAssociationModel{},
		&models.RedemptionCodeModel{},
	}
}
