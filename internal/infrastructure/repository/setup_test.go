package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"courtside/internal/infrastructure/persistence/models"
	"courtside/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database shared across
	// goroutines and serializes concurrent writes.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.GrantModel{},
		&models.DeviceBanModel{},
		&models.AccountBanModel{},
		&models.DeviceAssociationModel{},
		&models.RedemptionCodeModel{},
		&models.PackageModel{},
		&models.CourseModel{},
		&models.AgeGroupModel{},
		&models.PlayerCardModel{},
		&models.TrainingMonthModel{},
		&models.TrainingDayModel{},
		&models.VideoModel{},
		&models.PackageAgeGroupModel{},
	)
	require.NoError(t, err)

	return db
}

func testLogger() logger.Interface {
	return logger.NewLogger()
}
