package models

import (
	"time"

	"gorm.io/datatypes"

	"courtside/internal/shared/constants"
)

// RedemptionCodeModel represents the database persistence model for
// redemption codes. Redemptions only ever moves through the repository's
// conditional increment so the budget cannot be overdrawn.
type RedemptionCodeModel struct {
	ID             uint   `gorm:"primarykey"`
	Code           string `gorm:"not null;size:32;uniqueIndex:idx_codes_code"`
	ScopeType      string `gorm:"not null;size:20"`
	CourseID       uint
	PackageID      uint
	CardID         uint
	MaxRedemptions int `gorm:"not null"`
	Redemptions    int `gorm:"not null;default:0"`
	DurationDays   int `gorm:"not null"`
	Metadata       datatypes.JSON
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for GORM
func (RedemptionCodeModel) TableName() string {
	return constants.TableRedemptionCodes
}
