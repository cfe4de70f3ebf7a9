package models

import (
	"time"

	"gorm.io/datatypes"

	"courtside/internal/shared/constants"
)

// GrantModel represents the database persistence model for access grants.
// This is the anti-corruption layer between domain and database.
// The scope columns flatten the domain's scope sum type: course grants fill
// CourseID, card grants fill CardID, month grants fill CourseID+MonthNumber.
type GrantModel struct {
	ID          uint   `gorm:"primarykey"`
	SID         string `gorm:"column:sid;not null;size:32;uniqueIndex:idx_grants_sid"`
	AccountID   uint   `gorm:"not null;index:idx_grants_account,priority:1"`
	ScopeType   string `gorm:"not null;size:10;index:idx_grants_account,priority:2"`
	CourseID    uint   `gorm:"index:idx_grants_course"`
	CardID      uint   `gorm:"index:idx_grants_card"`
	MonthNumber int
	SourceKind  string     `gorm:"not null;size:20"`
	Status      string     `gorm:"not null;size:20;default:active;index:idx_grants_status_end,priority:1"`
	StartAt     time.Time  `gorm:"not null"`
	EndAt       *time.Time `gorm:"index:idx_grants_status_end,priority:2"`
	Metadata    datatypes.JSON
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Version     int `gorm:"not null;default:1"`
}

// TableName specifies the table name for GORM
func (GrantModel) TableName() string {
	return constants.TableGrants
}
