package models

import (
	"time"

	"courtside/internal/shared/constants"
)

// DeviceAssociationModel represents the database persistence model for
// device/account associations. The unique index makes the tracker's upsert
// idempotent under concurrent requests from the same device.
type DeviceAssociationModel struct {
	ID         uint      `gorm:"primarykey"`
	DeviceID   string    `gorm:"not null;size:64;uniqueIndex:idx_device_account,priority:1"`
	AccountID  uint      `gorm:"not null;uniqueIndex:idx_device_account,priority:2;index:idx_associations_account"`
	LastSeenAt time.Time `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for GORM
func (DeviceAssociationModel) TableName() string {
	return constants.TableDeviceAssociations
}
