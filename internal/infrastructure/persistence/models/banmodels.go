package models

import (
	"time"

	"courtside/internal/shared/constants"
)

// DeviceBanModel represents the database persistence model for device bans
type DeviceBanModel struct {
	ID          uint   `gorm:"primarykey"`
	DeviceID    string `gorm:"not null;size:64;index:idx_device_bans_device"`
	Active      bool   `gorm:"not null;default:true;index:idx_device_bans_active"`
	BannedUntil *time.Time
	Reason      string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (DeviceBanModel) TableName() string {
	return constants.TableDeviceBans
}

// AccountBanModel represents the database persistence model for account bans
type AccountBanModel struct {
	ID          uint `gorm:"primarykey"`
	AccountID   uint `gorm:"not null;index:idx_account_bans_account"`
	Active      bool `gorm:"not null;default:true;index:idx_account_bans_active"`
	BannedUntil *time.Time
	Reason      string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (AccountBanModel) TableName() string {
	return constants.TableAccountBans
}
