// Package ban provides domain models for device- and account-level bans and
// the registry service the access path consults before anything else.
package ban

import (
	"fmt"
	"time"
)

// DeviceBan blocks a single device identifier, independent of any account.
// Banning a device does not touch the accounts seen on it.
type DeviceBan struct {
	id          uint
	deviceID    string
	active      bool
	bannedUntil *time.Time // nil means indefinite
	reason      string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewDeviceBan creates an active device ban.
// bannedUntil nil means the ban holds until lifted.
func NewDeviceBan(deviceID string, bannedUntil *time.Time, reason string) (*DeviceBan, error) {
	if deviceID == "" {
		return nil, fmt.Errorf("device ID is required")
	}
	now := time.Now().UTC()
	return &DeviceBan{
		deviceID:    deviceID,
		active:      true,
		bannedUntil: bannedUntil,
		reason:      reason,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructDeviceBan reconstructs a device ban from persistence.
func ReconstructDeviceBan(id uint, deviceID string, active bool, bannedUntil *time.Time, reason string, createdAt, updatedAt time.Time) (*DeviceBan, error) {
	if id == 0 {
		return nil, fmt.Errorf("ban ID cannot be zero")
	}
	if deviceID == "" {
		return nil, fmt.Errorf("device ID is required")
	}
	return &DeviceBan{
		id:          id,
		deviceID:    deviceID,
		active:      active,
		bannedUntil: bannedUntil,
		reason:      reason,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (b *DeviceBan) ID() uint                { return b.id }
func (b *DeviceBan) DeviceID() string        { return b.deviceID }
func (b *DeviceBan) Active() bool            { return b.active }
func (b *DeviceBan) BannedUntil() *time.Time { return b.bannedUntil }
func (b *DeviceBan) Reason() string          { return b.reason }
func (b *DeviceBan) CreatedAt() time.Time    { return b.createdAt }
func (b *DeviceBan) UpdatedAt() time.Time    { return b.updatedAt }

// SetID sets the ban ID (only for persistence layer use)
func (b *DeviceBan) SetID(id uint) error {
	if b.id != 0 {
		return fmt.Errorf("ban ID is already set")
	}
	b.id = id
	return nil
}

// Enforced checks whether the ban blocks access at the given instant.
func (b *DeviceBan) Enforced(now time.Time) bool {
	return enforced(b.active, b.bannedUntil, now)
}

// Lift deactivates the ban.
func (b *DeviceBan) Lift() {
	b.active = false
	b.updatedAt = time.Now().UTC()
}

// AccountBan blocks an account everywhere, regardless of device.
type AccountBan struct {
	id          uint
	accountID   uint
	active      bool
	bannedUntil *time.Time
	reason      string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewAccountBan creates an active account ban.
func NewAccountBan(accountID uint, bannedUntil *time.Time, reason string) (*AccountBan, error) {
	if accountID == 0 {
		return nil, fmt.Errorf("account ID is required")
	}
	now := time.Now().UTC()
	return &AccountBan{
		accountID:   accountID,
		active:      true,
		bannedUntil: bannedUntil,
		reason:      reason,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructAccountBan reconstructs an account ban from persistence.
func ReconstructAccountBan(id uint, accountID uint, active bool, bannedUntil *time.Time, reason string, createdAt, updatedAt time.Time) (*AccountBan, error) {
	if id == 0 {
		return nil, fmt.Errorf("ban ID cannot be zero")
	}
	if accountID == 0 {
		return nil, fmt.Errorf("account ID is required")
	}
	return &AccountBan{
		id:          id,
		accountID:   accountID,
		active:      active,
		bannedUntil: bannedUntil,
		reason:      reason,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (b *AccountBan) ID() uint                { return b.id }
func (b *AccountBan) AccountID() uint         { return b.accountID }
func (b *AccountBan) Active() bool            { return b.active }
func (b *AccountBan) BannedUntil() *time.Time { return b.bannedUntil }
func (b *AccountBan) Reason() string          { return b.reason }
func (b *AccountBan) CreatedAt() time.Time    { return b.createdAt }
func (b *AccountBan) UpdatedAt() time.Time    { return b.updatedAt }

// SetID sets the ban ID (only for persistence layer use)
func (b *AccountBan) SetID(id uint) error {
	if b.id != 0 {
		return fmt.Errorf("ban ID is already set")
	}
	b.id = id
	return nil
}

// Enforced checks whether the ban blocks access at the given instant.
func (b *AccountBan) Enforced(now time.Time) bool {
	return enforced(b.active, b.bannedUntil, now)
}

// Lift deactivates the ban.
func (b *AccountBan) Lift() {
	b.active = false
	b.updatedAt = time.Now().UTC()
}

// enforced is the shared window rule: a ban holds while it is active and
// either indefinite or not yet past its end.
func enforced(active bool, until *time.Time, now time.Time) bool {
	if !active {
		return false
	}
	if until != nil && !until.After(now) {
		return false
	}
	return true
}
