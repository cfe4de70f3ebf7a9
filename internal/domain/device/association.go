// Package device provides the device-to-account association model and the
// tracker service that enforces the distinct-devices-per-account policy.
package device

import (
	"fmt"
	"time"
)

// Association links a device identifier to an account.
// It is upserted on every authenticated request and used both to enumerate an
// account's devices for the device-limit policy and to ban a single device
// without banning the account.
type Association struct {
	id         uint
	deviceID   string
	accountID  uint
	lastSeenAt time.Time
}

// NewAssociation creates an association seen now.
func NewAssociation(deviceID string, accountID uint) (*Association, error) {
	if deviceID == "" {
		return nil, fmt.Errorf("device ID is required")
	}
	if accountID == 0 {
		return nil, fmt.Errorf("account ID is required")
	}
	return &Association{
		deviceID:   deviceID,
		accountID:  accountID,
		lastSeenAt: time.Now().UTC(),
	}, nil
}

// ReconstructAssociation reconstructs an association from persistence.
func ReconstructAssociation(id uint, deviceID string, accountID uint, lastSeenAt time.Time) (*Association, error) {
	if id == 0 {
		return nil, fmt.Errorf("association ID cannot be zero")
	}
	if deviceID == "" {
		return nil, fmt.Errorf("device ID is required")
	}
	if accountID == 0 {
		return nil, fmt.Errorf("account ID is required")
	}
	return &Association{
		id:         id,
		deviceID:   deviceID,
		accountID:  accountID,
		lastSeenAt: lastSeenAt,
	}, nil
}

func (a *Association) ID() uint              { return a.id }
func (a *Association) DeviceID() string      { return a.deviceID }
func (a *Association) AccountID() uint       { return a.accountID }
func (a *Association) LastSeenAt() time.Time { return a.lastSeenAt }

// Touch updates the last-seen timestamp.
func (a *Association) Touch(now time.Time) {
	a.lastSeenAt = now
}
