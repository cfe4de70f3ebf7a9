package ban

import "context"

// Repository defines the interface for ban persistence operations
type Repository interface {
	// CreateDeviceBan persists a new device ban
	CreateDeviceBan(ctx context.Context, b *DeviceBan) error

	// CreateAccountBan persists a new account ban
	CreateAccountBan(ctx context.Context, b *AccountBan) error

	// UpdateDeviceBan updates an existing device ban
	UpdateDeviceBan(ctx context.Context, b *DeviceBan) error

	// UpdateAccountBan updates an existing account ban
	UpdateAccountBan(ctx context.Context, b *AccountBan) error

	// GetDeviceBan retrieves the ban row for a device, nil when none exists
	GetDeviceBan(ctx context.Context, deviceID string) (*DeviceBan, error)

	// GetAccountBan retrieves the ban row for an account, nil when none exists
	GetAccountBan(ctx context.Context, accountID uint) (*AccountBan, error)

	// ListDeviceBans lists device bans, newest first
	ListDeviceBans(ctx context.Context, activeOnly bool) ([]*DeviceBan, error)

	// ListAccountBans lists account bans, newest first
	ListAccountBans(ctx context.Context, activeOnly bool) ([]*AccountBan, error)
}
