package ban

import (
	"context"
	"time"

	"courtside/internal/shared/logger"
)

// Registry is the domain service the access path consults first.
//
// The two checks deliberately fail differently on store errors:
//   - IsDeviceBanned fails open. It runs pre-auth on every request, and a
//     transient store error must not lock out every anonymous visitor.
//   - IsAccountBanned fails closed. Once an account is known the caller is
//     about to honor grants, and guessing "not banned" on an error would
//     let a banned account through.
type Registry struct {
	repo   Repository
	logger logger.Interface
	now    func() time.Time
}

// NewRegistry creates a new ban registry.
func NewRegistry(repo Repository, logger logger.Interface) *Registry {
	return &Registry{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// IsDeviceBanned reports whether the device is currently banned.
// Store errors are logged and treated as not banned.
func (r *Registry) IsDeviceBanned(ctx context.Context, deviceID string) bool {
	if deviceID == "" {
		return false
	}

	b, err := r.repo.GetDeviceBan(ctx, deviceID)
	if err != nil {
		r.logger.Errorw("device ban lookup failed, failing open", "device_id", deviceID, "error", err)
		return false
	}
	if b == nil {
		return false
	}
	return b.Enforced(r.now())
}

// IsAccountBanned reports whether the account is currently banned.
// Store errors propagate so the caller denies access.
func (r *Registry) IsAccountBanned(ctx context.Context, accountID uint) (bool, error) {
	if accountID == 0 {
		return false, nil
	}

	b, err := r.repo.GetAccountBan(ctx, accountID)
	if err != nil {
		r.logger.Errorw("account ban lookup failed, failing closed", "account_id", accountID, "error", err)
		return false, err
	}
	if b == nil {
		return false, nil
	}
	return b.Enforced(r.now()), nil
}
