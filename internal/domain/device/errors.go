package device

import "errors"

var (
	// ErrTooManyDevices is returned when tracking would exceed the
	// distinct-device limit. Callers treat it like a ban (sign out, blocked
	// state) but no ban row is written, so the state self-heals when
	// devices are pruned.
	ErrTooManyDevices = errors.New("too many devices for account")

	// ErrBanned is returned when the account has an enforced ban.
	ErrBanned = errors.New("account is banned")
)
