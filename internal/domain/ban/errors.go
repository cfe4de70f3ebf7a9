package ban

import "errors"

var (
	// ErrBanNotFound is returned when a ban cannot be located
	ErrBanNotFound = errors.New("ban not found")

	// ErrAlreadyBanned is returned when creating a ban for a key that
	// already has an active one
	ErrAlreadyBanned = errors.New("already banned")
)
