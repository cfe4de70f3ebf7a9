package grant

import "errors"

var (
	// ErrGrantNotFound is returned when a grant cannot be located
	ErrGrantNotFound = errors.New("grant not found")

	// ErrGrantRevoked is returned when an operation targets a revoked grant
	ErrGrantRevoked = errors.New("grant is revoked")
)
