package redemption

import "errors"

var (
	// ErrCodeNotFound indicates the code token does not exist
	ErrCodeNotFound = errors.New("redemption code not found")
	// ErrCodeExhausted indicates the code's redemption budget is spent
	ErrCodeExhausted = errors.New("redemption code exhausted")
)
