package redemption

import "context"

// Repository defines the interface for redemption code persistence.
//
// Consume is the linchpin: it must spend one unit of the code's budget
// atomically, so that concurrent redeemers of a nearly-exhausted code
// never overdraw it. Implementations back it with a conditional update
// (UPDATE ... SET redemptions = redemptions + 1 WHERE redemptions < max)
// and report ErrCodeExhausted when the condition matched no row.
type Repository interface {
	// Create persists a new code
	Create(ctx context.Context, code *Code) error
	// CreateBatch persists a batch of codes in one round trip
	CreateBatch(ctx context.Context, codes []*Code) error
	// GetByCode retrieves a code by its opaque token
	GetByCode(ctx context.Context, token string) (*Code, error)
	// Consume atomically spends one redemption of the code.
	// Returns ErrCodeNotFound if the token does not exist and
	// ErrCodeExhausted if the budget was already spent.
	Consume(ctx context.Context, token string) error
	// List retrieves codes with pagination, newest first
	List(ctx context.Context, offset, limit int) ([]*Code, int64, error)
}
