package ports

import (
	"context"
	"time"
)

// ReplayGuard tracks callback payment ids that have already been processed,
// so a replayed redirect cannot re-confirm a payment even with a valid
// signature.
type ReplayGuard interface {
	// CheckAndSet atomically checks if paymentID was seen, marking it if not.
	// Returns true if the id is new, false if already processed.
	CheckAndSet(ctx context.Context, paymentID string, ttl time.Duration) (bool, error)
}
