package ratelimit

import (
	"context"
	"time"
)

// Store counts requests per key inside a fixed window. Implementations must
// be safe for concurrent use.
type Store interface {
	// Incr bumps the counter for key and returns the count after the bump
	// together with the moment the window resets.
	Incr(ctx context.Context, key string, window time.Duration) (int, time.Time, error)
}
