package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers the outcome of keyed requests so that a retried
// request can be answered with the first result instead of being executed twice.
type IdempotencyStore interface {
	// Reserve claims the key. It returns false if the key is already reserved
	// or completed.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Complete stores the result for a reserved key.
	Complete(ctx context.Context, key, result string, ttl time.Duration) error

	// Result returns the stored result. ok is false while the key is unknown
	// or still pending.
	Result(ctx context.Context, key string) (result string, ok bool, err error)

	// Release frees a reserved key after the keyed operation failed.
	Release(ctx context.Context, key string) error

	Close() error
}
