package interfaces

import (
	"context"
	"time"
)

// ResultCache stores serialized query results keyed by request signature.
type ResultCache interface {
	// Get reports ok=false on a miss; err is only set on transport failures.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}
