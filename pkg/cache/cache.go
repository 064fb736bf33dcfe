// Package cache provides the two caching tiers used by the read API:
// a shared edge cache holding raw artifact bytes (Redis in production)
// and a per-instance memo holding decoded documents.
//
// The edge cache is an availability optimization, never a source of
// truth. All edge cache failures degrade to a miss so the object store
// remains the fallback path.
package cache

import (
	"context"
	"time"
)

// EdgeCache is a shared byte cache in front of the object store.
//
// Implementations must never fail a request: errors are logged and
// reported as a miss. Set and Del are best effort.
type EdgeCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration)
	Del(ctx context.Context, key string)
}

// Noop is an EdgeCache that caches nothing. Used when no Redis address
// is configured.
type Noop struct{}

// Get always misses.
func (Noop) Get(ctx context.Context, key string) ([]byte, bool) { return nil, false }

// Set discards the value.
func (Noop) Set(ctx context.Context, key string, val []byte, ttl time.Duration) {}

// Del does nothing.
func (Noop) Del(ctx context.Context, key string) {}
