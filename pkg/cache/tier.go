package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/wyattowalsh/skillsight/pkg/errors"
	"github.com/wyattowalsh/skillsight/pkg/storage"
)

// Tier reads artifact bytes through the edge cache with write-through
// on a store hit. Absence is never cached, so a late-published artifact
// becomes visible on the next request.
type Tier struct {
	store storage.ObjectStore
	edge  EdgeCache
	ttl   time.Duration
	log   *slog.Logger
}

// NewTier creates a read-through tier over store with edge in front.
func NewTier(store storage.ObjectStore, edge EdgeCache, ttl time.Duration, log *slog.Logger) *Tier {
	return &Tier{store: store, edge: edge, ttl: ttl, log: log}
}

// Load returns the artifact bytes for key, consulting the edge cache
// first and falling back to the object store.
func (t *Tier) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if data, ok := t.edge.Get(ctx, key); ok {
		return data, true, nil
	}

	data, found, err := t.store.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	t.edge.Set(ctx, key, data, t.ttl)
	return data, true, nil
}

// Invalidate drops the edge entry for key.
func (t *Tier) Invalidate(ctx context.Context, key string) {
	t.edge.Del(ctx, key)
}

// LoadJSON loads and decodes the artifact at key, memoizing the decoded
// document when memo is non-nil.
//
// A payload that fails to decode is reported as MALFORMED_UPSTREAM and
// evicted from the edge cache, so a corrected artifact takes effect as
// soon as it is published rather than after a cache TTL.
func LoadJSON[T any](ctx context.Context, t *Tier, memo *Memo[*T], key string) (*T, bool, error) {
	if memo != nil {
		if v, ok := memo.Get(key); ok {
			return v, true, nil
		}
	}

	data, found, err := t.Load(ctx, key)
	if err != nil || !found {
		return nil, found, err
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.edge.Del(ctx, key)
		t.log.Error("artifact failed to decode", "key", key, "error", err)
		return nil, false, errors.WrapWithContext(errors.ErrCodeMalformedUpstream,
			"decoding artifact", err, map[string]any{"key": key})
	}

	if memo != nil {
		memo.Set(key, &v)
	}
	return &v, true, nil
}
