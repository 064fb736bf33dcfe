package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Memo is a per-instance LRU cache of decoded documents with a TTL.
// Each replica holds its own memo, so entries converge on the latest
// published snapshot within one TTL of each other.
type Memo[T any] struct {
	lru *expirable.LRU[string, T]
}

// NewMemo creates a memo holding up to maxSize entries, each expiring
// ttl after it was added.
func NewMemo[T any](maxSize int, ttl time.Duration) *Memo[T] {
	return &Memo[T]{lru: expirable.NewLRU[string, T](maxSize, nil, ttl)}
}

// Get returns the cached value for key.
func (m *Memo[T]) Get(key string) (T, bool) {
	val, ok := m.lru.Get(key)
	if ok {
		memoHitsTotal.Inc()
		return val, true
	}
	memoMissesTotal.Inc()
	var zero T
	return zero, false
}

// Set adds or refreshes the value for key.
func (m *Memo[T]) Set(key string, val T) {
	m.lru.Add(key, val)
}

// Remove evicts the value for key if present.
func (m *Memo[T]) Remove(key string) {
	m.lru.Remove(key)
}

// Len reports the number of live entries.
func (m *Memo[T]) Len() int {
	return m.lru.Len()
}
