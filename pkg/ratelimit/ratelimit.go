// Copyright (c) 2025, Skillsight Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ratelimit implements per-client fixed-window admission
// control. State is process-local: replicas at different edge
// locations each enforce the limit independently, which is an accepted
// design limitation rather than a bug.
package ratelimit

import (
	"sync"
	"time"
)

// Decision is the outcome of one admission check, carrying everything
// the transport layer needs for X-RateLimit and Retry-After headers.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	// RetryAfter is seconds until the client's window resets, at least
	// 1. Zero when the request was allowed.
	RetryAfter int
	// Reset is the unix second at which the client's window ends.
	Reset int64
}

type window struct {
	start time.Time
	count int
}

// Limiter admits up to limit requests per client per fixed window.
// Entries for fully elapsed windows are swept opportunistically during
// Allow, at most once per window duration.
type Limiter struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	clients   map[string]*window
	lastSweep time.Time
	now       func() time.Time
}

// New creates a Limiter admitting limit requests per window per client.
func New(limit int, windowDur time.Duration) *Limiter {
	return &Limiter{
		limit:   limit,
		window:  windowDur,
		clients: map[string]*window{},
		now:     time.Now,
	}
}

// Allow records one request for clientID and decides admission.
func (l *Limiter) Allow(clientID string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	w, ok := l.clients[clientID]
	if !ok || now.Sub(w.start) >= l.window {
		l.clients[clientID] = &window{start: now, count: 1}
		return Decision{
			Allowed:   true,
			Limit:     l.limit,
			Remaining: l.limit - 1,
			Reset:     now.Add(l.window).Unix(),
		}
	}

	reset := w.start.Add(l.window)
	if w.count < l.limit {
		w.count++
		return Decision{
			Allowed:   true,
			Limit:     l.limit,
			Remaining: l.limit - w.count,
			Reset:     reset.Unix(),
		}
	}

	retry := int((reset.Sub(now) + time.Second - 1) / time.Second)
	if retry < 1 {
		retry = 1
	}
	return Decision{
		Allowed:    false,
		Limit:      l.limit,
		Remaining:  0,
		RetryAfter: retry,
		Reset:      reset.Unix(),
	}
}

// sweep drops entries whose window has fully elapsed. Called under the
// lock; rate-limited to once per window so a hot path never pays for a
// full map scan more often than the data can change.
func (l *Limiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now
	for id, w := range l.clients {
		if now.Sub(w.start) >= l.window {
			delete(l.clients, id)
		}
	}
}

// Len reports the number of tracked clients.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}
