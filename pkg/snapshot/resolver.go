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

package snapshot

import (
	"context"
	"log/slog"
	"time"

	"github.com/wyattowalsh/skillsight/pkg/cache"
	"github.com/wyattowalsh/skillsight/pkg/errors"
)

// latestMemoKey is the single memo slot for the resolved manifest,
// regardless of which pointer produced it.
const latestMemoKey = "latest"

// Resolver locates the active snapshot. It prefers the canonical
// manifest and falls back to the legacy pointer, reconciling the two
// formats into one Manifest.
type Resolver struct {
	tier   *cache.Tier
	layout Layout
	memo   *cache.Memo[*Manifest]
	log    *slog.Logger
}

// NewResolver creates a Resolver whose result is memoized for ttl.
func NewResolver(tier *cache.Tier, layout Layout, ttl time.Duration, log *slog.Logger) *Resolver {
	return &Resolver{
		tier:   tier,
		layout: layout,
		memo:   cache.NewMemo[*Manifest](1, ttl),
		log:    log,
	}
}

// Latest resolves the current snapshot manifest.
//
// It returns (nil, false, nil) only when neither the canonical manifest
// nor the legacy pointer exists; callers must surface that as service
// unavailability, not as a missing resource. A pointer that exists but
// carries an invalid date is a hard error, never a silent fallback to
// the other format.
func (r *Resolver) Latest(ctx context.Context) (*Manifest, bool, error) {
	if m, ok := r.memo.Get(latestMemoKey); ok {
		return m, true, nil
	}

	key := r.layout.ManifestKey()
	m, found, err := cache.LoadJSON[Manifest](ctx, r.tier, nil, key)
	if err != nil {
		return nil, false, err
	}
	if found {
		if !ValidDate(m.SnapshotDate) {
			r.tier.Invalidate(ctx, key)
			return nil, false, errors.NewWithContext(errors.ErrCodeMalformedUpstream,
				"manifest snapshot_date is not a valid date",
				map[string]any{"key": key, "snapshot_date": m.SnapshotDate})
		}
		r.memo.Set(latestMemoKey, m)
		return m, true, nil
	}

	return r.fromLegacyPointer(ctx)
}

// fromLegacyPointer reconstructs a Manifest from the legacy pointer,
// opportunistically enriched with page size and totals from the compact
// layout's per-snapshot manifest when that artifact exists.
func (r *Resolver) fromLegacyPointer(ctx context.Context) (*Manifest, bool, error) {
	key := r.layout.LegacyPointerKey()
	p, found, err := cache.LoadJSON[LegacyPointer](ctx, r.tier, nil, key)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}
	if !ValidDate(p.Date) {
		r.tier.Invalidate(ctx, key)
		return nil, false, errors.NewWithContext(errors.ErrCodeMalformedUpstream,
			"legacy pointer date is not a valid date",
			map[string]any{"key": key, "date": p.Date})
	}

	m := &Manifest{SnapshotDate: p.Date}
	lm, found, err := cache.LoadJSON[LegacyManifest](ctx, r.tier, nil, r.layout.LegacyManifestKey(p.Date))
	if err != nil {
		// Enrichment is best effort; the pointer alone is enough to serve.
		r.log.Warn("legacy manifest enrichment failed", "date", p.Date, "error", err)
	} else if found {
		m.PageSize = &lm.PageSize
		m.Counts = &Counts{TotalSkills: lm.TotalSkills}
	}

	r.memo.Set(latestMemoKey, m)
	return m, true, nil
}

// CachedDate reports the memoized snapshot date without touching
// storage. Used by the liveness endpoint, which must never block on a
// durable read.
func (r *Resolver) CachedDate() (string, bool) {
	m, ok := r.memo.Get(latestMemoKey)
	if !ok {
		return "", false
	}
	return m.SnapshotDate, true
}
