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

// Package search answers search and listing queries over a snapshot.
//
// Two query paths exist. The indexed path loads the slim per-snapshot
// index, filters and resorts it in memory on every request. The lookup
// path is used only when the slim index artifact is entirely missing:
// it filters the compact layout's lookup ids and resolves the selected
// rows page by page, a deliberately weaker approximation since install
// counts are unavailable for ordering.
package search

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wyattowalsh/skillsight/pkg/cache"
	"github.com/wyattowalsh/skillsight/pkg/errors"
	"github.com/wyattowalsh/skillsight/pkg/snapshot"
)

// pageFetchConcurrency bounds parallel page reads on the lookup path.
const pageFetchConcurrency = 4

// Result is the response envelope for search and listing queries.
// Total counts every match, not just the returned page.
type Result struct {
	SnapshotDate string              `json:"snapshot_date" yaml:"snapshot_date"`
	Query        string              `json:"query" yaml:"query"`
	Sort         string              `json:"sort" yaml:"sort"`
	Page         int                 `json:"page" yaml:"page"`
	PageSize     int                 `json:"page_size" yaml:"page_size"`
	Total        int                 `json:"total" yaml:"total"`
	Items        []snapshot.ListItem `json:"items" yaml:"items"`
}

// Engine executes validated queries against the resolved snapshot.
type Engine struct {
	tier      *cache.Tier
	resolver  *snapshot.Resolver
	layout    snapshot.Layout
	indexMemo *cache.Memo[*snapshot.SlimIndex]
	log       *slog.Logger
}

// NewEngine creates an Engine. The slim index memo holds two decoded
// indexes so an explicit-date query does not evict the current
// snapshot's.
func NewEngine(tier *cache.Tier, resolver *snapshot.Resolver, layout snapshot.Layout, ttl time.Duration, log *slog.Logger) *Engine {
	return &Engine{
		tier:      tier,
		resolver:  resolver,
		layout:    layout,
		indexMemo: cache.NewMemo[*snapshot.SlimIndex](2, ttl),
		log:       log,
	}
}

// Search runs an interactive query. The caller validates p via
// ParamsFromQuery first.
func (e *Engine) Search(ctx context.Context, p Params) (*Result, error) {
	date, _, err := e.resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	idx, found, err := e.loadIndex(ctx, date)
	if err != nil {
		return nil, err
	}
	if found {
		return e.queryIndex(idx, date, p), nil
	}
	return e.queryLookup(ctx, date, p)
}

// List runs the bulk listing variant. An unfiltered request whose page
// size matches the rendered page size is served straight from the
// pre-rendered leaderboard page; anything else resorts the slim index
// like Search does.
//
// The two paths can disagree slightly on Total (the rendered page
// carries the pipeline's count, the resort path counts the decoded
// items). The discrepancy is a known limitation and both paths are
// kept rather than silently unified.
func (e *Engine) List(ctx context.Context, p Params) (*Result, error) {
	date, m, err := e.resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	r, ok, err := e.listFast(ctx, date, m, p)
	if err != nil {
		return nil, err
	}
	if ok {
		return r, nil
	}

	idx, found, err := e.loadIndex(ctx, date)
	if err != nil {
		return nil, err
	}
	if found {
		return e.queryIndex(idx, date, p), nil
	}
	return e.queryLookup(ctx, date, p)
}

// resolve picks the snapshot date for the query. Explicit dates are
// trusted as-is (validated upstream) and return a nil manifest; the
// default path resolves the latest manifest and treats its absence as
// service unavailability, never as not-found.
func (e *Engine) resolve(ctx context.Context, p Params) (string, *snapshot.Manifest, error) {
	if p.SnapshotDate != "" {
		return p.SnapshotDate, nil, nil
	}
	m, found, err := e.resolver.Latest(ctx)
	if err != nil {
		return "", nil, err
	}
	if !found {
		return "", nil, errors.New(errors.ErrCodeUnavailable, "no snapshot manifest is available")
	}
	return m.SnapshotDate, m, nil
}

func (e *Engine) loadIndex(ctx context.Context, date string) (*snapshot.SlimIndex, bool, error) {
	return cache.LoadJSON[snapshot.SlimIndex](ctx, e.tier, e.indexMemo, e.layout.SlimIndexKey(date))
}

// listFast serves an unfiltered listing from the pre-rendered
// leaderboard page. Applicable only when the manifest is known, its
// page size matches the request, and there is no query to filter by.
func (e *Engine) listFast(ctx context.Context, date string, m *snapshot.Manifest, p Params) (*Result, bool, error) {
	if p.Query != "" || m == nil || m.PageSize == nil || p.PageSize != *m.PageSize {
		return nil, false, nil
	}

	lb, found, err := cache.LoadJSON[snapshot.LeaderboardPage](ctx, e.tier, nil,
		e.layout.LeaderboardPageKey(date, p.Sort, p.Page))
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	items := lb.Items
	if items == nil {
		items = []snapshot.ListItem{}
	}
	return &Result{
		SnapshotDate: date,
		Query:        "",
		Sort:         p.Sort,
		Page:         p.Page,
		PageSize:     lb.PageSize,
		Total:        lb.Total,
		Items:        items,
	}, true, nil
}

// queryIndex filters, resorts, and paginates the slim index. The
// matched items are copied out first so the memoized document is never
// mutated.
func (e *Engine) queryIndex(idx *snapshot.SlimIndex, date string, p Params) *Result {
	q := strings.ToLower(p.Query)
	matches := make([]snapshot.SlimItem, 0, len(idx.Items))
	for _, it := range idx.Items {
		if q == "" || strings.Contains(strings.ToLower(it.Name), q) || strings.Contains(strings.ToLower(it.ID), q) {
			matches = append(matches, it)
		}
	}

	sortSlim(matches, p.Sort)

	selected := paginate(matches, p.Page, p.PageSize)
	items := make([]snapshot.ListItem, 0, len(selected))
	for _, it := range selected {
		items = append(items, slimToListItem(it))
	}

	return &Result{
		SnapshotDate: date,
		Query:        p.Query,
		Sort:         p.Sort,
		Page:         p.Page,
		PageSize:     p.PageSize,
		Total:        len(matches),
		Items:        items,
	}
}

// candidate pairs a lookup id with its position in the paged rows.
type candidate struct {
	id    string
	entry snapshot.LookupEntry
}

// queryLookup is the fallback path over the compact layout's lookup
// document. Matching is by compound id only; the name sort orders ids
// lexicographically and every other sort falls back to (page, index)
// position order.
func (e *Engine) queryLookup(ctx context.Context, date string, p Params) (*Result, error) {
	lookup, found, err := cache.LoadJSON[snapshot.Lookup](ctx, e.tier, nil, e.layout.LookupKey(date))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.NewWithContext(errors.ErrCodeUnavailable,
			"no search index is available for the snapshot",
			map[string]any{"snapshot_date": date})
	}

	q := strings.ToLower(p.Query)
	matches := make([]candidate, 0, len(lookup.Entries))
	for id, entry := range lookup.Entries {
		if q == "" || strings.Contains(strings.ToLower(id), q) {
			matches = append(matches, candidate{id: id, entry: entry})
		}
	}

	if p.Sort == SortName {
		slices.SortFunc(matches, func(a, b candidate) int {
			return cmp.Compare(a.id, b.id)
		})
	} else {
		slices.SortFunc(matches, func(a, b candidate) int {
			if c := cmp.Compare(a.entry.Page, b.entry.Page); c != 0 {
				return c
			}
			if c := cmp.Compare(a.entry.Index, b.entry.Index); c != 0 {
				return c
			}
			return cmp.Compare(a.id, b.id)
		})
	}

	total := len(matches)
	selected := paginate(matches, p.Page, p.PageSize)
	items, err := e.resolveRows(ctx, date, selected)
	if err != nil {
		return nil, err
	}

	return &Result{
		SnapshotDate: date,
		Query:        p.Query,
		Sort:         p.Sort,
		Page:         p.Page,
		PageSize:     p.PageSize,
		Total:        total,
		Items:        items,
	}, nil
}

// resolveRows fetches the rows for the selected candidates, reading
// each distinct page exactly once and in parallel. Candidates whose
// page or row turns out to be missing are skipped, not failed: the
// lookup may be ahead of a partially published snapshot.
func (e *Engine) resolveRows(ctx context.Context, date string, selected []candidate) ([]snapshot.ListItem, error) {
	pages := make([]int, 0, len(selected))
	seen := make(map[int]bool, len(selected))
	for _, c := range selected {
		if !seen[c.entry.Page] {
			seen[c.entry.Page] = true
			pages = append(pages, c.entry.Page)
		}
	}

	var mu sync.Mutex
	rowsByPage := make(map[int][]snapshot.RawRow, len(pages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pageFetchConcurrency)
	for _, page := range pages {
		g.Go(func() error {
			rows, found, err := cache.LoadJSON[[]snapshot.RawRow](gctx, e.tier, nil,
				e.layout.LegacyPageKey(date, page))
			if err != nil {
				return err
			}
			if !found {
				return nil
			}
			mu.Lock()
			rowsByPage[page] = *rows
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]snapshot.ListItem, 0, len(selected))
	for _, c := range selected {
		rows, ok := rowsByPage[c.entry.Page]
		if !ok || c.entry.Index < 0 || c.entry.Index >= len(rows) {
			e.log.Warn("lookup candidate has no row", "id", c.id, "page", c.entry.Page, "index", c.entry.Index)
			continue
		}
		row := rows[c.entry.Index]
		owner, repo := snapshot.SplitSource(row.Source)
		items = append(items, snapshot.ListItem{
			ID:            snapshot.CompoundID(owner, repo, row.SkillID),
			SkillID:       row.SkillID,
			Owner:         owner,
			Repo:          repo,
			Name:          row.Name,
			CanonicalURL:  snapshot.CanonicalURL(owner, repo, row.SkillID),
			TotalInstalls: row.Installs,
		})
	}
	return items, nil
}

// sortSlim orders items in place: numeric sorts descending with nil
// counters as 0, the name sort ascending case-insensitively. Stable so
// equal keys keep their index order.
func sortSlim(items []snapshot.SlimItem, sort string) {
	switch sort {
	case SortName:
		slices.SortStableFunc(items, func(a, b snapshot.SlimItem) int {
			return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	case SortWeekly:
		slices.SortStableFunc(items, func(a, b snapshot.SlimItem) int {
			return cmp.Compare(orZero(b.WeeklyInstalls), orZero(a.WeeklyInstalls))
		})
	default:
		slices.SortStableFunc(items, func(a, b snapshot.SlimItem) int {
			return cmp.Compare(orZero(b.TotalInstalls), orZero(a.TotalInstalls))
		})
	}
}

func orZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

// paginate slices out the 1-based page of size entries.
func paginate[T any](items []T, page, size int) []T {
	start := (page - 1) * size
	if start >= len(items) {
		return nil
	}
	return items[start:min(start+size, len(items))]
}

func slimToListItem(s snapshot.SlimItem) snapshot.ListItem {
	return snapshot.ListItem{
		ID:             s.ID,
		SkillID:        s.SkillID,
		Owner:          s.Owner,
		Repo:           s.Repo,
		Name:           s.Name,
		CanonicalURL:   s.CanonicalURL,
		TotalInstalls:  s.TotalInstalls,
		WeeklyInstalls: s.WeeklyInstalls,
		RankAtFetch:    s.RankAtFetch,
	}
}
