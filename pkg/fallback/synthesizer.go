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

// Package fallback reconstructs legacy-shaped responses from the
// compact snapshot layout when a pre-rendered artifact is absent.
//
// Every synthesis operation returns (value, found, error). Absence of
// any step in a chain — no lookup document, no lookup entry, no page,
// index out of bounds — yields found=false with a nil error, so one
// failed synthesis never aborts an alternate path the caller may still
// try. Errors are reserved for storage failures and malformed
// documents.
package fallback

import (
	"context"
	"log/slog"

	"github.com/wyattowalsh/skillsight/pkg/cache"
	"github.com/wyattowalsh/skillsight/pkg/snapshot"
)

const (
	// syntheticParserVersion tags records rebuilt from raw rows so
	// consumers can tell them from pipeline-extracted ones.
	syntheticParserVersion = "synthesized"
	syntheticSource        = "snapshot"
)

// Synthesizer rebuilds legacy-shaped documents from the compact
// layout's lookup, paged rows, and per-snapshot manifest.
type Synthesizer struct {
	tier   *cache.Tier
	layout snapshot.Layout
	log    *slog.Logger
}

// NewSynthesizer creates a Synthesizer reading through tier.
func NewSynthesizer(tier *cache.Tier, layout snapshot.Layout, log *slog.Logger) *Synthesizer {
	return &Synthesizer{tier: tier, layout: layout, log: log}
}

// Summary produces the stats summary for date: the compact layout's
// own summary document when present, else a partial one derived from
// the per-snapshot manifest. Total repos is not derivable from the
// compact layout and defaults to 0.
func (s *Synthesizer) Summary(ctx context.Context, date string) (*snapshot.SummaryStats, bool, error) {
	sum, found, err := cache.LoadJSON[snapshot.SummaryStats](ctx, s.tier, nil, s.layout.LegacySummaryKey(date))
	if err != nil {
		synthesisTotal.WithLabelValues(kindSummary, outcomeError).Inc()
		return nil, false, err
	}
	if found {
		synthesisTotal.WithLabelValues(kindSummary, outcomeSynthesized).Inc()
		return sum, true, nil
	}

	lm, found, err := cache.LoadJSON[snapshot.LegacyManifest](ctx, s.tier, nil, s.layout.LegacyManifestKey(date))
	if err != nil {
		synthesisTotal.WithLabelValues(kindSummary, outcomeError).Inc()
		return nil, false, err
	}
	if !found {
		synthesisTotal.WithLabelValues(kindSummary, outcomeAbsent).Inc()
		return nil, false, nil
	}

	synthesisTotal.WithLabelValues(kindSummary, outcomeSynthesized).Inc()
	return &snapshot.SummaryStats{
		TotalSkills:  lm.TotalSkills,
		TotalRepos:   0,
		SnapshotDate: date,
	}, true, nil
}

// LeaderboardPage rebuilds one leaderboard page from the compact
// layout's raw rows. Only the installs sort has a synthesis path: the
// compact pages are ordered by installs, and no other ordering can be
// recovered from a single page.
func (s *Synthesizer) LeaderboardPage(ctx context.Context, date, sort string, page int) (*snapshot.LeaderboardPage, bool, error) {
	if sort != "installs" || page < 1 {
		synthesisTotal.WithLabelValues(kindLeaderboard, outcomeAbsent).Inc()
		return nil, false, nil
	}

	lm, found, err := cache.LoadJSON[snapshot.LegacyManifest](ctx, s.tier, nil, s.layout.LegacyManifestKey(date))
	if err != nil {
		synthesisTotal.WithLabelValues(kindLeaderboard, outcomeError).Inc()
		return nil, false, err
	}
	if !found || lm.PageSize <= 0 {
		synthesisTotal.WithLabelValues(kindLeaderboard, outcomeAbsent).Inc()
		return nil, false, nil
	}

	rows, found, err := s.page(ctx, date, page)
	if err != nil {
		synthesisTotal.WithLabelValues(kindLeaderboard, outcomeError).Inc()
		return nil, false, err
	}
	if !found {
		synthesisTotal.WithLabelValues(kindLeaderboard, outcomeAbsent).Inc()
		return nil, false, nil
	}

	items := make([]snapshot.ListItem, 0, len(rows))
	for i, row := range rows {
		rank := globalRank(page, lm.PageSize, i)
		items = append(items, rowToListItem(row, rank))
	}

	synthesisTotal.WithLabelValues(kindLeaderboard, outcomeSynthesized).Inc()
	return &snapshot.LeaderboardPage{
		SnapshotDate: date,
		Sort:         sort,
		Page:         page,
		PageSize:     lm.PageSize,
		Total:        lm.TotalSkills,
		Items:        items,
	}, true, nil
}

// Detail rebuilds a full skill record for owner/repo/skillID from its
// raw row. Derived fields are deterministic functions of the identity
// and snapshot date; fields the compact layout does not carry stay
// null.
func (s *Synthesizer) Detail(ctx context.Context, date, owner, repo, skillID string) (*snapshot.SkillDetail, bool, error) {
	row, found, err := s.rowFor(ctx, date, snapshot.CompoundID(owner, repo, skillID))
	if err != nil {
		synthesisTotal.WithLabelValues(kindDetail, outcomeError).Inc()
		return nil, false, err
	}
	if !found {
		synthesisTotal.WithLabelValues(kindDetail, outcomeAbsent).Inc()
		return nil, false, nil
	}

	synthesisTotal.WithLabelValues(kindDetail, outcomeSynthesized).Inc()
	canonical := snapshot.CanonicalURL(owner, repo, skillID)
	github := snapshot.GitHubURL(owner, repo)
	return &snapshot.SkillDetail{
		ID:              snapshot.CompoundID(owner, repo, skillID),
		SkillID:         skillID,
		Owner:           owner,
		Repo:            repo,
		CanonicalURL:    canonical,
		TotalInstalls:   row.Installs,
		Name:            row.Name,
		GitHubURL:       &github,
		Categories:      []string{},
		RunID:           "snapshot-" + date,
		FetchedAt:       midnightUTC(date),
		DiscoverySource: syntheticSource,
		SourceEndpoint:  syntheticSource,
		DiscoveryPass:   1,
		ParserVersion:   syntheticParserVersion,
	}, true, nil
}

// Metrics rebuilds a one-point metrics series for owner/repo/skillID.
// Only total installs survives the compact layout.
func (s *Synthesizer) Metrics(ctx context.Context, date, owner, repo, skillID string) (*snapshot.MetricsSeries, bool, error) {
	id := snapshot.CompoundID(owner, repo, skillID)
	row, found, err := s.rowFor(ctx, date, id)
	if err != nil {
		synthesisTotal.WithLabelValues(kindMetrics, outcomeError).Inc()
		return nil, false, err
	}
	if !found {
		synthesisTotal.WithLabelValues(kindMetrics, outcomeAbsent).Inc()
		return nil, false, nil
	}

	synthesisTotal.WithLabelValues(kindMetrics, outcomeSynthesized).Inc()
	return &snapshot.MetricsSeries{
		ID: id,
		Items: []snapshot.MetricsPoint{{
			ID:            id,
			SnapshotDate:  date,
			TotalInstalls: row.Installs,
		}},
	}, true, nil
}

// rowFor resolves a compound id to its raw row through the lookup
// document: lookup → (page, index) → page rows → row. Each step's
// absence short-circuits to not found.
func (s *Synthesizer) rowFor(ctx context.Context, date, id string) (*snapshot.RawRow, bool, error) {
	lookup, found, err := cache.LoadJSON[snapshot.Lookup](ctx, s.tier, nil, s.layout.LookupKey(date))
	if err != nil || !found {
		return nil, false, err
	}

	entry, ok := lookup.Entries[id]
	if !ok {
		return nil, false, nil
	}

	rows, found, err := s.page(ctx, date, entry.Page)
	if err != nil || !found {
		return nil, false, err
	}
	if entry.Index < 0 || entry.Index >= len(rows) {
		s.log.Warn("lookup entry index out of bounds",
			"id", id, "page", entry.Page, "index", entry.Index, "rows", len(rows))
		return nil, false, nil
	}

	row := rows[entry.Index]
	return &row, true, nil
}

// page loads one page of raw rows. Pages are stored as bare JSON
// arrays.
func (s *Synthesizer) page(ctx context.Context, date string, page int) ([]snapshot.RawRow, bool, error) {
	rows, found, err := cache.LoadJSON[[]snapshot.RawRow](ctx, s.tier, nil, s.layout.LegacyPageKey(date, page))
	if err != nil || !found {
		return nil, false, err
	}
	return *rows, true, nil
}

// globalRank is the 1-based rank of local index i on 1-based page p.
func globalRank(page, pageSize, i int) int {
	return (page-1)*pageSize + i + 1
}

// rowToListItem projects a raw row into the public list-item shape.
// Weekly installs, description, and platform installs do not exist in
// the compact layout and stay null.
func rowToListItem(row snapshot.RawRow, rank int) snapshot.ListItem {
	owner, repo := snapshot.SplitSource(row.Source)
	return snapshot.ListItem{
		ID:            snapshot.CompoundID(owner, repo, row.SkillID),
		SkillID:       row.SkillID,
		Owner:         owner,
		Repo:          repo,
		Name:          row.Name,
		CanonicalURL:  snapshot.CanonicalURL(owner, repo, row.SkillID),
		TotalInstalls: row.Installs,
		RankAtFetch:   &rank,
	}
}

// midnightUTC renders the start of a snapshot date as an RFC 3339
// instant.
func midnightUTC(date string) string {
	return date + "T00:00:00Z"
}
