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

// Package snapshot defines the artifact documents published by the
// snapshot pipeline, the object key layout they live under, and the
// resolver that locates the current snapshot.
//
// Snapshots are immutable and identified by a calendar date. Two
// layouts coexist in the bucket: the canonical layout under the web
// prefix (pre-rendered responses plus a slim search index) and the
// legacy compact layout (paged raw rows plus a lookup document) that
// older pipeline runs published and the fallback synthesizer consumes.
package snapshot

// Manifest is the authoritative pointer to the active snapshot,
// published at <web-prefix>/latest.json. Only SnapshotDate is
// guaranteed; the remaining fields describe the snapshot when the
// pipeline rendered them and are absent on manifests reconstructed
// from the legacy pointer.
type Manifest struct {
	FormatVersion int               `json:"format_version,omitempty" yaml:"format_version,omitempty"`
	SnapshotDate  string            `json:"snapshot_date" yaml:"snapshot_date"`
	GeneratedAt   string            `json:"generated_at,omitempty" yaml:"generated_at,omitempty"`
	PageSize      *int              `json:"page_size,omitempty" yaml:"page_size,omitempty"`
	SortModes     []string          `json:"sort_modes,omitempty" yaml:"sort_modes,omitempty"`
	Counts        *Counts           `json:"counts,omitempty" yaml:"counts,omitempty"`
	Paths         map[string]string `json:"paths,omitempty" yaml:"paths,omitempty"`
	Checksums     map[string]string `json:"checksums,omitempty" yaml:"checksums,omitempty"`
}

// Counts summarizes the snapshot's dataset size.
type Counts struct {
	TotalSkills int `json:"total_skills" yaml:"total_skills"`
	TotalRepos  int `json:"total_repos" yaml:"total_repos"`
}

// LegacyPointer is the older latest-snapshot pointer published at
// <legacy-prefix>/latest.json.
type LegacyPointer struct {
	Date string `json:"date" yaml:"date"`
}

// LegacyManifest is the per-snapshot manifest of the compact layout.
type LegacyManifest struct {
	SnapshotDate string `json:"snapshot_date" yaml:"snapshot_date"`
	PageSize     int    `json:"page_size" yaml:"page_size"`
	TotalSkills  int    `json:"total_skills" yaml:"total_skills"`
}

// SummaryStats is the dataset-wide stats document.
type SummaryStats struct {
	TotalSkills  int    `json:"total_skills" yaml:"total_skills"`
	TotalRepos   int    `json:"total_repos" yaml:"total_repos"`
	SnapshotDate string `json:"snapshot_date" yaml:"snapshot_date"`
}

// PlatformInstalls is the per-platform install breakdown. Platforms are
// open-ended, so the document is kept as a map; a nil map marshals to
// null like the source records.
type PlatformInstalls map[string]*int64

// SlimIndex is the compact per-snapshot search index: one lightweight
// record per skill, loaded whole and filtered in memory.
type SlimIndex struct {
	SnapshotDate string     `json:"snapshot_date" yaml:"snapshot_date"`
	Items        []SlimItem `json:"items" yaml:"items"`
}

// SlimItem is a single slim-index record. Install counters are nil
// when the pipeline could not resolve them; consumers treat nil as 0
// for ordering.
type SlimItem struct {
	ID             string `json:"id" yaml:"id"`
	SkillID        string `json:"skill_id" yaml:"skill_id"`
	Owner          string `json:"owner" yaml:"owner"`
	Repo           string `json:"repo" yaml:"repo"`
	Name           string `json:"name" yaml:"name"`
	CanonicalURL   string `json:"canonical_url" yaml:"canonical_url"`
	TotalInstalls  *int64 `json:"total_installs" yaml:"total_installs"`
	WeeklyInstalls *int64 `json:"weekly_installs" yaml:"weekly_installs"`
	RankAtFetch    *int   `json:"rank_at_fetch" yaml:"rank_at_fetch"`
}

// ListItem is the public list/search row shape. Description and
// platform installs exist only in pre-rendered artifacts; rows
// synthesized from the compact layout carry them as null.
type ListItem struct {
	ID               string           `json:"id" yaml:"id"`
	SkillID          string           `json:"skill_id" yaml:"skill_id"`
	Owner            string           `json:"owner" yaml:"owner"`
	Repo             string           `json:"repo" yaml:"repo"`
	Name             string           `json:"name" yaml:"name"`
	CanonicalURL     string           `json:"canonical_url" yaml:"canonical_url"`
	TotalInstalls    *int64           `json:"total_installs" yaml:"total_installs"`
	WeeklyInstalls   *int64           `json:"weekly_installs" yaml:"weekly_installs"`
	RankAtFetch      *int             `json:"rank_at_fetch" yaml:"rank_at_fetch"`
	Description      *string          `json:"description" yaml:"description"`
	PlatformInstalls PlatformInstalls `json:"platform_installs" yaml:"platform_installs"`
}

// LeaderboardPage is a pre-rendered page of ranked list items.
type LeaderboardPage struct {
	SnapshotDate string     `json:"snapshot_date" yaml:"snapshot_date"`
	Sort         string     `json:"sort" yaml:"sort"`
	Page         int        `json:"page" yaml:"page"`
	PageSize     int        `json:"page_size" yaml:"page_size"`
	Total        int        `json:"total" yaml:"total"`
	Items        []ListItem `json:"items" yaml:"items"`
}

// SkillDetail is the full per-skill record served by the detail
// endpoint, field-for-field the pipeline's snapshot record. Synthesized
// records populate the derived fields and null the rest; see the
// fallback package for the exact defaults.
type SkillDetail struct {
	ID                 string           `json:"id" yaml:"id"`
	SkillID            string           `json:"skill_id" yaml:"skill_id"`
	Owner              string           `json:"owner" yaml:"owner"`
	Repo               string           `json:"repo" yaml:"repo"`
	CanonicalURL       string           `json:"canonical_url" yaml:"canonical_url"`
	TotalInstalls      *int64           `json:"total_installs" yaml:"total_installs"`
	WeeklyInstalls     *int64           `json:"weekly_installs" yaml:"weekly_installs"`
	WeeklyInstallsRaw  *string          `json:"weekly_installs_raw" yaml:"weekly_installs_raw"`
	PlatformInstalls   PlatformInstalls `json:"platform_installs" yaml:"platform_installs"`
	Name               string           `json:"name" yaml:"name"`
	Description        *string          `json:"description" yaml:"description"`
	FirstSeenDate      *string          `json:"first_seen_date" yaml:"first_seen_date"`
	GitHubURL          *string          `json:"github_url" yaml:"github_url"`
	OgImageURL         *string          `json:"og_image_url" yaml:"og_image_url"`
	SkillMdContent     *string          `json:"skill_md_content" yaml:"skill_md_content"`
	SkillMdFrontmatter map[string]any   `json:"skill_md_frontmatter" yaml:"skill_md_frontmatter"`
	InstallCommand     *string          `json:"install_command" yaml:"install_command"`
	Categories         []string         `json:"categories" yaml:"categories"`
	RunID              string           `json:"run_id" yaml:"run_id"`
	FetchedAt          string           `json:"fetched_at" yaml:"fetched_at"`
	DiscoverySource    string           `json:"discovery_source" yaml:"discovery_source"`
	SourceEndpoint     string           `json:"source_endpoint" yaml:"source_endpoint"`
	DiscoveryPass      int              `json:"discovery_pass" yaml:"discovery_pass"`
	RankAtFetch        *int             `json:"rank_at_fetch" yaml:"rank_at_fetch"`
	HTTPStatus         *int             `json:"http_status" yaml:"http_status"`
	ParserVersion      string           `json:"parser_version" yaml:"parser_version"`
	RawHTMLHash        *string          `json:"raw_html_hash" yaml:"raw_html_hash"`
}

// MetricsSeries is the install-history document for one skill.
type MetricsSeries struct {
	ID    string         `json:"id" yaml:"id"`
	Items []MetricsPoint `json:"items" yaml:"items"`
}

// MetricsPoint is a single dated observation in a metrics series.
type MetricsPoint struct {
	ID               string           `json:"id" yaml:"id"`
	SnapshotDate     string           `json:"snapshot_date" yaml:"snapshot_date"`
	TotalInstalls    *int64           `json:"total_installs" yaml:"total_installs"`
	WeeklyInstalls   *int64           `json:"weekly_installs" yaml:"weekly_installs"`
	PlatformInstalls PlatformInstalls `json:"platform_installs" yaml:"platform_installs"`
}

// Lookup maps compound ids to their (page, index) position in the
// compact layout's paged rows. Pages are 1-based.
type Lookup struct {
	SnapshotDate string                 `json:"snapshot_date" yaml:"snapshot_date"`
	TotalEntries int                    `json:"total_entries" yaml:"total_entries"`
	Entries      map[string]LookupEntry `json:"entries" yaml:"entries"`
}

// LookupEntry is one position in the paged rows.
type LookupEntry struct {
	Page  int `json:"page" yaml:"page"`
	Index int `json:"index" yaml:"index"`
}

// RawRow is one row of the compact layout's paged data. A page object
// decodes as a bare array of rows. Source is the "owner/repo" origin
// string.
type RawRow struct {
	Source   string `json:"source" yaml:"source"`
	SkillID  string `json:"skill_id" yaml:"skill_id"`
	Name     string `json:"name" yaml:"name"`
	Installs *int64 `json:"installs" yaml:"installs"`
}
