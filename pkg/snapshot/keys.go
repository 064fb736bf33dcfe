package snapshot

import (
	"fmt"
	"strings"
)

// Layout builds object keys for both bucket layouts: the canonical web
// layout under the web prefix and the compact legacy layout under the
// legacy prefix.
type Layout struct {
	webPrefix    string
	legacyPrefix string
}

// NewLayout creates a Layout. Prefixes are stored without surrounding
// slashes; "data/v1" and "/data/v1/" are equivalent.
func NewLayout(webPrefix, legacyPrefix string) Layout {
	return Layout{
		webPrefix:    strings.Trim(webPrefix, "/"),
		legacyPrefix: strings.Trim(legacyPrefix, "/"),
	}
}

// WebPrefix returns the canonical layout prefix without slashes.
func (l Layout) WebPrefix() string {
	return l.webPrefix
}

// PageFile returns the zero-padded page object name for a 1-based page.
func PageFile(page int) string {
	return fmt.Sprintf("page-%04d.json", page)
}

// ManifestKey is the canonical latest-snapshot manifest.
func (l Layout) ManifestKey() string {
	return l.webPrefix + "/latest.json"
}

// LegacyPointerKey is the legacy latest-snapshot pointer.
func (l Layout) LegacyPointerKey() string {
	return l.legacyPrefix + "/latest.json"
}

func (l Layout) snapshotRoot(date string) string {
	return l.webPrefix + "/snapshots/" + date
}

// SummaryKey is the pre-rendered stats summary for a snapshot.
func (l Layout) SummaryKey(date string) string {
	return l.snapshotRoot(date) + "/stats/summary.json"
}

// SlimIndexKey is the slim search index for a snapshot.
func (l Layout) SlimIndexKey(date string) string {
	return l.snapshotRoot(date) + "/search/slim-index.json"
}

// LeaderboardPageKey is a pre-rendered leaderboard page for one sort
// mode. Pages are 1-based.
func (l Layout) LeaderboardPageKey(date, sort string, page int) string {
	return l.snapshotRoot(date) + "/leaderboard/" + sort + "/" + PageFile(page)
}

// SkillDetailKey is the pre-rendered detail record for one skill.
func (l Layout) SkillDetailKey(date, owner, repo, skillID string) string {
	return l.snapshotRoot(date) + "/skills/by-id/" + owner + "/" + repo + "/" + skillID + ".json"
}

// MetricsKey is the pre-rendered metrics series for one skill.
func (l Layout) MetricsKey(date, owner, repo, skillID string) string {
	return l.snapshotRoot(date) + "/metrics/by-id/" + owner + "/" + repo + "/" + skillID + ".json"
}

// LegacyManifestKey is the compact layout's per-snapshot manifest.
func (l Layout) LegacyManifestKey(date string) string {
	return l.legacyPrefix + "/" + date + "/skills_manifest.json"
}

// LegacySummaryKey is the compact layout's stats summary.
func (l Layout) LegacySummaryKey(date string) string {
	return l.legacyPrefix + "/" + date + "/stats_summary.json"
}

// LookupKey is the compact layout's id-to-position lookup document.
func (l Layout) LookupKey(date string) string {
	return l.legacyPrefix + "/" + date + "/skill_lookup.json"
}

// LegacyPageKey is one page of the compact layout's raw rows.
func (l Layout) LegacyPageKey(date string, page int) string {
	return l.legacyPrefix + "/" + date + "/skills_pages/" + PageFile(page)
}
