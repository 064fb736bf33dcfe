package snapshot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "2026-08-22", wantErr: false},
		{name: "leap day", input: "2024-02-29", wantErr: false},
		{name: "non leap feb 29", input: "2026-02-29", wantErr: true},
		{name: "day out of range", input: "2026-04-31", wantErr: true},
		{name: "month out of range", input: "2026-13-01", wantErr: true},
		{name: "unpadded month", input: "2026-8-22", wantErr: true},
		{name: "unpadded day", input: "2026-08-2", wantErr: true},
		{name: "slashes", input: "2026/08/22", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "trailing garbage", input: "2026-08-22T00:00:00", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.False(t, ValidDate(tt.input))
				return
			}
			require.NoError(t, err)
			assert.True(t, ValidDate(tt.input))
			assert.Equal(t, tt.input, d.Format(DateFormat))
		})
	}
}

func TestCompoundID(t *testing.T) {
	assert.Equal(t, "anthropics/skills/pdf", CompoundID("anthropics", "skills", "pdf"))
}

func TestSplitSource(t *testing.T) {
	owner, repo := SplitSource("anthropics/skills")
	assert.Equal(t, "anthropics", owner)
	assert.Equal(t, "skills", repo)

	// Only the first slash splits; the rest stays in repo.
	owner, repo = SplitSource("a/b/c")
	assert.Equal(t, "a", owner)
	assert.Equal(t, "b/c", repo)

	owner, repo = SplitSource("solo")
	assert.Equal(t, "solo", owner)
	assert.Empty(t, repo)
}

func TestDerivedURLs(t *testing.T) {
	assert.Equal(t, "https://skills.sh/anthropics/skills/pdf", CanonicalURL("anthropics", "skills", "pdf"))
	assert.Equal(t, "https://github.com/anthropics/skills", GitHubURL("anthropics", "skills"))
}

func TestLayoutKeys(t *testing.T) {
	l := NewLayout("data/v1", "snapshots")

	assert.Equal(t, "data/v1/latest.json", l.ManifestKey())
	assert.Equal(t, "snapshots/latest.json", l.LegacyPointerKey())
	assert.Equal(t, "data/v1/snapshots/2026-08-22/stats/summary.json", l.SummaryKey("2026-08-22"))
	assert.Equal(t, "data/v1/snapshots/2026-08-22/search/slim-index.json", l.SlimIndexKey("2026-08-22"))
	assert.Equal(t, "data/v1/snapshots/2026-08-22/leaderboard/installs/page-0001.json",
		l.LeaderboardPageKey("2026-08-22", "installs", 1))
	assert.Equal(t, "data/v1/snapshots/2026-08-22/skills/by-id/anthropics/skills/pdf.json",
		l.SkillDetailKey("2026-08-22", "anthropics", "skills", "pdf"))
	assert.Equal(t, "data/v1/snapshots/2026-08-22/metrics/by-id/anthropics/skills/pdf.json",
		l.MetricsKey("2026-08-22", "anthropics", "skills", "pdf"))
	assert.Equal(t, "snapshots/2026-08-22/skills_manifest.json", l.LegacyManifestKey("2026-08-22"))
	assert.Equal(t, "snapshots/2026-08-22/stats_summary.json", l.LegacySummaryKey("2026-08-22"))
	assert.Equal(t, "snapshots/2026-08-22/skill_lookup.json", l.LookupKey("2026-08-22"))
	assert.Equal(t, "snapshots/2026-08-22/skills_pages/page-0042.json", l.LegacyPageKey("2026-08-22", 42))
}

func TestLayoutTrimsPrefixes(t *testing.T) {
	l := NewLayout("/data/v1/", "/snapshots/")
	assert.Equal(t, "data/v1/latest.json", l.ManifestKey())
	assert.Equal(t, "snapshots/latest.json", l.LegacyPointerKey())
	assert.Equal(t, "data/v1", l.WebPrefix())
}

func TestPageFile(t *testing.T) {
	assert.Equal(t, "page-0001.json", PageFile(1))
	assert.Equal(t, "page-0123.json", PageFile(123))
	assert.Equal(t, "page-10000.json", PageFile(10000))
}
