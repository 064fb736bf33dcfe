package fallback

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyattowalsh/skillsight/pkg/cache"
	"github.com/wyattowalsh/skillsight/pkg/errors"
	"github.com/wyattowalsh/skillsight/pkg/snapshot"
	"github.com/wyattowalsh/skillsight/pkg/storage"
)

const testDate = "2026-08-21"

func newTestSynthesizer(store *storage.Memory) *Synthesizer {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	tier := cache.NewTier(store, cache.NewMemory(), time.Minute, log)
	return NewSynthesizer(tier, snapshot.NewLayout("data/v1", "snapshots"), log)
}

// seedCompactLayout publishes a two-page compact snapshot: manifest,
// lookup, and raw rows.
func seedCompactLayout(store *storage.Memory) {
	store.Put("snapshots/"+testDate+"/skills_manifest.json",
		[]byte(`{"snapshot_date":"`+testDate+`","page_size":2,"total_skills":3}`))
	store.Put("snapshots/"+testDate+"/skill_lookup.json", []byte(`{
		"snapshot_date": "`+testDate+`",
		"total_entries": 3,
		"entries": {
			"anthropics/skills/pdf":    {"page": 1, "index": 0},
			"anthropics/skills/xlsx":   {"page": 1, "index": 1},
			"wyatt/toolkit/formatter":  {"page": 2, "index": 0}
		}
	}`))
	store.Put("snapshots/"+testDate+"/skills_pages/page-0001.json", []byte(`[
		{"source": "anthropics/skills", "skill_id": "pdf",  "name": "PDF Tools",  "installs": 9000},
		{"source": "anthropics/skills", "skill_id": "xlsx", "name": "Excel",      "installs": 7500}
	]`))
	store.Put("snapshots/"+testDate+"/skills_pages/page-0002.json", []byte(`[
		{"source": "wyatt/toolkit", "skill_id": "formatter", "name": "Formatter", "installs": null}
	]`))
}

func TestSummaryPrefersDedicatedArtifact(t *testing.T) {
	store := storage.NewMemory()
	seedCompactLayout(store)
	store.Put("snapshots/"+testDate+"/stats_summary.json",
		[]byte(`{"total_skills":3,"total_repos":2,"snapshot_date":"`+testDate+`"}`))
	s := newTestSynthesizer(store)

	sum, found, err := s.Summary(t.Context(), testDate)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 3, sum.TotalSkills)
	assert.Equal(t, 2, sum.TotalRepos)
	assert.Equal(t, testDate, sum.SnapshotDate)
}

func TestSummaryFromManifest(t *testing.T) {
	store := storage.NewMemory()
	seedCompactLayout(store)
	s := newTestSynthesizer(store)

	sum, found, err := s.Summary(t.Context(), testDate)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 3, sum.TotalSkills)
	// Repos are not recoverable from the compact layout.
	assert.Zero(t, sum.TotalRepos)
	assert.Equal(t, testDate, sum.SnapshotDate)
}

func TestSummaryAbsent(t *testing.T) {
	s := newTestSynthesizer(storage.NewMemory())

	sum, found, err := s.Summary(t.Context(), testDate)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, sum)
}

func TestLeaderboardPageFirst(t *testing.T) {
	store := storage.NewMemory()
	seedCompactLayout(store)
	s := newTestSynthesizer(store)

	page, found, err := s.LeaderboardPage(t.Context(), testDate, "installs", 1)
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, testDate, page.SnapshotDate)
	assert.Equal(t, "installs", page.Sort)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 2, page.PageSize)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Items, 2)

	first := page.Items[0]
	assert.Equal(t, "anthropics/skills/pdf", first.ID)
	assert.Equal(t, "anthropics", first.Owner)
	assert.Equal(t, "skills", first.Repo)
	assert.Equal(t, "PDF Tools", first.Name)
	assert.Equal(t, "https://skills.sh/anthropics/skills/pdf", first.CanonicalURL)
	require.NotNil(t, first.TotalInstalls)
	assert.Equal(t, int64(9000), *first.TotalInstalls)
	require.NotNil(t, first.RankAtFetch)
	assert.Equal(t, 1, *first.RankAtFetch)

	// Fields the compact layout cannot provide are null.
	assert.Nil(t, first.WeeklyInstalls)
	assert.Nil(t, first.Description)
	assert.Nil(t, first.PlatformInstalls)

	require.NotNil(t, page.Items[1].RankAtFetch)
	assert.Equal(t, 2, *page.Items[1].RankAtFetch)
}

func TestLeaderboardPageRanksContinueAcrossPages(t *testing.T) {
	store := storage.NewMemory()
	seedCompactLayout(store)
	s := newTestSynthesizer(store)

	page, found, err := s.LeaderboardPage(t.Context(), testDate, "installs", 2)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, page.Items, 1)
	require.NotNil(t, page.Items[0].RankAtFetch)
	assert.Equal(t, 3, *page.Items[0].RankAtFetch)
	assert.Nil(t, page.Items[0].TotalInstalls)
}

func TestGlobalRankFormula(t *testing.T) {
	for p := 1; p <= 3; p++ {
		for i := 0; i < 12; i++ {
			assert.Equal(t, (p-1)*12+i+1, globalRank(p, 12, i), "page %d index %d", p, i)
		}
	}
}

func TestLeaderboardPageOnlyInstallsSort(t *testing.T) {
	store := storage.NewMemory()
	seedCompactLayout(store)
	s := newTestSynthesizer(store)

	for _, sort := range []string{"weekly", "name"} {
		_, found, err := s.LeaderboardPage(t.Context(), testDate, sort, 1)
		require.NoError(t, err)
		assert.False(t, found, "sort %s must have no synthesis path", sort)
	}
}

func TestLeaderboardPageMissingPieces(t *testing.T) {
	t.Run("no manifest", func(t *testing.T) {
		store := storage.NewMemory()
		store.Put("snapshots/"+testDate+"/skills_pages/page-0001.json", []byte(`[]`))
		s := newTestSynthesizer(store)

		_, found, err := s.LeaderboardPage(t.Context(), testDate, "installs", 1)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("no page", func(t *testing.T) {
		store := storage.NewMemory()
		seedCompactLayout(store)
		s := newTestSynthesizer(store)

		_, found, err := s.LeaderboardPage(t.Context(), testDate, "installs", 9)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("zero page size", func(t *testing.T) {
		store := storage.NewMemory()
		store.Put("snapshots/"+testDate+"/skills_manifest.json",
			[]byte(`{"snapshot_date":"`+testDate+`","page_size":0,"total_skills":3}`))
		s := newTestSynthesizer(store)

		_, found, err := s.LeaderboardPage(t.Context(), testDate, "installs", 1)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("page zero", func(t *testing.T) {
		store := storage.NewMemory()
		seedCompactLayout(store)
		s := newTestSynthesizer(store)

		_, found, err := s.LeaderboardPage(t.Context(), testDate, "installs", 0)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestDetailSynthesis(t *testing.T) {
	store := storage.NewMemory()
	seedCompactLayout(store)
	s := newTestSynthesizer(store)

	d, found, err := s.Detail(t.Context(), testDate, "anthropics", "skills", "pdf")
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, "anthropics/skills/pdf", d.ID)
	assert.Equal(t, "pdf", d.SkillID)
	assert.Equal(t, "anthropics", d.Owner)
	assert.Equal(t, "skills", d.Repo)
	assert.Equal(t, "PDF Tools", d.Name)
	assert.Equal(t, "https://skills.sh/anthropics/skills/pdf", d.CanonicalURL)
	require.NotNil(t, d.GitHubURL)
	assert.Equal(t, "https://github.com/anthropics/skills", *d.GitHubURL)
	require.NotNil(t, d.TotalInstalls)
	assert.Equal(t, int64(9000), *d.TotalInstalls)

	assert.Equal(t, "snapshot-"+testDate, d.RunID)
	assert.Equal(t, testDate+"T00:00:00Z", d.FetchedAt)
	assert.Equal(t, "synthesized", d.ParserVersion)
	assert.Equal(t, "snapshot", d.DiscoverySource)
	assert.Equal(t, "snapshot", d.SourceEndpoint)
	assert.Equal(t, 1, d.DiscoveryPass)
	assert.NotNil(t, d.Categories)
	assert.Empty(t, d.Categories)

	assert.Nil(t, d.WeeklyInstalls)
	assert.Nil(t, d.Description)
	assert.Nil(t, d.PlatformInstalls)
	assert.Nil(t, d.SkillMdContent)
	assert.Nil(t, d.OgImageURL)
}

func TestDetailChainShortCircuits(t *testing.T) {
	tests := []struct {
		name string
		seed func(store *storage.Memory)
	}{
		{name: "no lookup document", seed: func(store *storage.Memory) {}},
		{
			name: "id not in lookup",
			seed: seedCompactLayout,
		},
		{
			name: "page object missing",
			seed: func(store *storage.Memory) {
				seedCompactLayout(store)
				store.Remove("snapshots/" + testDate + "/skills_pages/page-0001.json")
			},
		},
		{
			name: "index out of bounds",
			seed: func(store *storage.Memory) {
				seedCompactLayout(store)
				store.Put("snapshots/"+testDate+"/skills_pages/page-0001.json", []byte(`[]`))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemory()
			tt.seed(store)
			s := newTestSynthesizer(store)

			id := []string{"anthropics", "skills", "pdf"}
			if tt.name == "id not in lookup" {
				id = []string{"nobody", "nothing", "nope"}
			}
			d, found, err := s.Detail(t.Context(), testDate, id[0], id[1], id[2])
			require.NoError(t, err)
			assert.False(t, found)
			assert.Nil(t, d)
		})
	}
}

func TestDetailRoundTrip(t *testing.T) {
	store := storage.NewMemory()
	seedCompactLayout(store)
	s := newTestSynthesizer(store)

	for _, id := range []struct{ owner, repo, skill string }{
		{"anthropics", "skills", "pdf"},
		{"anthropics", "skills", "xlsx"},
		{"wyatt", "toolkit", "formatter"},
	} {
		d, found, err := s.Detail(t.Context(), testDate, id.owner, id.repo, id.skill)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, fmt.Sprintf("%s/%s/%s", id.owner, id.repo, id.skill), d.ID)
		assert.Equal(t, fmt.Sprintf("https://skills.sh/%s/%s/%s", id.owner, id.repo, id.skill), d.CanonicalURL)
		require.NotNil(t, d.GitHubURL)
		assert.Equal(t, fmt.Sprintf("https://github.com/%s/%s", id.owner, id.repo), *d.GitHubURL)
	}
}

func TestMetricsSynthesis(t *testing.T) {
	store := storage.NewMemory()
	seedCompactLayout(store)
	s := newTestSynthesizer(store)

	m, found, err := s.Metrics(t.Context(), testDate, "anthropics", "skills", "xlsx")
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, "anthropics/skills/xlsx", m.ID)
	require.Len(t, m.Items, 1)
	pt := m.Items[0]
	assert.Equal(t, "anthropics/skills/xlsx", pt.ID)
	assert.Equal(t, testDate, pt.SnapshotDate)
	require.NotNil(t, pt.TotalInstalls)
	assert.Equal(t, int64(7500), *pt.TotalInstalls)
	assert.Nil(t, pt.WeeklyInstalls)
	assert.Nil(t, pt.PlatformInstalls)
}

func TestMetricsAbsent(t *testing.T) {
	store := storage.NewMemory()
	seedCompactLayout(store)
	s := newTestSynthesizer(store)

	m, found, err := s.Metrics(t.Context(), testDate, "nobody", "nothing", "nope")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, m)
}

func TestMalformedLookupIsAnError(t *testing.T) {
	store := storage.NewMemory()
	store.Put("snapshots/"+testDate+"/skill_lookup.json", []byte(`{broken`))
	s := newTestSynthesizer(store)

	_, _, err := s.Detail(t.Context(), testDate, "anthropics", "skills", "pdf")
	require.Error(t, err)

	var serr *errors.StructuredError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, errors.ErrCodeMalformedUpstream, serr.Code)
}
