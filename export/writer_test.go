package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressgather/pressgather/core"
)

func readBackCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func sampleArticle(url string) core.CanonicalArticle {
	return core.CanonicalArticle{
		Title:         "Council approves budget",
		URL:           url,
		Platform:      "Talkwalker",
		Source:        "paper.example.com",
		Sentiment:     "positive",
		Language:      "en",
		Country:       "ie",
		SourceType:    "ONLINENEWS",
		PublishedDate: "2025/01/08",
		SearchKeyword: core.Sentinel,
	}
}

func TestWriteArticlesColumnOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combined.csv")
	require.NoError(t, WriteArticles(path, []core.CanonicalArticle{sampleArticle("https://a.test")}))

	rows := readBackCSV(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{
		"Title", "URL", "Platform", "Source", "Sentiment",
		"Language", "Country", "Source_Type", "Published_Date",
	}, rows[0])
	assert.Equal(t, "Council approves budget", rows[1][0])
	assert.Equal(t, "2025/01/08", rows[1][8])
}

func TestWriteArticlesKeywordColumn(t *testing.T) {
	t.Run("appended when any row has a keyword", func(t *testing.T) {
		a := sampleArticle("https://a.test")
		a.SearchKeyword = "council budget"
		b := sampleArticle("https://b.test")

		path := filepath.Join(t.TempDir(), "combined.csv")
		require.NoError(t, WriteArticles(path, []core.CanonicalArticle{a, b}))

		rows := readBackCSV(t, path)
		assert.Equal(t, "Search_Keyword", rows[0][len(rows[0])-1])
		assert.Equal(t, "council budget", rows[1][len(rows[1])-1])
		assert.Equal(t, core.Sentinel, rows[2][len(rows[2])-1])
	})

	t.Run("omitted when every row is empty or placeholder", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "combined.csv")
		require.NoError(t, WriteArticles(path, []core.CanonicalArticle{sampleArticle("https://a.test")}))

		rows := readBackCSV(t, path)
		assert.NotContains(t, rows[0], "Search_Keyword")
	})
}

func TestWriteScored(t *testing.T) {
	scored := []core.ScoredArticle{
		{
			CanonicalArticle: sampleArticle("https://a.test"),
			KeywordScore:     70,
			SemanticScore:    55.5,
			RelevanceScore:   64.2,
		},
	}

	path := filepath.Join(t.TempDir(), "ranked.csv")
	require.NoError(t, WriteScored(path, scored))

	rows := readBackCSV(t, path)
	require.Len(t, rows, 2)

	header := rows[0]
	assert.Equal(t, "Relevance_Score", header[0])
	assert.Equal(t, []string{"Title", "Platform", "Source", "Published_Date", "URL"}, header[1:6])
	assert.Equal(t, "Keyword_Score", header[len(header)-2])
	assert.Equal(t, "Semantic_Score", header[len(header)-1])

	assert.Equal(t, "64.20", rows[1][0], "scores render with two decimals")
	assert.Equal(t, "70.00", rows[1][len(rows[1])-2])
	assert.Equal(t, "55.50", rows[1][len(rows[1])-1])
}

func TestWriteScoredOptionalColumns(t *testing.T) {
	bare := core.CanonicalArticle{
		Title: "t", URL: "https://a.test", Platform: "Google News", Source: "s",
		Sentiment: core.Sentinel, Language: core.Sentinel, Country: core.Sentinel,
		SourceType: core.Sentinel, PublishedDate: "2025/01/01", SearchKeyword: core.Sentinel,
	}
	scored := []core.ScoredArticle{{CanonicalArticle: bare}}

	path := filepath.Join(t.TempDir(), "ranked.csv")
	require.NoError(t, WriteScored(path, scored))

	header := readBackCSV(t, path)[0]
	assert.NotContains(t, header, "Country")
	assert.NotContains(t, header, "Sentiment")
	assert.NotContains(t, header, "Search_Keyword")
}

func TestWriteStubs(t *testing.T) {
	stubs := []core.HarvestedStub{
		{Link: "https://a.test", Title: "A", Snippet: "s", Date: "1 day ago", Source: "Paper", SearchKeyword: "kw"},
	}

	path := filepath.Join(t.TempDir(), "raw.csv")
	require.NoError(t, WriteStubs(path, stubs))

	rows := readBackCSV(t, path)
	assert.Equal(t, []string{"link", "title", "snippet", "date", "source", "search_keyword"}, rows[0])
	assert.Equal(t, "https://a.test", rows[1][0])
}

func TestWriteXLSXRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combined.xlsx")
	require.NoError(t, WriteArticles(path, []core.CanonicalArticle{sampleArticle("https://a.test")}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWriteUnsupportedExtension(t *testing.T) {
	err := WriteArticles(filepath.Join(t.TempDir(), "out.parquet"), nil)
	assert.Error(t, err)
}

func TestSafeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"climate policy", "climate_policy"},
		{"  trim me  ", "trim_me"},
		{"what/about:slashes?", "what_about_slashes"},
		{"", "untitled"},
		{"???", "untitled"},
		{"already_safe-name", "already_safe-name"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeName(tt.input))
		})
	}

	t.Run("caps length", func(t *testing.T) {
		long := SafeName("this is a very long query string that keeps going well past any sane filename length")
		assert.LessOrEqual(t, len(long), 50)
	})
}

func TestFilenames(t *testing.T) {
	now := time.Date(2025, 1, 10, 15, 30, 0, 0, time.UTC)

	t.Run("harvest", func(t *testing.T) {
		name := HarvestFilename("bob", "past_week", []string{"climate", "policy"}, "relevance", now)
		assert.Equal(t, "googlenews_bob_past_week_climate_policy_relevance_20250110_153000.xlsx", name)
	})

	t.Run("harvest with empty parts", func(t *testing.T) {
		name := HarvestFilename("", "", nil, "", now)
		assert.Equal(t, "googlenews_20250110_153000.xlsx", name)
	})

	t.Run("ranked", func(t *testing.T) {
		assert.Equal(t, "ranked_rate_cut_20250110_153000.xlsx", RankedFilename("rate cut", now))
	})

	t.Run("combined", func(t *testing.T) {
		assert.Equal(t, "combined_articles_20250110_153000.xlsx", CombinedFilename(now))
	})
}
