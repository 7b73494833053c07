package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressgather/pressgather/core"
)

func testSchema() *Schema {
	return NewSchema(NewDates(fixedClock(2025, time.January, 10)))
}

func TestNormalizeTalkwalker(t *testing.T) {
	schema := testSchema()

	table := core.Table{
		Columns: []string{"title", "url", "domain_url", "sentiment", "lang",
			"extra_source_attributes.world_data.country", "source_type", "published"},
		Rows: []core.RawRecord{{
			"title":      "Markets rally on rate cut hopes",
			"url":        "https://news.example.com/rally",
			"domain_url": "news.example.com",
			"sentiment":  "positive",
			"lang":       "en",
			"extra_source_attributes.world_data.country": "us",
			"source_type": "ONLINENEWS",
			"published":   "2025-01-08 09:30:00",
		}},
	}

	articles, err := schema.Normalize(table, core.PlatformTalkwalker)
	require.NoError(t, err)
	require.Len(t, articles, 1)

	a := articles[0]
	assert.Equal(t, "Markets rally on rate cut hopes", a.Title)
	assert.Equal(t, "https://news.example.com/rally", a.URL)
	assert.Equal(t, "Talkwalker", a.Platform)
	assert.Equal(t, "news.example.com", a.Source)
	assert.Equal(t, "positive", a.Sentiment)
	assert.Equal(t, "en", a.Language)
	assert.Equal(t, "us", a.Country)
	assert.Equal(t, "ONLINENEWS", a.SourceType)
	assert.Equal(t, "2025/01/08", a.PublishedDate)
	assert.Equal(t, core.Sentinel, a.SearchKeyword)
}

func TestNormalizeTalkwalkerFallbackChains(t *testing.T) {
	schema := testSchema()

	t.Run("title falls back to snippet column", func(t *testing.T) {
		table := core.Table{
			Columns: []string{"title_snippet", "url"},
			Rows:    []core.RawRecord{{"title_snippet": "snippet text", "url": "https://x.test"}},
		}
		articles, err := schema.Normalize(table, core.PlatformTalkwalker)
		require.NoError(t, err)
		assert.Equal(t, "snippet text", articles[0].Title)
	})

	t.Run("first present column wins", func(t *testing.T) {
		table := core.Table{
			Columns: []string{"title", "title_snippet"},
			Rows:    []core.RawRecord{{"title": "real title", "title_snippet": "snippet"}},
		}
		articles, err := schema.Normalize(table, core.PlatformTalkwalker)
		require.NoError(t, err)
		assert.Equal(t, "real title", articles[0].Title)
	})

	t.Run("country tries author then article attributes", func(t *testing.T) {
		table := core.Table{
			Columns: []string{"extra_author_attributes.world_data.country"},
			Rows:    []core.RawRecord{{"extra_author_attributes.world_data.country": "fr"}},
		}
		articles, err := schema.Normalize(table, core.PlatformTalkwalker)
		require.NoError(t, err)
		assert.Equal(t, "fr", articles[0].Country)
	})

	t.Run("missing source column defaults to platform name", func(t *testing.T) {
		table := core.Table{Columns: []string{"title"}, Rows: []core.RawRecord{{"title": "x"}}}
		articles, err := schema.Normalize(table, core.PlatformTalkwalker)
		require.NoError(t, err)
		assert.Equal(t, "Talkwalker", articles[0].Source)
	})

	t.Run("empty cell in present column becomes sentinel", func(t *testing.T) {
		table := core.Table{Columns: []string{"title"}, Rows: []core.RawRecord{{"title": ""}}}
		articles, err := schema.Normalize(table, core.PlatformTalkwalker)
		require.NoError(t, err)
		assert.Equal(t, core.Sentinel, articles[0].Title)
	})
}

func TestNormalizeNewswhip(t *testing.T) {
	schema := testSchema()

	table := core.Table{
		Columns: []string{"Headline", "Link", "Domain", "Country", "Published"},
		Rows: []core.RawRecord{{
			"Headline":  "Storm closes schools",
			"Link":      "https://local.example.com/storm",
			"Domain":    "local.example.com",
			"Country":   "ie",
			"Published": "04/24/2025",
		}},
	}

	articles, err := schema.Normalize(table, core.PlatformNewswhip)
	require.NoError(t, err)
	require.Len(t, articles, 1)

	a := articles[0]
	assert.Equal(t, "Storm closes schools", a.Title)
	assert.Equal(t, "Newswhip", a.Platform)
	assert.Equal(t, core.Sentinel, a.Sentiment, "platform has no sentiment column")
	assert.Equal(t, core.Sentinel, a.Language)
	assert.Equal(t, "News", a.SourceType, "fixed default for this platform")
	assert.Equal(t, "2025/04/24", a.PublishedDate)
}

func TestNormalizeGoogleNews(t *testing.T) {
	schema := testSchema()

	table := core.Table{
		Columns: []string{"link", "title", "snippet", "date", "source", "search_keyword"},
		Rows: []core.RawRecord{{
			"link":           "https://paper.example.com/story",
			"title":          "Council approves budget",
			"snippet":        "The council voted on Tuesday...",
			"date":           "3 days ago",
			"source":         "The Example Paper",
			"search_keyword": "council budget",
		}},
	}

	articles, err := schema.Normalize(table, core.PlatformGoogleNews)
	require.NoError(t, err)
	require.Len(t, articles, 1)

	a := articles[0]
	assert.Equal(t, "Google News", a.Platform)
	assert.Equal(t, "The Example Paper", a.Source)
	assert.Equal(t, "2025/01/07", a.PublishedDate)
	assert.Equal(t, "council budget", a.SearchKeyword)
	assert.Equal(t, "News", a.SourceType)
}

func TestNormalizeUnknownPlatform(t *testing.T) {
	schema := testSchema()
	_, err := schema.Normalize(core.Table{}, core.Platform("Mastodon"))
	assert.ErrorIs(t, err, core.ErrUnknownPlatform)
}

func TestNormalizeDeterministic(t *testing.T) {
	schema := testSchema()
	table := core.Table{
		Columns: []string{"title", "url", "published"},
		Rows: []core.RawRecord{
			{"title": "a", "url": "https://a.test", "published": "2025-01-01"},
			{"title": "b", "url": "https://b.test", "published": "nonsense"},
		},
	}

	first, err := schema.Normalize(table, core.PlatformTalkwalker)
	require.NoError(t, err)
	second, err := schema.Normalize(table, core.PlatformTalkwalker)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, len(table.Rows), "rows map 1:1")
}

func TestStubTable(t *testing.T) {
	stubs := []core.HarvestedStub{
		{Link: "https://a.test", Title: "A", Snippet: "s", Date: "1 day ago", Source: "Paper", SearchKeyword: "kw"},
	}
	table := StubTable(stubs)

	assert.Equal(t, []string{"link", "title", "snippet", "date", "source", "search_keyword"}, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "https://a.test", table.Rows[0]["link"])

	schema := testSchema()
	articles, err := schema.Normalize(table, core.PlatformGoogleNews)
	require.NoError(t, err)
	assert.Equal(t, "kw", articles[0].SearchKeyword)
	assert.Equal(t, "2025/01/09", articles[0].PublishedDate)
}
