package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := IDFromContent("https://example.com/story")
		b := IDFromContent("https://example.com/story")
		assert.Equal(t, a, b)
	})

	t.Run("distinct inputs yield distinct ids", func(t *testing.T) {
		a := IDFromContent("https://example.com/story-1")
		b := IDFromContent("https://example.com/story-2")
		assert.NotEqual(t, a, b)
	})

	t.Run("empty input is valid", func(t *testing.T) {
		assert.NotPanics(t, func() { IDFromContent("") })
	})
}

func TestURLID(t *testing.T) {
	a := CanonicalArticle{URL: "https://example.com/a", Title: "first title"}
	b := CanonicalArticle{URL: "https://example.com/a", Title: "different title"}
	assert.Equal(t, a.URLID(), b.URLID(), "identity follows URL, not title")
}

func TestTableHasColumn(t *testing.T) {
	table := Table{Columns: []string{"title", "url"}}
	assert.True(t, table.HasColumn("title"))
	assert.False(t, table.HasColumn("sentiment"))
}

func TestCleanKeywords(t *testing.T) {
	t.Run("trims and drops empties", func(t *testing.T) {
		cleaned, err := CleanKeywords([]string{" climate ", "", "  ", "policy"})
		require.NoError(t, err)
		assert.Equal(t, []string{"climate", "policy"}, cleaned)
	})

	t.Run("all empty", func(t *testing.T) {
		_, err := CleanKeywords([]string{"", "   "})
		assert.ErrorIs(t, err, ErrNoKeywords)
	})

	t.Run("nil input", func(t *testing.T) {
		_, err := CleanKeywords(nil)
		assert.ErrorIs(t, err, ErrNoKeywords)
	})
}

func TestSplitKeywords(t *testing.T) {
	cleaned, err := SplitKeywords("climate, policy , energy")
	require.NoError(t, err)
	assert.Equal(t, []string{"climate", "policy", "energy"}, cleaned)

	_, err = SplitKeywords(" , ,")
	assert.ErrorIs(t, err, ErrNoKeywords)
}

func TestValidatePlatform(t *testing.T) {
	for _, p := range []Platform{PlatformTalkwalker, PlatformNewswhip, PlatformGoogleNews} {
		assert.NoError(t, ValidatePlatform(p))
	}
	assert.ErrorIs(t, ValidatePlatform(Platform("Reddit")), ErrUnknownPlatform)
}
