package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pressgather/pressgather/core"
)

func TestLabel(t *testing.T) {
	t.Run("positive", func(t *testing.T) {
		assert.Equal(t, Positive, Label("What a wonderful, fantastic achievement, truly great news"))
	})

	t.Run("negative", func(t *testing.T) {
		assert.Equal(t, Negative, Label("Horrible disaster kills many, devastating tragedy"))
	})

	t.Run("neutral", func(t *testing.T) {
		assert.Equal(t, Neutral, Label("The committee met on Tuesday afternoon"))
	})

	t.Run("empty text is neutral", func(t *testing.T) {
		assert.Equal(t, Neutral, Label(""))
	})
}

func TestScoreBounds(t *testing.T) {
	for _, text := range []string{
		"amazing wonderful great",
		"terrible awful horrible",
		"the cat sat on the mat",
		"",
	} {
		score := Score(text)
		assert.GreaterOrEqual(t, score, -1.0, "text %q", text)
		assert.LessOrEqual(t, score, 1.0, "text %q", text)
	}
}

func TestRemoveLinks(t *testing.T) {
	assert.Equal(t, "read more at ", RemoveLinks("read more at https://example.com/story"))
	assert.Equal(t, "see  for details", RemoveLinks("see www.example.com for details"))
	assert.Equal(t, "no links here", RemoveLinks("no links here"))
}

func TestLabelStub(t *testing.T) {
	stub := core.HarvestedStub{
		Title:   "Wonderful news for the community",
		Snippet: "Everyone celebrated the fantastic result",
	}
	assert.Equal(t, Positive, LabelStub(stub))
}

func TestEnrich(t *testing.T) {
	articles := []core.CanonicalArticle{
		{Title: "Wonderful fantastic great news", Sentiment: core.Sentinel},
		{Title: "irrelevant", Sentiment: "positive"},
		{Title: "Horrible devastating tragedy", Sentiment: ""},
	}
	Enrich(articles)

	assert.Equal(t, Positive, articles[0].Sentiment)
	assert.Equal(t, "positive", articles[1].Sentiment, "existing labels are kept")
	assert.Equal(t, Negative, articles[2].Sentiment)
}
