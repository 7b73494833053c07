package rank

import "strings"

// Weights holds the scoring constants of the hybrid ranker. The defaults
// reproduce the tuning the system shipped with; nothing asserts they are
// optimal, so they stay configurable.
type Weights struct {
	Title         float64 // keyword overlap weight for the title field
	Content       float64 // keyword overlap weight for the snippet/content field
	Source        float64 // keyword overlap weight for the source field
	TitlePhrase   float64 // bonus when the whole query appears in the title
	ContentPhrase float64 // bonus when the whole query appears in the content
	KeywordShare  float64 // keyword component share of the combined score
	SemanticShare float64 // semantic component share of the combined score
}

// DefaultWeights returns the shipped scoring constants: 50/40/10 field
// weights, 20/10 phrase bonuses, 60/40 keyword/semantic blend.
func DefaultWeights() Weights {
	return Weights{
		Title:         50,
		Content:       40,
		Source:        10,
		TitlePhrase:   20,
		ContentPhrase: 10,
		KeywordShare:  0.6,
		SemanticShare: 0.4,
	}
}

// keywordScore computes the lexical overlap score of one article against
// the query. Each field contributes |query ∩ field| / |query| times its
// weight; an exact phrase match adds a bonus, title taking precedence over
// content. The result is clamped to [0,100]. An empty query scores 0.
func keywordScore(w Weights, query, title, content, source string) float64 {
	queryNorm := normalizeText(query)
	queryTokens := tokenSet(queryNorm)
	if len(queryTokens) == 0 {
		return 0
	}

	titleNorm := normalizeText(title)
	contentNorm := normalizeText(content)
	sourceNorm := normalizeText(source)

	total := overlapRatio(queryTokens, tokenSet(titleNorm))*w.Title +
		overlapRatio(queryTokens, tokenSet(contentNorm))*w.Content +
		overlapRatio(queryTokens, tokenSet(sourceNorm))*w.Source

	// Phrase bonuses are mutually exclusive; title wins.
	if strings.Contains(titleNorm, queryNorm) {
		total += w.TitlePhrase
	} else if strings.Contains(contentNorm, queryNorm) {
		total += w.ContentPhrase
	}

	return clampScore(total)
}

func overlapRatio(query, field map[string]struct{}) float64 {
	if len(query) == 0 {
		return 0
	}
	matches := 0
	for tok := range query {
		if _, ok := field[tok]; ok {
			matches++
		}
	}
	return float64(matches) / float64(len(query))
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
