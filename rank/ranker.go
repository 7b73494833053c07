// Copyright 2025 Pressgather Authors
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


package rank

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/pressgather/pressgather/core"
)

// Document is one rankable item: a canonical article plus the optional
// snippet text that raw harvester exports carry. Snippet is empty for
// articles aggregated from canonical files.
type Document struct {
	Article core.CanonicalArticle
	Snippet string
}

// DocsFromArticles wraps canonical articles as rankable documents with no
// snippet text.
func DocsFromArticles(articles []core.CanonicalArticle) []Document {
	docs := make([]Document, len(articles))
	for i, a := range articles {
		docs[i] = Document{Article: a}
	}
	return docs
}

// Selection methods for trimming a ranked result set.
const (
	SelectCount      = "count"
	SelectPercentage = "percentage"
)

// Ranker scores and orders articles against a free-text query using the
// hybrid keyword + TF-IDF relevance blend.
type Ranker struct {
	weights    Weights
	vectorizer vectorizerConfig
	logger     *slog.Logger
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithWeights overrides the scoring constants.
func WithWeights(w Weights) Option {
	return func(r *Ranker) {
		r.weights = w
	}
}

// WithVectorizer tunes the semantic vector space. Zero values keep the
// shipped settings (5000-term cap, 0.95 document-frequency ceiling).
func WithVectorizer(maxVocabulary int, maxDocFreq float64) Option {
	return func(r *Ranker) {
		r.vectorizer = vectorizerConfig{maxVocabulary: maxVocabulary, maxDocFreq: maxDocFreq}
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Ranker) {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
	}
}

// NewRanker creates a ranker with the default weights.
func NewRanker(opts ...Option) *Ranker {
	r := &Ranker{
		weights: DefaultWeights(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rank scores every document against the query and returns the collection
// sorted by combined relevance, highest first. Equal scores preserve the
// pre-sort order. The only error is an empty document collection, raised
// before any scoring work begins.
//
// A semantic-stage failure (degenerate corpus, empty vocabulary) zero-fills
// the semantic component for the whole batch instead of aborting.
func (r *Ranker) Rank(query string, docs []Document) ([]core.ScoredArticle, error) {
	if len(docs) == 0 {
		return nil, core.ErrNoArticles
	}

	r.logger.Info("calculating relevance scores", "articles", len(docs))

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Article.Title + " " + doc.Snippet
	}

	semantic, err := semanticScores(r.vectorizer, query, texts)
	if err != nil {
		r.logger.Warn("semantic scoring failed, falling back to zero scores", "err", err)
		semantic = make([]float64, len(docs))
	}

	scored := make([]core.ScoredArticle, len(docs))
	for i, doc := range docs {
		kw := keywordScore(r.weights, query, doc.Article.Title, doc.Snippet, doc.Article.Source)
		combined := round2(r.weights.KeywordShare*kw + r.weights.SemanticShare*semantic[i])
		scored[i] = core.ScoredArticle{
			CanonicalArticle: doc.Article,
			KeywordScore:     round2(kw),
			SemanticScore:    round2(semantic[i]),
			RelevanceScore:   clampScore(combined),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})

	return scored, nil
}

// Select trims a ranked result set from the head. SelectCount takes
// min(value, available) rows; SelectPercentage takes max(1, floor(n·pct/100))
// rows, so even 0% yields one row.
func Select(scored []core.ScoredArticle, method string, value float64) ([]core.ScoredArticle, error) {
	if len(scored) == 0 {
		return scored, nil
	}

	var top int
	switch method {
	case SelectCount:
		top = int(value)
		if top > len(scored) {
			top = len(scored)
		}
		if top < 0 {
			top = 0
		}
	case SelectPercentage:
		top = int(math.Floor(float64(len(scored)) * value / 100))
		if top < 1 {
			top = 1
		}
		if top > len(scored) {
			top = len(scored)
		}
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrInvalidSelection, method)
	}

	return scored[:top], nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
