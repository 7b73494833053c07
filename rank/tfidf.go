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
	"errors"
	"math"
	"sort"
)

// Vectorizer settings for the semantic vector space.
const (
	// maxVocabulary caps the term space at the most frequent terms.
	defaultMaxVocabulary = 5000
	// maxDocFreqRatio excludes terms appearing in more than this share of
	// documents; they carry no discriminating signal.
	defaultMaxDocFreq = 0.95
)

var errEmptyVocabulary = errors.New("vectorization produced an empty vocabulary")

// vectorizerConfig tunes the TF-IDF space. Zero values fall back to the
// shipped settings.
type vectorizerConfig struct {
	maxVocabulary int
	maxDocFreq    float64
}

func (c vectorizerConfig) normalized() vectorizerConfig {
	if c.maxVocabulary <= 0 {
		c.maxVocabulary = defaultMaxVocabulary
	}
	if c.maxDocFreq <= 0 || c.maxDocFreq > 1 {
		c.maxDocFreq = defaultMaxDocFreq
	}
	return c
}

// semanticScores builds one TF-IDF vector space over the query plus every
// document and returns the cosine similarity of each document against the
// query, scaled to [0,100].
//
// Terms are stopword-filtered unigrams and bigrams. IDF uses the smoothed
// form ln((1+n)/(1+df))+1 and vectors are L2-normalized, so cosine
// similarity reduces to a dot product.
func semanticScores(cfg vectorizerConfig, query string, docs []string) ([]float64, error) {
	cfg = cfg.normalized()

	corpus := make([][]string, 0, len(docs)+1)
	corpus = append(corpus, contentTokens(normalizeText(query)))
	for _, doc := range docs {
		corpus = append(corpus, contentTokens(normalizeText(doc)))
	}

	vocab := buildVocabulary(corpus, cfg)
	if len(vocab.index) == 0 {
		return nil, errEmptyVocabulary
	}

	vectors := make([][]float64, len(corpus))
	for i, terms := range corpus {
		vectors[i] = vocab.vectorize(terms)
	}

	queryVec := vectors[0]
	scores := make([]float64, len(docs))
	for i, docVec := range vectors[1:] {
		scores[i] = clampScore(dot(queryVec, docVec) * 100)
	}
	return scores, nil
}

// vocabulary is the fitted term space: term -> column index plus the IDF
// weight per column.
type vocabulary struct {
	index map[string]int
	idf   []float64
}

// buildVocabulary counts document frequencies, drops over-frequent terms,
// caps the space at the highest-corpus-frequency terms, and precomputes
// smoothed IDF weights.
func buildVocabulary(corpus [][]string, cfg vectorizerConfig) vocabulary {
	n := len(corpus)
	docFreq := make(map[string]int)
	termFreq := make(map[string]int)
	for _, terms := range corpus {
		seen := make(map[string]struct{}, len(terms))
		for _, term := range terms {
			termFreq[term]++
			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				docFreq[term]++
			}
		}
	}

	type candidate struct {
		term string
		freq int
	}
	candidates := make([]candidate, 0, len(docFreq))
	for term, df := range docFreq {
		// The document-frequency ceiling only makes sense with more than
		// one document in the corpus.
		if n > 1 && float64(df) > cfg.maxDocFreq*float64(n) {
			continue
		}
		candidates = append(candidates, candidate{term: term, freq: termFreq[term]})
	}

	// Keep the most frequent terms; alphabetical tie-break keeps the space
	// deterministic.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].freq == candidates[j].freq {
			return candidates[i].term < candidates[j].term
		}
		return candidates[i].freq > candidates[j].freq
	})
	if len(candidates) > cfg.maxVocabulary {
		candidates = candidates[:cfg.maxVocabulary]
	}

	vocab := vocabulary{
		index: make(map[string]int, len(candidates)),
		idf:   make([]float64, len(candidates)),
	}
	for i, c := range candidates {
		vocab.index[c.term] = i
		vocab.idf[i] = math.Log(float64(1+n)/float64(1+docFreq[c.term])) + 1
	}
	return vocab
}

// vectorize maps a token list onto an L2-normalized TF-IDF vector.
func (v vocabulary) vectorize(terms []string) []float64 {
	vec := make([]float64, len(v.idf))
	for _, term := range terms {
		if col, ok := v.index[term]; ok {
			vec[col] += v.idf[col]
		}
	}

	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
