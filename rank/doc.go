// Package rank implements the hybrid relevance engine: a lexical keyword
// overlap score blended with a TF-IDF/cosine semantic score, followed by
// top-N or top-percentage selection.
//
// Scoring is a single-pass batch computation: the vector space is built
// jointly over the query and every document, so the ranker must see a
// stable snapshot of the collection. Callers serialize access against
// concurrent harvests.
package rank
