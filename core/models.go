package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// Sentinel is the literal value used to mark absent source data.
// Canonical records never omit a field; they carry Sentinel instead.
const Sentinel = "N/A"

// ID is a unique identifier for harvested and canonical records.
// It is generated by content-based hashing, so identical URLs collapse
// onto the same ID.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b
// hashing. Identical content always produces an identical ID.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Platform identifies the export shape a raw table came from.
type Platform string

const (
	// PlatformTalkwalker matches Talkwalker listening exports.
	PlatformTalkwalker Platform = "Talkwalker"
	// PlatformNewswhip matches Newswhip coverage exports.
	PlatformNewswhip Platform = "Newswhip"
	// PlatformGoogleNews matches harvested Google News result files.
	PlatformGoogleNews Platform = "Google News"
)

// CanonicalArticle is the fixed-schema record every source is normalized
// into. All fields are always populated; absent source data carries the
// Sentinel value, it is never left empty.
type CanonicalArticle struct {
	Title         string
	URL           string
	Platform      string
	Source        string
	Sentiment     string
	Language      string
	Country       string
	SourceType    string
	PublishedDate string // canonical YYYY/MM/DD, Sentinel, or the raw unparsed text
	SearchKeyword string // populated for harvested rows only, Sentinel elsewhere
}

// URLID returns the content-hash identity of the article's URL, used for
// deduplication within a single harvest.
func (a *CanonicalArticle) URLID() ID {
	return IDFromContent(a.URL)
}

// HarvestedStub is one raw search result row produced by the harvester
// before canonicalization.
type HarvestedStub struct {
	Link          string
	Title         string
	Snippet       string
	Date          string
	Source        string
	SearchKeyword string
}

// RawRecord is a single source-specific row keyed by column name.
// It is transient and consumed once during normalization.
type RawRecord map[string]string

// Table is a generic tabular extract: an ordered set of named columns over
// string cells. Cells missing from a row read as empty.
type Table struct {
	Columns []string
	Rows    []RawRecord
}

// HasColumn reports whether the table carries the named column, regardless
// of cell contents.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// ScoredArticle pairs a canonical article with its per-query scores.
// Scores are ephemeral: recomputed per query, never cached.
type ScoredArticle struct {
	CanonicalArticle
	KeywordScore   float64
	SemanticScore  float64
	RelevanceScore float64
}
