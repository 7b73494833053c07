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


package normalize

import (
	"fmt"
	"log/slog"

	"github.com/pressgather/pressgather/core"
)

// fieldChain is an ordered fallback chain of candidate source columns for
// one canonical field. Chain entries are attempted in order and the first
// column present in the table wins; when none is present the fallback value
// (usually the Sentinel) is assigned. No reflection: resolution is a plain
// first-match lookup against the row.
type fieldChain struct {
	candidates []string
	fallback   string
	date       bool // value passes through the date normalizer
}

// platformSchema maps every canonical field to its fallback chain for one
// export shape.
type platformSchema struct {
	title         fieldChain
	url           fieldChain
	source        fieldChain
	sentiment     fieldChain
	language      fieldChain
	country       fieldChain
	sourceType    fieldChain
	published     fieldChain
	searchKeyword fieldChain
}

var platformSchemas = map[core.Platform]platformSchema{
	core.PlatformTalkwalker: {
		title:     fieldChain{candidates: []string{"title", "title_snippet"}, fallback: core.Sentinel},
		url:       fieldChain{candidates: []string{"url"}, fallback: core.Sentinel},
		source:    fieldChain{candidates: []string{"domain_url"}, fallback: "Talkwalker"},
		sentiment: fieldChain{candidates: []string{"sentiment"}, fallback: core.Sentinel},
		language:  fieldChain{candidates: []string{"lang"}, fallback: core.Sentinel},
		country: fieldChain{candidates: []string{
			"extra_source_attributes.world_data.country",
			"extra_author_attributes.world_data.country",
			"extra_article_attributes.world_data.country",
		}, fallback: core.Sentinel},
		sourceType:    fieldChain{candidates: []string{"source_type"}, fallback: core.Sentinel},
		published:     fieldChain{candidates: []string{"published", "indexed"}, fallback: core.Sentinel, date: true},
		searchKeyword: fieldChain{fallback: core.Sentinel},
	},
	core.PlatformNewswhip: {
		title:         fieldChain{candidates: []string{"Headline"}, fallback: core.Sentinel},
		url:           fieldChain{candidates: []string{"Link"}, fallback: core.Sentinel},
		source:        fieldChain{candidates: []string{"Domain"}, fallback: "Newswhip"},
		sentiment:     fieldChain{fallback: core.Sentinel}, // not available in Newswhip exports
		language:      fieldChain{fallback: core.Sentinel},
		country:       fieldChain{candidates: []string{"Country"}, fallback: core.Sentinel},
		sourceType:    fieldChain{fallback: "News"},
		published:     fieldChain{candidates: []string{"Published"}, fallback: core.Sentinel, date: true},
		searchKeyword: fieldChain{fallback: core.Sentinel},
	},
	core.PlatformGoogleNews: {
		title:         fieldChain{candidates: []string{"title"}, fallback: core.Sentinel},
		url:           fieldChain{candidates: []string{"link"}, fallback: core.Sentinel},
		source:        fieldChain{candidates: []string{"source"}, fallback: "Google News"},
		sentiment:     fieldChain{fallback: core.Sentinel},
		language:      fieldChain{fallback: core.Sentinel},
		country:       fieldChain{fallback: core.Sentinel},
		sourceType:    fieldChain{fallback: "News"},
		published:     fieldChain{candidates: []string{"date"}, fallback: core.Sentinel, date: true},
		searchKeyword: fieldChain{candidates: []string{"search_keyword"}, fallback: core.Sentinel},
	},
}

// Schema maps per-source raw tables onto canonical article records.
type Schema struct {
	dates  *Dates
	logger *slog.Logger
}

// SchemaOption configures a Schema.
type SchemaOption func(*Schema)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) SchemaOption {
	return func(s *Schema) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewSchema creates a schema normalizer. A nil date normalizer defaults to
// one driven by the wall clock.
func NewSchema(dates *Dates, opts ...SchemaOption) *Schema {
	if dates == nil {
		dates = NewDates(nil)
	}
	s := &Schema{dates: dates, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Normalize converts every row of a raw table into a canonical article.
// The mapping is deterministic: identical input always yields identical
// output, and rows map 1:1 onto the returned slice.
//
// The only error condition is an unknown platform tag; a missing column is
// never an error, it degrades to the chain fallback.
func (s *Schema) Normalize(table core.Table, platform core.Platform) ([]core.CanonicalArticle, error) {
	schema, ok := platformSchemas[platform]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownPlatform, platform)
	}

	articles := make([]core.CanonicalArticle, 0, len(table.Rows))
	for _, row := range table.Rows {
		articles = append(articles, core.CanonicalArticle{
			Title:         s.resolve(table, row, schema.title),
			URL:           s.resolve(table, row, schema.url),
			Platform:      string(platform),
			Source:        s.resolve(table, row, schema.source),
			Sentiment:     s.resolve(table, row, schema.sentiment),
			Language:      s.resolve(table, row, schema.language),
			Country:       s.resolve(table, row, schema.country),
			SourceType:    s.resolve(table, row, schema.sourceType),
			PublishedDate: s.resolve(table, row, schema.published),
			SearchKeyword: s.resolve(table, row, schema.searchKeyword),
		})
	}

	return articles, nil
}

// resolve walks the fallback chain against the table's column set and
// returns the first present column's cell, the chain fallback when no
// candidate column exists, or the Sentinel when the winning cell is empty.
func (s *Schema) resolve(table core.Table, row core.RawRecord, chain fieldChain) string {
	for _, candidate := range chain.candidates {
		if !table.HasColumn(candidate) {
			continue
		}
		value := row[candidate]
		if chain.date {
			return s.dates.Normalize(value)
		}
		if value == "" {
			return core.Sentinel
		}
		return value
	}
	return chain.fallback
}

// StubTable shapes harvested stubs as a raw Google News table so they can
// flow through the same normalization path as uploaded files.
func StubTable(stubs []core.HarvestedStub) core.Table {
	table := core.Table{
		Columns: []string{"link", "title", "snippet", "date", "source", "search_keyword"},
		Rows:    make([]core.RawRecord, 0, len(stubs)),
	}
	for _, stub := range stubs {
		table.Rows = append(table.Rows, core.RawRecord{
			"link":           stub.Link,
			"title":          stub.Title,
			"snippet":        stub.Snippet,
			"date":           stub.Date,
			"source":         stub.Source,
			"search_keyword": stub.SearchKeyword,
		})
	}
	return table
}
