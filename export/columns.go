package export

import (
	"fmt"

	"github.com/pressgather/pressgather/core"
)

// Canonical column order for aggregated exports. Search_Keyword is appended
// only when at least one row carries a real value.
var canonicalColumns = []string{
	"Title", "URL", "Platform", "Source", "Sentiment",
	"Language", "Country", "Source_Type", "Published_Date",
}

const keywordColumn = "Search_Keyword"

// Raw harvester output columns, matching the stub schema.
var stubColumns = []string{"link", "title", "snippet", "date", "source", "search_keyword"}

func hasKeyword(articles []core.CanonicalArticle) bool {
	for _, a := range articles {
		if a.SearchKeyword != "" && a.SearchKeyword != core.Sentinel {
			return true
		}
	}
	return false
}

func canonicalHeader(articles []core.CanonicalArticle) []string {
	header := append([]string(nil), canonicalColumns...)
	if hasKeyword(articles) {
		header = append(header, keywordColumn)
	}
	return header
}

func canonicalRow(a core.CanonicalArticle, withKeyword bool) []string {
	row := []string{
		a.Title, a.URL, a.Platform, a.Source, a.Sentiment,
		a.Language, a.Country, a.SourceType, a.PublishedDate,
	}
	if withKeyword {
		row = append(row, a.SearchKeyword)
	}
	return row
}

// rankedHeader leads with the relevance score and the identifying fields,
// keeps only the optional columns some row actually fills, and closes with
// the score components.
func rankedHeader(scored []core.ScoredArticle) []string {
	header := []string{"Relevance_Score", "Title", "Platform", "Source", "Published_Date", "URL"}
	for _, col := range []string{"Country", "Language", "Sentiment", "Source_Type", keywordColumn} {
		if rankedColumnPresent(scored, col) {
			header = append(header, col)
		}
	}
	return append(header, "Keyword_Score", "Semantic_Score")
}

func rankedColumnPresent(scored []core.ScoredArticle, col string) bool {
	for _, s := range scored {
		if v := rankedField(s, col); v != "" && v != core.Sentinel {
			return true
		}
	}
	return false
}

func rankedField(s core.ScoredArticle, col string) string {
	switch col {
	case "Title":
		return s.Title
	case "Platform":
		return s.Platform
	case "Source":
		return s.Source
	case "Published_Date":
		return s.PublishedDate
	case "URL":
		return s.URL
	case "Country":
		return s.Country
	case "Language":
		return s.Language
	case "Sentiment":
		return s.Sentiment
	case "Source_Type":
		return s.SourceType
	case keywordColumn:
		return s.SearchKeyword
	case "Relevance_Score":
		return fmt.Sprintf("%.2f", s.RelevanceScore)
	case "Keyword_Score":
		return fmt.Sprintf("%.2f", s.KeywordScore)
	case "Semantic_Score":
		return fmt.Sprintf("%.2f", s.SemanticScore)
	}
	return ""
}

func rankedRow(s core.ScoredArticle, header []string) []string {
	row := make([]string, len(header))
	for i, col := range header {
		row[i] = rankedField(s, col)
	}
	return row
}

func stubRow(s core.HarvestedStub) []string {
	return []string{s.Link, s.Title, s.Snippet, s.Date, s.Source, s.SearchKeyword}
}
