package export

import (
	"regexp"
	"strings"
	"time"
)

const (
	timestampLayout = "20060102_150405"
	maxNamePart     = 50
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// SafeName reduces free text to a filename-safe token: runs of anything
// outside [a-zA-Z0-9_-] collapse to a single underscore, trimmed and capped
// at 50 characters. Empty input becomes "untitled".
func SafeName(text string) string {
	name := unsafeChars.ReplaceAllString(strings.TrimSpace(text), "_")
	name = strings.Trim(name, "_")
	if len(name) > maxNamePart {
		name = name[:maxNamePart]
		name = strings.TrimRight(name, "_")
	}
	if name == "" {
		return "untitled"
	}
	return name
}

// HarvestFilename names a raw harvester export after its parameters, e.g.
// "googlenews_bob_past_week_climate_policy_date_20250110_153000.xlsx".
func HarvestFilename(user, window string, keywords []string, sortOrder string, now time.Time) string {
	parts := []string{"googlenews"}
	if user != "" {
		parts = append(parts, SafeName(user))
	}
	if window != "" {
		parts = append(parts, SafeName(window))
	}
	if len(keywords) > 0 {
		parts = append(parts, SafeName(strings.Join(keywords, "_")))
	}
	if sortOrder != "" {
		parts = append(parts, SafeName(sortOrder))
	}
	parts = append(parts, now.Format(timestampLayout))
	return strings.Join(parts, "_") + ".xlsx"
}

// RankedFilename names a ranked export after the search query.
func RankedFilename(query string, now time.Time) string {
	return "ranked_" + SafeName(query) + "_" + now.Format(timestampLayout) + ".xlsx"
}

// CombinedFilename names an aggregated export.
func CombinedFilename(now time.Time) string {
	return "combined_articles_" + now.Format(timestampLayout) + ".xlsx"
}
