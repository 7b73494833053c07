package harvest

import (
	"net/url"
	"strconv"
	"strings"
)

// Sort orders accepted by a query. Anything else falls back to relevance.
const (
	SortRelevance = "relevance"
	SortRecency   = "recency"
)

// buildSearchURL constructs one paginated news-search request URL.
// offset = page index × page size; languages are pipe-joined into `lr`;
// only the first region is forwarded as `gl`; the time-window code and
// recency flag travel in `tbs`.
func buildSearchURL(base string, q Query, keyword string, page, pageSize int) string {
	params := url.Values{}
	params.Set("q", keyword)
	params.Set("tbm", "nws")
	params.Set("start", strconv.Itoa(page*pageSize))
	params.Set("hl", "en")

	var tbs []string
	if q.TimeWindow != "" {
		tbs = append(tbs, "qdr:"+q.TimeWindow)
	}
	if strings.EqualFold(q.SortOrder, SortRecency) {
		tbs = append(tbs, "sbd:1")
	}
	if len(tbs) > 0 {
		params.Set("tbs", strings.Join(tbs, ","))
	}

	if len(q.Languages) > 0 {
		params.Set("lr", strings.Join(q.Languages, "|"))
	}
	if len(q.Regions) > 0 {
		params.Set("gl", q.Regions[0])
	}

	// The language filter separator must survive encoding verbatim.
	encoded := strings.ReplaceAll(params.Encode(), "%7C", "|")
	return base + "?" + encoded
}

// TimeWindowName maps a time-window code onto a human-readable label for
// export file names.
func TimeWindowName(code string) string {
	switch code {
	case "h":
		return "past_hour"
	case "d":
		return "past_day"
	case "w":
		return "past_week"
	case "m":
		return "past_month"
	case "y":
		return "past_year"
	}
	return "custom_time"
}
