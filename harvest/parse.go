package harvest

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pressgather/pressgather/core"
)

// CSS selectors for the news-results markup. Page structure is outside our
// control and drifts over time; when the result selector stops matching,
// the raw payload lands in the dump store for inspection.
const (
	selResult  = "div.SoaBEf"
	selTitle   = "h3, div[role='heading'], div.MBeuO, div.n0jPhd"
	selSnippet = ".GI74Re, .st, .dbsr"
	selDate    = ".LfVVr, .slp span"
	selSource  = ".NUnG9d span, .MgUUmf span"
)

// parsePage extracts result stubs from one page payload. A page that
// parses as HTML but matches no result elements yields an empty slice and
// no error; the caller decides whether to dump the payload.
func parsePage(payload []byte) ([]core.HarvestedStub, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	var stubs []core.HarvestedStub
	doc.Find(selResult).Each(func(_ int, el *goquery.Selection) {
		link, ok := el.Find("a[href]").First().Attr("href")
		if !ok || link == "" {
			return
		}

		stubs = append(stubs, core.HarvestedStub{
			Link:    link,
			Title:   strings.TrimSpace(el.Find(selTitle).First().Text()),
			Snippet: strings.TrimSpace(el.Find(selSnippet).First().Text()),
			Date:    strings.TrimSpace(el.Find(selDate).First().Text()),
			Source:  strings.TrimSpace(el.Find(selSource).First().Text()),
		})
	})

	return stubs, nil
}

// parseTitle extracts the document title from an article page.
func parseTitle(payload []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(doc.Find("title").First().Text()), nil
}
