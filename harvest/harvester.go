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


package harvest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/pressgather/pressgather/core"
)

// Config tunes the harvester's fan-out and timeouts.
type Config struct {
	BaseURL        string        // search endpoint
	UserAgent      string        // sent on every request
	PageSize       int           // results per page, drives the offset step
	KeywordWorkers int           // ceiling for the keyword tier
	PageWorkers    int           // ceiling for the per-keyword page tier
	TitleWorkers   int           // ceiling for title enrichment fetches
	RequestTimeout time.Duration // per page fetch
	TitleTimeout   time.Duration // per title enrichment fetch
	EnrichTitles   bool          // resolve fuller titles with secondary fetches
	MaxPages       int           // default page count per keyword
}

// DefaultConfig returns the shipped harvester settings.
func DefaultConfig() Config {
	return Config{
		BaseURL:        "https://www.google.com/search",
		UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/101.0.4951.54 Safari/537.36",
		PageSize:       10,
		KeywordWorkers: 3,
		PageWorkers:    5,
		TitleWorkers:   5,
		RequestTimeout: 10 * time.Second,
		TitleTimeout:   5 * time.Second,
		EnrichTitles:   true,
		MaxPages:       5,
	}
}

// Query describes one harvest run.
type Query struct {
	Keywords   []string
	Languages  []string
	Regions    []string
	TimeWindow string // h, d, w, m, y or empty
	SortOrder  string // SortRelevance or SortRecency
	MaxPages   int    // pages per keyword; 0 uses the config default
}

// DumpStore receives raw page payloads that produced no parseable results.
type DumpStore interface {
	SaveDump(ctx context.Context, keyword string, page int, payload []byte) error
}

// Harvester fans paginated search fetches out across keywords and pages,
// deduplicates the merged stubs by URL, and optionally enriches truncated
// titles with bounded secondary fetches.
type Harvester struct {
	cfg    Config
	client *http.Client
	dumps  DumpStore
	logger *slog.Logger
}

// Option configures a Harvester.
type Option func(*Harvester)

// WithDumpStore attaches a debug dump store for unparseable pages.
// Without one, empty pages are only logged.
func WithDumpStore(store DumpStore) Option {
	return func(h *Harvester) {
		h.dumps = store
	}
}

// WithHTTPClient overrides the HTTP client. Per-request timeouts still
// come from the config via context deadlines.
func WithHTTPClient(client *http.Client) Option {
	return func(h *Harvester) {
		if client != nil {
			h.client = client
		}
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harvester) {
		if logger == nil {
			logger = slog.Default()
		}
		h.logger = logger
	}
}

// NewHarvester creates a harvester from the given config. Zero-valued
// config fields fall back to their defaults.
func NewHarvester(cfg Config, opts ...Option) *Harvester {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = def.PageSize
	}
	if cfg.KeywordWorkers <= 0 {
		cfg.KeywordWorkers = def.KeywordWorkers
	}
	if cfg.PageWorkers <= 0 {
		cfg.PageWorkers = def.PageWorkers
	}
	if cfg.TitleWorkers <= 0 {
		cfg.TitleWorkers = def.TitleWorkers
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = def.RequestTimeout
	}
	if cfg.TitleTimeout <= 0 {
		cfg.TitleTimeout = def.TitleTimeout
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = def.MaxPages
	}

	h := &Harvester{
		cfg:    cfg,
		client: &http.Client{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Harvest runs the full two-tier fan-out: keywords across one bounded pool,
// each keyword's pages across another. Every tier joins completely before
// its results merge. Stubs are tagged with their originating keyword and
// deduplicated globally by URL, first completion winning.
//
// The keyword list is validated before any network call; an empty list is
// the only fatal condition. Zero surviving stubs is an empty result, not an
// error.
func (h *Harvester) Harvest(ctx context.Context, q Query) ([]core.HarvestedStub, error) {
	keywords, err := core.CleanKeywords(q.Keywords)
	if err != nil {
		return nil, err
	}
	if q.MaxPages <= 0 {
		q.MaxPages = h.cfg.MaxPages
	}

	h.logger.Info("harvesting news",
		"keywords", len(keywords),
		"pages_per_keyword", q.MaxPages,
		"sort", q.SortOrder)

	workers := h.cfg.KeywordWorkers
	if len(keywords) < workers {
		workers = len(keywords)
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var (
		mu  sync.Mutex
		all []core.HarvestedStub
		wg  sync.WaitGroup
	)
	for _, keyword := range keywords {
		kw := keyword
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			stubs := h.harvestKeyword(ctx, kw, q)
			for i := range stubs {
				stubs[i].SearchKeyword = kw
			}
			mu.Lock()
			all = append(all, stubs...)
			mu.Unlock()
			h.logger.Info("completed keyword", "keyword", kw, "results", len(stubs))
		})
		if submitErr != nil {
			wg.Done()
			h.logger.Error("failed to submit keyword task", "keyword", kw, "err", submitErr)
		}
	}
	wg.Wait()

	unique := dedupeByURL(all)
	h.logger.Info("harvest complete", "total", len(all), "unique", len(unique))
	return unique, nil
}

// harvestKeyword fans one keyword's pages out over a bounded pool, joins,
// then runs the optional title enrichment pass over the merged stubs.
func (h *Harvester) harvestKeyword(ctx context.Context, keyword string, q Query) []core.HarvestedStub {
	workers := h.cfg.PageWorkers
	if q.MaxPages < workers {
		workers = q.MaxPages
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		h.logger.Error("failed to create page pool", "keyword", keyword, "err", err)
		return nil
	}
	defer pool.Release()

	var (
		mu     sync.Mutex
		merged []core.HarvestedStub
		wg     sync.WaitGroup
	)
	for page := 0; page < q.MaxPages; page++ {
		p := page
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			stubs := h.fetchPage(ctx, keyword, q, p)
			if len(stubs) == 0 {
				return
			}
			mu.Lock()
			merged = append(merged, stubs...)
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			h.logger.Error("failed to submit page task",
				"keyword", keyword, "page", p, "err", submitErr)
		}
	}
	wg.Wait()

	if h.cfg.EnrichTitles {
		h.enrichTitles(ctx, merged)
	}

	// A stub without any title is unusable downstream.
	kept := merged[:0]
	for _, stub := range merged {
		if stub.Title != "" {
			kept = append(kept, stub)
		}
	}
	return kept
}

// fetchPage retrieves and parses a single results page. Any failure —
// network, status, parse — degrades to zero stubs; a page that parses to
// zero results gets its raw payload dumped for offline inspection.
func (h *Harvester) fetchPage(ctx context.Context, keyword string, q Query, page int) []core.HarvestedStub {
	pageURL := buildSearchURL(h.cfg.BaseURL, q, keyword, page, h.cfg.PageSize)
	h.logger.Debug("fetching page", "keyword", keyword, "page", page+1, "url", pageURL)

	payload, err := h.get(ctx, pageURL, h.cfg.RequestTimeout)
	if err != nil {
		h.logger.Error("page fetch failed",
			"keyword", keyword, "page", page+1, "err", err)
		return nil
	}

	stubs, err := parsePage(payload)
	if err != nil {
		h.logger.Error("page parse failed",
			"keyword", keyword, "page", page+1, "err", err)
		h.dump(ctx, keyword, page+1, payload)
		return nil
	}
	if len(stubs) == 0 {
		h.logger.Warn("no article elements found, saving payload for debugging",
			"keyword", keyword, "page", page+1)
		h.dump(ctx, keyword, page+1, payload)
		return nil
	}

	h.logger.Info("page parsed", "keyword", keyword, "page", page+1, "results", len(stubs))
	return stubs
}

// enrichTitles resolves fuller titles for stubs with absolute links using
// an independent bounded pool. Failures keep the truncated title.
func (h *Harvester) enrichTitles(ctx context.Context, stubs []core.HarvestedStub) {
	workers := h.cfg.TitleWorkers
	if len(stubs) < workers {
		workers = len(stubs)
	}
	if workers == 0 {
		return
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		h.logger.Error("failed to create title pool", "err", err)
		return
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := range stubs {
		idx := i
		if !strings.HasPrefix(stubs[idx].Link, "http") {
			continue
		}
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if title := h.fetchFullTitle(ctx, stubs[idx].Link); title != "" {
				stubs[idx].Title = title
			}
		})
		if submitErr != nil {
			wg.Done()
		}
	}
	wg.Wait()
}

// fetchFullTitle fetches an article page and extracts its <title>.
// Returns "" on any failure.
func (h *Harvester) fetchFullTitle(ctx context.Context, link string) string {
	payload, err := h.get(ctx, link, h.cfg.TitleTimeout)
	if err != nil {
		h.logger.Debug("title fetch failed", "url", link, "err", err)
		return ""
	}
	title, err := parseTitle(payload)
	if err != nil {
		return ""
	}
	return title
}

// get issues one GET with a bounded deadline and returns the body.
func (h *Harvester) get(ctx context.Context, rawURL string, timeout time.Duration) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", h.cfg.UserAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

func (h *Harvester) dump(ctx context.Context, keyword string, page int, payload []byte) {
	if h.dumps == nil {
		return
	}
	if err := h.dumps.SaveDump(ctx, keyword, page, payload); err != nil {
		h.logger.Error("failed to save debug dump",
			"keyword", keyword, "page", page, "err", err)
	}
}

// dedupeByURL keeps the first-seen stub per URL. Order is completion
// order, so which duplicate survives is not stable across runs; only
// uniqueness is guaranteed.
func dedupeByURL(stubs []core.HarvestedStub) []core.HarvestedStub {
	seen := make(map[core.ID]struct{}, len(stubs))
	unique := make([]core.HarvestedStub, 0, len(stubs))
	for _, stub := range stubs {
		if stub.Link == "" {
			continue
		}
		id := core.IDFromContent(stub.Link)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, stub)
	}
	return unique
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}
