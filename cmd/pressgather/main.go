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

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/urfave/cli/v2"

	"github.com/pressgather/pressgather"
	"github.com/pressgather/pressgather/config"
	"github.com/pressgather/pressgather/core"
	"github.com/pressgather/pressgather/dumpstore"
	"github.com/pressgather/pressgather/export"
	"github.com/pressgather/pressgather/harvest"
	"github.com/pressgather/pressgather/normalize"
	"github.com/pressgather/pressgather/rank"
	"github.com/pressgather/pressgather/records"
	"github.com/pressgather/pressgather/sentiment"
)

func main() {
	app := &cli.App{
		Name:  "pressgather",
		Usage: "Aggregate, harvest and rank news articles from platform exports",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
			},
			&cli.StringFlag{
				Name:  "env",
				Usage: "Path to dotenv file",
				Value: ".env",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:      "harvest",
				Usage:     "Collect article stubs from Google News",
				ArgsUsage: " ",
				Action:    harvestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "keywords",
						Aliases:  []string{"k"},
						Usage:    "Comma-separated search keywords",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:  "language",
						Usage: "Result language codes (e.g. lang_en)",
					},
					&cli.StringSliceFlag{
						Name:  "region",
						Usage: "Region codes (e.g. US); only the first is sent",
					},
					&cli.StringFlag{
						Name:  "time-window",
						Usage: "Recency filter (h, d, w, m, y)",
					},
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort order: relevance or recency",
						Value: harvest.SortRelevance,
					},
					&cli.IntFlag{
						Name:  "pages",
						Usage: "Result pages per keyword",
						Value: 0,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file (.csv or .xlsx); default is a generated name",
					},
					&cli.StringFlag{
						Name:  "user",
						Usage: "Name baked into the generated output filename",
					},
					&cli.BoolFlag{
						Name:  "no-title-fetch",
						Usage: "Skip fetching article pages for full headlines",
					},
				},
			},
			{
				Name:      "aggregate",
				Usage:     "Combine platform export files into one canonical collection",
				ArgsUsage: "FILE...",
				Action:    aggregateCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file (.csv or .xlsx); default is a generated name",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Rank aggregated articles against a query",
				ArgsUsage: "FILE...",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "Free-text search query",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "select",
						Usage: "Selection method: count or percentage",
						Value: rank.SelectCount,
					},
					&cli.Float64Flag{
						Name:  "top",
						Usage: "Rows to keep (count) or percentage of rows",
						Value: 50,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file (.csv or .xlsx); default is a generated name",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// setup wires the logger and loads environment and file configuration
// before any command runs.
func setup(c *cli.Context) error {
	if err := config.LoadEnv(c.String("env")); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := config.Default()
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	levelStr := strings.ToLower(c.String("log-level"))
	if !c.IsSet("log-level") && cfg.Logging.Level != "" {
		levelStr = cfg.Logging.Level
	}

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)

	c.App.Metadata = map[string]interface{}{"config": cfg}
	return nil
}

func appConfig(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata["config"].(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

func harvestCommand(c *cli.Context) error {
	cfg := appConfig(c)
	hc := cfg.HarvesterConfig()
	if c.Bool("no-title-fetch") {
		hc.EnrichTitles = false
	}

	opts := []harvest.Option{}
	if cfg.Dumps.Enabled {
		store, err := dumpstore.Open(cfg.Dumps.Dir)
		if err != nil {
			return fmt.Errorf("failed to open dump store: %w", err)
		}
		defer store.Close()
		opts = append(opts, harvest.WithDumpStore(store))
	}

	keywords, err := core.SplitKeywords(c.String("keywords"))
	if err != nil {
		return err
	}

	q := harvest.Query{
		Keywords:   keywords,
		Languages:  c.StringSlice("language"),
		Regions:    c.StringSlice("region"),
		TimeWindow: c.String("time-window"),
		SortOrder:  c.String("sort"),
		MaxPages:   c.Int("pages"),
	}

	harvester := harvest.NewHarvester(hc, opts...)
	stubs, err := harvester.Harvest(context.Background(), q)
	if err != nil {
		return fmt.Errorf("harvest failed: %w", err)
	}
	if len(stubs) == 0 {
		fmt.Fprintln(os.Stderr, "No articles found.")
		return nil
	}

	output := c.String("output")
	if output == "" {
		output = export.HarvestFilename(
			c.String("user"),
			harvest.TimeWindowName(q.TimeWindow),
			q.Keywords,
			q.SortOrder,
			time.Now(),
		)
	}
	if err := export.WriteStubs(output, stubs); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Harvested %d articles to %s\n", len(stubs), output)
	return nil
}

func aggregateCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one export file is required")
	}
	cfg := appConfig(c)

	session := pressgather.NewSession()
	schema := normalize.NewSchema(normalize.NewDates(nil))
	reports := session.Aggregate(schema, c.Args().Slice())

	failures := 0
	for _, r := range reports {
		if r.Err != nil {
			failures++
			fmt.Fprintf(os.Stderr, "skipped %s: %v\n", r.Path, r.Err)
			continue
		}
		fmt.Fprintf(os.Stderr, "%s (%s): %d articles\n", r.Path, r.Platform, r.Articles)
	}
	if session.Len() == 0 {
		return fmt.Errorf("no articles aggregated from %d files", c.NArg())
	}

	articles := session.Articles()
	if cfg.Sentiment.Enabled {
		sentiment.Enrich(articles)
	}

	output := c.String("output")
	if output == "" {
		output = export.CombinedFilename(time.Now())
	}
	if err := export.WriteArticles(output, articles); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Aggregated %d articles (%d files skipped) to %s\n", len(articles), failures, output)
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one export file is required")
	}
	cfg := appConfig(c)
	query := c.String("query")

	docs, err := loadDocuments(c.Args().Slice())
	if err != nil {
		return err
	}

	ranker := rank.NewRanker(cfg.RankerOptions()...)
	scored, err := ranker.Rank(query, docs)
	if err != nil {
		return fmt.Errorf("ranking failed: %w", err)
	}

	selected, err := rank.Select(scored, c.String("select"), c.Float64("top"))
	if err != nil {
		return err
	}

	output := c.String("output")
	if output == "" {
		output = export.RankedFilename(query, time.Now())
	}
	if err := export.WriteScored(output, selected); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Ranked %d articles, kept %d, written to %s\n", len(scored), len(selected), output)
	return nil
}

// loadDocuments reads export files into rankable documents. Raw harvester
// files carry a snippet column that feeds the content side of scoring;
// canonical exports rank on title alone.
func loadDocuments(paths []string) ([]rank.Document, error) {
	schema := normalize.NewSchema(normalize.NewDates(nil))
	var docs []rank.Document

	for _, path := range paths {
		table, err := records.ReadFile(path)
		if err != nil {
			return nil, err
		}
		platform := records.DetectPlatform(path)
		articles, err := schema.Normalize(table, platform)
		if err != nil {
			return nil, err
		}
		for i, a := range articles {
			doc := rank.Document{Article: a}
			if table.HasColumn("snippet") && i < len(table.Rows) {
				doc.Snippet = table.Rows[i]["snippet"]
			}
			docs = append(docs, doc)
		}
	}
	return docs, nil
}
