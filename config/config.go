// Package config provides file-based configuration for the pressgather CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"

	"github.com/pressgather/pressgather/harvest"
	"github.com/pressgather/pressgather/rank"
)

// Configuration validation errors.
var (
	ErrInvalidPageSize       = errors.New("harvest.page_size must be at least 1")
	ErrInvalidWorkers        = errors.New("harvest worker counts must be at least 1")
	ErrInvalidTimeout        = errors.New("harvest timeouts must be at least 1 second")
	ErrInvalidMaxPages       = errors.New("harvest.max_pages must be at least 1")
	ErrInvalidScoreShares    = errors.New("rank keyword_share and semantic_share must sum to 1.0")
	ErrInvalidVocabularyCap  = errors.New("rank.max_vocabulary must be at least 1")
	ErrInvalidDocFreqCeiling = errors.New("rank.max_doc_freq must be in (0, 1]")
	ErrInvalidLogLevel       = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config is the complete application configuration.
type Config struct {
	Harvest   HarvestConfig   `yaml:"harvest"`
	Rank      RankConfig      `yaml:"rank"`
	Dumps     DumpsConfig     `yaml:"dumps"`
	Sentiment SentimentConfig `yaml:"sentiment"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// HarvestConfig tunes the Google News harvester.
type HarvestConfig struct {
	BaseURL        string `yaml:"base_url"`
	UserAgent      string `yaml:"user_agent"`
	PageSize       int    `yaml:"page_size"`
	MaxPages       int    `yaml:"max_pages"`
	KeywordWorkers int    `yaml:"keyword_workers"`
	PageWorkers    int    `yaml:"page_workers"`
	TitleWorkers   int    `yaml:"title_workers"`
	RequestTimeout int    `yaml:"request_timeout_sec"`
	TitleTimeout   int    `yaml:"title_timeout_sec"`
	EnrichTitles   *bool  `yaml:"enrich_titles"`
}

// RankConfig tunes relevance scoring.
type RankConfig struct {
	TitleWeight        float64 `yaml:"title_weight"`
	ContentWeight      float64 `yaml:"content_weight"`
	SourceWeight       float64 `yaml:"source_weight"`
	TitlePhraseBonus   float64 `yaml:"title_phrase_bonus"`
	ContentPhraseBonus float64 `yaml:"content_phrase_bonus"`
	KeywordShare       float64 `yaml:"keyword_share"`
	SemanticShare      float64 `yaml:"semantic_share"`
	MaxVocabulary      int     `yaml:"max_vocabulary"`
	MaxDocFreq         float64 `yaml:"max_doc_freq"`
}

// DumpsConfig controls persistence of pages that yielded no results.
type DumpsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// SentimentConfig controls local VADER labeling of harvested articles.
type SentimentConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LoggingConfig selects the log level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is supplied. It
// mirrors the harvester and ranker package defaults.
func Default() *Config {
	hc := harvest.DefaultConfig()
	rw := rank.DefaultWeights()
	enrich := hc.EnrichTitles
	return &Config{
		Harvest: HarvestConfig{
			BaseURL:        hc.BaseURL,
			UserAgent:      hc.UserAgent,
			PageSize:       hc.PageSize,
			MaxPages:       hc.MaxPages,
			KeywordWorkers: hc.KeywordWorkers,
			PageWorkers:    hc.PageWorkers,
			TitleWorkers:   hc.TitleWorkers,
			RequestTimeout: int(hc.RequestTimeout / time.Second),
			TitleTimeout:   int(hc.TitleTimeout / time.Second),
			EnrichTitles:   &enrich,
		},
		Rank: RankConfig{
			TitleWeight:        rw.Title,
			ContentWeight:      rw.Content,
			SourceWeight:       rw.Source,
			TitlePhraseBonus:   rw.TitlePhrase,
			ContentPhraseBonus: rw.ContentPhrase,
			KeywordShare:       rw.KeywordShare,
			SemanticShare:      rw.SemanticShare,
			MaxVocabulary:      5000,
			MaxDocFreq:         0.95,
		},
		Dumps: DumpsConfig{
			Enabled: false,
			Dir:     "dumps",
		},
		Sentiment: SentimentConfig{Enabled: false},
		Logging:   LoggingConfig{Level: "info"},
	}
}

// Load reads and validates a YAML configuration file. Fields the file
// omits keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadEnv loads environment variables from a dotenv file, if present.
func LoadEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return gotenv.Load(path)
}

// Validate checks the configuration for out-of-range values.
func (c *Config) Validate() error {
	if c.Harvest.PageSize < 1 {
		return ErrInvalidPageSize
	}
	if c.Harvest.MaxPages < 1 {
		return ErrInvalidMaxPages
	}
	if c.Harvest.KeywordWorkers < 1 || c.Harvest.PageWorkers < 1 || c.Harvest.TitleWorkers < 1 {
		return ErrInvalidWorkers
	}
	if c.Harvest.RequestTimeout < 1 || c.Harvest.TitleTimeout < 1 {
		return ErrInvalidTimeout
	}

	shares := c.Rank.KeywordShare + c.Rank.SemanticShare
	if shares < 0.999 || shares > 1.001 {
		return ErrInvalidScoreShares
	}
	if c.Rank.MaxVocabulary < 1 {
		return ErrInvalidVocabularyCap
	}
	if c.Rank.MaxDocFreq <= 0 || c.Rank.MaxDocFreq > 1 {
		return ErrInvalidDocFreqCeiling
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// HarvesterConfig converts the file settings into the harvester's form.
func (c *Config) HarvesterConfig() harvest.Config {
	hc := harvest.Config{
		BaseURL:        c.Harvest.BaseURL,
		UserAgent:      c.Harvest.UserAgent,
		PageSize:       c.Harvest.PageSize,
		MaxPages:       c.Harvest.MaxPages,
		KeywordWorkers: c.Harvest.KeywordWorkers,
		PageWorkers:    c.Harvest.PageWorkers,
		TitleWorkers:   c.Harvest.TitleWorkers,
		RequestTimeout: time.Duration(c.Harvest.RequestTimeout) * time.Second,
		TitleTimeout:   time.Duration(c.Harvest.TitleTimeout) * time.Second,
	}
	if c.Harvest.EnrichTitles != nil {
		hc.EnrichTitles = *c.Harvest.EnrichTitles
	}
	return hc
}

// RankerOptions converts the file settings into ranker options.
func (c *Config) RankerOptions() []rank.Option {
	w := rank.Weights{
		Title:         c.Rank.TitleWeight,
		Content:       c.Rank.ContentWeight,
		Source:        c.Rank.SourceWeight,
		TitlePhrase:   c.Rank.TitlePhraseBonus,
		ContentPhrase: c.Rank.ContentPhraseBonus,
		KeywordShare:  c.Rank.KeywordShare,
		SemanticShare: c.Rank.SemanticShare,
	}
	return []rank.Option{
		rank.WithWeights(w),
		rank.WithVectorizer(c.Rank.MaxVocabulary, c.Rank.MaxDocFreq),
	}
}

// LogLevel maps the configured level name to a slog level string consumers
// can parse; unknown names fall back to info.
func (c *Config) LogLevel() string {
	return c.Logging.Level
}
