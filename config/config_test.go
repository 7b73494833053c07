package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 10, cfg.Harvest.PageSize)
	assert.Equal(t, 3, cfg.Harvest.KeywordWorkers)
	assert.Equal(t, 5, cfg.Harvest.PageWorkers)
	assert.InDelta(t, 0.6, cfg.Rank.KeywordShare, 1e-9)
	assert.InDelta(t, 0.4, cfg.Rank.SemanticShare, 1e-9)
	assert.Equal(t, 5000, cfg.Rank.MaxVocabulary)
	assert.False(t, cfg.Dumps.Enabled)
	assert.False(t, cfg.Sentiment.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad(t *testing.T) {
	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := writeTempConfig(t, "harvest:\n  page_size: 20\nlogging:\n  level: debug\n")
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 20, cfg.Harvest.PageSize)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, 3, cfg.Harvest.KeywordWorkers, "untouched fields keep defaults")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeTempConfig(t, "harvest: [not a map")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name    string
			content string
			wantErr error
		}{
			{"zero page size", "harvest:\n  page_size: 0\n", ErrInvalidPageSize},
			{"zero max pages", "harvest:\n  max_pages: 0\n", ErrInvalidMaxPages},
			{"zero workers", "harvest:\n  page_workers: 0\n", ErrInvalidWorkers},
			{"zero timeout", "harvest:\n  request_timeout_sec: 0\n", ErrInvalidTimeout},
			{"shares do not sum", "rank:\n  keyword_share: 0.9\n  semantic_share: 0.9\n", ErrInvalidScoreShares},
			{"vocabulary cap", "rank:\n  max_vocabulary: 0\n", ErrInvalidVocabularyCap},
			{"doc freq ceiling", "rank:\n  max_doc_freq: 1.5\n", ErrInvalidDocFreqCeiling},
			{"log level", "logging:\n  level: verbose\n", ErrInvalidLogLevel},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := Load(writeTempConfig(t, tt.content))
				assert.ErrorIs(t, err, tt.wantErr)
			})
		}
	})
}

func TestHarvesterConfigBridge(t *testing.T) {
	path := writeTempConfig(t, "harvest:\n  page_size: 25\n  request_timeout_sec: 30\n  enrich_titles: false\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	hc := cfg.HarvesterConfig()
	assert.Equal(t, 25, hc.PageSize)
	assert.Equal(t, 30*time.Second, hc.RequestTimeout)
	assert.False(t, hc.EnrichTitles)
}

func TestRankerOptionsBridge(t *testing.T) {
	path := writeTempConfig(t, "rank:\n  title_weight: 60\n  keyword_share: 0.7\n  semantic_share: 0.3\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	opts := cfg.RankerOptions()
	assert.Len(t, opts, 2)
}

func TestLoadEnv(t *testing.T) {
	t.Run("missing file is not an error", func(t *testing.T) {
		assert.NoError(t, LoadEnv(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("empty path is a no-op", func(t *testing.T) {
		assert.NoError(t, LoadEnv(""))
	})

	t.Run("variables are loaded", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("PRESSGATHER_TEST_VAR=loaded\n"), 0o644))
		t.Cleanup(func() { os.Unsetenv("PRESSGATHER_TEST_VAR") })

		require.NoError(t, LoadEnv(path))
		assert.Equal(t, "loaded", os.Getenv("PRESSGATHER_TEST_VAR"))
	})
}
