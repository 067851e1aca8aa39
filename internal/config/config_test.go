package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.fiscaldata.treasury.gov/services/api/fiscal_service", cfg.API.BaseURL)
	assert.Equal(t, "/v2/accounting/od/avg_interest_rates", cfg.API.Endpoint)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout())
	assert.False(t, cfg.API.Debug)
	assert.Equal(t, 5, cfg.API.RateLimit)
	assert.Equal(t, time.Second, cfg.API.RateWindow())

	assert.Equal(t, "2020-10", cfg.Data.AvailableFrom)
	assert.Equal(t, "2025-09", cfg.Data.AvailableTo)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FISCALRATES_API_BASE_URL", "http://localhost:9999")
	t.Setenv("FISCALRATES_DATA_AVAILABLE_TO", "2026-03")
	t.Setenv("FISCALRATES_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.API.BaseURL)
	assert.Equal(t, "2026-03", cfg.Data.AvailableTo)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
api:
  base_url: http://example.test
  timeout_sec: 5
data:
  available_from: "2021-01"
  available_to: "2021-12"
logging:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "http://example.test", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout())
	assert.Equal(t, "2021-01", cfg.Data.AvailableFrom)
	assert.Equal(t, "2021-12", cfg.Data.AvailableTo)
	assert.Equal(t, "json", cfg.Logging.Format)

	// Keys absent from the file still get defaults.
	assert.Equal(t, "/v2/accounting/od/avg_interest_rates", cfg.API.Endpoint)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
