package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.Pipeline.AgeCeiling)
	assert.Equal(t, 1, cfg.Pipeline.Parallelism)
	assert.Equal(t, 18, cfg.Analytics.MinimumAge)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "data/raw/Human Resources.csv", cfg.Paths.InputFile)
}

func TestLoadFrom_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
pipeline:
  as_of: "2024-01-01"
  age_ceiling: 90
analytics:
  minimum_age: 21
logging:
  level: debug
paths:
  input_file: /data/hr.xlsx
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01", cfg.Pipeline.AsOf)
	assert.Equal(t, 90, cfg.Pipeline.AgeCeiling)
	assert.Equal(t, 21, cfg.Analytics.MinimumAge)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/data/hr.xlsx", cfg.Paths.InputFile)

	// Untouched fields keep their defaults.
	assert.Equal(t, 1, cfg.Pipeline.Parallelism)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0644))

	t.Setenv("HR_LOGGING_LEVEL", "warn")
	t.Setenv("HR_PIPELINE_PARALLELISM", "4")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 4, cfg.Pipeline.Parallelism)
}

func TestLoadFrom_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad as_of", content: "pipeline:\n  as_of: \"01/01/2024\"\n"},
		{name: "bad log level", content: "logging:\n  level: loud\n"},
		{name: "bad port", content: "server:\n  port: 99999\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadFrom(path)
			assert.Error(t, err)
		})
	}
}

func TestResolveAsOf(t *testing.T) {
	now := time.Date(2024, 6, 15, 13, 45, 0, 0, time.Local)

	t.Run("explicit date", func(t *testing.T) {
		cfg := Default()
		cfg.Pipeline.AsOf = "2024-01-01"

		asOf, err := cfg.ResolveAsOf(now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), asOf)
	})

	t.Run("defaults to today at midnight", func(t *testing.T) {
		cfg := Default()

		asOf, err := cfg.ResolveAsOf(now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), asOf)
	})

	t.Run("invalid date", func(t *testing.T) {
		cfg := Default()
		cfg.Pipeline.AsOf = "June 15"

		_, err := cfg.ResolveAsOf(now)
		assert.Error(t, err)
	})
}
