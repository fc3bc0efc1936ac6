package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ollama-catalog/internal/extract"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json5"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, 30*time.Second, cfg.Timeout())
	require.False(t, cfg.Telemetry.Enabled())
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json5")
	err := os.WriteFile(path, []byte(`{
		base_url: "http://localhost:8080",
		timeout_seconds: 5,
		selectors: {
			description: "article.summary",
		},
		telemetry: {
			otlp: {
				traces: { http_endpoint: "localhost:4318" },
			},
		},
	}`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080", cfg.BaseUrl)
	require.Equal(t, DefaultOutputDir, cfg.OutputDir)
	require.Equal(t, DefaultUserAgent, cfg.UserAgent)
	require.Equal(t, 5*time.Second, cfg.Timeout())
	require.True(t, cfg.Telemetry.Enabled())

	expected := extract.DefaultSelectors()
	expected.Description = "article.summary"
	require.Equal(t, expected, cfg.Selectors)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{base_url: `), 0644))

	_, err := Load(path)
	require.Error(t, err)
}
