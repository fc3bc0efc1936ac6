// Package config holds the settings of a catalog run, read from config.json5.
package config

import (
	"errors"
	"os"
	"time"

	"ollama-catalog/internal/configutil"
	"ollama-catalog/internal/extract"
	"ollama-catalog/internal/telemetry"
)

const (
	DefaultBaseUrl   = "https://ollama.com"
	DefaultOutputDir = "ollama"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
)

type Config struct {
	// BaseUrl is the root of the source site.
	BaseUrl string `json:"base_url"`
	// OutputDir is the destination folder for per-item and catalog files.
	OutputDir        string `json:"output_dir"`
	TimeoutSeconds   int    `json:"timeout_seconds"`
	UserAgent        string `json:"user_agent"`
	CloudflareBypass bool   `json:"cloudflare_bypass"`
	SqlitePath       string `json:"sqlite_path"`
	// DumpDir keeps a copy of every fetched page when set.
	DumpDir   string            `json:"dump_dir"`
	Verbose   bool              `json:"verbose"`
	Selectors extract.Selectors `json:"selectors"`
	Telemetry telemetry.Config  `json:"telemetry"`
}

func Default() Config {
	return Config{
		BaseUrl:        DefaultBaseUrl,
		OutputDir:      DefaultOutputDir,
		TimeoutSeconds: 30,
		UserAgent:      DefaultUserAgent,
		Selectors:      extract.DefaultSelectors(),
	}
}

func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load reads the config file at path over the defaults, a missing file is not an error.
func Load(path string) (Config, error) {
	cfg, err := configutil.ReadConfig(path, Default())
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}
