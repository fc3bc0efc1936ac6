package commands

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"ollama-catalog/internal/classify"
	"ollama-catalog/internal/extract"
	"ollama-catalog/internal/harvest"
	"ollama-catalog/internal/ollama"
	"ollama-catalog/internal/telemetry"
)

var scrapeDump *string

func init() {
	scrapeDump = scrapeCmd.Flags().String("dump", "", "A directory to keep a copy of every fetched page in, overrides dump_dir.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--config <path/to/config.json5>]",
	Short: "Fetches every model of the library and writes one record file per model.",
	Run: func(cmd *cobra.Command, args []string) {
		api := telemetry.SlogAPI{}

		dumpDir := cfg.DumpDir
		if *scrapeDump != "" {
			dumpDir = *scrapeDump
		}

		client, err := ollama.NewClient(ollama.ClientOptions{
			BaseUrl:          cfg.BaseUrl,
			UserAgent:        cfg.UserAgent,
			Timeout:          cfg.Timeout(),
			CloudflareBypass: cfg.CloudflareBypass,
			DumpDir:          dumpDir,
		}, telemetry.NewScopedAPI("ollama", api))
		if err != nil {
			fatal("failed to initialize ollama client", err)
		}

		extractor, err := extract.New(cfg.Selectors)
		if err != nil {
			fatal("invalid selectors", err)
		}

		harvester := harvest.NewHarvester(
			client,
			cfg.OutputDir,
			extractor,
			classify.New(classify.DefaultVocabulary()),
			telemetry.NewScopedAPI("harvest", api),
		)

		slog.Info("scraping", "base_url", cfg.BaseUrl, "output_dir", cfg.OutputDir)
		t1 := time.Now()
		summary, err := harvester.Run(cmd.Context())
		if err != nil {
			fatal("scrape failed", err)
		}
		t2 := time.Now()

		slog.Info(
			"scrape finished",
			"discovered", summary.Discovered,
			"saved", len(summary.Saved),
			"failed", len(summary.Failed),
			"seconds", t2.Sub(t1).Seconds(),
		)
		if len(summary.Failed) > 0 {
			slog.Warn("some models could not be scraped", "ids", summary.Failed)
		}
	},
}
