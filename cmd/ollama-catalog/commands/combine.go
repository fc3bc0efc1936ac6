package commands

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"ollama-catalog/internal/catalog"
	"ollama-catalog/internal/catalogdb"
	"ollama-catalog/internal/storage"
	"ollama-catalog/internal/telemetry"
)

var combineDb *string

func init() {
	combineDb = combineCmd.Flags().String("db", "", "A sqlite index to mirror the catalog into, overrides sqlite_path.")
	rootCmd.AddCommand(combineCmd)
}

var combineCmd = &cobra.Command{
	Use:   "combine [--db <path/to/index.db>]",
	Short: "Combines every per-model record file into a single sorted catalog.",
	Run: func(cmd *cobra.Command, args []string) {
		store := storage.Open(cfg.OutputDir)

		sinks := catalog.MultiSink{store}
		dbPath := cfg.SqlitePath
		if *combineDb != "" {
			dbPath = *combineDb
		}
		if dbPath != "" {
			db, err := catalogdb.Open(dbPath)
			if err != nil {
				fatal("failed to open index", err)
			}
			defer db.Close()
			sinks = append(sinks, db)
		}

		count, err := catalog.Combine(
			cmd.Context(),
			store,
			sinks,
			telemetry.NewScopedAPI("catalog", telemetry.SlogAPI{}),
		)
		if errors.Is(err, catalog.ErrNothingToCombine) {
			slog.Warn("nothing to combine", "output_dir", cfg.OutputDir)
			return
		}
		if err != nil {
			fatal("combine failed", err)
		}

		slog.Info("catalog written", "path", store.CatalogPath(), "models", count, "index", dbPath)
	},
}
