package commands

import (
	"slices"

	"github.com/spf13/cobra"

	"ollama-catalog/internal/catalog"
	"ollama-catalog/internal/catalogdb"
)

var (
	listDb         *string
	listMinContext *int
)

func init() {
	listDb = listCmd.Flags().String("db", "", "Read from a sqlite index written by combine instead of the catalog file.")
	listMinContext = listCmd.Flags().Int("min-context", 0, "Only list models with at least this many context tokens.")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list [--db <path/to/index.db>] [--min-context <tokens>]",
	Short: "Prints the combined catalog as a table.",
	Run: func(cmd *cobra.Command, args []string) {
		if *listDb == "" {
			records := readCatalog(cmd.Context())
			records = slices.DeleteFunc(records, func(rec catalog.Record) bool {
				return rec.Limit.Context < *listMinContext
			})
			renderRecords(records)
			return
		}

		db, err := catalogdb.Open(*listDb)
		if err != nil {
			fatal("failed to open index", err)
		}
		defer db.Close()

		records, err := db.MinContext(cmd.Context(), *listMinContext)
		if err != nil {
			fatal("failed to query index", err)
		}
		renderRecords(records)
	},
}
