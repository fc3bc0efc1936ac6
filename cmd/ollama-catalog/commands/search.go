package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ollama-catalog/internal/catalog"
)

var searchLimit *string

func init() {
	searchLimit = searchCmd.Flags().StringP("limit", "n", "", "The maximum number of results, between 0 and 20.")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query...> [--limit <n>]",
	Short: "Searches the combined catalog by model id and provider.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		records := readCatalog(cmd.Context())
		query := strings.Join(args, " ")

		results := catalog.Search(records, query, catalog.ParseLimit(*searchLimit))
		if len(results) == 0 {
			suggestion, ok := catalog.Suggest(records, query)
			if ok {
				fmt.Printf("no models match '%s', did you mean '%s'?\n", query, suggestion)
				return
			}
			fmt.Printf("no models match '%s'\n", query)
			return
		}
		renderRecords(results)
	},
}
