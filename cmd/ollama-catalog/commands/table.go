package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"ollama-catalog/internal/catalog"
	"ollama-catalog/internal/storage"
)

func formatSizes(sizes []float64) string {
	parts := make([]string, len(sizes))
	for i, s := range sizes {
		parts[i] = fmt.Sprintf("%gb", s)
	}
	return strings.Join(parts, ", ")
}

func renderRecords(records []catalog.Record) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Id", "Name", "Capabilities", "Input", "Context", "Sizes"})
	for _, rec := range records {
		t.AppendRow(table.Row{
			rec.ID,
			rec.Name,
			strings.Join(rec.Capabilities, ", "),
			strings.Join(rec.Modalities.Input, ", "),
			rec.Limit.Context,
			formatSizes(rec.Size),
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", "Total", len(records)})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func readCatalog(ctx context.Context) []catalog.Record {
	store := storage.Open(cfg.OutputDir)
	records, err := store.ReadCatalog(ctx)
	if err != nil {
		fatal("failed to read catalog, did you run combine?", err)
	}
	return records
}
