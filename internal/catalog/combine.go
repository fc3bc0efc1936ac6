package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"ollama-catalog/internal/telemetry"
)

var tracer = otel.Tracer("catalog")

const (
	report_combine_list    = "combine.list"
	report_combine_read    = "combine.read"
	report_combine_decode  = "combine.decode"
	report_combine_invalid = "combine.invalid"
	report_combine_write   = "combine.write"
)

// CatalogFileName is the name of the combined catalog inside the output directory.
const CatalogFileName = "models.json"

var (
	ErrNothingToCombine = errors.New("no per-model files to combine")
	errNotObject        = errors.New("not a json object")
)

// Source lists and reads per-model record files.
type Source interface {
	// ListUnits returns the names of every *.json file. A missing directory is
	// reported as an error wrapping os.ErrNotExist.
	ListUnits(ctx context.Context) ([]string, error)
	ReadUnit(ctx context.Context, name string) ([]byte, error)
}

// Sink receives the combined, sorted catalog.
type Sink interface {
	WriteCatalog(ctx context.Context, records []Record) error
}

// MultiSink writes the same catalog to every sink in order, stopping at the first error.
type MultiSink []Sink

func (m MultiSink) WriteCatalog(ctx context.Context, records []Record) error {
	for _, sink := range m {
		if err := sink.WriteCatalog(ctx, records); err != nil {
			return err
		}
	}
	return nil
}

// Combine reads every per-model file from src, sorts the records by id and
// writes them to sink. Unreadable or malformed files are reported and skipped.
// It returns the number of records written.
func Combine(ctx context.Context, src Source, sink Sink, tel telemetry.API) (int, error) {
	ctx, span := tracer.Start(ctx, "Combine")
	defer span.End()

	names, err := src.ListUnits(ctx)
	if errors.Is(err, os.ErrNotExist) {
		return 0, ErrNothingToCombine
	}
	if err != nil {
		tel.ReportBroken(report_combine_list, err)
		return 0, fmt.Errorf("list units: %w", err)
	}

	names = slices.DeleteFunc(slices.Clone(names), func(name string) bool {
		return name == CatalogFileName || !strings.HasSuffix(name, ".json")
	})
	if len(names) == 0 {
		return 0, ErrNothingToCombine
	}
	slices.Sort(names)

	records := make([]Record, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		data, err := src.ReadUnit(ctx, name)
		if err != nil {
			tel.ReportWarning(report_combine_read, fmt.Errorf("read '%s': %w", name, err))
			continue
		}
		rec, err := Unmarshal(data)
		if err != nil {
			tel.ReportWarning(report_combine_decode, fmt.Errorf("decode '%s': %w", name, err))
			continue
		}
		if err := rec.Validate(); err != nil {
			tel.ReportWarning(report_combine_invalid, fmt.Errorf("'%s': %w", name, err))
		}
		records = append(records, rec)
	}

	slices.SortStableFunc(records, func(a, b Record) int {
		return strings.Compare(a.ID, b.ID)
	})

	err = sink.WriteCatalog(ctx, records)
	if err != nil {
		tel.ReportBroken(report_combine_write, err)
		return 0, fmt.Errorf("write catalog: %w", err)
	}

	span.SetAttributes(
		attribute.Int("units", len(names)),
		attribute.Int("records", len(records)),
	)
	tel.ReportCount(report_combine_write, int64(len(records)))
	return len(records), nil
}
