// Package harvest runs the per-model pass: discover every model, fetch and
// extract its detail page and store one record file per model.
package harvest

import (
	"context"
	"errors"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"ollama-catalog/internal/assert"
	"ollama-catalog/internal/catalog"
	"ollama-catalog/internal/classify"
	"ollama-catalog/internal/extract"
	"ollama-catalog/internal/storage"
	"ollama-catalog/internal/telemetry"
)

const (
	report_harvester_open     = "harvester.open"
	report_harvester_discover = "harvester.discover"
	report_harvester_item     = "harvester.item"
	report_harvester_saved    = "harvester.saved"
)

var (
	tracer = otel.Tracer("catalog.harvest")
	meter  = otel.Meter("catalog.harvest")
)

var ErrNoItems = errors.New("no models found on the listing page")

// Source is where models are discovered and fetched from.
type Source interface {
	Discover(ctx context.Context) ([]string, error)
	FetchDetail(ctx context.Context, id string) (*goquery.Document, error)
}

type Summary struct {
	Discovered int
	Saved      []string
	Failed     []string
}

type Harvester struct {
	source     Source
	outputDir  string
	extractor  extract.Extractor
	classifier classify.Classifier
	tel        telemetry.API
	items      metric.Int64Counter
}

func NewHarvester(
	source Source,
	outputDir string,
	extractor extract.Extractor,
	classifier classify.Classifier,
	tel telemetry.API,
) Harvester {
	assert.NotNil(source)
	assert.NotEmptyStr(outputDir)
	assert.NotNil(tel)

	items, err := meter.Int64Counter(
		"catalog.harvest.items",
		metric.WithDescription("models processed by the harvester, by outcome"),
	)
	if err != nil {
		otel.Handle(err)
	}
	return Harvester{
		source:     source,
		outputDir:  outputDir,
		extractor:  extractor,
		classifier: classifier,
		tel:        tel,
		items:      items,
	}
}

func (h Harvester) count(ctx context.Context, outcome string) {
	if h.items == nil {
		return
	}
	h.items.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// Run harvests every discovered model. Failing to prepare the output directory,
// reach the listing or find any model is fatal and leaves no files behind. A
// model that cannot be fetched or written is reported and skipped.
func (h Harvester) Run(ctx context.Context) (Summary, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	store, err := storage.Create(h.outputDir)
	if err != nil {
		h.tel.ReportBroken(report_harvester_open, err)
		return Summary{}, err
	}

	ids, err := h.source.Discover(ctx)
	if err != nil {
		h.tel.ReportBroken(report_harvester_discover, err)
		return Summary{}, fmt.Errorf("discover: %w", err)
	}
	if len(ids) == 0 {
		h.tel.ReportBroken(report_harvester_discover, ErrNoItems)
		return Summary{}, ErrNoItems
	}

	summary := Summary{
		Discovered: len(ids),
		Saved:      []string{},
		Failed:     []string{},
	}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		err := h.harvestOne(ctx, store, id)
		if err != nil {
			h.tel.ReportWarning(report_harvester_item, fmt.Errorf("'%s': %w", id, err))
			summary.Failed = append(summary.Failed, id)
			h.count(ctx, "failed")
			continue
		}
		summary.Saved = append(summary.Saved, id)
		h.count(ctx, "saved")
	}

	span.SetAttributes(
		attribute.Int("discovered", summary.Discovered),
		attribute.Int("saved", len(summary.Saved)),
		attribute.Int("failed", len(summary.Failed)),
	)
	h.tel.ReportCount(report_harvester_saved, int64(len(summary.Saved)))
	return summary, nil
}

func (h Harvester) harvestOne(ctx context.Context, store storage.Store, id string) error {
	doc, err := h.source.FetchDetail(ctx, id)
	if err != nil {
		return err
	}

	fields := h.extractor.Extract(ctx, doc, id)
	tags := h.classifier.Classify(fields.Description)
	rec := catalog.Build(id, fields, tags)

	h.tel.ReportDebug("harvested", id, len(rec.Size), rec.Limit.Context)
	return store.WriteRecord(ctx, rec)
}
