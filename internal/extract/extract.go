// Package extract pulls the typed fields of a model out of its detail page.
//
// Every lookup is optional: markup that is missing degrades to an empty or zero
// value, extraction itself never fails.
package extract

import (
	"context"
	"regexp"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"ollama-catalog/internal/htmlutil"
	"ollama-catalog/internal/units"
)

var tracer = otel.Tracer("catalog.extract")

// Selectors locate the fields of a detail page.
type Selectors struct {
	Description string `json:"description"`
	Name        string `json:"name"`
	// ParamBadge selects candidate parameter-size badges.
	ParamBadge string `json:"param_badge"`
	// ParamBadgeClass is searched for in the whole class attribute of a badge,
	// it tells size badges apart from the other badges sharing their shape.
	ParamBadgeClass string `json:"param_badge_class"`
	// VariantRow selects the desktop rows of the variant listing.
	VariantRow string `json:"variant_row"`
	// VariantValue selects the values of a row, in order: size, context, input type.
	VariantValue string `json:"variant_value"`
}

func DefaultSelectors() Selectors {
	return Selectors{
		Description:     "div.prose",
		Name:            "h1",
		ParamBadge:      "span[x-test-size]",
		ParamBadgeClass: `.*bg-\[#ddf4ff\].*text-blue-600.*`,
		VariantRow:      `div.hidden.group.px-4.py-3.sm\:grid.sm\:grid-cols-12.text-\[13px\]`,
		VariantValue:    "p.text-neutral-500",
	}
}

// Fields are the raw values read from one detail page.
type Fields struct {
	Name        string
	Description string
	// Sizes are distinct parameter counts in billions, ascending.
	Sizes []float64
	// MaxContext is the largest context size over all variants, in tokens.
	MaxContext int
}

type Extractor struct {
	selectors  Selectors
	badgeClass *regexp.Regexp
}

// New compiles the selectors into an Extractor. Only the badge class pattern can
// be invalid, CSS selectors are compiled lazily by goquery.
func New(selectors Selectors) (Extractor, error) {
	badgeClass, err := regexp.Compile(selectors.ParamBadgeClass)
	if err != nil {
		return Extractor{}, err
	}
	return Extractor{selectors: selectors, badgeClass: badgeClass}, nil
}

// Text returns the lower-cased, stripped text of the first node matching selector,
// or def when nothing matches.
func (e Extractor) Text(doc *goquery.Document, selector, def string) string {
	sel, ok := htmlutil.Lookup(doc.Selection, selector)
	if !ok {
		return def
	}
	return strings.ToLower(htmlutil.StrippedText(sel.Get(0)))
}

// ParameterLabels returns the distinct, positive parameter counts of the size badges, ascending.
func (e Extractor) ParameterLabels(doc *goquery.Document) []float64 {
	sizes := []float64{}
	doc.Find(e.selectors.ParamBadge).Each(func(_ int, badge *goquery.Selection) {
		if badge.AttrOr("x-test-size", "") != "" {
			return
		}
		if !e.badgeClass.MatchString(badge.AttrOr("class", "")) {
			return
		}

		size := units.ParseParamCount(htmlutil.StrippedText(badge.Get(0)))
		if size <= 0 || slices.Contains(sizes, size) {
			return
		}
		sizes = append(sizes, size)
	})
	slices.Sort(sizes)
	return sizes
}

// MaxContext returns the largest context size listed in the variant rows.
// Rows with fewer than two values carry no context and are skipped.
func (e Extractor) MaxContext(doc *goquery.Document) int {
	maxContext := 0
	doc.Find(e.selectors.VariantRow).Each(func(_ int, row *goquery.Selection) {
		values := htmlutil.Texts(row.Find(e.selectors.VariantValue))
		if len(values) < 2 {
			return
		}
		tokens := units.ParseContextSize(values[1])
		maxContext = max(maxContext, tokens)
	})
	return maxContext
}

// Extract reads every field of a detail page, the name falls back to id.
func (e Extractor) Extract(ctx context.Context, doc *goquery.Document, id string) Fields {
	_, span := tracer.Start(ctx, "Extract")
	defer span.End()

	fields := Fields{
		Name:        e.Text(doc, e.selectors.Name, id),
		Description: e.Text(doc, e.selectors.Description, ""),
		Sizes:       e.ParameterLabels(doc),
		MaxContext:  e.MaxContext(doc),
	}

	span.SetAttributes(
		attribute.String("id", id),
		attribute.Int("sizes", len(fields.Sizes)),
		attribute.Int("max_context", fields.MaxContext),
	)
	return fields
}
