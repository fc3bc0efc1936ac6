package extract

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const detailPage = `<html><body>
<h1> Llama3 </h1>
<div class="prose"><p>Supports <b>Vision</b> and tool use.</p><script>var x = 1;</script></div>
<span x-test-size class="inline-flex bg-[#ddf4ff] px-2 text-blue-600">8b</span>
<span x-test-size class="inline-flex bg-[#ddf4ff] px-2 text-blue-600">70B</span>
<span x-test-size class="inline-flex bg-[#ddf4ff] px-2 text-blue-600">8b</span>
<span x-test-size class="inline-flex bg-[#ddf4ff] px-2 text-blue-600">latest</span>
<span x-test-size class="inline-flex bg-neutral-100 text-neutral-600">tools</span>
<span x-test-size="hidden" class="bg-[#ddf4ff] text-blue-600">405b</span>
<span x-test-size class="bg-[#ddf4ff] text-blue-600">500m</span>
<div class="hidden group px-4 py-3 sm:grid sm:grid-cols-12 text-[13px]">
	<p class="text-neutral-500">4.7GB</p><p class="text-neutral-500">8K</p><p class="text-neutral-500">Text</p>
</div>
<div class="hidden group px-4 py-3 sm:grid sm:grid-cols-12 text-[13px]">
	<p class="text-neutral-500">40GB</p><p class="text-neutral-500"> 128k </p><p class="text-neutral-500">Text</p>
</div>
<div class="hidden group px-4 py-3 sm:grid sm:grid-cols-12 text-[13px]">
	<p class="text-neutral-500">1024k</p>
</div>
<div class="group px-4 py-3 sm:grid sm:grid-cols-12">
	<p class="text-neutral-500">1GB</p><p class="text-neutral-500">1000k</p>
</div>
</body></html>`

func parse(t *testing.T, page string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func newExtractor(t *testing.T) Extractor {
	e, err := New(DefaultSelectors())
	require.NoError(t, err)
	return e
}

func TestExtract(t *testing.T) {
	e := newExtractor(t)
	fields := e.Extract(context.Background(), parse(t, detailPage), "llama3")

	expected := Fields{
		Name:        "llama3",
		Description: "supportsvisionand tool use.",
		Sizes:       []float64{0.5, 8, 70},
		MaxContext:  128 * 1024,
	}
	if diff := cmp.Diff(expected, fields); diff != "" {
		t.Fatal("unexpected fields", diff)
	}
}

func TestParameterLabels(t *testing.T) {
	e := newExtractor(t)

	sizes := e.ParameterLabels(parse(t, detailPage))
	require.Equal(t, []float64{0.5, 8, 70}, sizes)

	sizes = e.ParameterLabels(parse(t, `<html><body><p>nothing here</p></body></html>`))
	require.NotNil(t, sizes)
	require.Empty(t, sizes)
}

func TestMaxContext(t *testing.T) {
	e := newExtractor(t)
	require.Equal(t, 128*1024, e.MaxContext(parse(t, detailPage)))

	shortRows := `<div class="hidden group px-4 py-3 sm:grid sm:grid-cols-12 text-[13px]">
		<p class="text-neutral-500">4.7GB</p>
	</div>`
	require.Equal(t, 0, e.MaxContext(parse(t, shortRows)))

	unparsable := `<div class="hidden group px-4 py-3 sm:grid sm:grid-cols-12 text-[13px]">
		<p class="text-neutral-500">4.7GB</p><p class="text-neutral-500">unknown</p>
	</div>`
	require.Equal(t, 0, e.MaxContext(parse(t, unparsable)))
}

func TestMissingMarkup(t *testing.T) {
	e := newExtractor(t)
	fields := e.Extract(context.Background(), parse(t, `<html><body></body></html>`), "phi3")

	require.Equal(t, "phi3", fields.Name)
	require.Equal(t, "", fields.Description)
	require.Empty(t, fields.Sizes)
	require.Equal(t, 0, fields.MaxContext)
}

func TestText(t *testing.T) {
	e := newExtractor(t)
	doc := parse(t, detailPage)

	require.Equal(t, "llama3", e.Text(doc, "h1", "fallback"))
	require.Equal(t, "fallback", e.Text(doc, "h2", "fallback"))
}

func TestNewRejectsBadPattern(t *testing.T) {
	selectors := DefaultSelectors()
	selectors.ParamBadgeClass = "bg-[("
	_, err := New(selectors)
	require.Error(t, err)
}
