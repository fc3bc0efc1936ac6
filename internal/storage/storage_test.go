package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"ollama-catalog/internal/catalog"
	"ollama-catalog/internal/classify"
	"ollama-catalog/internal/extract"
	"ollama-catalog/internal/telemetry"
)

func TestFileId(t *testing.T) {
	require.Equal(t, "llama3", FileId("llama3"))
	require.Equal(t, "user_model_tag_50_", FileId("user/model:tag%50%"))
}

func TestCreateFailsOnFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0666))

	_, err := Create(filepath.Join(file, "out"))
	require.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := Create(filepath.Join(t.TempDir(), "ollama"))
	require.NoError(t, err)

	classifier := classify.New(classify.DefaultVocabulary())
	for _, id := range []string{"phi3", "llava", "ns/model:7b"} {
		fields := extract.Fields{Name: id, Description: "vision", Sizes: []float64{7}}
		rec := catalog.Build(id, fields, classifier.Classify(fields.Description))
		require.NoError(t, store.WriteRecord(ctx, rec))
	}
	require.FileExists(t, filepath.Join(store.Dir(), "ns_model_7b.json"))

	// overwrite keeps a single file per model
	rec := catalog.Build("phi3", extract.Fields{Name: "phi3 mini"}, classify.Result{})
	require.NoError(t, store.WriteRecord(ctx, rec))
	data, err := os.ReadFile(store.RecordPath("phi3"))
	require.NoError(t, err)
	require.Contains(t, string(data), `"name": "phi3 mini"`)

	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "readme.txt"), []byte("hi"), 0666))

	units, err := store.ListUnits(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"llava.json", "ns_model_7b.json", "phi3.json"}, units)

	count, err := catalog.Combine(ctx, store, store, &telemetry.Recorder{})
	require.NoError(t, err)
	require.Equal(t, 3, count)

	units, err = store.ListUnits(ctx)
	require.NoError(t, err)
	require.Contains(t, units, catalog.CatalogFileName)

	records, err := store.ReadCatalog(ctx)
	require.NoError(t, err)
	ids := []string{}
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	if diff := cmp.Diff([]string{"llava", "ns/model:7b", "phi3"}, ids); diff != "" {
		t.Fatal(diff)
	}

	first, err := os.ReadFile(store.CatalogPath())
	require.NoError(t, err)
	_, err = catalog.Combine(ctx, store, store, &telemetry.Recorder{})
	require.NoError(t, err)
	second, err := os.ReadFile(store.CatalogPath())
	require.NoError(t, err)
	require.Equal(t, string(first), string(second))
}

func TestMissingDirectory(t *testing.T) {
	store := Open(filepath.Join(t.TempDir(), "absent"))

	_, err := store.ListUnits(context.Background())
	require.True(t, errors.Is(err, os.ErrNotExist))

	_, err = catalog.Combine(context.Background(), store, store, &telemetry.Recorder{})
	require.ErrorIs(t, err, catalog.ErrNothingToCombine)
	require.NoFileExists(t, store.CatalogPath())
}
