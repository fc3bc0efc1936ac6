// Package storage keeps per-model records and the combined catalog as JSON files
// in a single output directory.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"ollama-catalog/internal/catalog"
)

var fileIdReplacer = strings.NewReplacer("/", "_", "%", "_", ":", "_")

// FileId turns a model id into a safe file name stem. Ordinary ids are unchanged.
func FileId(id string) string {
	return fileIdReplacer.Replace(id)
}

func wrapOpenStore(err error) error {
	return fmt.Errorf("open store: %w", err)
}

// Store is a directory of `<file id>.json` records plus the combined catalog.
type Store struct {
	directory string
}

// Open returns a store over dir without touching the filesystem, use it for reading.
func Open(dir string) Store {
	return Store{directory: dir}
}

// Create makes sure dir exists and returns a store over it. Failing to create the
// directory is fatal to a harvest.
func Create(dir string) (Store, error) {
	err := os.MkdirAll(dir, 0777)
	if err != nil {
		return Store{}, wrapOpenStore(err)
	}
	return Store{directory: dir}, nil
}

func (s Store) Dir() string {
	return s.directory
}

// RecordPath is where the record of id is stored.
func (s Store) RecordPath(id string) string {
	return filepath.Join(s.directory, FileId(id)+".json")
}

// CatalogPath is where the combined catalog is stored.
func (s Store) CatalogPath() string {
	return filepath.Join(s.directory, catalog.CatalogFileName)
}

// WriteRecord writes rec to its own file, overwriting any previous version.
func (s Store) WriteRecord(ctx context.Context, rec catalog.Record) error {
	data, err := catalog.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record '%s': %w", rec.ID, err)
	}
	err = os.WriteFile(s.RecordPath(rec.ID), data, 0666)
	if err != nil {
		return fmt.Errorf("write record '%s': %w", rec.ID, err)
	}
	return nil
}

// ListUnits returns the names of every .json file in the store, sorted. The
// error wraps os.ErrNotExist when the directory is missing.
func (s Store) ListUnits(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.directory)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	slices.Sort(names)
	return names, nil
}

func (s Store) ReadUnit(ctx context.Context, name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.directory, name))
}

// WriteCatalog replaces the combined catalog file.
func (s Store) WriteCatalog(ctx context.Context, records []catalog.Record) error {
	data, err := catalog.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return os.WriteFile(s.CatalogPath(), data, 0666)
}

// ReadCatalog loads the combined catalog written by WriteCatalog.
func (s Store) ReadCatalog(ctx context.Context) ([]catalog.Record, error) {
	data, err := os.ReadFile(s.CatalogPath())
	if err != nil {
		return nil, err
	}
	records, err := catalog.UnmarshalCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return records, nil
}
