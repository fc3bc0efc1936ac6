// Package catalog defines the catalog record and the passes that build and query
// the combined catalog.
package catalog

import (
	"fmt"
	"slices"

	"ollama-catalog/internal/assert"
	"ollama-catalog/internal/classify"
	"ollama-catalog/internal/extract"
)

const ProviderOllama = "ollama"

var (
	KnownCapabilities = []string{"embedding", "reasoning", "tools", "vision"}
	KnownModalities   = []string{"audio", "image", "pdf", "text", "video"}
)

type Modalities struct {
	Input  []string `json:"input"`
	Output []string `json:"output"`
}

type Limit struct {
	Context int `json:"context"`
	Output  int `json:"output"`
}

// Record is the catalog entry of a single model.
type Record struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Provider     string     `json:"provider"`
	ProviderID   string     `json:"provider_id"`
	Capabilities []string   `json:"capabilities"`
	Attachment   bool       `json:"attachment"`
	Temperature  bool       `json:"temperature"`
	Modalities   Modalities `json:"modalities"`
	Limit        Limit      `json:"limit"`
	Size         []float64  `json:"size"`
}

func cloneOrEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return slices.Clone(s)
}

// Build assembles the record of model id from its extracted fields and tags.
func Build(id string, fields extract.Fields, tags classify.Result) Record {
	assert.NonNegative("context", fields.MaxContext)
	for _, size := range fields.Sizes {
		assert.NonNegative("size", size)
	}

	capabilities := cloneOrEmpty(tags.Capabilities)
	return Record{
		ID:           id,
		Name:         fields.Name,
		Provider:     ProviderOllama,
		ProviderID:   ProviderOllama,
		Capabilities: capabilities,
		Attachment:   slices.Contains(capabilities, classify.TagVision),
		Temperature:  false,
		Modalities: Modalities{
			Input:  cloneOrEmpty(tags.InputModalities),
			Output: []string{classify.TagText},
		},
		Limit: Limit{
			Context: fields.MaxContext,
			Output:  0,
		},
		Size: cloneOrEmpty(fields.Sizes),
	}
}

// normalize replaces missing lists with empty ones so a record read from disk
// encodes the same way as one produced by Build.
func (r *Record) normalize() {
	r.Capabilities = cloneOrEmpty(r.Capabilities)
	r.Modalities.Input = cloneOrEmpty(r.Modalities.Input)
	r.Modalities.Output = cloneOrEmpty(r.Modalities.Output)
	r.Size = cloneOrEmpty(r.Size)
}

// Validate checks the record against the closed capability and modality vocabularies.
func (r Record) Validate() error {
	for _, c := range r.Capabilities {
		if !slices.Contains(KnownCapabilities, c) {
			return fmt.Errorf("record '%s': unknown capability '%s'", r.ID, c)
		}
	}
	for _, list := range [][]string{r.Modalities.Input, r.Modalities.Output} {
		for _, m := range list {
			if !slices.Contains(KnownModalities, m) {
				return fmt.Errorf("record '%s': unknown modality '%s'", r.ID, m)
			}
		}
	}
	if r.Limit.Context < 0 || r.Limit.Output < 0 {
		return fmt.Errorf("record '%s': negative limit %+v", r.ID, r.Limit)
	}
	for _, s := range r.Size {
		if s <= 0 {
			return fmt.Errorf("record '%s': non-positive size %v", r.ID, s)
		}
	}
	return nil
}
