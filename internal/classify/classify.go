// Package classify tags a model description with capabilities and input modalities.
package classify

import (
	"slices"
	"strings"
)

const (
	TagText   = "text"
	TagImage  = "image"
	TagVision = "vision"
)

// Rule tags a description with Tag when it contains Keyword.
type Rule struct {
	Keyword string `json:"keyword"`
	Tag     string `json:"tag"`
}

type Vocabulary struct {
	Capabilities []Rule `json:"capabilities"`
	Modalities   []Rule `json:"modalities"`
}

// DefaultVocabulary returns fresh keyword tables, callers may modify them freely.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Capabilities: []Rule{
			{Keyword: "vision", Tag: "vision"},
			{Keyword: "multimodal", Tag: "vision"},
			{Keyword: "tool use", Tag: "tools"},
			{Keyword: "function calling", Tag: "tools"},
			{Keyword: "reasoning", Tag: "reasoning"},
			{Keyword: "logic", Tag: "reasoning"},
			{Keyword: "embedding", Tag: "embedding"},
			{Keyword: "embeddings", Tag: "embedding"},
		},
		Modalities: []Rule{
			{Keyword: "image", Tag: "image"},
			{Keyword: "audio", Tag: "audio"},
			{Keyword: "video", Tag: "video"},
			{Keyword: "pdf", Tag: "pdf"},
		},
	}
}

type Result struct {
	Capabilities    []string
	InputModalities []string
}

// Classifier is immutable once built and safe for concurrent use.
type Classifier struct {
	vocab Vocabulary
}

func New(vocab Vocabulary) Classifier {
	return Classifier{vocab: Vocabulary{
		Capabilities: slices.Clone(vocab.Capabilities),
		Modalities:   slices.Clone(vocab.Modalities),
	}}
}

func match(description string, rules []Rule, tags map[string]struct{}) {
	for _, rule := range rules {
		if strings.Contains(description, rule.Keyword) {
			tags[rule.Tag] = struct{}{}
		}
	}
}

func sorted(tags map[string]struct{}) []string {
	out := make([]string, 0, len(tags))
	for tag := range tags {
		out = append(out, tag)
	}
	slices.Sort(out)
	return out
}

// Classify matches the keyword tables against an already lower-cased description.
// Text input is always present, and vision implies image input.
func (c Classifier) Classify(description string) Result {
	capabilities := map[string]struct{}{}
	match(description, c.vocab.Capabilities, capabilities)

	modalities := map[string]struct{}{TagText: {}}
	match(description, c.vocab.Modalities, modalities)
	if _, ok := capabilities[TagVision]; ok {
		modalities[TagImage] = struct{}{}
	}

	return Result{
		Capabilities:    sorted(capabilities),
		InputModalities: sorted(modalities),
	}
}
