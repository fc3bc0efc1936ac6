package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseLimit(t *testing.T) {
	testCases := []struct {
		input    string
		expected int
	}{
		{"", 5},
		{"3", 3},
		{"0", 0},
		{"20", 20},
		{"21", 5},
		{"-1", 5},
		{"abc", 5},
		{"7abc", 7},
		{" 12 ", 12},
		{"99999999999999999999999", 5},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, ParseLimit(test.input), test.input)
	}
}

func TestSplitIntoWords(t *testing.T) {
	words := SplitIntoWords("llama3.1-instruct_q4 \tlatest")
	if diff := cmp.Diff([]string{"llama3", "1", "instruct", "q4", "latest"}, words); diff != "" {
		t.Fatal(diff)
	}
	require.Empty(t, SplitIntoWords("--.__"))
}

func record(id string) Record {
	return Record{ID: id, Name: id, Provider: ProviderOllama, ProviderID: ProviderOllama}
}

func TestScore(t *testing.T) {
	rec := record("llama3.1")

	require.Equal(t, 10, Score(rec, []string{"3.1"}))
	require.Equal(t, 22, Score(rec, []string{"llama", "ollama"}))
	require.Equal(t, 6, Score(rec, []string{"olla"}))
	// "lama" is found in both the id and the provider
	require.Equal(t, 16, Score(rec, []string{"lama"}))
	require.Equal(t, 0, Score(rec, []string{"llama", "mistral"}))
	require.Equal(t, 0, Score(Record{}, []string{"x"}))
}

func TestSearch(t *testing.T) {
	records := []Record{
		record("codellama"),
		record("llama3"),
		record("mistral"),
		record("llama2"),
		record("phi3"),
	}

	testCases := []struct {
		query    string
		limit    int
		expected []string
	}{
		{"", 2, []string{"codellama", "llama3"}},
		{"   ", 10, []string{"codellama", "llama3", "mistral", "llama2", "phi3"}},
		// every record matches "llama" through the provider, id matches rank first
		{"llama", 5, []string{"codellama", "llama3", "llama2", "mistral", "phi3"}},
		{"llama", 3, []string{"codellama", "llama3", "llama2"}},
		{"LLAMA 3", 5, []string{"llama3", "phi3"}},
		{"llama", 1, []string{"codellama"}},
		{"gpt", 5, []string{}},
		{"phi", 0, []string{}},
	}
	for _, test := range testCases {
		result := Search(records, test.query, test.limit)
		if diff := cmp.Diff(test.expected, ids(result)); diff != "" {
			t.Fatalf("%q: %s", test.query, diff)
		}
	}
}

func TestSuggest(t *testing.T) {
	records := []Record{record("llama3"), record("mistral"), record("gemma")}

	suggestion, ok := Suggest(records, "mistrl")
	require.True(t, ok)
	require.Equal(t, "mistral", suggestion)

	_, ok = Suggest(records, " ")
	require.False(t, ok)
	_, ok = Suggest(nil, "llama")
	require.False(t, ok)
}
