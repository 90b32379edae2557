package mocks

import (
	"context"
	"strings"

	"github.com/mcoot/hangbot/internal/model"
)

// MockWordSource answers lookups from a fixed map of word to definition
type MockWordSource struct {
	Definitions map[string]string
	Suggestions []string
	Err         error

	Lookups []string
}

// NewMockWordSource creates a word source knowing the given words
func NewMockWordSource(words ...string) *MockWordSource {
	defs := make(map[string]string, len(words))
	for _, w := range words {
		defs[strings.ToUpper(w)] = ""
	}
	return &MockWordSource{Definitions: defs}
}

// Define sets the definition returned for a word, adding it if unknown
func (m *MockWordSource) Define(word, definition string) {
	m.Definitions[strings.ToUpper(word)] = definition
}

// Lookup returns whether the word is known
func (m *MockWordSource) Lookup(ctx context.Context, word string) (model.WordInfo, error) {
	m.Lookups = append(m.Lookups, word)
	if m.Err != nil {
		return model.WordInfo{}, m.Err
	}
	def, ok := m.Definitions[strings.ToUpper(word)]
	if !ok {
		return model.WordInfo{Word: word, Suggestions: m.Suggestions}, nil
	}
	return model.WordInfo{Word: word, Found: true, Definition: def}, nil
}
