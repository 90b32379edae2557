package dictionary

import (
	"bufio"
	"context"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/mcoot/hangbot/internal/dependencies/random"
	"github.com/mcoot/hangbot/internal/model"
	"github.com/mcoot/hangbot/internal/storage"
)

// maxSuggestions caps the near matches returned for an unknown word
const maxSuggestions = 5

// Service is a local word-list dictionary
type Service struct {
	storage storage.Storage

	mu       sync.RWMutex
	words    map[string]struct{}
	byLength map[int][]string
	loaded   bool
}

// New creates a new DictionaryService
func New(storage storage.Storage) *Service {
	return &Service{
		storage:  storage,
		words:    make(map[string]struct{}),
		byLength: make(map[int][]string),
	}
}

// LoadFromStorage loads dictionary words from storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetDictionaryWords(ctx)
	if err != nil {
		return err
	}
	return s.loadWords(words)
}

// LoadFromFile loads dictionary words from a file (one word per line)
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	// Save to storage for future use
	if err := s.storage.SaveDictionaryWords(ctx, words); err != nil {
		return err
	}

	return s.loadWords(words)
}

// LoadWords directly loads a slice of words (useful for testing)
func (s *Service) LoadWords(words []string) error {
	return s.loadWords(words)
}

func (s *Service) loadWords(words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.words = make(map[string]struct{}, len(words))
	s.byLength = make(map[int][]string)
	for _, word := range words {
		upper := strings.ToUpper(word)
		if !isLetters(upper) {
			continue
		}
		if _, dup := s.words[upper]; dup {
			continue
		}
		s.words[upper] = struct{}{}
		s.byLength[len(upper)] = append(s.byLength[len(upper)], upper)
	}
	for _, group := range s.byLength {
		sort.Strings(group)
	}
	s.loaded = true
	return nil
}

// IsValidWord checks if a word exists in the dictionary
func (s *Service) IsValidWord(word string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return false
	}

	_, ok := s.words[strings.ToUpper(word)]
	return ok
}

// Lookup reports whether the word is known. Unknown words come back with
// same-length words sharing the longest prefix as suggestions.
func (s *Service) Lookup(ctx context.Context, word string) (model.WordInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return model.WordInfo{}, ErrDictionaryNotLoaded
	}

	upper := strings.ToUpper(word)
	if _, ok := s.words[upper]; ok {
		return model.WordInfo{Word: word, Found: true}, nil
	}
	return model.WordInfo{Word: word, Suggestions: s.suggest(upper)}, nil
}

func (s *Service) suggest(word string) []string {
	candidates := s.byLength[len(word)]
	for prefix := len(word) - 1; prefix > 0; prefix-- {
		var out []string
		for _, c := range candidates {
			if strings.HasPrefix(c, word[:prefix]) {
				out = append(out, strings.ToLower(c))
				if len(out) == maxSuggestions {
					return out
				}
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// RandomWord picks a word of the given length
func (s *Service) RandomWord(length int, rnd random.Random) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return "", ErrDictionaryNotLoaded
	}
	candidates := s.byLength[length]
	if len(candidates) == 0 {
		return "", model.ErrNoWordAvailable
	}
	return candidates[rnd.Intn(len(candidates))], nil
}

// IsLoaded returns whether the dictionary has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// WordCount returns the number of words in the dictionary
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

func isLetters(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// ErrDictionaryNotLoaded is returned when operations are attempted before loading
var ErrDictionaryNotLoaded = model.ErrDictionaryNotLoaded
