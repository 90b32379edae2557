package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/mcoot/hangbot/internal/model"
	"github.com/mcoot/hangbot/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	stats           map[model.PlayerID]model.PlayerStats
	recentWords     []string
	renders         map[string][]byte
	dictionaryWords []string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		stats:   make(map[model.PlayerID]model.PlayerStats),
		renders: make(map[string][]byte),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Stats operations

func (s *Storage) SaveStats(ctx context.Context, stats map[model.PlayerID]model.PlayerStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = make(map[model.PlayerID]model.PlayerStats, len(stats))
	for id, st := range stats {
		s.stats[id] = st
	}
	return nil
}

func (s *Storage) GetStats(ctx context.Context) (map[model.PlayerID]model.PlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[model.PlayerID]model.PlayerStats, len(s.stats))
	for id, st := range s.stats {
		result[id] = st
	}
	return result, nil
}

// Recent word operations

func (s *Storage) AddRecentWord(ctx context.Context, word string, window int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recentWords = append([]string{strings.ToUpper(word)}, s.recentWords...)
	if window > 0 && len(s.recentWords) > window {
		s.recentWords = s.recentWords[:window]
	}
	return nil
}

func (s *Storage) IsRecentWord(ctx context.Context, word string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	upper := strings.ToUpper(word)
	for _, w := range s.recentWords {
		if w == upper {
			return true, nil
		}
	}
	return false, nil
}

// Render operations

func (s *Storage) SaveRender(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	s.renders[key] = stored
	return nil
}

func (s *Storage) GetRender(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.renders[key]
	if !ok {
		return nil, model.ErrRenderNotFound
	}
	result := make([]byte, len(data))
	copy(result, data)
	return result, nil
}

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dictionaryWords == nil {
		return nil, model.ErrDictionaryNotLoaded
	}
	result := make([]string, len(s.dictionaryWords))
	copy(result, s.dictionaryWords)
	return result, nil
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dictionaryWords = make([]string, len(words))
	copy(s.dictionaryWords, words)
	return nil
}
