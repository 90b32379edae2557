package factory

import (
	"time"

	"github.com/mcoot/hangbot/internal/dependencies/mocks"
	"github.com/mcoot/hangbot/internal/services/announce"
	"github.com/mcoot/hangbot/internal/services/game"
	"github.com/mcoot/hangbot/internal/storage/memory"
	"github.com/mcoot/hangbot/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	cfg := withDefaults(Config{
		Game: game.DefaultConfig(),
		Retry: announce.RetryConfig{
			MaxAttempts: 2,
			Interval:    time.Millisecond,
		},
	})
	app := newWithDependencies(store, mockClock, mockRandom, cfg, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestDictionary loads a small dictionary for testing
func (t *TestApp) LoadTestDictionary() error {
	words := []string{
		// 3-letter words
		"ace", "act", "bat", "cat", "dog", "fox", "owl", "yak",
		// 4-letter words
		"able", "bird", "fish", "game", "jazz", "word",
		// 5-letter words
		"about", "crane", "erase", "hotel", "llama", "slate", "speed",
		"stare", "train", "words",
		// longer words
		"gallows", "hangman", "puzzle", "quixotic",
	}
	return t.DictionaryService.LoadWords(words)
}
