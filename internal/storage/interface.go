package storage

import (
	"context"

	"github.com/mcoot/hangbot/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Stats operations. SaveStats replaces the whole table.
	SaveStats(ctx context.Context, stats map[model.PlayerID]model.PlayerStats) error
	GetStats(ctx context.Context) (map[model.PlayerID]model.PlayerStats, error)

	// Recently used solution words, newest first, capped at window entries
	AddRecentWord(ctx context.Context, word string, window int) error
	IsRecentWord(ctx context.Context, word string) (bool, error)

	// Rendered board artifacts keyed by content hash
	SaveRender(ctx context.Context, key string, data []byte) error
	GetRender(ctx context.Context, key string) ([]byte, error)

	// Dictionary operations
	GetDictionaryWords(ctx context.Context) ([]string, error)
	SaveDictionaryWords(ctx context.Context, words []string) error
}
