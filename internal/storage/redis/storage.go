package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/hangbot/internal/model"
	"github.com/mcoot/hangbot/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Stats operations

func (s *Storage) SaveStats(ctx context.Context, stats map[model.PlayerID]model.PlayerStats) error {
	fields := make(map[string]any, len(stats))
	for id, st := range stats {
		data, err := json.Marshal(st)
		if err != nil {
			return err
		}
		fields[string(id)] = data
	}

	// Replace the whole hash in one round trip
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, statsKey())
	if len(fields) > 0 {
		pipe.HSet(ctx, statsKey(), fields)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) GetStats(ctx context.Context) (map[model.PlayerID]model.PlayerStats, error) {
	values, err := s.client.HGetAll(ctx, statsKey()).Result()
	if err != nil {
		return nil, err
	}

	stats := make(map[model.PlayerID]model.PlayerStats, len(values))
	for id, raw := range values {
		var st model.PlayerStats
		if err := json.Unmarshal([]byte(raw), &st); err != nil {
			continue // Skip invalid data
		}
		stats[model.PlayerID(id)] = st
	}
	return stats, nil
}

// Recent word operations

func (s *Storage) AddRecentWord(ctx context.Context, word string, window int) error {
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, recentWordsKey(), strings.ToUpper(word))
	if window > 0 {
		pipe.LTrim(ctx, recentWordsKey(), 0, int64(window-1))
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) IsRecentWord(ctx context.Context, word string) (bool, error) {
	words, err := s.client.LRange(ctx, recentWordsKey(), 0, -1).Result()
	if err != nil {
		return false, err
	}
	upper := strings.ToUpper(word)
	for _, w := range words {
		if w == upper {
			return true, nil
		}
	}
	return false, nil
}

// Render operations

func (s *Storage) SaveRender(ctx context.Context, key string, data []byte) error {
	return s.client.Set(ctx, renderKey(key), data, s.cfg.RenderTTL).Err()
}

func (s *Storage) GetRender(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, renderKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRenderNotFound
		}
		return nil, err
	}
	return data, nil
}

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	key := dictionaryKey()

	// Check if dictionary exists
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, model.ErrDictionaryNotLoaded
	}

	return s.client.SMembers(ctx, key).Result()
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	key := dictionaryKey()

	// Delete existing dictionary and add new words atomically
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)

	if len(words) > 0 {
		members := make([]any, len(words))
		for i, w := range words {
			members[i] = w
		}
		pipe.SAdd(ctx, key, members...)
	}

	_, err := pipe.Exec(ctx)
	return err
}
