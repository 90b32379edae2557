package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/hangbot/internal/api/middleware"
	"github.com/mcoot/hangbot/internal/dependencies/clock"
	"github.com/mcoot/hangbot/internal/dependencies/random"
	"github.com/mcoot/hangbot/internal/services/announce"
	"github.com/mcoot/hangbot/internal/services/board"
	"github.com/mcoot/hangbot/internal/services/dictionary"
	"github.com/mcoot/hangbot/internal/services/game"
	"github.com/mcoot/hangbot/internal/services/stats"
	"github.com/mcoot/hangbot/internal/storage"
	"github.com/mcoot/hangbot/internal/storage/memory"
	redisstorage "github.com/mcoot/hangbot/internal/storage/redis"
	sqlitestorage "github.com/mcoot/hangbot/internal/storage/sqlite"
	"github.com/mcoot/hangbot/internal/web/sse"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// Image response cache defaults
const (
	DefaultImageCacheSize = 512
	DefaultImageCacheTTL  = 10 * time.Minute
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	DictionaryService *dictionary.Service
	WordSource        dictionary.WordSource
	StatsService      *stats.Service
	BoardService      *board.Service
	Registry          *game.Registry
	GameController    *game.Controller
	HubManager        *sse.HubManager
	Broadcaster       *sse.Broadcaster
	Channel           announce.Channel
	ResponseCache     *middleware.ResponseCache

	dictionaryPath string
	logger         *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// DictionaryPath is the path to the word list (optional)
	// If empty, the dictionary is loaded from storage
	DictionaryPath string
	// DictionaryAPIKey enables the remote dictionary in front of the word list
	DictionaryAPIKey string
	// DictionaryURL overrides the remote dictionary endpoint
	DictionaryURL string
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLitePath is the database file (required if StorageType is "sqlite")
	SQLitePath string
	// Game holds start validation settings; zero fields take the defaults
	Game game.Config
	// Retry bounds announcement delivery; zero value uses announce.DefaultRetryConfig()
	Retry announce.RetryConfig
	// ImageCacheSize and ImageCacheTTL size the image response cache
	ImageCacheSize int
	ImageCacheTTL  time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	app := newWithDependencies(store, clk, rnd, withDefaults(cfg), logger)
	app.dictionaryPath = cfg.DictionaryPath
	return app, nil
}

func newStorage(cfg Config) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		return redisStore, nil
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		sqliteStore, err := sqlitestorage.New(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return sqliteStore, nil
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'sqlite'")
	}
}

func withDefaults(cfg Config) Config {
	defaults := game.DefaultConfig()
	if cfg.Game.MinWordLength == 0 {
		cfg.Game.MinWordLength = defaults.MinWordLength
	}
	if cfg.Game.RecentWordWindow == 0 {
		cfg.Game.RecentWordWindow = defaults.RecentWordWindow
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = announce.DefaultRetryConfig()
	}
	if cfg.ImageCacheSize == 0 {
		cfg.ImageCacheSize = DefaultImageCacheSize
	}
	if cfg.ImageCacheTTL == 0 {
		cfg.ImageCacheTTL = DefaultImageCacheTTL
	}
	if cfg.DictionaryAPIKey != "" && cfg.DictionaryURL == "" {
		cfg.DictionaryURL = dictionary.DefaultRemoteURL
	}
	return cfg
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *App {
	// Create services
	dictService := dictionary.New(store)
	statsService := stats.New(store, logger)
	boardService := board.New(store, logger)
	registry := game.NewRegistry(statsService, clk)
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)
	channel := announce.NewRetryingChannel(
		announce.NewStreamChannel(broadcaster, clk),
		cfg.Retry,
		logger,
	)

	// The local word list answers on its own unless a remote dictionary is configured
	var words dictionary.WordSource = dictService
	if cfg.DictionaryAPIKey != "" {
		remote := dictionary.NewRemoteClient(cfg.DictionaryURL, cfg.DictionaryAPIKey, logger)
		words = dictionary.NewFallbackSource(remote, dictService, logger)
	}

	gameController := game.NewController(
		registry, words, dictService, store, boardService, channel, clk, rnd, cfg.Game, logger,
	)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		DictionaryService: dictService,
		WordSource:        words,
		StatsService:      statsService,
		BoardService:      boardService,
		Registry:          registry,
		GameController:    gameController,
		HubManager:        hubManager,
		Broadcaster:       broadcaster,
		Channel:           channel,
		ResponseCache:     middleware.NewResponseCache(cfg.ImageCacheSize, cfg.ImageCacheTTL, logger),
		logger:            logger,
	}
}

// Load restores persisted state: the stats table and the dictionary, read
// from the configured word list or, failing that, from storage
func (a *App) Load(ctx context.Context) error {
	if err := a.StatsService.LoadFromStorage(ctx); err != nil {
		return fmt.Errorf("loading stats: %w", err)
	}

	if a.dictionaryPath != "" {
		err := a.DictionaryService.LoadFromFile(ctx, a.dictionaryPath)
		if err == nil {
			return nil
		}
		a.logger.Warn("could not load word list, falling back to storage",
			slog.String("path", a.dictionaryPath),
			slog.String("error", err.Error()),
		)
	}

	if err := a.DictionaryService.LoadFromStorage(ctx); err != nil {
		return fmt.Errorf("loading dictionary: %w", err)
	}
	return nil
}

// Close releases the storage backend and closes event streams
func (a *App) Close() error {
	a.HubManager.CloseAll()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
