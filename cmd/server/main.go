package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mcoot/hangbot/internal/api"
	"github.com/mcoot/hangbot/internal/factory"
	"github.com/mcoot/hangbot/internal/services/game"
	redisstorage "github.com/mcoot/hangbot/internal/storage/redis"
	"github.com/mcoot/hangbot/internal/web"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// A .env file is optional; real environment variables take precedence
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not load .env file", slog.String("error", err.Error()))
	}

	// Build factory config from environment
	cfg := factory.Config{
		DictionaryPath:   getEnvOrDefault("DICTIONARY_PATH", "data/words.txt"),
		DictionaryAPIKey: os.Getenv("DICTIONARY_API_KEY"),
		DictionaryURL:    os.Getenv("DICTIONARY_URL"),
		Logger:           logger,
		StorageType:      os.Getenv("STORAGE_TYPE"),
		SQLitePath:       getEnvOrDefault("SQLITE_PATH", "hangbot.db"),
		Game: game.Config{
			MinWordLength:    getEnvInt(logger, "MIN_WORD_LENGTH"),
			RecentWordWindow: getEnvInt(logger, "RECENT_WORD_WINDOW"),
		},
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close application", slog.String("error", err.Error()))
		}
	}()

	// Restore stats and dictionary
	if err := app.Load(context.Background()); err != nil {
		logger.Warn("could not restore state", slog.String("error", err.Error()))
	}

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		StatsService:   app.StatsService,
		BoardService:   app.BoardService,
		HubManager:     app.HubManager,
		ResponseCache:  app.ResponseCache,
	})

	// Create web router
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		StatsService:   app.StatsService,
		BoardService:   app.BoardService,
	})

	// Combine routers
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := getEnvInt(logger, "PORT"); port != 0 {
		serverConfig.Port = port
	}
	server := api.NewServer(mux, serverConfig, logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			return
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			return
		}
	}

	logger.Info("server stopped")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt reads an integer variable, returning 0 when unset or invalid
func getEnvInt(logger *slog.Logger, key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		logger.Warn("ignoring invalid integer setting", slog.String("key", key), slog.String("value", val))
		return 0
	}
	return n
}
