package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/hangbot/internal/api/handler"
	"github.com/mcoot/hangbot/internal/api/middleware"
	"github.com/mcoot/hangbot/internal/api/response"
	"github.com/mcoot/hangbot/internal/services/board"
	"github.com/mcoot/hangbot/internal/services/game"
	"github.com/mcoot/hangbot/internal/services/stats"
	"github.com/mcoot/hangbot/internal/web/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
	StatsService   *stats.Service
	BoardService   *board.Service
	HubManager     *sse.HubManager
	ResponseCache  *middleware.ResponseCache
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.BoardService, cfg.HubManager)
	statsHandler := handler.NewStatsHandler(cfg.StatsService)
	imageHandler := handler.NewImageHandler(cfg.BoardService, cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	requireIdentity := middleware.Identity()
	optionalIdentity := middleware.OptionalIdentity()

	// Conversation routes; mutations need the chat identity
	conversations := api.PathPrefix("/conversations/{key}").Subrouter()
	conversations.HandleFunc("/game", gameHandler.Get).Methods(http.MethodGet)
	conversations.Handle("/game", requireIdentity(http.HandlerFunc(gameHandler.Start))).Methods(http.MethodPost)
	conversations.Handle("/game/guess", requireIdentity(http.HandlerFunc(gameHandler.Guess))).Methods(http.MethodPost)
	conversations.Handle("/messages", requireIdentity(http.HandlerFunc(gameHandler.Message))).Methods(http.MethodPost)
	conversations.Handle("/events", optionalIdentity(http.HandlerFunc(gameHandler.Events))).Methods(http.MethodGet)

	// Stats routes
	api.HandleFunc("/players/{id}/stats", statsHandler.GetPlayer).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard", statsHandler.Leaderboard).Methods(http.MethodGet)

	// Image routes, fronted by the response cache
	images := api.PathPrefix("/images").Subrouter()
	if cfg.ResponseCache != nil {
		images.Use(cfg.ResponseCache.Middleware())
	}
	images.HandleFunc("/hangman", imageHandler.Hangman).Methods(http.MethodGet)
	images.HandleFunc("/wordle", imageHandler.Wordle).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
