package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/hangbot/internal/services/board"
	"github.com/mcoot/hangbot/internal/services/game"
	"github.com/mcoot/hangbot/internal/services/stats"
	"github.com/mcoot/hangbot/internal/web/handler"
	"github.com/mcoot/hangbot/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
	StatsService   *stats.Service
	BoardService   *board.Service
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Apply global middleware to all routes
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	// Create handlers
	homeHandler := handler.NewHomeHandler(cfg.StatsService, cfg.Logger)
	gameHandler := handler.NewGameHandler(cfg.GameController, cfg.BoardService, cfg.Logger)

	r.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	r.HandleFunc("/players/{id}", homeHandler.Player).Methods(http.MethodGet)
	r.HandleFunc("/conversations/{key}", gameHandler.View).Methods(http.MethodGet)

	return r
}
