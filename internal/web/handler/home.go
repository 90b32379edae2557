package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/hangbot/internal/model"
	"github.com/mcoot/hangbot/internal/services/stats"
	"github.com/mcoot/hangbot/internal/web/templates/layout"
	"github.com/mcoot/hangbot/internal/web/templates/pages"
)

// HomeHandler handles the leaderboard and player pages
type HomeHandler struct {
	statsService *stats.Service
	logger       *slog.Logger
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(statsService *stats.Service, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{
		statsService: statsService,
		logger:       logger,
	}
}

// Home renders the leaderboards
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := pages.HomeData{
		PageData:    layout.PageData{Title: "Leaderboard"},
		Leaderboard: h.statsService.GetLeaderboard(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Home(data).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render home page", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Player renders a player's stats
func (h *HomeHandler) Player(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])
	data := pages.PlayerData{
		PageData: layout.PageData{Title: string(id)},
		PlayerID: id,
		Stats:    h.statsService.GetStats(id),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Player(data).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render player page", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
