package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/hangbot/internal/api/response"
	"github.com/mcoot/hangbot/internal/model"
	"github.com/mcoot/hangbot/internal/services/stats"
)

// StatsHandler handles player stats and leaderboard endpoints
type StatsHandler struct {
	statsService *stats.Service
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *stats.Service) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetPlayer handles GET /api/v1/players/{id}/stats
func (h *StatsHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])
	response.JSON(w, http.StatusOK, response.PlayerStatsFromModel(id, h.statsService.GetStats(id)))
}

// Leaderboard handles GET /api/v1/leaderboard
func (h *StatsHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.statsService.GetLeaderboard())
}
