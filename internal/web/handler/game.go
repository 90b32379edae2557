package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/hangbot/internal/model"
	"github.com/mcoot/hangbot/internal/services/board"
	"github.com/mcoot/hangbot/internal/services/game"
	"github.com/mcoot/hangbot/internal/web/templates/layout"
	"github.com/mcoot/hangbot/internal/web/templates/pages"
)

// GameHandler renders a conversation's current game
type GameHandler struct {
	gameController *game.Controller
	boardService   *board.Service
	logger         *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(gameController *game.Controller, boardService *board.Service, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		boardService:   boardService,
		logger:         logger,
	}
}

// View renders the game page. Conversations without a game still render,
// with a 404 status.
func (h *GameHandler) View(w http.ResponseWriter, r *http.Request) {
	key := model.ConversationKey(mux.Vars(r)["key"])
	data := pages.ConversationData{
		PageData: layout.PageData{Title: string(key)},
		Key:      key,
	}

	status := http.StatusOK
	session, err := h.gameController.GetSession(key)
	switch {
	case errors.Is(err, model.ErrGameNotFound):
		status = http.StatusNotFound
	case err != nil:
		h.logger.Error("failed to load game", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	default:
		snap := session.Snapshot()
		announcement := h.boardService.Announcement(snap)
		data.Status = snap.Status
		data.Announcement = &announcement
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.Conversation(data).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render game page", slog.String("error", err.Error()))
	}
}
