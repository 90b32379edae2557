package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/hangbot/internal/api/middleware"
	"github.com/mcoot/hangbot/internal/api/request"
	"github.com/mcoot/hangbot/internal/api/response"
	"github.com/mcoot/hangbot/internal/model"
	"github.com/mcoot/hangbot/internal/services/board"
	"github.com/mcoot/hangbot/internal/services/game"
	"github.com/mcoot/hangbot/internal/web/sse"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController *game.Controller
	boardService   *board.Service
	hubManager     *sse.HubManager
}

// NewGameHandler creates a new game handler
func NewGameHandler(
	gameController *game.Controller,
	boardService *board.Service,
	hubManager *sse.HubManager,
) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		boardService:   boardService,
		hubManager:     hubManager,
	}
}

func conversationKey(r *http.Request) model.ConversationKey {
	return model.ConversationKey(mux.Vars(r)["key"])
}

// Start handles POST /api/v1/conversations/{key}/game
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayerID(r.Context())
	key := conversationKey(r)

	var req request.StartGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	session, err := h.gameController.StartGame(r.Context(), game.StartRequest{
		Key:        key,
		Variant:    model.Variant(req.Variant),
		Word:       req.Word,
		Originator: player,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromSession(key, session, h.boardService))
}

// Get handles GET /api/v1/conversations/{key}/game
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := conversationKey(r)

	session, err := h.gameController.GetSession(key)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromSession(key, session, h.boardService))
}

// Guess handles POST /api/v1/conversations/{key}/game/guess
func (h *GameHandler) Guess(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayerID(r.Context())
	key := conversationKey(r)

	var req request.GuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if req.Guess == "" {
		WriteError(w, NewInvalidRequestError("Guess is required"))
		return
	}

	outcome, err := h.gameController.Guess(r.Context(), key, req.Guess, player)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, h.guessResponse(key, outcome))
}

// Message handles POST /api/v1/conversations/{key}/messages
func (h *GameHandler) Message(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayerID(r.Context())
	key := conversationKey(r)

	var req request.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	outcome, err := h.gameController.HandleMessage(r.Context(), key, req.Text, player)
	if err != nil {
		WriteError(w, err)
		return
	}

	var resp response.Message
	if outcome != nil {
		g := h.guessResponse(key, outcome)
		resp.Guess = &g
	}
	response.JSON(w, http.StatusOK, resp)
}

func (h *GameHandler) guessResponse(key model.ConversationKey, outcome *game.GuessOutcome) response.Guess {
	resp := response.Guess{
		Guess:    outcome.Guess,
		Correct:  outcome.Correct,
		Winning:  outcome.Winning,
		Reaction: outcome.Reaction,
	}
	if session, err := h.gameController.GetSession(key); err == nil {
		resp.Game = response.GameFromSession(key, session, h.boardService)
	}
	return resp
}

// Events handles GET /api/v1/conversations/{key}/events
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	if h.hubManager == nil {
		WriteError(w, errors.New("event streaming not configured"))
		return
	}
	hub := h.hubManager.GetOrCreateHub(conversationKey(r))
	sse.ServeSSE(w, r, hub, middleware.GetPlayerID(r.Context()))
}
