package handler

import (
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/mcoot/hangbot/internal/model"
	"github.com/mcoot/hangbot/internal/services/board"
)

var (
	hangmanWordParam    = regexp.MustCompile(`^[A-Za-z_]{1,32}$`)
	hangmanGuessesParam = regexp.MustCompile(`^[A-Za-z]{0,26}$`)
)

const maxWordleLength = 32

// ImageHandler renders boards as images from query parameters
type ImageHandler struct {
	boardService *board.Service
	logger       *slog.Logger
}

// NewImageHandler creates a new image handler
func NewImageHandler(boardService *board.Service, logger *slog.Logger) *ImageHandler {
	return &ImageHandler{
		boardService: boardService,
		logger:       logger,
	}
}

// Hangman handles GET /api/v1/images/hangman?word=C_A__&guesses=CxA
//
// word uses _ for blanks and lowercase for revealed letters; guesses are
// uppercase when correct and lowercase when not.
func (h *ImageHandler) Hangman(w http.ResponseWriter, r *http.Request) {
	word := r.URL.Query().Get("word")
	guesses := r.URL.Query().Get("guesses")
	if !hangmanWordParam.MatchString(word) || !hangmanGuessesParam.MatchString(guesses) {
		WriteError(w, NewInvalidRequestError("word must be letters or _, guesses must be letters"))
		return
	}

	data, err := h.boardService.HangmanGIF(r.Context(), word, guesses)
	if err != nil {
		h.logger.Error("failed to render hangman image", slog.String("error", err.Error()))
		WriteError(w, err)
		return
	}

	writeImage(w, "image/gif", data)
}

// Wordle handles GET /api/v1/images/wordle?rows=SLATE:aacac,CRANE:ccccc&length=5
//
// rows are scored guesses as written by board.EncodeWordleRows, so the
// solution never appears in the URL.
func (h *ImageHandler) Wordle(w http.ResponseWriter, r *http.Request) {
	length, err := strconv.Atoi(r.URL.Query().Get("length"))
	if err != nil || length < 1 || length > maxWordleLength {
		WriteError(w, NewInvalidRequestError("length must be a number from 1 to 32"))
		return
	}

	rows, err := board.ParseWordleRows(strings.ToUpper(r.URL.Query().Get("rows")), length)
	if err != nil {
		WriteError(w, NewInvalidRequestError("rows must be GUESS:states pairs of the given length"))
		return
	}
	if len(rows) > model.WordleRows {
		WriteError(w, NewInvalidRequestError("too many rows"))
		return
	}

	data, err := h.boardService.WordlePNG(r.Context(), rows, length)
	if err != nil {
		h.logger.Error("failed to render wordle image", slog.String("error", err.Error()))
		WriteError(w, err)
		return
	}

	writeImage(w, "image/png", data)
}

func writeImage(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
