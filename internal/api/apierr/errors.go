package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/hangbot/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidVariant     = "INVALID_VARIANT"
	CodeInvalidWord        = "INVALID_WORD"
	CodeWordTooShort       = "WORD_TOO_SHORT"
	CodeInvalidWordLength  = "INVALID_WORD_LENGTH"
	CodeWordRecentlyUsed   = "WORD_RECENTLY_USED"
	CodeNotInDictionary    = "NOT_IN_DICTIONARY"
	CodeNoWordAvailable    = "NO_WORD_AVAILABLE"
	CodeGameInProgress     = "GAME_IN_PROGRESS"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeGameNotStarted     = "GAME_NOT_STARTED"
	CodeGameComplete       = "GAME_COMPLETE"
	CodeAlreadyGuessed     = "ALREADY_GUESSED"
	CodeInvalidLetter      = "INVALID_LETTER"
	CodeInvalidGuess       = "INVALID_GUESS"
	CodeAnnouncementFailed = "ANNOUNCEMENT_FAILED"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// suggester is implemented by errors carrying dictionary suggestions
type suggester interface {
	error
	SuggestedWords() []string
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var sg suggester
	if errors.As(err, &sg) {
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeNotInDictionary, sg.Error(), sg.SuggestedWords()}}
	}

	// Map model errors. Validation errors carry the message shown to the player.
	switch {
	case errors.Is(err, model.ErrInvalidVariant):
		return badRequest(CodeInvalidVariant, err)
	case errors.Is(err, model.ErrInvalidWord):
		return badRequest(CodeInvalidWord, err)
	case errors.Is(err, model.ErrWordTooShort):
		return badRequest(CodeWordTooShort, err)
	case errors.Is(err, model.ErrInvalidWordLength):
		return badRequest(CodeInvalidWordLength, err)
	case errors.Is(err, model.ErrInvalidLetter):
		return badRequest(CodeInvalidLetter, err)
	case errors.Is(err, model.ErrInvalidGuess):
		return badRequest(CodeInvalidGuess, err)
	case errors.Is(err, model.ErrWordRecentlyUsed):
		return &httpError{http.StatusConflict, APIError{Code: CodeWordRecentlyUsed, Message: err.Error()}}
	case errors.Is(err, model.ErrNotInDictionary):
		return &httpError{http.StatusUnprocessableEntity, APIError{Code: CodeNotInDictionary, Message: err.Error()}}
	case errors.Is(err, model.ErrNoWordAvailable):
		return &httpError{http.StatusServiceUnavailable, APIError{Code: CodeNoWordAvailable, Message: err.Error()}}
	case errors.Is(err, model.ErrGameInProgress):
		return &httpError{http.StatusConflict, APIError{Code: CodeGameInProgress, Message: "Please finish the current game before suggesting a new word"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodeGameNotFound, Message: "No game found"}}
	case errors.Is(err, model.ErrGameNotStarted):
		return &httpError{http.StatusConflict, APIError{Code: CodeGameNotStarted, Message: "Game has not started"}}
	case errors.Is(err, model.ErrGameComplete):
		return &httpError{http.StatusConflict, APIError{Code: CodeGameComplete, Message: "Game is already complete"}}
	case errors.Is(err, model.ErrAlreadyGuessed):
		return &httpError{http.StatusConflict, APIError{Code: CodeAlreadyGuessed, Message: "Already guessed"}}
	case errors.Is(err, model.ErrAnnouncementFailed):
		return &httpError{http.StatusBadGateway, APIError{Code: CodeAnnouncementFailed, Message: "Game could not be announced, please try again"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
	}
}

func badRequest(code string, err error) *httpError {
	return &httpError{http.StatusBadRequest, APIError{Code: code, Message: err.Error()}}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{Code: CodeUnauthorized, Message: "Player identity required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
}
