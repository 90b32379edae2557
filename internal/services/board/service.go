package board

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/mcoot/hangbot/internal/model"
	"github.com/mcoot/hangbot/internal/storage"
)

const (
	// HangmanImagePath serves HangmanGIF renders
	HangmanImagePath = "/api/v1/images/hangman"
	// WordleImagePath serves WordlePNG renders
	WordleImagePath = "/api/v1/images/wordle"
)

// Service renders boards and caches raster output
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new BoardService
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger.With(slog.String("component", "board")),
	}
}

// HangmanGIF returns the cached GIF for a hangman board, rendering it if needed
func (s *Service) HangmanGIF(ctx context.Context, pattern, marks string) ([]byte, error) {
	key := ContentKey("hangman", pattern, marks)
	return s.cached(ctx, key, func() ([]byte, error) {
		return HangmanGIF(pattern, marks)
	})
}

// WordlePNG returns the cached PNG for scored wordle rows of the given width,
// rendering it if needed
func (s *Service) WordlePNG(ctx context.Context, rows [][]Tile, width int) ([]byte, error) {
	key := ContentKey("wordle", strconv.Itoa(width), EncodeWordleRows(rows))
	return s.cached(ctx, key, func() ([]byte, error) {
		return WordlePNG(PadWordleGrid(rows, width))
	})
}

// Announcement builds the message posted for a session
func (s *Service) Announcement(snap model.SessionSnapshot) model.Announcement {
	var b strings.Builder
	fmt.Fprintf(&b, "_Word suggested by <@%s>._\n", snap.Originator)

	var image string
	switch snap.Variant {
	case model.VariantWordle:
		b.WriteString(WordleText(snap))
		image = WordleImageURL(snap)
	default:
		b.WriteString(HangmanText(snap))
		image = HangmanImageURL(snap)
	}

	b.WriteByte('\n')
	b.WriteString(Footer(snap))

	return model.Announcement{Text: b.String(), ImagePath: image}
}

// Footer is the status line under the board
func Footer(snap model.SessionSnapshot) string {
	var line string
	switch snap.Status {
	case model.StatusWon:
		line = ":tada: *You win!* :tada: Suggest a new word with `/hangman [word]`"
	case model.StatusLost:
		line = fmt.Sprintf(":skull_and_crossbones: *You lose. The word was %s.* :skull_and_crossbones: Suggest a new word with `/hangman [word]`", snap.Solution)
	default:
		return "_Please reply in thread._"
	}
	if snap.Definition != "" {
		line += fmt.Sprintf("\n>*%s*: %s", snap.Solution, snap.Definition)
	}
	return line
}

// HangmanImageURL is the image path for the session's current hangman board
func HangmanImageURL(snap model.SessionSnapshot) string {
	q := url.Values{}
	q.Set("word", WordPattern(snap.Solution, snap.Guesses, snap.Status == model.StatusLost))
	q.Set("guesses", GuessMarks(snap.Solution, snap.Guesses))
	return HangmanImagePath + "?" + q.Encode()
}

// WordleImageURL is the image path for the session's current wordle board.
// It carries the scored rows and the word length, never the solution.
func WordleImageURL(snap model.SessionSnapshot) string {
	q := url.Values{}
	q.Set("rows", EncodeWordleRows(ScoreWordleGuesses(snap.Guesses, snap.Solution)))
	q.Set("length", strconv.Itoa(len(snap.Solution)))
	return WordleImagePath + "?" + q.Encode()
}
