package game

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/mcoot/hangbot/internal/model"
)

// StatsRecorder receives the stat events a session emits
type StatsRecorder interface {
	RecordGuess(ctx context.Context, player model.PlayerID, correct, winning bool)
	RecordNewGame(ctx context.Context, originator model.PlayerID)
	RecordCompletion(ctx context.Context, originator model.PlayerID, successful bool)
}

// Session is a single puzzle. Guesses are append-only and stop changing once
// the session reaches a terminal status.
type Session struct {
	mu sync.Mutex

	variant    model.Variant
	solution   string
	guesses    []string
	originator model.PlayerID
	definition string
	location   *model.Location
	createdAt  time.Time

	stats StatsRecorder
}

// GuessResult describes an accepted guess
type GuessResult struct {
	Guess    string                `json:"guess"`
	Correct  bool                  `json:"correct"`
	Winning  bool                  `json:"winning"`
	Status   model.Status          `json:"status"`
	Snapshot model.SessionSnapshot `json:"-"`
}

// NewSession creates an unpublished session and records the suggestion for
// the originator. The solution is not validated here.
func NewSession(
	ctx context.Context,
	variant model.Variant,
	solution string,
	originator model.PlayerID,
	definition string,
	stats StatsRecorder,
	createdAt time.Time,
) *Session {
	s := &Session{
		variant:    variant,
		solution:   strings.ToUpper(solution),
		guesses:    []string{},
		originator: originator,
		definition: definition,
		createdAt:  createdAt,
		stats:      stats,
	}
	if stats != nil {
		stats.RecordNewGame(ctx, originator)
	}
	return s
}

// Variant returns the rules the session is played with
func (s *Session) Variant() model.Variant {
	return s.variant
}

// Solution returns the uppercase solution
func (s *Session) Solution() string {
	return s.solution
}

// Originator returns the player who suggested the solution
func (s *Session) Originator() model.PlayerID {
	return s.originator
}

// Definition returns the solution's gloss, if one was found
func (s *Session) Definition() string {
	return s.definition
}

// CreatedAt returns when the session was created
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// Guesses returns a copy of the guesses in the order they were made
func (s *Session) Guesses() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.guesses)
}

// Location returns where the session was announced, or nil before publishing
func (s *Session) Location() *model.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.location == nil {
		return nil
	}
	loc := *s.location
	return &loc
}

// Status derives the session's current status
func (s *Session) Status() model.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status()
}

func (s *Session) status() model.Status {
	return DeriveStatus(s.variant, s.solution, s.guesses, s.location != nil)
}

// IncorrectCount is the number of guesses that missed
func (s *Session) IncorrectCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CountIncorrect(s.variant, s.solution, s.guesses)
}

// HasBeenGuessed reports whether the normalized form of raw was already guessed
func (s *Session) HasBeenGuessed(raw string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.guesses, s.normalize(raw))
}

// Snapshot copies the session state
func (s *Session) Snapshot() model.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() model.SessionSnapshot {
	snap := model.SessionSnapshot{
		Variant:        s.variant,
		Solution:       s.solution,
		Guesses:        slices.Clone(s.guesses),
		Originator:     s.originator,
		Definition:     s.definition,
		Status:         s.status(),
		IncorrectCount: CountIncorrect(s.variant, s.solution, s.guesses),
	}
	if s.location != nil {
		loc := *s.location
		snap.Location = &loc
	}
	return snap
}

// Publish records where the session was announced. It can only happen once.
func (s *Session) Publish(loc model.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.location != nil {
		return model.ErrAlreadyPublished
	}
	s.location = &loc
	return nil
}

// Guess applies a guess from guesser. Exactly one guess stat is emitted for
// an accepted guess, plus one completion stat when it ends the game.
func (s *Session) Guess(ctx context.Context, raw string, guesser model.PlayerID) (GuessResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := s.status()
	if status.IsTerminal() {
		return GuessResult{}, model.ErrGameComplete
	}

	if status == model.StatusNotStarted {
		return GuessResult{}, model.ErrGameNotStarted
	}

	guess := s.normalize(raw)
	if slices.Contains(s.guesses, guess) {
		return GuessResult{}, model.ErrAlreadyGuessed
	}
	if err := s.validate(guess); err != nil {
		return GuessResult{}, err
	}

	s.guesses = append(s.guesses, guess)

	correct := isCorrect(s.variant, s.solution, guess)
	status = s.status()
	winning := status == model.StatusWon

	if s.stats != nil {
		s.stats.RecordGuess(ctx, guesser, correct, winning)
		if status.IsTerminal() {
			s.stats.RecordCompletion(ctx, s.originator, winning)
		}
	}

	return GuessResult{
		Guess:    guess,
		Correct:  correct,
		Winning:  winning,
		Status:   status,
		Snapshot: s.snapshot(),
	}, nil
}

// normalize is the first letter (hangman) or whole word (wordle), uppercased
func (s *Session) normalize(raw string) string {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if s.variant == model.VariantWordle {
		return raw
	}
	for _, r := range raw {
		return string(r)
	}
	return ""
}

func (s *Session) validate(guess string) error {
	if s.variant == model.VariantWordle {
		if len(guess) != len(s.solution) || !isLetters(guess) {
			return model.ErrInvalidGuess
		}
		return nil
	}
	if len(guess) != 1 || !isLetters(guess) {
		return model.ErrInvalidLetter
	}
	return nil
}

// DeriveStatus computes a session's status from its inputs alone
func DeriveStatus(variant model.Variant, solution string, guesses []string, published bool) model.Status {
	if solution == "" || !published {
		return model.StatusNotStarted
	}
	if CountIncorrect(variant, solution, guesses) >= model.MaxIncorrectGuesses {
		return model.StatusLost
	}
	if variant == model.VariantWordle {
		if len(guesses) > 0 && guesses[len(guesses)-1] == solution {
			return model.StatusWon
		}
		return model.StatusInProgress
	}
	for _, r := range solution {
		if !slices.Contains(guesses, string(r)) {
			return model.StatusInProgress
		}
	}
	return model.StatusWon
}

// CountIncorrect counts the guesses that missed the solution
func CountIncorrect(variant model.Variant, solution string, guesses []string) int {
	count := 0
	for _, g := range guesses {
		if !isCorrect(variant, solution, g) {
			count++
		}
	}
	return count
}

func isCorrect(variant model.Variant, solution, guess string) bool {
	if variant == model.VariantWordle {
		return guess == solution
	}
	return guess != "" && strings.Contains(solution, guess)
}

func isLetters(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return s != ""
}
