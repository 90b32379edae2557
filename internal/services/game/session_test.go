package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/hangbot/internal/model"
)

type guessEvent struct {
	player           model.PlayerID
	correct, winning bool
}

type completionEvent struct {
	originator model.PlayerID
	successful bool
}

// recordingStats captures stat events in order
type recordingStats struct {
	guesses     []guessEvent
	newGames    []model.PlayerID
	completions []completionEvent
}

func (r *recordingStats) RecordGuess(ctx context.Context, player model.PlayerID, correct, winning bool) {
	r.guesses = append(r.guesses, guessEvent{player, correct, winning})
}

func (r *recordingStats) RecordNewGame(ctx context.Context, originator model.PlayerID) {
	r.newGames = append(r.newGames, originator)
}

func (r *recordingStats) RecordCompletion(ctx context.Context, originator model.PlayerID, successful bool) {
	r.completions = append(r.completions, completionEvent{originator, successful})
}

type SessionSuite struct {
	suite.Suite
	stats *recordingStats
	ctx   context.Context
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) SetupTest() {
	s.stats = &recordingStats{}
	s.ctx = context.Background()
}

func (s *SessionSuite) newSession(variant model.Variant, solution string) *Session {
	session := NewSession(s.ctx, variant, solution, "alice", "", s.stats, time.Now())
	s.Require().NoError(session.Publish(model.Location{Key: "C1", MessageID: "m-1"}))
	return session
}

func (s *SessionSuite) guessAll(session *Session, guesses ...string) {
	for _, g := range guesses {
		_, err := session.Guess(s.ctx, g, "bob")
		s.Require().NoError(err)
	}
}

// Creation tests

func (s *SessionSuite) TestNewSessionIsNotStartedAndRecordsSuggestion() {
	session := NewSession(s.ctx, model.VariantHangman, "crane", "alice", "a bird", s.stats, time.Now())

	s.Equal("CRANE", session.Solution())
	s.Equal(model.StatusNotStarted, session.Status())
	s.Nil(session.Location())
	s.Equal("a bird", session.Definition())
	s.Equal([]model.PlayerID{"alice"}, s.stats.newGames)
}

func (s *SessionSuite) TestPublishOnlyOnce() {
	session := s.newSession(model.VariantHangman, "CRANE")
	s.Equal(model.StatusInProgress, session.Status())

	err := session.Publish(model.Location{Key: "C1", MessageID: "m-2"})
	s.ErrorIs(err, model.ErrAlreadyPublished)
	s.Equal("m-1", session.Location().MessageID)
}

func (s *SessionSuite) TestGuessUnpublishedIsRejected() {
	session := NewSession(s.ctx, model.VariantHangman, "CRANE", "alice", "", s.stats, time.Now())

	_, err := session.Guess(s.ctx, "c", "bob")
	s.ErrorIs(err, model.ErrGameNotStarted)
	s.Empty(session.Guesses())
	s.Empty(s.stats.guesses)
}

// Hangman tests

func (s *SessionSuite) TestHangmanCorrectAndIncorrectGuesses() {
	session := s.newSession(model.VariantHangman, "CRANE")

	result, err := session.Guess(s.ctx, "c", "bob")
	s.Require().NoError(err)
	s.Equal("C", result.Guess)
	s.True(result.Correct)
	s.False(result.Winning)
	s.Equal(model.StatusInProgress, result.Status)

	result, err = session.Guess(s.ctx, "x", "bob")
	s.Require().NoError(err)
	s.False(result.Correct)
	s.Equal(1, session.IncorrectCount())
	s.Equal([]string{"C", "X"}, session.Guesses())
}

func (s *SessionSuite) TestHangmanUsesFirstLetterOnly() {
	session := s.newSession(model.VariantHangman, "CRANE")

	result, err := session.Guess(s.ctx, "cat", "bob")
	s.Require().NoError(err)
	s.Equal("C", result.Guess)
	s.True(session.HasBeenGuessed("Cobra"))
}

func (s *SessionSuite) TestHangmanRejectsNonLetters() {
	session := s.newSession(model.VariantHangman, "CRANE")

	_, err := session.Guess(s.ctx, "7", "bob")
	s.ErrorIs(err, model.ErrInvalidLetter)
	_, err = session.Guess(s.ctx, "  ", "bob")
	s.ErrorIs(err, model.ErrInvalidLetter)
	s.Empty(s.stats.guesses)
}

func (s *SessionSuite) TestDuplicateGuessIsRejectedWithoutStats() {
	session := s.newSession(model.VariantHangman, "CRANE")
	s.guessAll(session, "x")
	before := session.IncorrectCount()

	_, err := session.Guess(s.ctx, "X", "carol")
	s.ErrorIs(err, model.ErrAlreadyGuessed)

	s.Equal(before, session.IncorrectCount())
	s.Len(s.stats.guesses, 1)
	s.Equal([]string{"X"}, session.Guesses())
}

func (s *SessionSuite) TestHangmanWinningGuess() {
	session := s.newSession(model.VariantHangman, "CRANE")
	s.guessAll(session, "C", "R", "A", "N")

	result, err := session.Guess(s.ctx, "e", "dave")
	s.Require().NoError(err)
	s.True(result.Winning)
	s.Equal(model.StatusWon, result.Status)

	s.Equal(guessEvent{"dave", true, true}, s.stats.guesses[len(s.stats.guesses)-1])
	s.Equal([]completionEvent{{"alice", true}}, s.stats.completions)
}

func (s *SessionSuite) TestHangmanRepeatedLettersNeedOneGuess() {
	session := s.newSession(model.VariantHangman, "SPEED")
	s.guessAll(session, "S", "P", "E")

	result, err := session.Guess(s.ctx, "D", "bob")
	s.Require().NoError(err)
	s.Equal(model.StatusWon, result.Status)
}

func (s *SessionSuite) TestHangmanSixWrongGuessesLoses() {
	session := s.newSession(model.VariantHangman, "CRANE")
	s.guessAll(session, "X", "Q", "Z", "J", "V")
	s.Equal(model.StatusInProgress, session.Status())

	result, err := session.Guess(s.ctx, "K", "bob")
	s.Require().NoError(err)
	s.Equal(model.StatusLost, result.Status)
	s.False(result.Winning)
	s.Equal(6, session.IncorrectCount())
	s.Equal([]completionEvent{{"alice", false}}, s.stats.completions)
}

func (s *SessionSuite) TestTerminalSessionRejectsGuesses() {
	session := s.newSession(model.VariantHangman, "CRANE")
	s.guessAll(session, "X", "Q", "Z", "J", "V", "K")

	_, err := session.Guess(s.ctx, "C", "bob")
	s.ErrorIs(err, model.ErrGameComplete)

	// Terminal guard comes before the duplicate guard
	_, err = session.Guess(s.ctx, "X", "bob")
	s.ErrorIs(err, model.ErrGameComplete)

	s.Len(session.Guesses(), 6)
	s.Len(s.stats.guesses, 6)
	s.Len(s.stats.completions, 1)
}

// Wordle tests

func (s *SessionSuite) TestWordleExactGuessWins() {
	session := s.newSession(model.VariantWordle, "CRANE")

	result, err := session.Guess(s.ctx, "crane", "bob")
	s.Require().NoError(err)
	s.Equal("CRANE", result.Guess)
	s.True(result.Correct)
	s.True(result.Winning)
	s.Equal(model.StatusWon, result.Status)
}

func (s *SessionSuite) TestWordleRejectsWrongLength() {
	session := s.newSession(model.VariantWordle, "CRANE")

	_, err := session.Guess(s.ctx, "cranes", "bob")
	s.ErrorIs(err, model.ErrInvalidGuess)
	_, err = session.Guess(s.ctx, "cr4ne", "bob")
	s.ErrorIs(err, model.ErrInvalidGuess)
}

func (s *SessionSuite) TestWordleSixMissesLoses() {
	session := s.newSession(model.VariantWordle, "CRANE")
	s.guessAll(session, "SLATE", "PIOUS", "DOUGH", "FJORD", "BLIMP")

	result, err := session.Guess(s.ctx, "WHACK", "bob")
	s.Require().NoError(err)
	s.Equal(model.StatusLost, result.Status)
}

func (s *SessionSuite) TestWordleWinOnLastRow() {
	session := s.newSession(model.VariantWordle, "CRANE")
	s.guessAll(session, "SLATE", "PIOUS", "DOUGH", "FJORD", "BLIMP")

	result, err := session.Guess(s.ctx, "CRANE", "bob")
	s.Require().NoError(err)
	s.Equal(model.StatusWon, result.Status)
}

// Pure status tests

func (s *SessionSuite) TestDeriveStatusIsPure() {
	guesses := []string{"C", "X"}
	first := DeriveStatus(model.VariantHangman, "CRANE", guesses, true)
	second := DeriveStatus(model.VariantHangman, "CRANE", guesses, true)
	s.Equal(first, second)
	s.Equal([]string{"C", "X"}, guesses)
}

func (s *SessionSuite) TestDeriveStatus() {
	s.Equal(model.StatusNotStarted, DeriveStatus(model.VariantHangman, "", nil, true))
	s.Equal(model.StatusNotStarted, DeriveStatus(model.VariantHangman, "CRANE", nil, false))
	s.Equal(model.StatusInProgress, DeriveStatus(model.VariantHangman, "CRANE", nil, true))
	s.Equal(model.StatusWon, DeriveStatus(model.VariantHangman, "AA", []string{"A"}, true))
}

func (s *SessionSuite) TestLostIsCheckedBeforeWon() {
	// Every letter guessed but six misses along the way
	guesses := []string{"Q", "W", "T", "Y", "U", "I", "A"}
	s.Equal(model.StatusLost, DeriveStatus(model.VariantHangman, "A", guesses, true))
}

func (s *SessionSuite) TestIncorrectCountAtLeastSixIsAlwaysLost() {
	misses := []string{"B", "D", "F", "G", "H", "I", "J", "K"}
	for n := model.MaxIncorrectGuesses; n <= len(misses); n++ {
		s.Equal(model.StatusLost, DeriveStatus(model.VariantHangman, "CRANE", misses[:n], true))
	}
}

func (s *SessionSuite) TestSnapshotIsACopy() {
	session := s.newSession(model.VariantHangman, "CRANE")
	s.guessAll(session, "C")

	snap := session.Snapshot()
	snap.Guesses[0] = "Z"
	snap.Location.MessageID = "changed"

	s.Equal([]string{"C"}, session.Guesses())
	s.Equal("m-1", session.Location().MessageID)
}
