package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/hangbot/internal/dependencies/mocks"
	"github.com/mcoot/hangbot/internal/model"
	"github.com/mcoot/hangbot/internal/services/board"
	"github.com/mcoot/hangbot/internal/services/dictionary"
	"github.com/mcoot/hangbot/internal/services/stats"
	"github.com/mcoot/hangbot/internal/storage/memory"
	"github.com/mcoot/hangbot/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	stats      *stats.Service
	words      *mocks.MockWordSource
	dict       *dictionary.Service
	channel    *mocks.MockChannel
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	logger := testutil.NopLogger()
	s.storage = memory.New()
	s.stats = stats.New(s.storage, logger)
	s.words = mocks.NewMockWordSource("crane", "slate", "speed", "erase", "at")
	s.words.Define("crane", "a large wading bird")
	s.dict = dictionary.New(s.storage)
	_ = s.dict.LoadWords([]string{"crane", "slate", "speed"})
	s.channel = mocks.NewMockChannel()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()

	s.controller = NewController(
		NewRegistry(s.stats, s.clock),
		s.words,
		s.dict,
		s.storage,
		board.New(s.storage, logger),
		s.channel,
		s.clock,
		s.random,
		DefaultConfig(),
		logger,
	)
	s.ctx = context.Background()
}

func (s *ControllerSuite) start(key model.ConversationKey, word string) *Session {
	session, err := s.controller.StartGame(s.ctx, StartRequest{Key: key, Word: word, Originator: "alice"})
	s.Require().NoError(err)
	return session
}

// StartGame tests

func (s *ControllerSuite) TestStartGamePublishesSession() {
	session := s.start("C1", "crane")

	s.Equal(model.StatusInProgress, session.Status())
	s.Equal(model.VariantHangman, session.Variant())
	s.Equal("a large wading bird", session.Definition())
	s.Require().Len(s.channel.Posts, 1)
	s.Equal(model.ConversationKey("C1"), s.channel.Posts[0].Key)
	s.Contains(s.channel.Posts[0].Announcement.Text, "Word suggested by <@alice>")
	s.Equal("msg-1", session.Location().MessageID)
	s.Equal(1, s.stats.GetStats("alice").WordsSuggested)
}

func (s *ControllerSuite) TestStartGameRejectsMalformedWords() {
	for _, word := range []string{"two words", "cr4ne", "don't", ""} {
		_, err := s.controller.StartGame(s.ctx, StartRequest{Key: "C1", Word: word, Originator: "alice"})
		s.ErrorIs(err, model.ErrInvalidWord, word)
	}
	s.Empty(s.channel.Posts)
}

func (s *ControllerSuite) TestStartGameRejectsShortWords() {
	_, err := s.controller.StartGame(s.ctx, StartRequest{Key: "C1", Word: "at", Originator: "alice"})
	s.ErrorIs(err, model.ErrWordTooShort)
}

func (s *ControllerSuite) TestStartGameRejectsUnknownWordsWithSuggestions() {
	s.words.Suggestions = []string{"crane", "crank"}

	_, err := s.controller.StartGame(s.ctx, StartRequest{Key: "C1", Word: "cranx", Originator: "alice"})
	s.ErrorIs(err, model.ErrNotInDictionary)

	var notFound *NotInDictionaryError
	s.Require().True(errors.As(err, &notFound))
	s.Equal([]string{"crane", "crank"}, notFound.Suggestions)

	_, ok := s.controller.registry.GetSession("C1")
	s.False(ok)
	s.Equal(0, s.stats.GetStats("alice").WordsSuggested)
}

func (s *ControllerSuite) TestStartGameRejectsRecentlyUsedWords() {
	session := s.start("C1", "crane")
	for _, l := range []string{"C", "R", "A", "N", "E"} {
		_, err := s.controller.Guess(s.ctx, "C1", l, "bob")
		s.Require().NoError(err)
	}
	s.Equal(model.StatusWon, session.Status())

	_, err := s.controller.StartGame(s.ctx, StartRequest{Key: "C2", Word: "CRANE", Originator: "carol"})
	s.ErrorIs(err, model.ErrWordRecentlyUsed)
}

func (s *ControllerSuite) TestDoubleStartIsRejected() {
	first := s.start("C1", "crane")
	_, _ = s.controller.Guess(s.ctx, "C1", "c", "bob")

	_, err := s.controller.StartGame(s.ctx, StartRequest{Key: "C1", Word: "slate", Originator: "carol"})
	s.ErrorIs(err, model.ErrGameInProgress)

	current, err := s.controller.GetSession("C1")
	s.Require().NoError(err)
	s.Same(first, current)
	s.Equal([]string{"C"}, current.Guesses())
	s.Len(s.channel.Posts, 1)
}

func (s *ControllerSuite) TestStartAfterCompletionReplacesSession() {
	s.start("C1", "crane")
	for _, l := range []string{"X", "Q", "Z", "J", "V", "K"} {
		_, _ = s.controller.Guess(s.ctx, "C1", l, "bob")
	}

	next := s.start("C1", "slate")
	current, _ := s.controller.GetSession("C1")
	s.Same(next, current)
	s.Equal(model.StatusInProgress, current.Status())
}

func (s *ControllerSuite) TestStartGameAnnouncementFailureLeavesSessionUnpublished() {
	s.channel.FailPosts = 1

	session, err := s.controller.StartGame(s.ctx, StartRequest{Key: "C1", Word: "crane", Originator: "alice"})
	s.ErrorIs(err, model.ErrAnnouncementFailed)
	s.Require().NotNil(session)
	s.Equal(model.StatusNotStarted, session.Status())

	_, err = s.controller.Guess(s.ctx, "C1", "c", "bob")
	s.ErrorIs(err, model.ErrGameNotStarted)

	// Not in progress, so another start may replace it
	s.start("C1", "slate")
}

func (s *ControllerSuite) TestStartWordleRequiresFiveLetters() {
	_, err := s.controller.StartGame(s.ctx, StartRequest{
		Key: "C1", Variant: model.VariantWordle, Word: "cranes", Originator: "alice",
	})
	s.ErrorIs(err, model.ErrInvalidWordLength)
}

func (s *ControllerSuite) TestStartWordlePicksRandomWord() {
	s.random.QueueIntn(1)

	session, err := s.controller.StartGame(s.ctx, StartRequest{
		Key: "C1", Variant: model.VariantWordle, Originator: "alice",
	})
	s.Require().NoError(err)
	// Five-letter candidates sorted: CRANE, SLATE, SPEED
	s.Equal("SLATE", session.Solution())
}

func (s *ControllerSuite) TestStartWordleRepicksRecentlyUsedWords() {
	s.Require().NoError(s.storage.AddRecentWord(s.ctx, "CRANE", 20))
	s.Require().NoError(s.storage.AddRecentWord(s.ctx, "SLATE", 20))
	// CRANE, then SLATE, then SPEED
	s.random.QueueIntn(0, 1, 2)

	session, err := s.controller.StartGame(s.ctx, StartRequest{
		Key: "C1", Variant: model.VariantWordle, Originator: "alice",
	})
	s.Require().NoError(err)
	s.Equal("SPEED", session.Solution())
}

func (s *ControllerSuite) TestStartWordleGivesUpWhenEveryPickIsRecent() {
	for _, w := range []string{"CRANE", "SLATE", "SPEED"} {
		s.Require().NoError(s.storage.AddRecentWord(s.ctx, w, 20))
	}

	_, err := s.controller.StartGame(s.ctx, StartRequest{
		Key: "C1", Variant: model.VariantWordle, Originator: "alice",
	})
	s.ErrorIs(err, model.ErrNoWordAvailable)
	s.NotErrorIs(err, model.ErrWordRecentlyUsed)
	s.Empty(s.channel.Posts)
}

func (s *ControllerSuite) TestStartRejectsUnknownVariant() {
	_, err := s.controller.StartGame(s.ctx, StartRequest{Key: "C1", Variant: "chess", Word: "crane"})
	s.ErrorIs(err, model.ErrInvalidVariant)
}

// Guess tests

func (s *ControllerSuite) TestGuessWithoutGame() {
	_, err := s.controller.Guess(s.ctx, "nowhere", "a", "bob")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ControllerSuite) TestGuessUpdatesAnnouncementAndReacts() {
	s.start("C1", "crane")
	s.random.QueueIntn(0, 1)

	outcome, err := s.controller.Guess(s.ctx, "C1", "c", "bob")
	s.Require().NoError(err)
	s.True(outcome.Correct)
	s.Equal("tada", outcome.Reaction)

	update, ok := s.channel.LastUpdate()
	s.Require().True(ok)
	s.Equal("msg-1", update.Location.MessageID)
	s.Contains(update.Announcement.Text, "C _ _ _ _")

	outcome, err = s.controller.Guess(s.ctx, "C1", "x", "bob")
	s.Require().NoError(err)
	s.False(outcome.Correct)
	s.Equal("x", outcome.Reaction)
}

func (s *ControllerSuite) TestGuessDeliveryFailureKeepsGuess() {
	session := s.start("C1", "crane")
	s.channel.FailUpdates = 1

	outcome, err := s.controller.Guess(s.ctx, "C1", "c", "bob")
	s.Require().NoError(err)
	s.True(outcome.Correct)
	s.Equal([]string{"C"}, session.Guesses())
}

func (s *ControllerSuite) TestFailedUpdateIsReplacedByNextGuess() {
	s.start("C1", "crane")
	s.channel.FailUpdates = 1

	_, err := s.controller.Guess(s.ctx, "C1", "c", "bob")
	s.Require().NoError(err)
	s.Empty(s.channel.Updates)

	_, err = s.controller.Guess(s.ctx, "C1", "r", "bob")
	s.Require().NoError(err)
	update, ok := s.channel.LastUpdate()
	s.Require().True(ok)
	s.Contains(update.Announcement.Text, "C R _ _ _")
}

func (s *ControllerSuite) TestSlowUpdateNeverOverwritesNewerBoard() {
	session := s.start("C1", "crane")
	s.channel.UpdateEntered = make(chan struct{}, 2)
	s.channel.UpdateGate = make(chan struct{})

	firstDone := make(chan error, 1)
	go func() {
		_, err := s.controller.Guess(s.ctx, "C1", "c", "bob")
		firstDone <- err
	}()
	// The first guess's update is now held mid-delivery
	<-s.channel.UpdateEntered

	secondDone := make(chan error, 1)
	go func() {
		_, err := s.controller.Guess(s.ctx, "C1", "r", "carol")
		secondDone <- err
	}()
	s.Eventually(func() bool {
		return len(session.Guesses()) == 2
	}, time.Second, time.Millisecond)

	close(s.channel.UpdateGate)
	s.Require().NoError(<-firstDone)
	s.Require().NoError(<-secondDone)

	update, ok := s.channel.LastUpdate()
	s.Require().True(ok)
	s.Contains(update.Announcement.Text, "C R _ _ _")
	for _, u := range s.channel.Updates[:len(s.channel.Updates)-1] {
		s.NotContains(u.Announcement.Text, "C R _ _ _")
	}
}

func (s *ControllerSuite) TestFinalBoardIsLastUpdate() {
	session := s.start("C1", "crane")
	s.channel.UpdateEntered = make(chan struct{}, 10)
	s.channel.UpdateGate = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := s.controller.Guess(s.ctx, "C1", "c", "bob")
		done <- err
	}()
	<-s.channel.UpdateEntered

	// The rest of the word lands while the first board is still in flight
	var wg sync.WaitGroup
	for _, l := range []string{"R", "A", "N", "E"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.controller.Guess(s.ctx, "C1", l, "carol")
		}()
	}
	s.Eventually(func() bool {
		return session.Status() == model.StatusWon
	}, time.Second, time.Millisecond)

	close(s.channel.UpdateGate)
	s.Require().NoError(<-done)
	wg.Wait()

	update, ok := s.channel.LastUpdate()
	s.Require().True(ok)
	s.Contains(update.Announcement.Text, "You win!")
}

func (s *ControllerSuite) TestWinningGuessUpdatesStatsExactlyOnce() {
	s.start("C1", "crane")
	for _, l := range []string{"C", "R", "A", "N"} {
		_, _ = s.controller.Guess(s.ctx, "C1", l, "bob")
	}
	before := s.stats.GetStats("dave")
	originatorBefore := s.stats.GetStats("alice")

	outcome, err := s.controller.Guess(s.ctx, "C1", "E", "dave")
	s.Require().NoError(err)
	s.Equal(model.StatusWon, outcome.Status)
	s.Contains(outcome.Announcement.Text, "You win!")

	after := s.stats.GetStats("dave")
	s.Equal(before.WinningGuesses+1, after.WinningGuesses)
	s.Equal(originatorBefore.SuggestionsResolved+1, s.stats.GetStats("alice").SuggestionsResolved)
	s.Equal(0, s.stats.GetStats("alice").SuggestionsFailed)
}

func (s *ControllerSuite) TestLosingGameRevealsWord() {
	s.start("C1", "crane")
	var outcome *GuessOutcome
	for _, l := range []string{"X", "Q", "Z", "J", "V", "K"} {
		var err error
		outcome, err = s.controller.Guess(s.ctx, "C1", l, "bob")
		s.Require().NoError(err)
	}

	s.Equal(model.StatusLost, outcome.Status)
	s.Equal(6, outcome.Snapshot.IncorrectCount)
	s.Contains(outcome.Announcement.Text, "c r a n e")
	s.Contains(outcome.Announcement.Text, "The word was CRANE")
	s.Equal(1, s.stats.GetStats("alice").SuggestionsFailed)
}

func (s *ControllerSuite) TestDuplicateGuessHasNoStats() {
	s.start("C1", "crane")
	_, _ = s.controller.Guess(s.ctx, "C1", "x", "bob")

	_, err := s.controller.Guess(s.ctx, "C1", "X", "bob")
	s.ErrorIs(err, model.ErrAlreadyGuessed)
	s.Equal(1, s.stats.GetStats("bob").TotalGuesses)
}

func (s *ControllerSuite) TestWordleGameWinsOnFirstGuess() {
	_, err := s.controller.StartGame(s.ctx, StartRequest{
		Key: "C1", Variant: model.VariantWordle, Word: "crane", Originator: "alice",
	})
	s.Require().NoError(err)

	outcome, err := s.controller.Guess(s.ctx, "C1", "CRANE", "bob")
	s.Require().NoError(err)
	s.Equal(model.StatusWon, outcome.Status)
	s.Contains(outcome.Announcement.Text, "🟩🟩🟩🟩🟩")
}

// HandleMessage tests

func (s *ControllerSuite) TestHandleMessageParsesLetterGuesses() {
	s.start("C1", "crane")

	outcome, err := s.controller.HandleMessage(s.ctx, "C1", "c?!", "bob")
	s.Require().NoError(err)
	s.Require().NotNil(outcome)
	s.Equal("C", outcome.Guess)
}

func (s *ControllerSuite) TestHandleMessageIgnoresChatter() {
	s.start("C1", "crane")

	for _, text := range []string{"hello there", "ab", "?", ""} {
		outcome, err := s.controller.HandleMessage(s.ctx, "C1", text, "bob")
		s.NoError(err)
		s.Nil(outcome, text)
	}

	outcome, err := s.controller.HandleMessage(s.ctx, "C-none", "a", "bob")
	s.NoError(err)
	s.Nil(outcome)
}

func (s *ControllerSuite) TestParseGuessMessage() {
	guess, ok := ParseGuessMessage("e!", model.VariantHangman, 5)
	s.True(ok)
	s.Equal("E", guess)

	_, ok = ParseGuessMessage("ee", model.VariantHangman, 5)
	s.False(ok)

	guess, ok = ParseGuessMessage(" slate ", model.VariantWordle, 5)
	s.True(ok)
	s.Equal("SLATE", guess)

	_, ok = ParseGuessMessage("slates", model.VariantWordle, 5)
	s.False(ok)
}
