package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/hangbot/internal/model"
	"github.com/mcoot/hangbot/internal/storage/memory"
	"github.com/mcoot/hangbot/internal/testutil"
)

// failingStorage rejects every stats write
type failingStorage struct {
	*memory.Storage
	saves int
}

func (f *failingStorage) SaveStats(ctx context.Context, stats map[model.PlayerID]model.PlayerStats) error {
	f.saves++
	return errors.New("disk full")
}

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage, testutil.NopLogger())
	s.ctx = context.Background()
}

// Recording tests

func (s *ServiceSuite) TestUnknownPlayerIsZero() {
	s.Equal(model.PlayerStats{}, s.service.GetStats("nobody"))
}

func (s *ServiceSuite) TestRecordGuess() {
	s.service.RecordGuess(s.ctx, "alice", true, false)
	s.service.RecordGuess(s.ctx, "alice", false, false)
	s.service.RecordGuess(s.ctx, "alice", true, true)

	st := s.service.GetStats("alice")
	s.Equal(3, st.TotalGuesses)
	s.Equal(2, st.CorrectGuesses)
	s.Equal(1, st.WinningGuesses)
}

func (s *ServiceSuite) TestRecordNewGameAndCompletion() {
	s.service.RecordNewGame(s.ctx, "bob")
	s.service.RecordNewGame(s.ctx, "bob")
	s.service.RecordCompletion(s.ctx, "bob", true)
	s.service.RecordCompletion(s.ctx, "bob", false)

	st := s.service.GetStats("bob")
	s.Equal(2, st.WordsSuggested)
	s.Equal(1, st.SuggestionsResolved)
	s.Equal(1, st.SuggestionsFailed)
}

func (s *ServiceSuite) TestGetStatsReturnsCopy() {
	s.service.RecordNewGame(s.ctx, "bob")

	st := s.service.GetStats("bob")
	st.WordsSuggested = 100

	s.Equal(1, s.service.GetStats("bob").WordsSuggested)
}

// Persistence tests

func (s *ServiceSuite) TestEveryMutationWritesThrough() {
	s.service.RecordGuess(s.ctx, "alice", true, false)

	persisted, err := s.storage.GetStats(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, persisted["alice"].CorrectGuesses)

	s.service.RecordNewGame(s.ctx, "bob")

	persisted, err = s.storage.GetStats(s.ctx)
	s.Require().NoError(err)
	s.Len(persisted, 2)
}

func (s *ServiceSuite) TestPersistenceFailureKeepsInMemoryState() {
	failing := &failingStorage{Storage: memory.New()}
	service := New(failing, testutil.NopLogger())

	service.RecordGuess(s.ctx, "alice", true, true)

	s.Equal(1, failing.saves)
	s.Equal(1, service.GetStats("alice").WinningGuesses)
}

func (s *ServiceSuite) TestLoadFromStorage() {
	_ = s.storage.SaveStats(s.ctx, map[model.PlayerID]model.PlayerStats{
		"alice": {TotalGuesses: 10, CorrectGuesses: 7},
	})

	err := s.service.LoadFromStorage(s.ctx)
	s.Require().NoError(err)

	s.Equal(7, s.service.GetStats("alice").CorrectGuesses)
}

// Leaderboard tests

func (s *ServiceSuite) TestLeaderboardTopThreeWithTies() {
	table := map[model.PlayerID]model.PlayerStats{
		"dave":  {CorrectGuesses: 5},
		"alice": {CorrectGuesses: 9},
		"carol": {CorrectGuesses: 5},
		"bob":   {CorrectGuesses: 5},
		"erin":  {CorrectGuesses: 0},
	}

	board := BuildLeaderboard(table)

	s.Equal([]model.LeaderboardEntry{
		{PlayerID: "alice", Value: 9},
		{PlayerID: "bob", Value: 5},
		{PlayerID: "carol", Value: 5},
	}, board.MostCorrectGuesses)
}

func (s *ServiceSuite) TestLeaderboardExcludesZeroValues() {
	table := map[model.PlayerID]model.PlayerStats{
		"alice": {WordsSuggested: 1},
		"bob":   {TotalGuesses: 3},
	}

	board := BuildLeaderboard(table)

	s.Empty(board.MostWinningGuesses)
	s.Empty(board.MostCorrectGuesses)
	s.Equal([]model.LeaderboardEntry{{PlayerID: "alice", Value: 1}}, board.MostWordsSuggested)
}

func (s *ServiceSuite) TestBestGuessesHonoursFloor() {
	table := map[model.PlayerID]model.PlayerStats{
		"sharp":  {TotalGuesses: 19, CorrectGuesses: 19},
		"steady": {TotalGuesses: 20, CorrectGuesses: 15},
	}

	board := BuildLeaderboard(table)

	s.Equal([]model.LeaderboardEntry{{PlayerID: "steady", Value: 0.75}}, board.BestGuesses)
}

func (s *ServiceSuite) TestDeadliestWordsHonoursFloor() {
	table := map[model.PlayerID]model.PlayerStats{
		"few":  {WordsSuggested: 4, SuggestionsFailed: 4},
		"many": {WordsSuggested: 5, SuggestionsFailed: 2},
		"none": {WordsSuggested: 8},
	}

	board := BuildLeaderboard(table)

	s.Equal([]model.LeaderboardEntry{{PlayerID: "many", Value: 0.4}}, board.DeadliestWords)
}

func (s *ServiceSuite) TestGetLeaderboardUsesLiveTable() {
	s.service.RecordGuess(s.ctx, "alice", true, true)

	board := s.service.GetLeaderboard()
	s.Equal([]model.LeaderboardEntry{{PlayerID: "alice", Value: 1}}, board.MostWinningGuesses)
}
