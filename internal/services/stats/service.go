package stats

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/mcoot/hangbot/internal/model"
	"github.com/mcoot/hangbot/internal/storage"
)

const (
	// LeaderboardSize is the number of entries on each board
	LeaderboardSize = 3
	// MinGuessesForAccuracy is the floor for the best guesses board
	MinGuessesForAccuracy = 20
	// MinSuggestionsForFailureRate is the floor for the deadliest words board
	MinSuggestionsForFailureRate = 5
)

// Service owns the player stats table and writes it through to storage
type Service struct {
	storage storage.Storage
	logger  *slog.Logger

	mu    sync.RWMutex
	table map[model.PlayerID]model.PlayerStats
}

// New creates a new StatsService with an empty table
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger.With(slog.String("component", "stats")),
		table:   make(map[model.PlayerID]model.PlayerStats),
	}
}

// LoadFromStorage replaces the table with the persisted one
func (s *Service) LoadFromStorage(ctx context.Context) error {
	persisted, err := s.storage.GetStats(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = persisted
	if s.table == nil {
		s.table = make(map[model.PlayerID]model.PlayerStats)
	}
	return nil
}

// RecordGuess counts a guess for the guesser
func (s *Service) RecordGuess(ctx context.Context, player model.PlayerID, correct, winning bool) {
	s.update(ctx, player, func(st *model.PlayerStats) {
		st.TotalGuesses++
		if correct {
			st.CorrectGuesses++
		}
		if winning {
			st.WinningGuesses++
		}
	})
}

// RecordNewGame counts a suggested word for the originator
func (s *Service) RecordNewGame(ctx context.Context, originator model.PlayerID) {
	s.update(ctx, originator, func(st *model.PlayerStats) {
		st.WordsSuggested++
	})
}

// RecordCompletion counts the outcome of a suggested word for its originator
func (s *Service) RecordCompletion(ctx context.Context, originator model.PlayerID, successful bool) {
	s.update(ctx, originator, func(st *model.PlayerStats) {
		if successful {
			st.SuggestionsResolved++
		} else {
			st.SuggestionsFailed++
		}
	})
}

func (s *Service) update(ctx context.Context, player model.PlayerID, fn func(*model.PlayerStats)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.table[player]
	fn(&st)
	s.table[player] = st

	// Written under the lock so snapshots reach storage in mutation order
	s.persist(ctx, s.copyTable())
}

// persist writes the whole table. Failures are logged and otherwise ignored.
func (s *Service) persist(ctx context.Context, table map[model.PlayerID]model.PlayerStats) {
	if err := s.storage.SaveStats(context.WithoutCancel(ctx), table); err != nil {
		s.logger.Error("failed to persist stats",
			slog.Int("players", len(table)),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Service) copyTable() map[model.PlayerID]model.PlayerStats {
	out := make(map[model.PlayerID]model.PlayerStats, len(s.table))
	for id, st := range s.table {
		out[id] = st
	}
	return out
}

// GetStats returns a copy of a player's stats, zero-valued if never seen
func (s *Service) GetStats(player model.PlayerID) model.PlayerStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table[player]
}

// GetLeaderboard ranks all players on each board
func (s *Service) GetLeaderboard() model.Leaderboard {
	s.mu.RLock()
	table := s.copyTable()
	s.mu.RUnlock()

	return BuildLeaderboard(table)
}

// BuildLeaderboard derives every board from a stats table
func BuildLeaderboard(table map[model.PlayerID]model.PlayerStats) model.Leaderboard {
	return model.Leaderboard{
		MostCorrectGuesses: rank(table, func(st model.PlayerStats) (float64, bool) {
			return float64(st.CorrectGuesses), true
		}),
		MostWinningGuesses: rank(table, func(st model.PlayerStats) (float64, bool) {
			return float64(st.WinningGuesses), true
		}),
		MostWordsSuggested: rank(table, func(st model.PlayerStats) (float64, bool) {
			return float64(st.WordsSuggested), true
		}),
		BestGuesses: rank(table, func(st model.PlayerStats) (float64, bool) {
			return st.Accuracy(), st.TotalGuesses >= MinGuessesForAccuracy
		}),
		DeadliestWords: rank(table, func(st model.PlayerStats) (float64, bool) {
			return st.FailureRate(), st.WordsSuggested >= MinSuggestionsForFailureRate
		}),
	}
}

// rank keeps eligible non-zero values, highest first, ties by player id
func rank(table map[model.PlayerID]model.PlayerStats, value func(model.PlayerStats) (float64, bool)) []model.LeaderboardEntry {
	entries := []model.LeaderboardEntry{}
	for id, st := range table {
		v, eligible := value(st)
		if !eligible || v == 0 {
			continue
		}
		entries = append(entries, model.LeaderboardEntry{PlayerID: id, Value: v})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})

	if len(entries) > LeaderboardSize {
		entries = entries[:LeaderboardSize]
	}
	return entries
}
