package model

// PlayerStats holds the counters tracked for a single player
type PlayerStats struct {
	TotalGuesses        int `json:"total_guesses"`
	CorrectGuesses      int `json:"correct_guesses"`
	WinningGuesses      int `json:"winning_guesses"`
	WordsSuggested      int `json:"words_suggested"`
	SuggestionsResolved int `json:"suggestions_resolved"` // Suggested words that were guessed
	SuggestionsFailed   int `json:"suggestions_failed"`   // Suggested words that ended in a hanging
}

// Accuracy returns correct guesses as a fraction of all guesses
func (s PlayerStats) Accuracy() float64 {
	if s.TotalGuesses == 0 {
		return 0
	}
	return float64(s.CorrectGuesses) / float64(s.TotalGuesses)
}

// FailureRate returns failed suggestions as a fraction of suggested words
func (s PlayerStats) FailureRate() float64 {
	if s.WordsSuggested == 0 {
		return 0
	}
	return float64(s.SuggestionsFailed) / float64(s.WordsSuggested)
}

// LeaderboardEntry is one ranked player on a board
type LeaderboardEntry struct {
	PlayerID PlayerID `json:"player_id"`
	Value    float64  `json:"value"`
}

// Leaderboard is the set of ranked boards derived from all player stats
type Leaderboard struct {
	MostCorrectGuesses []LeaderboardEntry `json:"most_correct_guesses"`
	MostWinningGuesses []LeaderboardEntry `json:"most_winning_guesses"`
	MostWordsSuggested []LeaderboardEntry `json:"most_words_suggested"`
	BestGuesses        []LeaderboardEntry `json:"best_guesses"`
	DeadliestWords     []LeaderboardEntry `json:"deadliest_words"`
}
