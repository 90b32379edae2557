package pages

import (
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/mcoot/hangbot/internal/model"
	"github.com/mcoot/hangbot/internal/web/templates/layout"
)

// HomeData holds data for the home page
type HomeData struct {
	layout.PageData
	Leaderboard model.Leaderboard
}

// PlayerData holds data for a player's stats page
type PlayerData struct {
	layout.PageData
	PlayerID model.PlayerID
	Stats    model.PlayerStats
}

// ConversationData holds data for a conversation's game page
type ConversationData struct {
	layout.PageData
	Key          model.ConversationKey
	Status       model.Status
	Announcement *model.Announcement // nil when no game has been started
}

// leaderboardSection is one ranked board on the home page
type leaderboardSection struct {
	ID      string
	Title   string
	Percent bool
	Entries []model.LeaderboardEntry
}

func homeSections(lb model.Leaderboard) []leaderboardSection {
	return []leaderboardSection{
		{"most-correct", "Most correct guesses", false, lb.MostCorrectGuesses},
		{"most-winning", "Most winning guesses", false, lb.MostWinningGuesses},
		{"most-suggested", "Most words suggested", false, lb.MostWordsSuggested},
		{"best-guesses", "Best guessers", true, lb.BestGuesses},
		{"deadliest-words", "Deadliest words", true, lb.DeadliestWords},
	}
}

// statRow is one counter on the player page
type statRow struct {
	ID    string
	Label string
	Value string
}

func statRows(st model.PlayerStats) []statRow {
	return []statRow{
		{"total-guesses", "Guesses", strconv.Itoa(st.TotalGuesses)},
		{"correct-guesses", "Correct guesses", strconv.Itoa(st.CorrectGuesses)},
		{"winning-guesses", "Winning guesses", strconv.Itoa(st.WinningGuesses)},
		{"accuracy", "Accuracy", formatValue(st.Accuracy(), true)},
		{"words-suggested", "Words suggested", strconv.Itoa(st.WordsSuggested)},
		{"suggestions-resolved", "Words guessed", strconv.Itoa(st.SuggestionsResolved)},
		{"suggestions-failed", "Hangings", strconv.Itoa(st.SuggestionsFailed)},
	}
}

func playerURL(id model.PlayerID) templ.SafeURL {
	return templ.SafeURL("/players/" + url.PathEscape(string(id)))
}

func formatValue(v float64, percent bool) string {
	if percent {
		return strconv.FormatFloat(v*100, 'f', 1, 64) + "%"
	}
	return strconv.FormatFloat(v, 'f', 0, 64)
}
