package response

import (
	"time"

	"github.com/mcoot/hangbot/internal/model"
	"github.com/mcoot/hangbot/internal/services/board"
	"github.com/mcoot/hangbot/internal/services/game"
)

// Game represents a session in API responses. The solution is only shown
// once the game is over.
type Game struct {
	Conversation   string             `json:"conversation"`
	Variant        string             `json:"variant"`
	Status         string             `json:"status"`
	Originator     string             `json:"originator"`
	Pattern        string             `json:"pattern,omitempty"`
	Guesses        []string           `json:"guesses"`
	IncorrectCount int                `json:"incorrect_count"`
	RemainingLives int                `json:"remaining_lives"`
	Rows           [][]board.Tile     `json:"rows,omitempty"`
	Solution       string             `json:"solution,omitempty"`
	Definition     string             `json:"definition,omitempty"`
	Location       *model.Location    `json:"location,omitempty"`
	Announcement   model.Announcement `json:"announcement"`
	CreatedAt      time.Time          `json:"created_at"`
}

// GameFromSession converts a session
func GameFromSession(key model.ConversationKey, s *game.Session, boardService *board.Service) Game {
	snap := s.Snapshot()
	g := Game{
		Conversation:   string(key),
		Variant:        string(snap.Variant),
		Status:         string(snap.Status),
		Originator:     string(snap.Originator),
		Guesses:        snap.Guesses,
		IncorrectCount: snap.IncorrectCount,
		RemainingLives: max(0, model.MaxIncorrectGuesses-snap.IncorrectCount),
		Location:       snap.Location,
		Announcement:   boardService.Announcement(snap),
		CreatedAt:      s.CreatedAt(),
	}

	switch snap.Variant {
	case model.VariantWordle:
		g.Rows = board.WordleGrid(snap.Guesses, snap.Solution)
	default:
		g.Pattern = board.WordPattern(snap.Solution, snap.Guesses, snap.Status == model.StatusLost)
	}

	if snap.Status.IsTerminal() {
		g.Solution = snap.Solution
		g.Definition = snap.Definition
	}
	return g
}

// Guess is the response for an accepted guess
type Guess struct {
	Guess    string `json:"guess"`
	Correct  bool   `json:"correct"`
	Winning  bool   `json:"winning"`
	Reaction string `json:"reaction"`
	Game     Game   `json:"game"`
}

// Message is the response for a chat message; Guess is nil when the message
// wasn't a guess
type Message struct {
	Guess *Guess `json:"guess"`
}

// PlayerStats represents a player's counters
type PlayerStats struct {
	PlayerID string `json:"player_id"`
	model.PlayerStats
	Accuracy    float64 `json:"accuracy"`
	FailureRate float64 `json:"failure_rate"`
}

// PlayerStatsFromModel converts model.PlayerStats
func PlayerStatsFromModel(id model.PlayerID, st model.PlayerStats) PlayerStats {
	return PlayerStats{
		PlayerID:    string(id),
		PlayerStats: st,
		Accuracy:    st.Accuracy(),
		FailureRate: st.FailureRate(),
	}
}

// Health is the health check response
type Health struct {
	Status string `json:"status"`
}
