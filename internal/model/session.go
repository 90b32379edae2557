package model

// Variant selects the rules a session is played with
type Variant string

const (
	VariantHangman Variant = "hangman" // Single-letter guesses against a gallows
	VariantWordle  Variant = "wordle"  // Whole-word guesses scored per tile
)

// ParseVariant returns the variant for a name, defaulting to hangman when empty
func ParseVariant(name string) (Variant, error) {
	switch Variant(name) {
	case "", VariantHangman:
		return VariantHangman, nil
	case VariantWordle:
		return VariantWordle, nil
	default:
		return "", ErrInvalidVariant
	}
}

// Status is the derived phase of a session
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

// IsTerminal returns true once no further guesses are accepted
func (s Status) IsTerminal() bool {
	return s == StatusWon || s == StatusLost
}

const (
	// MaxIncorrectGuesses is the number of wrong guesses that loses a game
	MaxIncorrectGuesses = 6
	// WordleLength is the solution length for wordle sessions
	WordleLength = 5
	// WordleRows is the number of rows on a wordle board
	WordleRows = MaxIncorrectGuesses
)

// SessionSnapshot is a point-in-time copy of a session's state
type SessionSnapshot struct {
	Variant        Variant   `json:"variant"`
	Solution       string    `json:"-"`
	Guesses        []string  `json:"guesses"`
	Originator     PlayerID  `json:"originator"`
	Definition     string    `json:"-"`
	Location       *Location `json:"location,omitempty"`
	Status         Status    `json:"status"`
	IncorrectCount int       `json:"incorrect_count"`
}
