package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Game:
		o.printGame(v)
	case GuessResult:
		o.printGuessResult(v)
	case MessageResult:
		o.printMessageResult(v)
	case PlayerStats:
		o.printPlayerStats(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Announcement response type
type Announcement struct {
	Text      string `json:"text"`
	ImagePath string `json:"image_path,omitempty"`
}

// Tile response type
type Tile struct {
	Letter string `json:"letter"`
	State  string `json:"state"`
}

// Game response type (matches API)
type Game struct {
	Conversation   string       `json:"conversation"`
	Variant        string       `json:"variant"`
	Status         string       `json:"status"`
	Originator     string       `json:"originator"`
	Pattern        string       `json:"pattern,omitempty"`
	Guesses        []string     `json:"guesses"`
	IncorrectCount int          `json:"incorrect_count"`
	RemainingLives int          `json:"remaining_lives"`
	Rows           [][]Tile     `json:"rows,omitempty"`
	Solution       string       `json:"solution,omitempty"`
	Definition     string       `json:"definition,omitempty"`
	Announcement   Announcement `json:"announcement"`
}

// GuessResult response type
type GuessResult struct {
	Guess    string `json:"guess"`
	Correct  bool   `json:"correct"`
	Winning  bool   `json:"winning"`
	Reaction string `json:"reaction"`
	Game     Game   `json:"game"`
}

// MessageResult response type
type MessageResult struct {
	Guess *GuessResult `json:"guess"`
}

// PlayerStats response type
type PlayerStats struct {
	PlayerID            string  `json:"player_id"`
	TotalGuesses        int     `json:"total_guesses"`
	CorrectGuesses      int     `json:"correct_guesses"`
	WinningGuesses      int     `json:"winning_guesses"`
	WordsSuggested      int     `json:"words_suggested"`
	SuggestionsResolved int     `json:"suggestions_resolved"`
	SuggestionsFailed   int     `json:"suggestions_failed"`
	Accuracy            float64 `json:"accuracy"`
	FailureRate         float64 `json:"failure_rate"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	PlayerID string  `json:"player_id"`
	Value    float64 `json:"value"`
}

// Leaderboard response type
type Leaderboard struct {
	MostCorrectGuesses []LeaderboardEntry `json:"most_correct_guesses"`
	MostWinningGuesses []LeaderboardEntry `json:"most_winning_guesses"`
	MostWordsSuggested []LeaderboardEntry `json:"most_words_suggested"`
	BestGuesses        []LeaderboardEntry `json:"best_guesses"`
	DeadliestWords     []LeaderboardEntry `json:"deadliest_words"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

var tileSymbols = map[string]string{
	"correct": "🟩",
	"present": "🟨",
	"absent":  "⬛",
}

func (o *Output) printGame(g Game) {
	fmt.Fprintf(o.w, "Conversation: %s\n", g.Conversation)
	fmt.Fprintf(o.w, "Variant: %s\n", g.Variant)
	fmt.Fprintf(o.w, "Status: %s\n", g.Status)
	fmt.Fprintf(o.w, "Suggested by: %s\n", g.Originator)

	if g.Pattern != "" {
		fmt.Fprintf(o.w, "Word: %s\n", strings.Join(strings.Split(g.Pattern, ""), " "))
	}
	for _, row := range g.Rows {
		if len(row) == 0 || row[0].Letter == "" {
			continue
		}
		var symbols, letters strings.Builder
		for _, t := range row {
			symbols.WriteString(tileSymbols[t.State])
			letters.WriteString(t.Letter)
		}
		fmt.Fprintf(o.w, "  %s  %s\n", symbols.String(), letters.String())
	}

	if len(g.Guesses) > 0 {
		fmt.Fprintf(o.w, "Guesses: %s\n", strings.Join(g.Guesses, ", "))
	}
	fmt.Fprintf(o.w, "Lives: %d\n", g.RemainingLives)

	if g.Solution != "" {
		fmt.Fprintf(o.w, "Solution: %s\n", g.Solution)
	}
	if g.Definition != "" {
		fmt.Fprintf(o.w, "Definition: %s\n", g.Definition)
	}
}

func (o *Output) printGuessResult(r GuessResult) {
	verdict := "wrong"
	if r.Correct {
		verdict = "correct"
	}
	fmt.Fprintf(o.w, "Guess %s is %s :%s:\n", r.Guess, verdict, r.Reaction)
	if r.Winning {
		fmt.Fprintln(o.w, "You win!")
	}
	o.printGame(r.Game)
}

func (o *Output) printMessageResult(m MessageResult) {
	if m.Guess == nil {
		fmt.Fprintln(o.w, "Not a guess")
		return
	}
	o.printGuessResult(*m.Guess)
}

func (o *Output) printPlayerStats(s PlayerStats) {
	fmt.Fprintf(o.w, "Player: %s\n", s.PlayerID)
	fmt.Fprintf(o.w, "Guesses: %d (%d correct, %d winning)\n", s.TotalGuesses, s.CorrectGuesses, s.WinningGuesses)
	fmt.Fprintf(o.w, "Accuracy: %.1f%%\n", s.Accuracy*100)
	fmt.Fprintf(o.w, "Words suggested: %d (%d guessed, %d hanged)\n",
		s.WordsSuggested, s.SuggestionsResolved, s.SuggestionsFailed)
}

func (o *Output) printLeaderboard(l Leaderboard) {
	o.printBoard("Most correct guesses", l.MostCorrectGuesses, false)
	o.printBoard("Most winning guesses", l.MostWinningGuesses, false)
	o.printBoard("Most words suggested", l.MostWordsSuggested, false)
	o.printBoard("Best guessers", l.BestGuesses, true)
	o.printBoard("Deadliest words", l.DeadliestWords, true)
}

func (o *Output) printBoard(title string, entries []LeaderboardEntry, percent bool) {
	fmt.Fprintf(o.w, "%s:\n", title)
	if len(entries) == 0 {
		fmt.Fprintln(o.w, "  (nobody yet)")
		return
	}
	for i, e := range entries {
		if percent {
			fmt.Fprintf(o.w, "  %d. %s %.1f%%\n", i+1, e.PlayerID, e.Value*100)
		} else {
			fmt.Fprintf(o.w, "  %d. %s %.0f\n", i+1, e.PlayerID, e.Value)
		}
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
}
