package board

import (
	"errors"
	"strings"

	"github.com/mcoot/hangbot/internal/model"
)

// TileState is the colouring of a single wordle tile
type TileState string

const (
	TileEmpty   TileState = "empty"
	TileAbsent  TileState = "absent"
	TilePresent TileState = "present"
	TileCorrect TileState = "correct"
)

// Tile is one cell of the wordle grid
type Tile struct {
	Letter string    `json:"letter"`
	State  TileState `json:"state"`
}

// ScoreWordleGuess colours each letter of guess against solution.
//
// A letter is present only while the solution still has unclaimed copies of
// it: exact matches anywhere in the guess claim copies first, then earlier
// non-exact occurrences claim them left to right.
func ScoreWordleGuess(guess, solution string) []Tile {
	g := []rune(strings.ToUpper(guess))
	sol := []rune(strings.ToUpper(solution))

	tiles := make([]Tile, len(g))
	for i, r := range g {
		tiles[i].Letter = string(r)
		switch {
		case i < len(sol) && sol[i] == r:
			tiles[i].State = TileCorrect
		case isPresent(g, sol, i):
			tiles[i].State = TilePresent
		default:
			tiles[i].State = TileAbsent
		}
	}
	return tiles
}

func isPresent(guess, solution []rune, index int) bool {
	letter := guess[index]

	total := 0
	for _, r := range solution {
		if r == letter {
			total++
		}
	}

	claimed := 0
	for i, r := range guess {
		if r != letter {
			continue
		}
		exact := i < len(solution) && solution[i] == r
		if exact || i < index {
			claimed++
		}
	}
	return total > claimed
}

// ScoreWordleGuesses scores each guess in order
func ScoreWordleGuesses(guesses []string, solution string) [][]Tile {
	rows := make([][]Tile, 0, len(guesses))
	for _, g := range guesses {
		rows = append(rows, ScoreWordleGuess(g, solution))
	}
	return rows
}

// WordleGrid scores every guess and pads with empty rows
func WordleGrid(guesses []string, solution string) [][]Tile {
	width := len(solution)
	if width == 0 {
		width = model.WordleLength
	}
	return PadWordleGrid(ScoreWordleGuesses(guesses, solution), width)
}

// PadWordleGrid appends empty rows of the given width up to the board height
func PadWordleGrid(rows [][]Tile, width int) [][]Tile {
	grid := make([][]Tile, 0, max(len(rows), model.WordleRows))
	grid = append(grid, rows...)
	for len(grid) < model.WordleRows {
		row := make([]Tile, width)
		for i := range row {
			row[i].State = TileEmpty
		}
		grid = append(grid, row)
	}
	return grid
}

var (
	tileCodes = map[TileState]byte{
		TileCorrect: 'c',
		TilePresent: 'p',
		TileAbsent:  'a',
	}
	codeTiles = map[byte]TileState{
		'c': TileCorrect,
		'p': TilePresent,
		'a': TileAbsent,
	}
)

// ErrMalformedRows is returned for rows not written by EncodeWordleRows
var ErrMalformedRows = errors.New("malformed wordle rows")

// EncodeWordleRows writes scored rows as comma separated GUESS:states pairs,
// one state code per letter (c correct, p present, a absent), e.g. SLATE:aaacc
func EncodeWordleRows(rows [][]Tile) string {
	parts := make([]string, 0, len(rows))
	for _, row := range rows {
		letters := make([]byte, 0, len(row))
		codes := make([]byte, 0, len(row))
		for _, t := range row {
			letters = append(letters, t.Letter...)
			codes = append(codes, tileCodes[t.State])
		}
		parts = append(parts, string(letters)+":"+string(codes))
	}
	return strings.Join(parts, ",")
}

// ParseWordleRows reads rows written by EncodeWordleRows. Every row must be
// width uppercase letters with one state code each.
func ParseWordleRows(raw string, width int) ([][]Tile, error) {
	if raw == "" {
		return nil, nil
	}
	var rows [][]Tile
	for _, part := range strings.Split(raw, ",") {
		letters, codes, ok := strings.Cut(part, ":")
		if !ok || len(letters) != width || len(codes) != width {
			return nil, ErrMalformedRows
		}
		row := make([]Tile, width)
		for i := range width {
			state, known := codeTiles[codes[i]]
			if !known || letters[i] < 'A' || letters[i] > 'Z' {
				return nil, ErrMalformedRows
			}
			row[i] = Tile{Letter: letters[i : i+1], State: state}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

var tileEmoji = map[TileState]string{
	TileEmpty:   "⬜",
	TileAbsent:  "⬛",
	TilePresent: "🟨",
	TileCorrect: "🟩",
}

// WordleText renders the grid as emoji squares followed by the guessed word
func WordleText(snap model.SessionSnapshot) string {
	var b strings.Builder
	for i, row := range WordleGrid(snap.Guesses, snap.Solution) {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, t := range row {
			b.WriteString(tileEmoji[t.State])
		}
		if i < len(snap.Guesses) {
			b.WriteString("  ")
			b.WriteString(snap.Guesses[i])
		}
	}
	return b.String()
}
