package board

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/hangbot/internal/model"
)

func states(tiles []Tile) []TileState {
	out := make([]TileState, len(tiles))
	for i, t := range tiles {
		out[i] = t.State
	}
	return out
}

func TestScoreWordleGuessExactMatch(t *testing.T) {
	tiles := ScoreWordleGuess("CRANE", "CRANE")
	for _, tile := range tiles {
		assert.Equal(t, TileCorrect, tile.State)
	}
	assert.Equal(t, "C", tiles[0].Letter)
}

func TestScoreWordleGuessDuplicateLetters(t *testing.T) {
	tiles := ScoreWordleGuess("SPEED", "ERASE")
	assert.Equal(t,
		[]TileState{TilePresent, TileAbsent, TilePresent, TilePresent, TileAbsent},
		states(tiles))

	marked := 0
	for _, tile := range tiles {
		if tile.Letter == "E" && tile.State != TileAbsent {
			marked++
		}
	}
	assert.LessOrEqual(t, marked, strings.Count("ERASE", "E"))
}

func TestScoreWordleGuessExactMatchClaimsBeforePresent(t *testing.T) {
	// HOTEL has one L, claimed by the first L of the guess
	tiles := ScoreWordleGuess("LLAMA", "HOTEL")
	assert.Equal(t, TilePresent, tiles[0].State)
	assert.Equal(t, TileAbsent, tiles[1].State)

	// Here the exact match at index 4 claims it instead
	tiles = ScoreWordleGuess("ALLOL", "HOTEL")
	assert.Equal(t,
		[]TileState{TileAbsent, TileAbsent, TileAbsent, TilePresent, TileCorrect},
		states(tiles))
}

func TestScoreWordleGuessIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, states(ScoreWordleGuess("crane", "CRANE")), states(ScoreWordleGuess("CRANE", "crane")))
}

func TestWordleGridPadsToSixRows(t *testing.T) {
	grid := WordleGrid([]string{"SLATE"}, "CRANE")
	require.Len(t, grid, model.WordleRows)
	assert.Equal(t, TileAbsent, grid[0][0].State)
	for _, row := range grid[1:] {
		require.Len(t, row, 5)
		for _, tile := range row {
			assert.Equal(t, TileEmpty, tile.State)
			assert.Empty(t, tile.Letter)
		}
	}
}

func TestWordleText(t *testing.T) {
	snap := model.SessionSnapshot{
		Variant:  model.VariantWordle,
		Solution: "CRANE",
		Guesses:  []string{"CRANE"},
		Status:   model.StatusWon,
	}

	lines := strings.Split(WordleText(snap), "\n")
	require.Len(t, lines, model.WordleRows)
	assert.Equal(t, "🟩🟩🟩🟩🟩  CRANE", lines[0])
	assert.Equal(t, "⬜⬜⬜⬜⬜", lines[5])
}

func TestWordleRowsRoundTripScoredStates(t *testing.T) {
	rows := ScoreWordleGuesses([]string{"SPEED", "ERASE"}, "ERASE")
	encoded := EncodeWordleRows(rows)
	assert.Equal(t, "SPEED:pappa,ERASE:ccccc", encoded)

	parsed, err := ParseWordleRows(encoded, 5)
	require.NoError(t, err)
	assert.Equal(t, rows, parsed)
}

func TestParseWordleRowsRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing states", "SLATE"},
		{"short word", "SLAT:aaaa"},
		{"states length mismatch", "SLATE:aaa"},
		{"unknown state", "SLATE:aaxaa"},
		{"lowercase letters", "slate:aaaaa"},
		{"empty row", "SLATE:aaaaa,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWordleRows(tt.raw, 5)
			assert.ErrorIs(t, err, ErrMalformedRows)
		})
	}
}

func TestParseWordleRowsEmpty(t *testing.T) {
	rows, err := ParseWordleRows("", 5)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Len(t, PadWordleGrid(rows, 5), model.WordleRows)
}
