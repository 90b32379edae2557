package board

import (
	"strings"

	"github.com/mcoot/hangbot/internal/model"
)

// Alphabet is the order of the used-letter strip
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

const (
	markCorrect   = "✔"
	markIncorrect = "✗"
	blank         = '_'
)

// Gallows draws the ASCII gallows with the first `incorrect` body parts.
// Parts in order: head, body, right arm, left arm, right leg, left leg.
// The sixth part also gives the face its final expression.
func Gallows(incorrect int) [4]string {
	part := func(n int, s string) string {
		if incorrect >= n {
			return s
		}
		return " "
	}
	head := part(1, "o")
	if incorrect >= model.MaxIncorrectGuesses {
		head = "☹"
	}
	return [4]string{
		" ━━┳━━┓ ",
		"   " + head + "  ┃",
		"  " + part(4, "/") + part(2, "|") + part(3, "\\") + " ┃",
		"  " + part(6, "/") + " " + part(5, "\\") + " ┃",
	}
}

// WordPattern shows guessed letters of the solution and blanks for the rest.
// With reveal set, unguessed letters are shown in lowercase instead.
func WordPattern(solution string, guesses []string, reveal bool) string {
	guessed := letterSet(guesses)
	var b strings.Builder
	for _, r := range solution {
		switch {
		case guessed[r]:
			b.WriteRune(r)
		case reveal:
			b.WriteString(strings.ToLower(string(r)))
		default:
			b.WriteRune(blank)
		}
	}
	return b.String()
}

// TileRow spaces a word pattern out into tiles
func TileRow(pattern string) string {
	tiles := make([]string, 0, len(pattern))
	for _, r := range pattern {
		tiles = append(tiles, string(r))
	}
	return strings.Join(tiles, " ")
}

// GuessMarks encodes guesses as one letter each, uppercase when the letter is
// in the solution and lowercase when it is not
func GuessMarks(solution string, guesses []string) string {
	var b strings.Builder
	for _, g := range guesses {
		if strings.Contains(solution, g) {
			b.WriteString(strings.ToUpper(g))
		} else {
			b.WriteString(strings.ToLower(g))
		}
	}
	return b.String()
}

// UsedLetters renders all 26 letters, marking each as correct, incorrect or
// not yet guessed
func UsedLetters(solution string, guesses []string) string {
	guessed := letterSet(guesses)
	cells := make([]string, 0, len(Alphabet))
	for _, r := range Alphabet {
		mark := " "
		if guessed[r] {
			if strings.ContainsRune(solution, r) {
				mark = markCorrect
			} else {
				mark = markIncorrect
			}
		}
		cells = append(cells, string(r)+mark)
	}
	return strings.Join(cells, " ")
}

// HangmanText renders the full text board for a hangman session
func HangmanText(snap model.SessionSnapshot) string {
	reveal := snap.Status == model.StatusLost
	gallows := Gallows(snap.IncorrectCount)
	gallows[2] += "        " + TileRow(WordPattern(snap.Solution, snap.Guesses, reveal))

	var b strings.Builder
	b.WriteString("```\n")
	for _, line := range gallows {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString("   ━━━┻━━━\n")
	b.WriteString(UsedLetters(snap.Solution, snap.Guesses))
	b.WriteString("\n```")
	return b.String()
}

func letterSet(guesses []string) map[rune]bool {
	set := make(map[rune]bool, len(guesses))
	for _, g := range guesses {
		for _, r := range g {
			set[r] = true
			break
		}
	}
	return set
}
