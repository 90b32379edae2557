package board

import (
	"bytes"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"strings"
	"unicode"

	"github.com/fogleman/gg"

	"github.com/mcoot/hangbot/internal/model"
)

const (
	// HangmanFrames is the number of frames in a hangman GIF
	HangmanFrames = 3
	// HangmanFrameDelay is the per-frame delay in 100ths of a second
	HangmanFrameDelay = 30

	hangmanHeight = 160
	tileWidth     = 18.0
	tileMargin    = 8.0
	usedMargin    = 15.0
	usedPerRow    = 5
	textScale     = 1.4

	wordleTile   = 62.0
	wordleGap    = 5.0
	wordlePad    = 10.0
	wordleBorder = 2.0
)

var tileColours = map[TileState]string{
	TileCorrect: "#6aaa64",
	TilePresent: "#c9b458",
	TileAbsent:  "#787c7e",
}

// HangmanImage draws a hangman board. pattern is a word pattern as produced
// by WordPattern and marks is a guess list as produced by GuessMarks.
func HangmanImage(pattern, marks string) image.Image {
	incorrect := 0
	for _, r := range marks {
		if unicode.IsLower(r) {
			incorrect++
		}
	}

	width := tileMargin + float64(len(pattern))*(tileWidth+tileMargin)
	if width < 300 {
		width = 300
	}
	dc := gg.NewContext(int(width), hangmanHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	drawFigure(dc, incorrect)
	drawGallows(dc)
	drawBlanks(dc, pattern)
	drawUsed(dc, marks)

	return dc.Image()
}

func drawFigure(dc *gg.Context, incorrect int) {
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1.5)
	if incorrect >= 1 {
		dc.DrawCircle(37.5, 31.25, 11.25)
		dc.Stroke()
	}
	lines := [][4]float64{
		{37.5, 42.5, 37.5, 72.5},    // body
		{37.5, 53.75, 72.5, 38.75},  // right arm
		{37.5, 53.75, 7.5, 38.75},   // left arm
		{37.5, 72.5, 61.25, 106.25}, // right leg
		{37.5, 72.5, 18.75, 106.25}, // left leg
	}
	for i, l := range lines {
		if incorrect >= i+2 {
			dc.DrawLine(l[0], l[1], l[2], l[3])
			dc.Stroke()
		}
	}
	if incorrect >= model.MaxIncorrectGuesses {
		face := [][4]float64{
			{30, 27.5, 33.75, 31.25},
			{30, 31.25, 33.75, 27.5},
			{40.25, 27.5, 44, 31.25},
			{40.25, 31.25, 44, 27.5},
			{30, 35, 43.5, 37.25},
		}
		dc.SetLineWidth(1)
		for _, l := range face {
			dc.DrawLine(l[0], l[1], l[2], l[3])
			dc.Stroke()
		}
	}
}

func drawGallows(dc *gg.Context) {
	dc.SetHexColor("#a52a2a")
	dc.SetLineWidth(2)
	for _, l := range [][4]float64{
		{37.5, 117.5, 112.5, 117.5},
		{75, 117.5, 75, 8.75},
		{75, 8.75, 37.5, 8.75},
		{37.5, 8.75, 37.5, 16.25},
	} {
		dc.DrawLine(l[0], l[1], l[2], l[3])
		dc.Stroke()
	}
}

func drawBlanks(dc *gg.Context, pattern string) {
	dc.SetLineWidth(1)
	for i, r := range []rune(pattern) {
		x := tileMargin + float64(i)*(tileWidth+tileMargin)
		dc.SetRGB(0, 0, 0)
		dc.DrawLine(x, 147, x+tileWidth, 147)
		dc.Stroke()
		if r == blank {
			continue
		}
		if unicode.IsLower(r) {
			dc.SetHexColor("#808080")
		} else {
			dc.SetHexColor("#00008b")
		}
		drawLetter(dc, strings.ToUpper(string(r)), x+tileWidth/2, 142)
	}
}

func drawUsed(dc *gg.Context, marks string) {
	for i, r := range []rune(marks) {
		col := i % usedPerRow
		row := i / usedPerRow
		x := 130 + float64(col)*(tileWidth+usedMargin)
		y := 30 + float64(row)*28

		dc.SetHexColor("#00008b")
		drawLetter(dc, strings.ToUpper(string(r)), x+tileWidth/2, y)

		dc.SetLineWidth(1)
		if unicode.IsUpper(r) {
			dc.SetHexColor("#008000")
			dc.DrawCircle(x+tileWidth/2, y-tileWidth/2+3, 10)
		} else {
			dc.SetHexColor("#ff0000")
			dc.DrawLine(x+tileWidth, y-tileWidth+3, x, y+3)
		}
		dc.Stroke()
	}
}

// drawLetter draws s with its baseline at y, centred on x
func drawLetter(dc *gg.Context, s string, x, y float64) {
	dc.Push()
	dc.ScaleAbout(textScale, textScale, x, y)
	dc.DrawStringAnchored(s, x, y, 0.5, 0)
	dc.Pop()
}

// HangmanGIF encodes the hangman board as a looping GIF of identical frames
func HangmanGIF(pattern, marks string) ([]byte, error) {
	img := HangmanImage(pattern, marks)

	bounds := img.Bounds()
	frame := image.NewPaletted(bounds, palette.Plan9)
	draw.Draw(frame, bounds, img, bounds.Min, draw.Src)

	anim := &gif.GIF{}
	for range HangmanFrames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, HangmanFrameDelay)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WordleImage draws a padded wordle grid
func WordleImage(grid [][]Tile) image.Image {
	cols := len(grid[0])

	width := 2*wordlePad + float64(cols)*wordleTile + float64(cols-1)*wordleGap
	height := 2*wordlePad + float64(len(grid))*wordleTile + float64(len(grid)-1)*wordleGap

	dc := gg.NewContext(int(width), int(height))
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for r, row := range grid {
		for c, tile := range row {
			x := wordlePad + float64(c)*(wordleTile+wordleGap)
			y := wordlePad + float64(r)*(wordleTile+wordleGap)

			if tile.State == TileEmpty {
				dc.SetHexColor("#d3d6da")
				dc.SetLineWidth(wordleBorder)
				dc.DrawRectangle(x+wordleBorder/2, y+wordleBorder/2, wordleTile-wordleBorder, wordleTile-wordleBorder)
				dc.Stroke()
				continue
			}

			dc.SetHexColor(tileColours[tile.State])
			dc.DrawRectangle(x, y, wordleTile, wordleTile)
			dc.Fill()

			dc.SetRGB(1, 1, 1)
			dc.Push()
			dc.ScaleAbout(3, 3, x+wordleTile/2, y+wordleTile/2)
			dc.DrawStringAnchored(tile.Letter, x+wordleTile/2, y+wordleTile/2, 0.5, 0.35)
			dc.Pop()
		}
	}

	return dc.Image()
}

// WordlePNG encodes a padded wordle grid as a PNG
func WordlePNG(grid [][]Tile) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, WordleImage(grid)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
