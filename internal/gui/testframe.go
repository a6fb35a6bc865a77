package gui

import "chromafix/internal/daltonize"

// paletteEntry is one labeled block of the synthetic test frame.
type paletteEntry struct {
	name    string
	r, g, b uint8
}

// testPalette covers the hue pairs dichromats most commonly confuse, plus
// neutrals as a reference.
var testPalette = []paletteEntry{
	{"red", 220, 30, 30},
	{"green", 30, 200, 30},
	{"blue", 30, 60, 220},
	{"yellow", 230, 220, 30},
	{"orange", 240, 140, 20},
	{"purple", 150, 40, 200},
	{"cyan", 30, 210, 210},
	{"magenta", 220, 40, 180},
	{"brown", 140, 90, 40},
	{"gray", 128, 128, 128},
	{"pink", 250, 170, 190},
	{"olive", 120, 130, 40},
}

const (
	blockWidth  = 120
	blockHeight = 80
	blockCols   = 3
)

// BuildTestFrame renders the palette as a grid of solid color blocks,
// a synthetic stand-in for camera input.
func BuildTestFrame() *daltonize.Frame {
	rows := (len(testPalette) + blockCols - 1) / blockCols
	f, _ := daltonize.NewFrame(blockCols*blockWidth, rows*blockHeight)

	for i, entry := range testPalette {
		x0 := (i % blockCols) * blockWidth
		y0 := (i / blockCols) * blockHeight
		p := daltonize.Pixel{R: entry.r, G: entry.g, B: entry.b}
		for y := y0; y < y0+blockHeight; y++ {
			for x := x0; x < x0+blockWidth; x++ {
				f.Set(x, y, p)
			}
		}
	}
	return f
}
