package gui

import (
	"testing"

	"chromafix/internal/daltonize"
)

func TestBuildTestFrameDimensions(t *testing.T) {
	f := BuildTestFrame()
	if f.Width != blockCols*blockWidth {
		t.Errorf("width = %d, want %d", f.Width, blockCols*blockWidth)
	}
	rows := (len(testPalette) + blockCols - 1) / blockCols
	if f.Height != rows*blockHeight {
		t.Errorf("height = %d, want %d", f.Height, rows*blockHeight)
	}
	if err := f.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestBuildTestFrameBlocks(t *testing.T) {
	f := BuildTestFrame()
	for i, entry := range testPalette {
		// Sample the center of each block.
		x := (i%blockCols)*blockWidth + blockWidth/2
		y := (i/blockCols)*blockHeight + blockHeight/2
		want := daltonize.Pixel{R: entry.r, G: entry.g, B: entry.b}
		if got := f.At(x, y); got != want {
			t.Errorf("block %q center = %v, want %v", entry.name, got, want)
		}
	}
}
