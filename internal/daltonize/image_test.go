package daltonize

import (
	"image"
	"image/color"
	"testing"
)

func TestImageRoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 6, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x * 40),
				G: uint8(y * 60),
				B: uint8((x + y) * 20),
				A: 255,
			})
		}
	}

	f := FromImage(img)
	if f.Width != 6 || f.Height != 4 {
		t.Fatalf("frame dimensions = %dx%d, want 6x4", f.Width, f.Height)
	}
	back := f.ToImage()
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			if got, want := back.RGBAAt(x, y), img.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

// TestFromImageNonZeroOrigin covers sub-images whose bounds do not start at
// the origin.
func TestFromImageNonZeroOrigin(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 10, 10))
	base.SetRGBA(5, 5, color.RGBA{R: 201, G: 102, B: 53, A: 255})

	sub := base.SubImage(image.Rect(4, 4, 8, 8)).(*image.RGBA)
	f := FromImage(sub)
	if f.Width != 4 || f.Height != 4 {
		t.Fatalf("frame dimensions = %dx%d, want 4x4", f.Width, f.Height)
	}
	if got := f.At(1, 1); got != (Pixel{R: 201, G: 102, B: 53}) {
		t.Errorf("pixel = %v, want translated sample", got)
	}
}
