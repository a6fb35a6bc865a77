package daltonize

import "fmt"

// Pixel is a single RGB sample with 8-bit channels.
type Pixel struct {
	R, G, B uint8
}

// Frame is a row-major RGB image buffer, 3 bytes per pixel.
// A frame is replaced wholesale each tick and is never mutated in place
// by the pipeline; every transform allocates its output.
type Frame struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewFrame allocates a zeroed frame of the given dimensions.
func NewFrame(width, height int) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame dimensions: %dx%d", width, height)
	}
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}, nil
}

// At returns the pixel at (x, y). Out-of-range coordinates return zero.
func (f *Frame) At(x, y int) Pixel {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return Pixel{}
	}
	i := (y*f.Width + x) * 3
	return Pixel{R: f.Pix[i], G: f.Pix[i+1], B: f.Pix[i+2]}
}

// Set writes the pixel at (x, y). Out-of-range coordinates are ignored.
func (f *Frame) Set(x, y int, p Pixel) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return
	}
	i := (y*f.Width + x) * 3
	f.Pix[i] = p.R
	f.Pix[i+1] = p.G
	f.Pix[i+2] = p.B
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	pix := make([]uint8, len(f.Pix))
	copy(pix, f.Pix)
	return &Frame{Width: f.Width, Height: f.Height, Pix: pix}
}

// Validate reports whether the frame has usable dimensions and a buffer of
// the expected length.
func (f *Frame) Validate() error {
	if f == nil {
		return fmt.Errorf("frame is nil")
	}
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("frame has invalid dimensions %dx%d", f.Width, f.Height)
	}
	if len(f.Pix) != f.Width*f.Height*3 {
		return fmt.Errorf("frame buffer length %d does not match %dx%d", len(f.Pix), f.Width, f.Height)
	}
	return nil
}

// clampChannel saturates a channel value to the 0-255 range and truncates,
// matching the clip-then-cast behavior of the transform chain. Values never
// wrap.
func clampChannel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
