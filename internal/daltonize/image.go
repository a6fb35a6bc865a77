package daltonize

import (
	"image"
	"image/color"
)

// FromImage copies any image into a frame, discarding alpha.
func FromImage(img image.Image) *Frame {
	bounds := img.Bounds()
	f := &Frame{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pix:    make([]uint8, bounds.Dx()*bounds.Dy()*3),
	}
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			f.Pix[i] = uint8(r >> 8)
			f.Pix[i+1] = uint8(g >> 8)
			f.Pix[i+2] = uint8(b >> 8)
			i += 3
		}
	}
	return f
}

// ToImage copies the frame into an opaque RGBA image.
func (f *Frame) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	i := 0
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: f.Pix[i],
				G: f.Pix[i+1],
				B: f.Pix[i+2],
				A: 255,
			})
			i += 3
		}
	}
	return img
}
