package daltonize

import "image"

// Box is a detector-supplied region of interest for the current frame. The
// label is opaque to the pipeline; it is only carried through for display.
type Box struct {
	Rect       image.Rectangle
	Label      string
	Confidence float64
}

// Clip intersects the box with the frame bounds. The result may be empty,
// which callers treat as a degenerate region and skip.
func (b Box) Clip(width, height int) image.Rectangle {
	return b.Rect.Intersect(image.Rect(0, 0, width, height))
}

// ApplyRegions daltonizes only the pixels covered by boxes, leaving the rest
// of the frame untouched. Boxes are processed in the order supplied with
// last-write-wins on overlap; because every write reads from the original
// frame, a pixel covered by several boxes still receives exactly one
// application of the correction. Degenerate boxes (empty after clipping) are
// skipped silently.
func ApplyRegions(f *Frame, boxes []Box, d Deficiency) *Frame {
	out := f.Clone()
	if d == None || len(boxes) == 0 {
		return out
	}
	for _, box := range boxes {
		r := box.Clip(f.Width, f.Height)
		if r.Empty() {
			continue
		}
		for y := r.Min.Y; y < r.Max.Y; y++ {
			row := (y*f.Width + r.Min.X) * 3
			for x := r.Min.X; x < r.Max.X; x++ {
				p := Correct(Pixel{R: f.Pix[row], G: f.Pix[row+1], B: f.Pix[row+2]}, d)
				out.Pix[row] = p.R
				out.Pix[row+1] = p.G
				out.Pix[row+2] = p.B
				row += 3
			}
		}
	}
	return out
}
