// Package opencv bridges gocv Mats and the pipeline's plain frame buffers.
// OpenCV hands out BGR; the correction math runs on RGB, so both directions
// swap channel order. The pipeline side never sees a Mat and never has to
// manage Mat lifetimes.
package opencv

import (
	"fmt"

	"chromafix/internal/daltonize"

	"gocv.io/x/gocv"
)

// MatToFrame copies a BGR Mat into a new RGB frame. The Mat remains owned by
// the caller.
func MatToFrame(mat gocv.Mat) (*daltonize.Frame, error) {
	if err := ValidateMat(mat, "mat to frame"); err != nil {
		return nil, err
	}
	if mat.Type() != gocv.MatTypeCV8UC3 {
		return nil, fmt.Errorf("mat to frame requires CV8UC3, got %v", mat.Type())
	}

	rgb := gocv.NewMat()
	defer rgb.Close()
	gocv.CvtColor(mat, &rgb, gocv.ColorBGRToRGB)

	frame := &daltonize.Frame{
		Width:  mat.Cols(),
		Height: mat.Rows(),
		Pix:    rgb.ToBytes(),
	}
	if err := frame.Validate(); err != nil {
		return nil, fmt.Errorf("mat conversion produced bad frame: %w", err)
	}
	return frame, nil
}

// FrameToMat copies an RGB frame into a new BGR Mat. The caller owns the
// returned Mat and must Close it.
func FrameToMat(f *daltonize.Frame) (gocv.Mat, error) {
	if err := f.Validate(); err != nil {
		return gocv.NewMat(), err
	}

	rgb, err := gocv.NewMatFromBytes(f.Height, f.Width, gocv.MatTypeCV8UC3, f.Pix)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("frame to mat failed: %w", err)
	}
	defer rgb.Close()

	bgr := gocv.NewMat()
	gocv.CvtColor(rgb, &bgr, gocv.ColorRGBToBGR)
	return bgr, nil
}

// ValidateMat rejects nil-backed, empty, or zero-sized Mats before an
// operation touches them.
func ValidateMat(mat gocv.Mat, operation string) error {
	if mat.Empty() {
		return fmt.Errorf("mat is empty for operation: %s", operation)
	}
	if mat.Rows() <= 0 || mat.Cols() <= 0 {
		return fmt.Errorf("mat has invalid dimensions %dx%d for operation: %s",
			mat.Cols(), mat.Rows(), operation)
	}
	return nil
}
