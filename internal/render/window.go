// Package render displays corrected frames in an OpenCV window and feeds key
// presses back to the session as events.
package render

import (
	"fmt"
	"image"
	"image/color"

	"chromafix/internal/daltonize"
	"chromafix/internal/logger"
	"chromafix/internal/opencv"
	"chromafix/internal/session"

	"gocv.io/x/gocv"
)

// Window renders one frame per tick into a highgui window.
type Window struct {
	win *gocv.Window
	log logger.Logger
}

// NewWindow opens the display window.
func NewWindow(title string, log logger.Logger) *Window {
	if log == nil {
		log = logger.Nop{}
	}
	return &Window{
		win: gocv.NewWindow(title),
		log: log,
	}
}

// Present draws the frame plus detection boxes and the status HUD.
func (w *Window) Present(f *daltonize.Frame, st session.Status) error {
	mat, err := opencv.FrameToMat(f)
	if err != nil {
		return fmt.Errorf("prepare display frame: %w", err)
	}
	defer mat.Close()

	drawBoxes(&mat, st.Boxes)
	drawHUD(&mat, st)

	w.win.IMShow(mat)
	return nil
}

// PollEvent pumps the window event loop for ~1ms and maps any key press.
// This WaitKey call is also what lets highgui repaint, so it runs every tick
// even when no key is down.
func (w *Window) PollEvent() session.Event {
	return session.KeyEvent(w.win.WaitKey(1))
}

// Close destroys the window.
func (w *Window) Close() error {
	return w.win.Close()
}

var (
	boxColor   = color.RGBA{G: 255, A: 255}
	textColor  = color.RGBA{G: 255, A: 255}
	faintColor = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	panelColor = color.RGBA{A: 255}
)

// drawBoxes outlines each detection with its label.
func drawBoxes(mat *gocv.Mat, boxes []daltonize.Box) {
	for _, b := range boxes {
		gocv.Rectangle(mat, b.Rect, boxColor, 2)
		if b.Label == "" {
			continue
		}
		text := fmt.Sprintf("%s %.2f", b.Label, b.Confidence)
		org := image.Pt(b.Rect.Min.X, b.Rect.Min.Y-10)
		gocv.PutText(mat, text, org, gocv.FontHersheySimplex, 0.5, textColor, 1)
	}
}

// drawHUD paints the mode/FPS banner and the key legend over a translucent
// panel.
func drawHUD(mat *gocv.Mat, st session.Status) {
	overlay := mat.Clone()
	defer overlay.Close()
	gocv.Rectangle(&overlay, image.Rect(10, 10, 260, 190), panelColor, -1)
	gocv.AddWeighted(overlay, 0.6, *mat, 0.4, 0, mat)

	gocv.PutText(mat, fmt.Sprintf("Mode: %s", st.Mode), image.Pt(20, 40),
		gocv.FontHersheySimplex, 0.7, textColor, 2)
	gocv.PutText(mat, fmt.Sprintf("FPS: %.1f", st.FPS), image.Pt(20, 70),
		gocv.FontHersheySimplex, 0.6, color.RGBA{R: 255, G: 255, B: 255, A: 255}, 1)

	legend := []string{
		"N - normal",
		"P - protanopia",
		"D - deuteranopia",
		"T - tritanopia",
		"Q - quit",
	}
	y := 100
	for _, line := range legend {
		gocv.PutText(mat, line, image.Pt(20, y), gocv.FontHersheySimplex, 0.45, faintColor, 1)
		y += 20
	}
}
