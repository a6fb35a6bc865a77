// Package gui hosts the static-image demo: a fyne window showing the test
// palette as seen normally, as a dichromat perceives it, and after
// correction. Useful for checking the transform chain without a camera.
package gui

import (
	"chromafix/internal/daltonize"
	"chromafix/internal/logger"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Demo is the demo application state.
type Demo struct {
	fyneApp fyne.App
	window  fyne.Window
	log     logger.Logger

	source *daltonize.Frame
	mode   daltonize.Deficiency

	original  *canvas.Image
	simulated *canvas.Image
	corrected *canvas.Image
}

// NewDemo builds the window around the synthetic test frame.
func NewDemo(log logger.Logger) *Demo {
	if log == nil {
		log = logger.Nop{}
	}

	d := &Demo{
		fyneApp: app.New(),
		log:     log,
		source:  BuildTestFrame(),
		mode:    daltonize.Protanopia,
	}
	d.window = d.fyneApp.NewWindow("chromafix demo")

	d.original = newFrameImage(d.source)
	d.simulated = newFrameImage(d.source)
	d.corrected = newFrameImage(d.source)

	modes := widget.NewRadioGroup(
		[]string{"protanopia", "deuteranopia", "tritanopia"},
		d.onModeChanged,
	)
	modes.SetSelected(d.mode.String())

	grid := container.NewGridWithColumns(3,
		container.NewBorder(widget.NewLabel("Original"), nil, nil, nil, d.original),
		container.NewBorder(widget.NewLabel("Simulated"), nil, nil, nil, d.simulated),
		container.NewBorder(widget.NewLabel("Corrected"), nil, nil, nil, d.corrected),
	)

	d.window.SetContent(container.NewBorder(nil, modes, nil, nil, grid))
	d.refresh()

	return d
}

// Run shows the window and blocks until it closes.
func (d *Demo) Run() {
	d.window.ShowAndRun()
}

func (d *Demo) onModeChanged(selected string) {
	mode, err := daltonize.ParseDeficiency(selected)
	if err != nil {
		return
	}
	d.mode = mode
	d.log.Info("gui", "demo mode changed", map[string]interface{}{
		"mode": mode.String(),
	})
	d.refresh()
}

// refresh recomputes the simulated and corrected views for the current mode.
func (d *Demo) refresh() {
	d.simulated.Image = daltonize.SimulateFrame(d.source, d.mode).ToImage()
	d.corrected.Image = daltonize.CorrectFrame(d.source, d.mode).ToImage()
	d.simulated.Refresh()
	d.corrected.Refresh()
}

func newFrameImage(f *daltonize.Frame) *canvas.Image {
	img := canvas.NewImageFromImage(f.ToImage())
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(float32(f.Width), float32(f.Height)))
	img.ScaleMode = canvas.ImageScaleSmooth
	return img
}
