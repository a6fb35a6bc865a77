// Package capture provides frame sources for the session loop: a live
// webcam via OpenCV and a video-file reader via ffmpeg.
package capture

import (
	"context"
	"fmt"

	"chromafix/internal/daltonize"
	"chromafix/internal/logger"
	"chromafix/internal/opencv"

	"gocv.io/x/gocv"
)

// Webcam reads frames from a local camera device. It is not safe for
// concurrent use; the session loop is its only caller.
type Webcam struct {
	device int
	cap    *gocv.VideoCapture
	mat    gocv.Mat
	log    logger.Logger
}

// OpenWebcam opens the device and applies the requested capture geometry.
// Cameras are free to ignore the property hints; the actual frame size is
// whatever Read delivers.
func OpenWebcam(device, width, height, fps int, log logger.Logger) (*Webcam, error) {
	if log == nil {
		log = logger.Nop{}
	}

	cap, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", device, err)
	}

	cap.Set(gocv.VideoCaptureFrameWidth, float64(width))
	cap.Set(gocv.VideoCaptureFrameHeight, float64(height))
	if fps > 0 {
		cap.Set(gocv.VideoCaptureFPS, float64(fps))
	}

	log.Info("capture", "camera opened", map[string]interface{}{
		"device": device,
		"width":  width,
		"height": height,
		"fps":    fps,
	})

	return &Webcam{
		device: device,
		cap:    cap,
		mat:    gocv.NewMat(),
		log:    log,
	}, nil
}

// Next blocks on the camera for one frame. A failed read is an acquisition
// failure: there is no valid data to correct and no sensible substitute, so
// the error surfaces and ends the loop.
func (w *Webcam) Next(ctx context.Context) (*daltonize.Frame, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if ok := w.cap.Read(&w.mat); !ok {
		return nil, fmt.Errorf("camera %d read failed", w.device)
	}
	if w.mat.Empty() {
		return nil, fmt.Errorf("camera %d delivered an empty frame", w.device)
	}

	return opencv.MatToFrame(w.mat)
}

// Close releases the camera and the reusable capture Mat.
func (w *Webcam) Close() error {
	w.mat.Close()
	if err := w.cap.Close(); err != nil {
		return fmt.Errorf("close camera %d: %w", w.device, err)
	}
	return nil
}
