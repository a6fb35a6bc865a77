// Command chromafix corrects live camera (or video file) imagery for
// color-vision deficiencies in real time. Keys n/p/d/t switch the correction
// mode, q quits. With a detection model configured, correction is restricted
// to detected signal/sign regions instead of the full frame.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"chromafix/internal/capture"
	"chromafix/internal/config"
	"chromafix/internal/detect"
	"chromafix/internal/logger"
	"chromafix/internal/render"
	"chromafix/internal/session"
)

const windowTitle = "chromafix"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	flag.IntVar(&cfg.CameraID, "camera", cfg.CameraID, "capture device id")
	flag.StringVar(&cfg.VideoPath, "video", cfg.VideoPath, "read frames from a video file instead of the camera")
	flag.StringVar(&cfg.ModelPath, "model", cfg.ModelPath, "ONNX detection model; enables region-gated correction")
	flag.StringVar(&cfg.Mode, "mode", cfg.Mode, "starting mode: normal|protanopia|deuteranopia|tritanopia")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "capture width")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "capture height")
	flag.IntVar(&cfg.DetectEvery, "detect-every", cfg.DetectEvery, "run detection every N frames")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewConsoleLogger(cfg.ZerologLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("main", err, nil)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log logger.Logger) error {
	source, closeSource, err := openSource(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeSource()

	var detector session.Detector
	if cfg.ModelPath != "" {
		yolo, err := detect.NewYOLO(detect.DefaultConfig(cfg.ModelPath), log)
		if err != nil {
			return err
		}
		defer yolo.Close()
		detector = yolo
	}

	window := render.NewWindow(windowTitle, log)
	defer window.Close()

	sess := session.New(source, detector, window, log, session.Options{
		DetectEvery: cfg.DetectEvery,
	})

	startMode, err := cfg.StartMode()
	if err != nil {
		return err
	}
	sess.Modes().Handle(session.EventFor(startMode))

	return sess.Run(ctx)
}

func openSource(ctx context.Context, cfg config.Config, log logger.Logger) (session.Source, func() error, error) {
	if cfg.VideoPath != "" {
		video, err := capture.OpenVideoFile(ctx, cfg.VideoPath, capture.VideoOptions{
			FPS:      cfg.FPS,
			MaxWidth: cfg.Width,
		}, log)
		if err != nil {
			return nil, nil, err
		}
		return video, video.Close, nil
	}

	cam, err := capture.OpenWebcam(cfg.CameraID, cfg.Width, cfg.Height, cfg.FPS, log)
	if err != nil {
		return nil, nil, err
	}
	return cam, cam.Close, nil
}
