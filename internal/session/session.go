// Package session runs the synchronous acquire-detect-correct-render loop.
//
// One tick is strictly sequential: pull a frame from the Source, refresh the
// detection cache if due, correct the frame for the current mode, hand it to
// the Renderer, and feed any key event back into the ModeController. Quit and
// context cancellation are observed only between ticks; an in-flight frame is
// never pre-empted.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"chromafix/internal/daltonize"
	"chromafix/internal/logger"

	"github.com/google/uuid"
)

// Source supplies one frame per call. It returns io.EOF on clean
// end-of-stream; any other error is an acquisition failure and stops the
// loop.
type Source interface {
	Next(ctx context.Context) (*daltonize.Frame, error)
}

// Detector yields bounding boxes for the current frame. Box labels are
// opaque to the loop.
type Detector interface {
	Detect(f *daltonize.Frame) ([]daltonize.Box, error)
}

// Status carries per-tick display metadata to the renderer.
type Status struct {
	Mode  daltonize.Deficiency
	FPS   float64
	Boxes []daltonize.Box
}

// Renderer displays one output frame per tick and reports pending input.
type Renderer interface {
	Present(f *daltonize.Frame, st Status) error
	PollEvent() Event
}

// Options tune loop behavior.
type Options struct {
	// DetectEvery runs detection on every Nth tick, reusing cached boxes in
	// between. Values below 1 are treated as 1.
	DetectEvery int
}

// Session aggregates the collaborators of one run: frame source, optional
// detector, renderer, and the exclusively-owned mode state. It replaces the
// ambient globals of earlier prototypes with one explicit object.
type Session struct {
	id       string
	source   Source
	detector Detector
	renderer Renderer
	modes    *ModeController
	log      logger.Logger

	detectEvery int

	// cachedBoxes persists across skip ticks only; it is never read after
	// the tick that replaces it.
	cachedBoxes []daltonize.Box
	ticks       uint64
}

// New assembles a session. detector may be nil, in which case every tick
// corrects the full frame instead of gated regions.
func New(source Source, detector Detector, renderer Renderer, log logger.Logger, opts Options) *Session {
	if log == nil {
		log = logger.Nop{}
	}
	detectEvery := opts.DetectEvery
	if detectEvery < 1 {
		detectEvery = 1
	}
	return &Session{
		id:          uuid.NewString(),
		source:      source,
		detector:    detector,
		renderer:    renderer,
		modes:       NewModeController(),
		log:         log,
		detectEvery: detectEvery,
	}
}

// ID returns the session identifier used in log entries.
func (s *Session) ID() string {
	return s.id
}

// Modes exposes the controller, e.g. to seed a starting mode from config.
func (s *Session) Modes() *ModeController {
	return s.modes
}

// Run drives ticks until quit, end-of-stream, context cancellation, or an
// acquisition failure. Only the failure case returns a non-nil error.
func (s *Session) Run(ctx context.Context) error {
	s.log.Info("session", "loop started", map[string]interface{}{
		"session_id":   s.id,
		"detector":     s.detector != nil,
		"detect_every": s.detectEvery,
	})

	prev := time.Now()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("session", "loop cancelled", map[string]interface{}{"session_id": s.id})
			return ctx.Err()
		default:
		}

		frame, err := s.source.Next(ctx)
		if errors.Is(err, io.EOF) {
			s.log.Info("session", "end of stream", map[string]interface{}{
				"session_id": s.id,
				"ticks":      s.ticks,
			})
			return nil
		}
		if err != nil {
			return fmt.Errorf("frame acquisition failed: %w", err)
		}

		if s.detector != nil && s.ticks%uint64(s.detectEvery) == 0 {
			boxes, err := s.detector.Detect(frame)
			if err != nil {
				// A failed detection tick keeps the previous boxes; the
				// loop itself must not stop.
				s.log.Warning("session", "detection failed, reusing cached boxes", map[string]interface{}{
					"session_id": s.id,
					"error":      err.Error(),
				})
			} else {
				s.cachedBoxes = boxes
			}
		}
		s.ticks++

		mode := s.modes.Current()
		var out *daltonize.Frame
		if s.detector != nil {
			out = daltonize.ApplyRegions(frame, s.cachedBoxes, mode)
		} else {
			out = daltonize.CorrectFrame(frame, mode)
		}

		now := time.Now()
		fps := 0.0
		if dt := now.Sub(prev).Seconds(); dt > 0 {
			fps = 1 / dt
		}
		prev = now

		st := Status{Mode: mode, FPS: fps, Boxes: s.cachedBoxes}
		if err := s.renderer.Present(out, st); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}

		ev := s.renderer.PollEvent()
		if ev == EventQuit {
			s.log.Info("session", "quit requested", map[string]interface{}{
				"session_id": s.id,
				"ticks":      s.ticks,
			})
			return nil
		}
		if s.modes.Handle(ev) {
			s.log.Info("session", "mode changed", map[string]interface{}{
				"session_id": s.id,
				"mode":       s.modes.Current().String(),
			})
		}
	}
}
