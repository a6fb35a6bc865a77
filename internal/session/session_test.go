package session

import (
	"context"
	"errors"
	"image"
	"io"
	"strings"
	"testing"

	"chromafix/internal/daltonize"
	"chromafix/internal/logger"
)

type fakeSource struct {
	frames []*daltonize.Frame
	failAt int // tick index that errors, -1 to disable
	calls  int
}

func (s *fakeSource) Next(ctx context.Context) (*daltonize.Frame, error) {
	if s.failAt >= 0 && s.calls == s.failAt {
		return nil, errors.New("camera disconnected")
	}
	if s.calls >= len(s.frames) {
		return nil, io.EOF
	}
	f := s.frames[s.calls]
	s.calls++
	return f, nil
}

type fakeRenderer struct {
	presented []*daltonize.Frame
	statuses  []Status
	events    []Event // consumed one per tick, EventNone after exhaustion
}

func (r *fakeRenderer) Present(f *daltonize.Frame, st Status) error {
	r.presented = append(r.presented, f)
	r.statuses = append(r.statuses, st)
	return nil
}

func (r *fakeRenderer) PollEvent() Event {
	if len(r.events) == 0 {
		return EventNone
	}
	ev := r.events[0]
	r.events = r.events[1:]
	return ev
}

type fakeDetector struct {
	boxes  []daltonize.Box
	failAt int // call index that errors, -1 to disable
	calls  int
}

func (d *fakeDetector) Detect(f *daltonize.Frame) ([]daltonize.Box, error) {
	call := d.calls
	d.calls++
	if d.failAt >= 0 && call == d.failAt {
		return nil, errors.New("inference failed")
	}
	return d.boxes, nil
}

func testFrames(n int) []*daltonize.Frame {
	frames := make([]*daltonize.Frame, n)
	for i := range frames {
		f, _ := daltonize.NewFrame(16, 12)
		for j := range f.Pix {
			f.Pix[j] = uint8((i*31 + j*7) % 256)
		}
		frames[i] = f
	}
	return frames
}

func framesEqual(a, b *daltonize.Frame) bool {
	if a.Width != b.Width || a.Height != b.Height {
		return false
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			return false
		}
	}
	return true
}

func TestRunStopsOnEOF(t *testing.T) {
	src := &fakeSource{frames: testFrames(3), failAt: -1}
	rnd := &fakeRenderer{}
	s := New(src, nil, rnd, logger.Nop{}, Options{})

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run returned %v, want nil on end of stream", err)
	}
	if len(rnd.presented) != 3 {
		t.Errorf("presented %d frames, want 3", len(rnd.presented))
	}
}

func TestRunStopsOnQuitEvent(t *testing.T) {
	src := &fakeSource{frames: testFrames(10), failAt: -1}
	rnd := &fakeRenderer{events: []Event{EventNone, EventQuit}}
	s := New(src, nil, rnd, logger.Nop{}, Options{})

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run returned %v, want nil on quit", err)
	}
	if len(rnd.presented) != 2 {
		t.Errorf("presented %d frames, want 2 (quit observed on second tick)", len(rnd.presented))
	}
}

func TestRunSurfacesAcquisitionFailure(t *testing.T) {
	src := &fakeSource{frames: testFrames(5), failAt: 2}
	rnd := &fakeRenderer{}
	s := New(src, nil, rnd, logger.Nop{}, Options{})

	err := s.Run(context.Background())
	if err == nil {
		t.Fatal("Run returned nil, want acquisition failure")
	}
	if !strings.Contains(err.Error(), "frame acquisition failed") {
		t.Errorf("error = %v, want wrapped acquisition failure", err)
	}
	if len(rnd.presented) != 2 {
		t.Errorf("presented %d frames before failure, want 2", len(rnd.presented))
	}
}

func TestRunHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSource{frames: testFrames(5), failAt: -1}
	s := New(src, nil, &fakeRenderer{}, logger.Nop{}, Options{})

	if err := s.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run returned %v, want context.Canceled", err)
	}
}

// TestRunCorrectsFullFrame verifies the loop output equals a direct
// whole-frame correction once a mode is selected, and that a mode event takes
// effect starting with the next tick.
func TestRunCorrectsFullFrame(t *testing.T) {
	frames := testFrames(3)
	src := &fakeSource{frames: frames, failAt: -1}
	rnd := &fakeRenderer{events: []Event{EventProtanopia}}
	s := New(src, nil, rnd, logger.Nop{}, Options{})

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Tick 0 runs in Normal mode; the event lands after its render.
	if !framesEqual(rnd.presented[0], frames[0]) {
		t.Error("first frame should pass through unchanged in Normal mode")
	}
	for i := 1; i < 3; i++ {
		want := daltonize.CorrectFrame(frames[i], daltonize.Protanopia)
		if !framesEqual(rnd.presented[i], want) {
			t.Errorf("frame %d does not match full-frame protanopia correction", i)
		}
	}
	if rnd.statuses[0].Mode != daltonize.None || rnd.statuses[2].Mode != daltonize.Protanopia {
		t.Errorf("status modes = %v then %v, want normal then protanopia",
			rnd.statuses[0].Mode, rnd.statuses[2].Mode)
	}
}

// TestRunDetectionCadence verifies detection runs every Nth tick and cached
// boxes gate the correction on skip ticks.
func TestRunDetectionCadence(t *testing.T) {
	frames := testFrames(7)
	src := &fakeSource{frames: frames, failAt: -1}
	det := &fakeDetector{
		boxes:  []daltonize.Box{{Rect: image.Rect(2, 2, 10, 8), Label: "stop sign"}},
		failAt: -1,
	}
	rnd := &fakeRenderer{events: []Event{EventDeuteranopia}}
	s := New(src, det, rnd, logger.Nop{}, Options{DetectEvery: 3})

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if det.calls != 3 { // ticks 0, 3, 6
		t.Errorf("detector called %d times over 7 ticks, want 3", det.calls)
	}
	for i := 1; i < 7; i++ {
		want := daltonize.ApplyRegions(frames[i], det.boxes, daltonize.Deuteranopia)
		if !framesEqual(rnd.presented[i], want) {
			t.Errorf("frame %d does not match region-gated correction", i)
		}
	}
}

// TestRunDetectorFailureKeepsLoop verifies a failed detection tick reuses the
// previous boxes instead of stopping the loop.
func TestRunDetectorFailureKeepsLoop(t *testing.T) {
	frames := testFrames(4)
	src := &fakeSource{frames: frames, failAt: -1}
	det := &fakeDetector{
		boxes:  []daltonize.Box{{Rect: image.Rect(0, 0, 8, 8)}},
		failAt: 1,
	}
	rnd := &fakeRenderer{events: []Event{EventTritanopia}}
	s := New(src, det, rnd, logger.Nop{}, Options{DetectEvery: 1})

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(rnd.presented) != 4 {
		t.Fatalf("presented %d frames, want 4", len(rnd.presented))
	}
	// Tick 1's detection failed; its frame still uses the tick-0 boxes.
	want := daltonize.ApplyRegions(frames[1], det.boxes, daltonize.Tritanopia)
	if !framesEqual(rnd.presented[1], want) {
		t.Error("frame after detector failure should reuse cached boxes")
	}
}

func TestSessionIDStable(t *testing.T) {
	s := New(&fakeSource{failAt: -1}, nil, &fakeRenderer{}, nil, Options{})
	if s.ID() == "" {
		t.Error("session ID is empty")
	}
	if s.ID() != s.ID() {
		t.Error("session ID not stable")
	}
}
