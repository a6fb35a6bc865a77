// Package detect wraps an OpenCV DNN object detector. It feeds the session
// loop bounding boxes to gate the color correction spatially; everything
// downstream of the box list is detector-agnostic.
package detect

import (
	"fmt"
	"image"

	"chromafix/internal/daltonize"
	"chromafix/internal/logger"
	"chromafix/internal/opencv"

	"gocv.io/x/gocv"
)

// Config holds detector settings.
type Config struct {
	// ModelPath is an ONNX export of a YOLO model.
	ModelPath string
	// InputSize is the square network input edge (model-dependent).
	InputSize int
	// ConfThreshold drops candidates below this score.
	ConfThreshold float32
	// NMSThreshold is the non-maximum-suppression overlap threshold.
	NMSThreshold float32
	// Classes limits results to these COCO ids; empty keeps everything.
	Classes []int
}

// DefaultConfig targets the signal/sign classes with the usual thresholds.
func DefaultConfig(modelPath string) Config {
	return Config{
		ModelPath:     modelPath,
		InputSize:     640,
		ConfThreshold: 0.5,
		NMSThreshold:  0.4,
		Classes:       DefaultClasses,
	}
}

// YOLO runs a YOLO ONNX model through gocv's DNN module.
type YOLO struct {
	net     gocv.Net
	cfg     Config
	allowed map[int]bool
	log     logger.Logger
}

// NewYOLO loads the network. The returned detector must be Closed.
func NewYOLO(cfg Config, log logger.Logger) (*YOLO, error) {
	if log == nil {
		log = logger.Nop{}
	}
	if cfg.InputSize <= 0 {
		cfg.InputSize = 640
	}

	net := gocv.ReadNet(cfg.ModelPath, "")
	if net.Empty() {
		return nil, fmt.Errorf("load model %s: network is empty", cfg.ModelPath)
	}

	allowed := make(map[int]bool, len(cfg.Classes))
	for _, id := range cfg.Classes {
		allowed[id] = true
	}

	log.Info("detect", "model loaded", map[string]interface{}{
		"model":      cfg.ModelPath,
		"input_size": cfg.InputSize,
		"classes":    cfg.Classes,
	})

	return &YOLO{net: net, cfg: cfg, allowed: allowed, log: log}, nil
}

// Detect runs one forward pass and returns suppressed, clipped candidates.
func (y *YOLO) Detect(f *daltonize.Frame) ([]daltonize.Box, error) {
	mat, err := opencv.FrameToMat(f)
	if err != nil {
		return nil, fmt.Errorf("prepare detector input: %w", err)
	}
	defer mat.Close()

	blob := gocv.BlobFromImage(mat, 1.0/255.0,
		image.Pt(y.cfg.InputSize, y.cfg.InputSize),
		gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	y.net.SetInput(blob, "")
	out := y.net.Forward("")
	defer out.Close()

	rects, scores, classIDs, err := y.decodeOutput(out, f.Width, f.Height)
	if err != nil {
		return nil, err
	}

	keep := gocv.NMSBoxes(rects, scores, y.cfg.ConfThreshold, y.cfg.NMSThreshold)

	boxes := make([]daltonize.Box, 0, len(keep))
	for _, i := range keep {
		boxes = append(boxes, daltonize.Box{
			Rect:       rects[i],
			Label:      ClassName(classIDs[i]),
			Confidence: float64(scores[i]),
		})
	}
	return boxes, nil
}

// decodeOutput walks the raw [1 x (4+classes) x candidates] tensor. The blob
// was a plain resize, so boxes scale back linearly to frame coordinates.
func (y *YOLO) decodeOutput(out gocv.Mat, frameW, frameH int) ([]image.Rectangle, []float32, []int, error) {
	sizes := out.Size()
	if len(sizes) != 3 || sizes[1] <= 4 {
		return nil, nil, nil, fmt.Errorf("unexpected detector output shape %v", sizes)
	}
	attrs := sizes[1]
	candidates := sizes[2]

	data, err := out.DataPtrFloat32()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("read detector output: %w", err)
	}
	if len(data) < attrs*candidates {
		return nil, nil, nil, fmt.Errorf("detector output truncated: %d values for %dx%d", len(data), attrs, candidates)
	}

	scaleX := float32(frameW) / float32(y.cfg.InputSize)
	scaleY := float32(frameH) / float32(y.cfg.InputSize)

	var (
		rects    []image.Rectangle
		scores   []float32
		classIDs []int
	)
	for c := 0; c < candidates; c++ {
		// Attribute a of candidate c lives at data[a*candidates+c].
		classScores := make([]float32, attrs-4)
		for a := 4; a < attrs; a++ {
			classScores[a-4] = data[a*candidates+c]
		}
		classID, score := bestClass(classScores)
		if score < y.cfg.ConfThreshold {
			continue
		}
		if len(y.allowed) > 0 && !y.allowed[classID] {
			continue
		}

		rect := rectFromCenter(
			data[0*candidates+c], data[1*candidates+c],
			data[2*candidates+c], data[3*candidates+c],
			scaleX, scaleY)

		rects = append(rects, rect)
		scores = append(scores, score)
		classIDs = append(classIDs, classID)
	}
	return rects, scores, classIDs, nil
}

// Close releases the network.
func (y *YOLO) Close() error {
	return y.net.Close()
}

// bestClass returns the argmax class and its score.
func bestClass(scores []float32) (int, float32) {
	bestID := 0
	var best float32
	for i, s := range scores {
		if s > best {
			best = s
			bestID = i
		}
	}
	return bestID, best
}

// rectFromCenter converts a center/size box in network coordinates to a
// frame-space rectangle.
func rectFromCenter(cx, cy, w, h, scaleX, scaleY float32) image.Rectangle {
	x0 := (cx - w/2) * scaleX
	y0 := (cy - h/2) * scaleY
	x1 := (cx + w/2) * scaleX
	y1 := (cy + h/2) * scaleY
	return image.Rect(int(x0), int(y0), int(x1), int(y1))
}
