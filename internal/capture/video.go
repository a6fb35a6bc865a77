package capture

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/png" // ffmpeg emits PNG into the image2pipe stream
	"io"
	"strconv"

	"chromafix/internal/daltonize"
	"chromafix/internal/logger"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// VideoFile streams decoded frames out of a video file through an ffmpeg
// image2pipe pipeline, one frame per Next call.
type VideoFile struct {
	path   string
	reader *bufio.Reader
	pipe   *io.PipeReader
	log    logger.Logger
	index  int
}

// VideoOptions tune the ffmpeg decode.
type VideoOptions struct {
	// FPS resamples the stream to this rate; 0 keeps the source rate.
	FPS int
	// MaxWidth downscales frames wider than this, keeping aspect; 0 keeps
	// the source size.
	MaxWidth int
}

// OpenVideoFile starts the ffmpeg process. Decoding runs ahead of Next only
// as far as the pipe buffer allows.
func OpenVideoFile(ctx context.Context, path string, opts VideoOptions, log logger.Logger) (*VideoFile, error) {
	if log == nil {
		log = logger.Nop{}
	}

	if frames, err := probeFrameCount(path); err != nil {
		log.Debug("capture", "probe failed", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
	} else {
		log.Info("capture", "video opened", map[string]interface{}{
			"path":   path,
			"frames": frames,
		})
	}

	args := ffmpeg.KwArgs{
		"format": "image2pipe",
		"vcodec": "png",
	}
	if opts.FPS > 0 {
		args["r"] = strconv.Itoa(opts.FPS)
	}
	if opts.MaxWidth > 0 {
		args["vf"] = fmt.Sprintf("scale='min(%d,iw)':-1", opts.MaxWidth)
	}

	pr, pw := io.Pipe()
	stream := ffmpeg.Input(path).
		Output("pipe:1", args).
		WithOutput(pw).
		Silent(true)
	stream.Context = ctx

	go func() {
		// Pipe error propagation doubles as end-of-stream: a clean exit
		// closes the pipe with nil, which Next reads as io.EOF.
		pw.CloseWithError(stream.Run())
	}()

	return &VideoFile{
		path:   path,
		reader: bufio.NewReader(pr),
		pipe:   pr,
		log:    log,
	}, nil
}

// Next decodes the next frame. It returns io.EOF once the file is exhausted;
// decode errors mid-stream are acquisition failures.
func (v *VideoFile) Next(ctx context.Context) (*daltonize.Frame, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	img, _, err := image.Decode(v.reader)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("decode frame %d of %s: %w", v.index, v.path, err)
	}
	v.index++
	return daltonize.FromImage(img), nil
}

// Close tears down the pipe; the ffmpeg process sees a write error and
// exits.
func (v *VideoFile) Close() error {
	return v.pipe.Close()
}

// videoProbe captures the slice of ffprobe output we care about.
type videoProbe struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		NbFrames  string `json:"nb_frames"`
	} `json:"streams"`
}

// probeFrameCount asks ffprobe for the stream's frame count. Purely
// informational; some containers do not record it.
func probeFrameCount(path string) (int, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}
	return parseFrameCount(out)
}

func parseFrameCount(out string) (int, error) {
	var probe videoProbe
	if err := json.Unmarshal([]byte(out), &probe); err != nil {
		return 0, fmt.Errorf("parse ffprobe output: %w", err)
	}

	for _, stream := range probe.Streams {
		if stream.CodecType != "video" {
			continue
		}
		if n, err := strconv.Atoi(stream.NbFrames); err == nil && n > 0 {
			return n, nil
		}
	}
	return 0, fmt.Errorf("no frame count in ffprobe output")
}
