// Package ffmpeg shells out to ffmpeg and ffprobe.
package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"clipforge/internal/domain/compose"
	"clipforge/internal/errs"
)

type Adapter struct {
	ffmpeg  string
	ffprobe string
}

func New(ffmpegPath, ffprobePath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath}
}

func (a *Adapter) Transcode(ctx context.Context, job compose.Job) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg, job.Args()...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return errs.External("ffmpeg transcode", fmt.Errorf("%w\n%s", err, string(b)))
	}
	return nil
}

type probeStreams struct {
	Streams []struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"streams"`
}

// ProbeVideoSize returns the pixel dimensions of the first video stream.
func (a *Adapter) ProbeVideoSize(ctx context.Context, path string) (int, int, error) {
	const op = "ffprobe video size"
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-of", "json",
		path,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return 0, 0, errs.External(op, fmt.Errorf("%w\n%s", err, string(b)))
	}

	var out probeStreams
	if err := json.Unmarshal(b, &out); err != nil {
		return 0, 0, errs.External(op, fmt.Errorf("parse output: %w\n%s", err, string(b)))
	}
	if len(out.Streams) == 0 {
		return 0, 0, errs.External(op, fmt.Errorf("no video stream in %s", path))
	}
	w, h := out.Streams[0].Width, out.Streams[0].Height
	if w <= 0 || h <= 0 {
		return 0, 0, errs.External(op, fmt.Errorf("stream reports degenerate dimensions %dx%d", w, h))
	}
	return w, h, nil
}

func (a *Adapter) ProbeDuration(ctx context.Context, path string) (float64, error) {
	const op = "ffprobe duration"
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return 0, errs.External(op, fmt.Errorf("%w\n%s", err, string(b)))
	}
	s := strings.TrimSpace(string(b))
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errs.External(op, fmt.Errorf("parse duration %q: %w", s, err))
	}
	return sec, nil
}
