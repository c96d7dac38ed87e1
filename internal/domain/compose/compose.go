// Package compose builds declarative transcoding jobs. A Job fully
// determines the ffmpeg invocation for one highlight: input time range,
// filter chain (crop, scale, subtitle burn-in) and encoder parameters. It
// never runs anything itself; execution belongs to the ffmpeg adapter.
package compose

import (
	"fmt"
	"strconv"
	"strings"

	"clipforge/internal/types"
)

type Job struct {
	Input string
	// Start and End are seconds on the source video timeline.
	Start float64
	End   float64

	Crop      *types.CropPlan
	Subtitles string // subtitle markup file burned into the video; empty skips the filter
	Output    string

	VideoCodec   string
	Preset       string
	CRF          int
	AudioCodec   string
	AudioBitrate string
}

// Build maps one highlight onto a Job with the default encoder settings.
func Build(input string, h types.Highlight, crop *types.CropPlan, subtitlePath, output string) Job {
	return Job{
		Input:        input,
		Start:        h.StartTime,
		End:          h.EndTime,
		Crop:         crop,
		Subtitles:    subtitlePath,
		Output:       output,
		VideoCodec:   "libx264",
		Preset:       "veryfast",
		CRF:          18,
		AudioCodec:   "aac",
		AudioBitrate: "192k",
	}
}

// Args returns the complete ffmpeg argument list for the job.
func (j Job) Args() []string {
	args := []string{
		"-y",
		"-ss", fmtSeconds(j.Start),
		"-to", fmtSeconds(j.End),
		"-i", j.Input,
	}
	if vf := j.FilterChain(); vf != "" {
		args = append(args, "-vf", vf)
	}
	args = append(args,
		"-c:v", j.VideoCodec,
		"-preset", j.Preset,
		"-crf", strconv.Itoa(j.CRF),
		"-c:a", j.AudioCodec,
		"-b:a", j.AudioBitrate,
		j.Output,
	)
	return args
}

// FilterChain renders the ordered video filter graph: crop, then scale, then
// subtitle burn-in. Burning before the reframe would place subtitles
// relative to the wrong frame.
func (j Job) FilterChain() string {
	var filters []string
	if c := j.Crop; c != nil {
		filters = append(filters,
			fmt.Sprintf("crop=%d:%d:%d:%d", c.CropWidth, c.CropHeight, c.XOffset, c.YOffset),
			fmt.Sprintf("scale=%d:%d", c.OutputWidth, c.OutputHeight),
		)
	}
	if j.Subtitles != "" {
		filters = append(filters, "subtitles="+escapeFilterPath(j.Subtitles))
	}
	return strings.Join(filters, ",")
}

func fmtSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', 3, 64)
}

// escapeFilterPath escapes characters the ffmpeg filter graph parser treats
// specially inside a subtitles= argument.
func escapeFilterPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "\\\\")
	p = strings.ReplaceAll(p, ":", "\\:")
	p = strings.ReplaceAll(p, "'", "\\'")
	p = strings.ReplaceAll(p, ",", "\\,")
	return p
}
