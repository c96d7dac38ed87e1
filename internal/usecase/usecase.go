package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"clipforge/internal/domain/compose"
	"clipforge/internal/domain/segments"
	"clipforge/internal/domain/subtitles"
	"clipforge/internal/errs"
	"clipforge/internal/ports"
	"clipforge/internal/types"
	"clipforge/internal/worker"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Deps struct {
	Transcoder ports.Transcoder
	Log        *zap.Logger
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return Usecase{d: d}
}

type Input struct {
	InputVideo string
	Highlights []types.Highlight
	Transcript types.Transcript
	Crop       *types.CropPlan

	Style   subtitles.Style
	PlayRes subtitles.Resolution

	// RunDir is the run-exclusive directory receiving clips and temporary
	// subtitle files.
	RunDir string
	// ClipStem names output clips: highlight_<i>_<stem>.mp4.
	ClipStem string

	Workers       int
	KeepSubtitles bool
}

type Failure struct {
	Index int
	Err   error
}

type Result struct {
	// Clips holds the successful renders in highlight-list order.
	Clips    []types.RenderedClip
	Failures []Failure
}

// Run renders every highlight independently. One highlight failing does not
// stop the others; the result enumerates both outcomes. Run returns an error
// only when the batch as a whole is unusable: empty input, or zero
// successful clips.
func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	if len(in.Highlights) == 0 {
		return Result{}, errs.Inputf("render highlights", "highlight list is empty")
	}

	clips := make([]*types.RenderedClip, len(in.Highlights))
	jobs := make([]func(context.Context) error, len(in.Highlights))
	for i, h := range in.Highlights {
		i, h := i, h
		jobs[i] = func(ctx context.Context) error {
			clip, err := u.renderOne(ctx, in, i, h)
			if err != nil {
				return err
			}
			clips[i] = &clip
			return nil
		}
	}

	jobErrs := worker.NewPool(in.Workers).Run(ctx, jobs)

	var res Result
	for i, err := range jobErrs {
		if err != nil {
			u.d.Log.Warn("highlight failed",
				zap.Int("highlight", i),
				zap.Error(err),
			)
			res.Failures = append(res.Failures, Failure{Index: i, Err: err})
			continue
		}
		res.Clips = append(res.Clips, *clips[i])
	}

	if len(res.Clips) == 0 {
		return res, fmt.Errorf("render highlights: all %d highlights failed, first error: %w", len(in.Highlights), res.Failures[0].Err)
	}
	return res, nil
}

func (u Usecase) renderOne(ctx context.Context, in Input, i int, h types.Highlight) (types.RenderedClip, error) {
	if err := validateHighlight(h); err != nil {
		return types.RenderedClip{}, err.WithHighlight(i)
	}

	segs, err := segments.Select(in.Transcript, h)
	if err != nil {
		return types.RenderedClip{}, withHighlight(err, i)
	}

	subPath, err := u.writeSubtitles(in, i, segs)
	if err != nil {
		return types.RenderedClip{}, withHighlight(err, i)
	}
	if !in.KeepSubtitles && subPath != "" {
		// the markup file only exists to feed this one transcode
		defer os.Remove(subPath)
	}

	clipPath := filepath.Join(in.RunDir, fmt.Sprintf("highlight_%d_%s.mp4", i, in.ClipStem))
	job := compose.Build(in.InputVideo, h, in.Crop, subPath, clipPath)

	u.d.Log.Info("transcoding highlight",
		zap.Int("highlight", i),
		zap.Float64("start", h.StartTime),
		zap.Float64("end", h.EndTime),
		zap.String("clip", clipPath),
	)
	if err := u.d.Transcoder.Transcode(ctx, job); err != nil {
		return types.RenderedClip{}, withHighlight(err, i)
	}

	clip := types.RenderedClip{Index: i, File: clipPath}
	if in.KeepSubtitles {
		clip.Subtitles = subPath
	}
	return clip, nil
}

// writeSubtitles renders the subtitle track for one highlight and writes it
// next to the clip. It returns an empty path when there is nothing worth
// burning: no overlapping segments, or karaoke mode with no word timings at
// all (which falls back to plain cues first).
func (u Usecase) writeSubtitles(in Input, i int, segs []types.Segment) (string, error) {
	if len(segs) == 0 {
		return "", nil
	}

	style := in.Style
	if style == subtitles.StyleKaraoke && !hasWords(segs) {
		u.d.Log.Debug("no word timings, falling back to plain cues", zap.Int("highlight", i))
		style = subtitles.StylePlain
	}

	var (
		markup string
		err    error
	)
	switch style {
	case subtitles.StyleKaraoke:
		markup, err = subtitles.RenderKaraokeASS(segs, in.PlayRes)
		if err == nil && !subtitles.HasDialogue(markup) {
			return "", nil
		}
	default:
		markup, err = subtitles.RenderSRT(segs)
	}
	if err != nil {
		return "", errs.Input("render subtitles", err)
	}

	path := filepath.Join(in.RunDir, fmt.Sprintf("subtitles_%d%s", i, style.Ext()))
	if err := os.WriteFile(path, []byte(markup), 0o644); err != nil {
		return "", errs.Resource("write subtitles", err)
	}
	return path, nil
}

func hasWords(segs []types.Segment) bool {
	for _, s := range segs {
		if len(s.Words) > 0 {
			return true
		}
	}
	return false
}

func validateHighlight(h types.Highlight) *errs.Error {
	if err := validate.Struct(h); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return errs.Inputf("validate highlight", "field %s fails %q (start=%.3f end=%.3f)", f.Field(), f.Tag(), h.StartTime, h.EndTime)
		}
		return errs.Input("validate highlight", err)
	}
	return nil
}

func withHighlight(err error, i int) error {
	var e *errs.Error
	if errors.As(err, &e) {
		return e.WithHighlight(i)
	}
	return fmt.Errorf("highlight %d: %w", i, err)
}
