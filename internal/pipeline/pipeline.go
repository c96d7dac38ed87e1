// Package pipeline wires one highlight-rendering run end to end: inputs,
// geometry, the per-highlight usecase, the manifest, and the final archive.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"clipforge/internal/archive"
	"clipforge/internal/domain/framing"
	"clipforge/internal/domain/subtitles"
	"clipforge/internal/errs"
	"clipforge/internal/ports"
	"clipforge/internal/ports/adapters/ffmpeg"
	"clipforge/internal/types"
	"clipforge/internal/usecase"
)

type Config struct {
	InputVideo     string
	TranscriptPath string
	HighlightsPath string
	OutDir         string

	Style  string // "plain" or "karaoke"
	Aspect string // "W:H"
	Anchor string // "top", "center" or "bottom"

	OutputWidth  int
	OutputHeight int

	Workers       int
	KeepSubtitles bool
	SkipArchive   bool

	FFmpegPath  string
	FFprobePath string

	Log *zap.Logger
}

func (c Config) Validate() error {
	if c.InputVideo == "" {
		return errors.New("input video is empty")
	}
	if _, err := os.Stat(c.InputVideo); err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if c.TranscriptPath == "" {
		return errors.New("transcript path is required")
	}
	if _, err := os.Stat(c.TranscriptPath); err != nil {
		return fmt.Errorf("stat transcript: %w", err)
	}
	if c.HighlightsPath == "" {
		return errors.New("highlights path is required")
	}
	if _, err := os.Stat(c.HighlightsPath); err != nil {
		return fmt.Errorf("stat highlights: %w", err)
	}
	if _, err := subtitles.ParseStyle(c.Style); err != nil {
		return err
	}
	if _, err := framing.ParseRatio(c.Aspect); err != nil {
		return err
	}
	if _, err := framing.ParseAnchor(c.Anchor); err != nil {
		return err
	}
	if c.OutputWidth <= 0 || c.OutputHeight <= 0 {
		return fmt.Errorf("output dimensions %dx%d must be positive", c.OutputWidth, c.OutputHeight)
	}
	if c.Workers < 0 {
		return errors.New("workers must be >= 0")
	}
	return nil
}

// Summary is what a run leaves behind.
type Summary struct {
	RunID    string
	RunDir   string
	Manifest string
	Archive  string
	Rendered int
	Failed   int
}

func Run(ctx context.Context, cfg Config) (Summary, error) {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}

	tr, err := loadTranscript(cfg.TranscriptPath)
	if err != nil {
		return Summary{}, err
	}
	highlights, err := loadHighlights(cfg.HighlightsPath)
	if err != nil {
		return Summary{}, err
	}

	style, _ := subtitles.ParseStyle(cfg.Style)
	aspect, _ := framing.ParseRatio(cfg.Aspect)
	anchor, _ := framing.ParseAnchor(cfg.Anchor)

	adapter := ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath)

	srcW, srcH, err := adapter.ProbeVideoSize(ctx, cfg.InputVideo)
	if err != nil {
		return Summary{}, err
	}
	plan, err := framing.Plan(srcW, srcH, framing.Options{
		Aspect:       aspect,
		OutputWidth:  cfg.OutputWidth,
		OutputHeight: cfg.OutputHeight,
		Anchor:       anchor,
	})
	if err != nil {
		return Summary{}, err
	}
	log.Info("crop plan ready",
		zap.Int("source_width", srcW),
		zap.Int("source_height", srcH),
		zap.Int("crop_width", plan.CropWidth),
		zap.Int("crop_height", plan.CropHeight),
		zap.Int("x_offset", plan.XOffset),
		zap.Int("y_offset", plan.YOffset),
	)

	runID := newRunID()
	stem := clipStem(cfg.InputVideo)
	runDir := filepath.Join(cfg.OutDir, fmt.Sprintf("%s-%s", stem, runID))
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return Summary{}, errs.Resource("create run directory", err)
	}
	log.Info("run directory ready", zap.String("dir", runDir), zap.String("run_id", runID))

	uc := usecase.New(usecase.Deps{Transcoder: adapter, Log: log})
	res, runErr := uc.Run(ctx, usecase.Input{
		InputVideo: cfg.InputVideo,
		Highlights: highlights,
		Transcript: tr,
		Crop:       &plan,
		Style:      style,
		PlayRes: subtitles.Resolution{
			Width:  cfg.OutputWidth,
			Height: cfg.OutputHeight,
		},
		RunDir:        runDir,
		ClipStem:      stem,
		Workers:       cfg.Workers,
		KeepSubtitles: cfg.KeepSubtitles,
	})

	sum := Summary{
		RunID:    runID,
		RunDir:   runDir,
		Rendered: len(res.Clips),
		Failed:   len(res.Failures),
	}

	m := buildManifest(cfg.InputVideo, runID, highlights, res)

	if runErr == nil && !cfg.SkipArchive {
		files := make([]string, 0, len(res.Clips))
		for _, c := range res.Clips {
			files = append(files, c.File)
		}
		zipPath := filepath.Join(cfg.OutDir, fmt.Sprintf("highlights_%s_%s.zip", stem, runID))
		if err := archive.Create(zipPath, files); err != nil {
			return sum, err
		}
		sum.Archive = zipPath
		m.Archive = filepath.Base(zipPath)
		log.Info("archive created", zap.String("archive", zipPath), zap.Int("clips", len(files)))
	}

	manifestPath := filepath.Join(runDir, "manifest.json")
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return sum, fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, b, 0o644); err != nil {
		return sum, errs.Resource("write manifest", err)
	}
	sum.Manifest = manifestPath

	if runErr != nil {
		return sum, runErr
	}
	log.Info("run complete",
		zap.Int("rendered", sum.Rendered),
		zap.Int("failed", sum.Failed),
	)
	return sum, nil
}

func loadTranscript(path string) (types.Transcript, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return types.Transcript{}, errs.Resource("read transcript", err)
	}
	var tr types.Transcript
	if err := json.Unmarshal(b, &tr); err != nil {
		return types.Transcript{}, errs.Input("parse transcript", err)
	}
	if len(tr.Segments) == 0 {
		return types.Transcript{}, errs.Inputf("parse transcript", "transcript %s has no segments", path)
	}
	return tr, nil
}

// loadHighlights reads the highlight list from JSON or, by extension, YAML.
func loadHighlights(path string) ([]types.Highlight, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Resource("read highlights", err)
	}
	var hs []types.Highlight
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &hs)
	default:
		err = json.Unmarshal(b, &hs)
	}
	if err != nil {
		return nil, errs.Input("parse highlights", err)
	}
	return hs, nil
}

func buildManifest(input, runID string, highlights []types.Highlight, res usecase.Result) types.Manifest {
	m := types.Manifest{Input: input, RunID: runID}
	for _, c := range res.Clips {
		h := highlights[c.Index]
		mc := types.ManifestClip{
			Index:    c.Index,
			StartSec: h.StartTime,
			EndSec:   h.EndTime,
			Title:    h.Title,
			File:     filepath.Base(c.File),
		}
		if c.Subtitles != "" {
			mc.Subtitles = filepath.Base(c.Subtitles)
		}
		m.Clips = append(m.Clips, mc)
	}
	for _, f := range res.Failures {
		m.Failures = append(m.Failures, types.ManifestFailure{Index: f.Index, Error: f.Err.Error()})
	}
	return m
}

// newRunID is a fresh identifier that keeps concurrent runs from colliding
// on disk.
func newRunID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func clipStem(inputVideo string) string {
	name := strings.TrimSuffix(filepath.Base(inputVideo), filepath.Ext(inputVideo))
	name = normalizePathSegment(name)
	if name == "" {
		name = "input"
	}
	return name
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// ensure the adapter satisfies the ports the pipeline hands out
var (
	_ ports.Transcoder = (*ffmpeg.Adapter)(nil)
	_ ports.Prober     = (*ffmpeg.Adapter)(nil)
)
