package cli

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"clipforge/internal/pipeline"
	"clipforge/internal/platform/config"
	"clipforge/internal/platform/logger"
)

func run(cmd *cobra.Command, input string, env config.Env) error {
	transcript, _ := cmd.Flags().GetString("transcript")
	highlights, _ := cmd.Flags().GetString("highlights")
	outDir, _ := cmd.Flags().GetString("out")
	style, _ := cmd.Flags().GetString("style")
	aspect, _ := cmd.Flags().GetString("aspect")
	anchor, _ := cmd.Flags().GetString("anchor")
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	workers, _ := cmd.Flags().GetInt("workers")
	keepSubs, _ := cmd.Flags().GetBool("keep-subs")
	noArchive, _ := cmd.Flags().GetBool("no-archive")

	absIn, err := filepath.Abs(input)
	if err != nil {
		return err
	}

	log, err := logger.New(env.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := pipeline.Config{
		InputVideo:     absIn,
		TranscriptPath: transcript,
		HighlightsPath: highlights,
		OutDir:         outDir,

		Style:  style,
		Aspect: aspect,
		Anchor: anchor,

		OutputWidth:  width,
		OutputHeight: height,

		Workers:       workers,
		KeepSubtitles: keepSubs,
		SkipArchive:   noArchive,

		FFmpegPath:  env.FFmpegPath,
		FFprobePath: env.FFprobePath,

		Log: log,
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	sum, err := pipeline.Run(ctx, cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "rendered %d clip(s) in %s\n", sum.Rendered, sum.RunDir)
	if sum.Failed > 0 {
		fmt.Fprintf(out, "failed %d highlight(s), see %s\n", sum.Failed, sum.Manifest)
	}
	if sum.Archive != "" {
		fmt.Fprintf(out, "archive: %s\n", sum.Archive)
	}
	return nil
}
