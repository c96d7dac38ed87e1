package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"clipforge/internal/platform/config"
)

func Main() {
	env, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	root := &cobra.Command{
		Use:          "clipforge <input>",
		Short:        "Render vertical highlight clips with burned-in subtitles",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], env)
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.Flags().String("transcript", "", "Transcript JSON path (required)")
	root.Flags().String("highlights", "", "Highlight list path, JSON or YAML (required)")
	root.Flags().String("out", env.OutputDir, "Output directory")
	root.Flags().String("style", "karaoke", "Subtitle style: plain or karaoke")
	root.Flags().String("aspect", "9:16", "Target aspect ratio")
	root.Flags().String("anchor", "top", "Crop anchor: top, center or bottom")
	root.Flags().Int("width", 1080, "Output width in pixels")
	root.Flags().Int("height", 1920, "Output height in pixels")
	root.Flags().Int("workers", env.Workers, "Parallel transcodes (0 = auto)")
	root.Flags().Bool("keep-subs", false, "Keep subtitle files next to the clips")
	root.Flags().Bool("no-archive", false, "Skip the final zip archive")
	_ = root.MarkFlagRequired("transcript")
	_ = root.MarkFlagRequired("highlights")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
