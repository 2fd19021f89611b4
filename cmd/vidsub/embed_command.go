package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newEmbedCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "embed <input-video> <subtitle.srt> <output-video>",
		Short: "Burn an existing SRT file into a video",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := make([]string, 3)
			for i, arg := range args {
				abs, err := filepath.Abs(arg)
				if err != nil {
					return fmt.Errorf("resolve path %q: %w", arg, err)
				}
				paths[i] = abs
			}

			p, cleanup, err := ctx.newPipeline()
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := p.EmbedSubtitleFile(cmd.Context(), paths[0], paths[1], paths[2])
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Output video:  %s\n", result.OutputVideo)
			fmt.Fprintf(out, "Subtitle file: %s\n", result.SubtitleFile)
			fmt.Fprintf(out, "Video:         %s, %.1fs\n", result.VideoInfo.Resolution, result.VideoInfo.Duration)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the result as JSON")
	return cmd
}
