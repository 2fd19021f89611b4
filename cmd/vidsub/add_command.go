package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var language string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "add <input-video> <output-video>",
		Short: "Transcribe a video and burn the subtitles into a new file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve input path: %w", err)
			}
			output, err := filepath.Abs(args[1])
			if err != nil {
				return fmt.Errorf("resolve output path: %w", err)
			}

			p, cleanup, err := ctx.newPipeline()
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := p.AddSubtitles(cmd.Context(), input, output, language)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "SRT file:           %s\n", result.SRTFile)
			fmt.Fprintf(out, "Output video:       %s\n", result.OutputVideo)
			fmt.Fprintf(out, "Language:           %s\n", result.TranscriptionLanguage)
			fmt.Fprintf(out, "Subtitles:          %d\n", result.SubtitleStats.SubtitleCount)
			fmt.Fprintf(out, "Transcription cost: $%.4f\n", result.TranscriptionCost)
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "en", "ISO 639-1 transcription language")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the result as JSON")
	return cmd
}
