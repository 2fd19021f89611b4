package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var language string
	var outputSRT string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "extract <input-video>",
		Short: "Transcribe a video and write only the SRT file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve input path: %w", err)
			}
			output := outputSRT
			if output != "" {
				if output, err = filepath.Abs(output); err != nil {
					return fmt.Errorf("resolve output path: %w", err)
				}
			}

			p, cleanup, err := ctx.newPipeline()
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := p.ExtractSubtitles(cmd.Context(), input, output, language)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "SRT file:           %s\n", result.SRTFile)
			fmt.Fprintf(out, "Language:           %s\n", result.TranscriptionLanguage)
			fmt.Fprintf(out, "Subtitles:          %d\n", result.SubtitleStats.SubtitleCount)
			fmt.Fprintf(out, "Transcription cost: $%.4f\n", result.TranscriptionCost)
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "en", "ISO 639-1 transcription language")
	cmd.Flags().StringVarP(&outputSRT, "output", "o", "", "Destination SRT path (defaults next to the video)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the result as JSON")
	return cmd
}
