package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newRefineCommand(ctx *commandContext) *cobra.Command {
	var instruction string
	var outputSRT string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "refine <subtitle.srt>",
		Short: "Rewrite a subtitle file with a model instruction",
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

			result, err := p.RefineSubtitles(cmd.Context(), input, output, instruction)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Refined file: %s\n", result.OutputFile)
			if !result.Valid {
				fmt.Fprintln(out, "Warning: the refined document no longer parses as SRT")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&instruction, "instruction", "i", "", "Instruction describing the desired edit")
	cmd.Flags().StringVarP(&outputSRT, "output", "o", "", "Destination path (defaults to in-place)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the result as JSON")
	_ = cmd.MarkFlagRequired("instruction")
	return cmd
}
