package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"vidsub/internal/subtitle"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "stats <subtitle.srt>",
		Short: "Show statistics for an SRT file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}

			stats, err := subtitle.ReadStats(path)
			if err != nil {
				return err
			}
			valid := subtitle.ValidateSRTFile(path)

			if jsonOut {
				return writeJSON(cmd, struct {
					File  string         `json:"file"`
					Valid bool           `json:"valid"`
					Stats subtitle.Stats `json:"stats"`
				}{File: path, Valid: valid, Stats: stats})
			}

			rows := [][]string{
				{"File", path},
				{"Valid SRT", fmt.Sprintf("%t", valid)},
				{"Subtitles", fmt.Sprintf("%d", stats.SubtitleCount)},
				{"Total duration", fmt.Sprintf("%.1fs", stats.TotalDuration)},
				{"Total characters", fmt.Sprintf("%d", stats.TotalCharacters)},
				{"Avg chars/subtitle", fmt.Sprintf("%.1f", stats.AverageCharsPerSubtitle)},
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out,
				[]string{"FIELD", "VALUE"}, rows,
				[]columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the statistics as JSON")
	return cmd
}
