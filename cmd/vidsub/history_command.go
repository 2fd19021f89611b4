package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"vidsub/internal/history"
)

type historyRunJSON struct {
	ID                string    `json:"id"`
	Operation         string    `json:"operation"`
	InputPath         string    `json:"input_path"`
	OutputPath        string    `json:"output_path"`
	Language          string    `json:"language"`
	SubtitleCount     int       `json:"subtitle_count"`
	DurationSeconds   float64   `json:"duration_seconds"`
	CostUSD           float64   `json:"cost_usd"`
	ProcessingSeconds float64   `json:"processing_seconds"`
	Status            string    `json:"status"`
	ErrorMessage      string    `json:"error_message,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func historyRunsJSON(runs []history.Run) []historyRunJSON {
	out := make([]historyRunJSON, 0, len(runs))
	for _, run := range runs {
		out = append(out, historyRunJSON{
			ID:                run.ID,
			Operation:         run.Operation,
			InputPath:         run.InputPath,
			OutputPath:        run.OutputPath,
			Language:          run.Language,
			SubtitleCount:     run.SubtitleCount,
			DurationSeconds:   run.DurationSeconds,
			CostUSD:           run.CostUSD,
			ProcessingSeconds: run.ProcessingSeconds,
			Status:            run.Status,
			ErrorMessage:      run.ErrorMessage,
			CreatedAt:         run.CreatedAt,
		})
	}
	return out
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent runs and total API spend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			totalCost, err := store.TotalCost(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, struct {
					Runs      []historyRunJSON `json:"runs"`
					TotalCost float64          `json:"total_cost_usd"`
				}{Runs: historyRunsJSON(runs), TotalCost: totalCost})
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.CreatedAt.Local().Format("2006-01-02 15:04"),
					run.Operation,
					filepath.Base(run.InputPath),
					run.Language,
					fmt.Sprintf("%d", run.SubtitleCount),
					fmt.Sprintf("$%.4f", run.CostUSD),
					run.Status,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out,
				[]string{"WHEN", "OP", "INPUT", "LANG", "CUES", "COST", "STATUS"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft}))
			fmt.Fprintf(out, "Total API spend: $%.4f\n", totalCost)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the history as JSON")
	return cmd
}
