package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vidsub/internal/language"
)

func newLanguagesCommand() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List supported transcription language codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			codes := language.Codes()

			if jsonOut {
				type entry struct {
					Code string `json:"code"`
					Name string `json:"name"`
				}
				entries := make([]entry, 0, len(codes))
				for _, code := range codes {
					entries = append(entries, entry{Code: code, Name: language.DisplayName(code)})
				}
				return writeJSON(cmd, entries)
			}

			rows := make([][]string, 0, len(codes))
			for _, code := range codes {
				rows = append(rows, []string{code, language.DisplayName(code)})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out,
				[]string{"CODE", "LANGUAGE"}, rows,
				[]columnAlignment{alignLeft, alignLeft}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the language list as JSON")
	return cmd
}
