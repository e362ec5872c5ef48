package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"docmill/internal/preflight"
	"docmill/internal/state"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show pipeline readiness and journal summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			writer := cmd.OutOrStdout()

			statuses := preflight.CheckConverters(cmd.Context(), cfg)
			toolRows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				detail := status.Version
				if !status.Available {
					detail = status.Detail
				}
				toolRows = append(toolRows, []string{
					status.Name,
					yesNo(status.Available),
					detail,
				})
			}
			fmt.Fprintln(writer, renderTable(
				[]string{"Converter", "Available", "Detail"},
				toolRows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))

			checkRows := make([][]string, 0, 4)
			for _, result := range preflight.RunAll(cmd.Context(), cfg) {
				checkRows = append(checkRows, []string{
					result.Name,
					yesNo(result.Passed),
					result.Detail,
				})
			}
			fmt.Fprintln(writer, renderTable(
				[]string{"Check", "Passed", "Detail"},
				checkRows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))

			journal, err := state.Load(cfg.Paths.StateFile)
			if err != nil {
				fmt.Fprintf(writer, "State journal: unreadable (%v)\n", err)
				return nil
			}
			retry := journal.RetryCandidates(cfg.Retry.MaxAttempts)
			fmt.Fprintf(writer, "State journal: %d converted, %d failed (%d retryable)\n",
				len(journal.SuccessfulFiles), len(journal.FailedFiles), len(retry))
			if journal.LastSuccessfulRun != "" {
				fmt.Fprintf(writer, "Last successful run: %s\n", journal.LastSuccessfulRun)
			}
			return nil
		},
	}
}
