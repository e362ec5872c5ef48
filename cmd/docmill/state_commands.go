package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"docmill/internal/fileutil"
	"docmill/internal/runlock"
	"docmill/internal/state"
)

func newStateCommand(ctx *commandContext) *cobra.Command {
	stateCmd := &cobra.Command{
		Use:   "state",
		Short: "Conversion state journal utilities",
	}

	stateCmd.AddCommand(newStateUpdateCommand(ctx))
	stateCmd.AddCommand(newStateRetryCommand(ctx))
	stateCmd.AddCommand(newStateShowCommand(ctx))

	return stateCmd
}

func newStateUpdateCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Merge this run's results into the state journal",
		Long: "Reads GITHUB_SHA, PROCESSED_FILES, and FAILED_FILES from the\n" +
			"environment, merges them into the prior journal, and writes the\n" +
			"result to a new file so the prior journal survives a crash.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			// Journal mutation shares the run lock with convert so two
			// overlapping CI runs cannot race the state file.
			lock := runlock.New(cfg.Paths.LogDir)
			if err := lock.Acquire(); err != nil {
				return err
			}
			defer lock.Release()

			prior, err := state.Load(cfg.Paths.StateFile)
			if err != nil {
				// Corrupt journal: continue from empty, but say so.
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; starting from an empty state\n", err)
			}

			update := state.UpdateFromEnv(os.Getenv)
			for path := range update.Processed {
				// Sources reported by CI may already be gone; hash what is
				// still on disk and leave the rest empty.
				if hash, hashErr := fileutil.HashFile(path); hashErr == nil {
					update.Processed[path] = hash
				}
			}
			merged := state.Merge(prior, update)

			target := strings.TrimSpace(outputPath)
			if target == "" {
				target = state.NextPath(cfg.Paths.StateFile)
			}
			if err := state.Write(merged, target); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Merged %d processed and %d failed file(s); wrote %s\n",
				len(update.Processed), len(update.Failed), target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination for the merged journal (default <state-file>.new)")
	return cmd
}

func newStateRetryCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "retry",
		Short: "List files still eligible for automatic retry",
		Long: "Prints one path per line for every failed file whose attempt count\n" +
			"is below the retry ceiling. Files at the ceiling need manual attention.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			journal, err := state.Load(cfg.Paths.StateFile)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; treating state as empty\n", err)
			}

			candidates := journal.RetryCandidates(cfg.Retry.MaxAttempts)
			if asJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				return encoder.Encode(candidates)
			}
			for _, path := range candidates {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the candidate list as JSON")
	return cmd
}

func newStateShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the state journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			journal, err := state.Load(cfg.Paths.StateFile)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; treating state as empty\n", err)
			}

			writer := cmd.OutOrStdout()
			fmt.Fprintf(writer, "Last processed commit: %s\n", valueOrDash(journal.LastProcessedCommit))
			fmt.Fprintf(writer, "Last successful run:   %s\n", valueOrDash(journal.LastSuccessfulRun))
			fmt.Fprintf(writer, "Successful files:      %d\n", len(journal.SuccessfulFiles))

			if len(journal.FailedFiles) == 0 {
				fmt.Fprintln(writer, "No failed files")
				return nil
			}

			rows := make([][]string, 0, len(journal.FailedFiles))
			for _, path := range sortedFailurePaths(journal) {
				record := journal.FailedFiles[path]
				rows = append(rows, []string{
					path,
					fmt.Sprintf("%d", record.AttemptCount),
					record.LastAttempt,
					record.LastError,
				})
			}
			fmt.Fprintln(writer, renderTable(
				[]string{"Failed file", "Attempts", "Last attempt", "Last error"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func valueOrDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return absentCell
	}
	return value
}
