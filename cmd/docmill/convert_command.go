package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"docmill/internal/convert"
	"docmill/internal/markup"
	"docmill/internal/preflight"
	"docmill/internal/runlock"
	"docmill/internal/services"
	"docmill/internal/services/soffice"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "convert [source-dir]",
		Short: "Convert flat-ODF documents to Markdown through every variant",
		Long: "Runs every .fodt document in the source directory through all\n" +
			"conversion variants. Each variant fails independently; the run only\n" +
			"errors out when no source documents exist or no converter is available.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			sourceDir := "."
			if len(args) == 1 {
				sourceDir = args[0]
			}
			out := strings.TrimSpace(outputDir)
			if out == "" {
				out = cfg.Paths.OutputDir
			}

			lock := runlock.New(cfg.Paths.LogDir)
			if err := lock.Acquire(); err != nil {
				return err
			}
			defer lock.Release()

			runCtx := services.WithRequestID(cmd.Context(), uuid.NewString())

			statuses := preflight.CheckConverters(runCtx, cfg)
			if !preflight.AnyConverterAvailable(statuses) {
				return errors.New("no external converter available; install LibreOffice or pandoc")
			}

			var sofficeClient *soffice.Client
			for _, status := range statuses {
				if status.Name == "LibreOffice" && status.Available {
					sofficeClient, err = soffice.New(cfg.Tools.SofficeBinary, cfg.Tools.TimeoutSeconds, cfg.Tools.FlushWaitSeconds)
					if err != nil {
						return err
					}
				}
			}

			primary, err := markup.NewPandocEngine(cfg.Tools.PandocBinary, cfg.Tools.TimeoutSeconds)
			if err != nil {
				return err
			}
			variants := convert.DefaultVariants(primary, markup.NewLibraryEngine())

			runner := convert.NewRunner(sofficeClient, variants, logger)
			summary, err := runner.ProcessDirectory(runCtx, sourceDir, out)
			if err != nil {
				return err
			}

			writer := cmd.OutOrStdout()
			rows := make([][]string, 0, len(summary.Sources))
			for _, source := range summary.Sources {
				var ok, failed, skipped int
				for _, res := range summary.Results[source] {
					switch {
					case res.Skipped:
						skipped++
					case res.Err != nil:
						failed++
					default:
						ok++
					}
				}
				rows = append(rows, []string{
					filepath.Base(source),
					strconv.Itoa(ok),
					strconv.Itoa(failed),
					strconv.Itoa(skipped),
				})
			}
			fmt.Fprintln(writer, renderTable(
				[]string{"Source", "Converted", "Failed", "Skipped"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
			))
			fmt.Fprintf(writer, "%d variant(s) converted, %d failed (%d retryable), %d skipped across %d source file(s)\n",
				summary.Succeeded, summary.Failed, summary.RetryableFailures(), summary.Skipped, len(summary.Sources))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Destination for converted Markdown (default from config)")
	return cmd
}
