package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"docmill/internal/frontmatter"
	"docmill/internal/logging"
	"docmill/internal/metadata"
)

func newFrontmatterCommand(ctx *commandContext) *cobra.Command {
	var revision string
	var component bool

	cmd := &cobra.Command{
		Use:   "frontmatter [artifact-dir]",
		Short: "Prepend generated frontmatter to converted Markdown artifacts",
		Long: "Re-derives metadata from each artifact, strips any previous header,\n" +
			"and prepends a fresh one. With --component, artifacts carrying a\n" +
			"content identifier are renamed to <CID>.md.",
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
			logger = logging.NewComponentLogger(logger, "frontmatter")

			root := cfg.Paths.OutputDir
			if len(args) == 1 {
				root = args[0]
			}
			rev := strings.TrimSpace(revision)
			if rev == "" {
				rev = strings.TrimSpace(os.Getenv("GITHUB_SHA"))
			}

			var framed, renamed, failed int
			err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
					return nil
				}

				record, err := metadata.ExtractFile(path)
				if err != nil {
					logger.Warn("skipping unreadable artifact", logging.String("path", path), logging.Error(err))
					failed++
					return nil
				}
				record = metadata.WithUSPDFallback(record, path)

				rel, relErr := filepath.Rel(root, path)
				if relErr != nil {
					rel = filepath.Base(path)
				}
				params := frontmatter.Params{
					HostURL:    cfg.Site.HostURL,
					Repository: cfg.Site.Repository,
					Revision:   rev,
					SourceRel:  rel,
					Layout:     cfg.Site.Layout,
					Sidebar:    cfg.Site.Sidebar != "false",
					EditLink:   cfg.Site.EditLink,
				}
				if err := frontmatter.ComposeFile(path, record, params); err != nil {
					logger.Warn("frontmatter composition failed", logging.String("path", path), logging.Error(err))
					failed++
					return nil
				}
				framed++

				if component && record.Has(metadata.FieldCID) {
					target, err := frontmatter.RenameToCID(path, record.Get(metadata.FieldCID, ""))
					if err != nil {
						logger.Warn("rename failed", logging.String("path", path), logging.Error(err))
						return nil
					}
					if target != path {
						renamed++
					}
				}
				return nil
			})
			if err != nil {
				return fmt.Errorf("walk %s: %w", root, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d artifact(s) framed, %d renamed, %d skipped\n", framed, renamed, failed)
			return nil
		},
	}

	cmd.Flags().StringVar(&revision, "revision", "", "Source revision recorded in the header (default $GITHUB_SHA)")
	cmd.Flags().BoolVar(&component, "component", false, "Rename artifacts with a content identifier to <CID>.md")
	return cmd
}
