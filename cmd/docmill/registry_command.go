package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"docmill/internal/registry"
)

func newRegistryCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Rebuild the component registry from converted artifacts",
		Long: "Walks the docs tree (and the staging tree, whose entries take\n" +
			"precedence) and writes one sorted registry line per identifier.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			target := strings.TrimSpace(outputPath)
			if target == "" {
				target = cfg.Paths.RegistryPath
			}

			builder := registry.NewBuilder(logger)
			entries, err := builder.Build(cfg.Paths.DocsDir, cfg.Paths.StagingDir)
			if err != nil {
				return err
			}
			if err := builder.WriteFile(target, entries); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d registry entries to %s\n", len(entries), target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Registry file destination (default from config)")
	return cmd
}
