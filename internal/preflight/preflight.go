package preflight

import (
	"context"

	"docmill/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Optional paths are only checked when configured.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Docs directory", cfg.Paths.DocsDir),
		CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir),
	}
	if cfg.Paths.StagingDir != "" {
		results = append(results, CheckDirectoryAccess("Staging directory", cfg.Paths.StagingDir))
	}

	for _, status := range CheckConverters(ctx, cfg) {
		result := Result{Name: status.Name, Passed: status.Available, Detail: status.Detail}
		if status.Available {
			result.Detail = status.Version
		}
		// Converters are individually optional: the pipeline skips the
		// affected variants instead of refusing to run.
		if !status.Available && status.Optional {
			result.Passed = true
		}
		results = append(results, result)
	}
	return results
}
