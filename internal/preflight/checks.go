package preflight

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"docmill/internal/config"
	"docmill/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckConverters evaluates the external converter binaries for the given
// config. Both the convert preflight and the CLI status command use this to
// avoid duplicating the requirements list. Every converter is optional at
// the batch level: a missing one only skips its variants, and the run aborts
// only when no converter is available at all.
func CheckConverters(ctx context.Context, cfg *config.Config) []deps.Status {
	requirements := []deps.Requirement{
		{
			Name:        "LibreOffice",
			Command:     cfg.Tools.SofficeBinary,
			Description: "Exports HTML/ODT/DOC/RTF intermediates",
			Optional:    true,
		},
		{
			Name:        "Pandoc",
			Command:     cfg.Tools.PandocBinary,
			Description: "Primary Markdown converter",
			Optional:    true,
		},
	}
	return deps.Check(ctx, requirements)
}

// AnyConverterAvailable reports whether at least one converter binary can
// run.
func AnyConverterAvailable(statuses []deps.Status) bool {
	for _, status := range statuses {
		if status.Available {
			return true
		}
	}
	return false
}
