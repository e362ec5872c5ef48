// Package markup abstracts the final intermediate-to-Markdown conversion so
// the pipeline can run against either the pandoc CLI or an in-process
// conversion library.
package markup

import (
	"context"
	"errors"
)

// ErrUnsupportedFormat reports that an engine cannot consume the requested
// source format. The variant is skipped, not failed.
var ErrUnsupportedFormat = errors.New("unsupported source format")

// Engine converts an intermediate document file into Markdown.
type Engine interface {
	// Name identifies the engine in logs and output suffix selection.
	Name() string
	// Available reports whether the engine can run at all (binary present,
	// library usable). Unavailability aborts the engine's variants, never
	// the whole batch.
	Available(ctx context.Context) error
	// FileToMarkdown converts inputPath (in fromFormat) into Markdown at
	// outputPath.
	FileToMarkdown(ctx context.Context, inputPath, fromFormat, outputPath string) error
}
