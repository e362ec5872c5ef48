package markup

import (
	"context"
	"fmt"
	"os"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// LibraryEngine converts HTML to Markdown in-process, without shelling out.
// It only understands hypertext input; other intermediate formats report
// ErrUnsupportedFormat so their variants are skipped under this engine.
type LibraryEngine struct {
	converter *md.Converter
}

// NewLibraryEngine constructs the in-process engine.
func NewLibraryEngine() *LibraryEngine {
	return &LibraryEngine{converter: md.NewConverter("", true, nil)}
}

func (e *LibraryEngine) Name() string { return "library" }

// Available always succeeds; the converter is compiled in.
func (e *LibraryEngine) Available(ctx context.Context) error { return nil }

func (e *LibraryEngine) FileToMarkdown(ctx context.Context, inputPath, fromFormat, outputPath string) error {
	if fromFormat != "html" {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, fromFormat)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	source, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read intermediate: %w", err)
	}

	markdown, err := e.converter.ConvertString(string(source))
	if err != nil {
		return fmt.Errorf("convert html: %w", err)
	}

	if err := os.WriteFile(outputPath, []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}
