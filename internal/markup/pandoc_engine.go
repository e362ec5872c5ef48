package markup

import (
	"context"
	"fmt"

	"docmill/internal/deps"
	"docmill/internal/services/pandoc"
)

// PandocEngine drives the pandoc CLI.
type PandocEngine struct {
	binary string
	client *pandoc.Client
}

// NewPandocEngine constructs the CLI-backed engine.
func NewPandocEngine(binary string, timeoutSeconds int, opts ...pandoc.Option) (*PandocEngine, error) {
	client, err := pandoc.New(binary, timeoutSeconds, opts...)
	if err != nil {
		return nil, err
	}
	return &PandocEngine{binary: binary, client: client}, nil
}

func (e *PandocEngine) Name() string { return "pandoc" }

// Available probes the binary with a --version call.
func (e *PandocEngine) Available(ctx context.Context) error {
	if _, err := deps.ProbeVersion(ctx, e.binary); err != nil {
		return fmt.Errorf("pandoc unavailable: %w", err)
	}
	return nil
}

func (e *PandocEngine) FileToMarkdown(ctx context.Context, inputPath, fromFormat, outputPath string) error {
	return e.client.ConvertFile(ctx, inputPath, fromFormat, outputPath)
}
