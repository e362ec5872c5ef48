package soffice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"docmill/internal/fileutil"
)

// Filter names a LibreOffice export target and the extension it produces.
type Filter struct {
	// Spec is the value passed to --convert-to, e.g. "html:HTML (StarWriter)".
	Spec string
	// Ext is the extension LibreOffice gives the exported file.
	Ext string
}

var (
	FilterHTML = Filter{Spec: "html:HTML (StarWriter)", Ext: ".html"}
	FilterODT  = Filter{Spec: "odt:writer8", Ext: ".odt"}
	FilterDOC  = Filter{Spec: "doc", Ext: ".doc"}
	FilterRTF  = Filter{Spec: "rtf", Ext: ".rtf"}
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) (stdout, stderr string, err error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps headless LibreOffice CLI interactions.
type Client struct {
	binary    string
	timeout   time.Duration
	flushWait time.Duration
	exec      Executor
}

// New constructs a LibreOffice client.
func New(binary string, timeoutSeconds, flushWaitSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("soffice binary required")
	}
	client := &Client{
		binary:    binary,
		timeout:   time.Duration(timeoutSeconds) * time.Second,
		flushWait: time.Duration(flushWaitSeconds) * time.Second,
		exec:      commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Convert exports inputPath through the given filter into outDir and returns
// the path of the produced file. A successful exit status alone is not
// trusted: LibreOffice flushes output asynchronously, so the expected file is
// awaited for a bounded window before the conversion is declared failed.
func (c *Client) Convert(ctx context.Context, inputPath string, filter Filter, outDir string) (string, error) {
	if strings.TrimSpace(inputPath) == "" {
		return "", errors.New("input path required")
	}
	if strings.TrimSpace(outDir) == "" {
		return "", errors.New("output directory required")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := []string{"--headless", "--convert-to", filter.Spec, "--outdir", outDir, inputPath}
	_, stderr, err := c.exec.Run(runCtx, c.binary, args)
	if err != nil {
		if detail := strings.TrimSpace(stderr); detail != "" {
			return "", fmt.Errorf("soffice convert: %w: %s", err, detail)
		}
		return "", fmt.Errorf("soffice convert: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	expected := filepath.Join(outDir, base+filter.Ext)
	if err := fileutil.WaitForPath(ctx, expected, c.flushWait); err != nil {
		return "", fmt.Errorf("soffice convert: %w", err)
	}
	return expected, nil
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}
