package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize default: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate default: %v", err)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Fatalf("expected default retry ceiling of 3, got %d", cfg.Retry.MaxAttempts)
	}
}

func TestLoadAppliesFileValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[paths]",
		`output_dir = "out"`,
		"[tools]",
		`soffice_binary = "/opt/libreoffice/soffice"`,
		"timeout_seconds = 60",
		"[logging]",
		`format = "json"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %s to be found, got %s exists=%v", path, resolved, exists)
	}
	if cfg.Paths.OutputDir != "out" {
		t.Fatalf("unexpected output dir: %s", cfg.Paths.OutputDir)
	}
	if cfg.Tools.SofficeBinary != "/opt/libreoffice/soffice" {
		t.Fatalf("unexpected soffice binary: %s", cfg.Tools.SofficeBinary)
	}
	if cfg.Tools.TimeoutSeconds != 60 {
		t.Fatalf("unexpected timeout: %d", cfg.Tools.TimeoutSeconds)
	}
	if cfg.Tools.PandocBinary != "pandoc" {
		t.Fatalf("expected pandoc default, got %s", cfg.Tools.PandocBinary)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("unexpected log format: %s", cfg.Logging.Format)
	}
}

func TestLoadRejectsBadLogFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected validation error for bad log format")
	}
}

func TestRepositoryFallsBackToEnv(t *testing.T) {
	t.Setenv("GITHUB_REPOSITORY", "acme/docs")
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Site.Repository != "acme/docs" {
		t.Fatalf("expected env repository, got %q", cfg.Site.Repository)
	}
}

func TestExpandPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	got, err := ExpandPath("~/docs")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got != filepath.Join(home, "docs") {
		t.Fatalf("unexpected expansion: %s", got)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("create sample: %v", err)
	}

	cfg := Default()
	if err := decodeFile(path, &cfg); err != nil {
		t.Fatalf("decode sample: %v", err)
	}
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize sample: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config should validate: %v", err)
	}
}
