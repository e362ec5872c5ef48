package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeSite()
	c.normalizeRetry()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.DocsDir, err = expandPath(c.Paths.DocsDir); err != nil {
		return fmt.Errorf("paths.docs_dir: %w", err)
	}
	if c.Paths.StagingDir, err = expandPath(c.Paths.StagingDir); err != nil {
		return fmt.Errorf("paths.staging_dir: %w", err)
	}
	if c.Paths.RegistryPath, err = expandPath(c.Paths.RegistryPath); err != nil {
		return fmt.Errorf("paths.registry_path: %w", err)
	}
	if c.Paths.StateFile, err = expandPath(c.Paths.StateFile); err != nil {
		return fmt.Errorf("paths.state_file: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.SofficeBinary = strings.TrimSpace(c.Tools.SofficeBinary)
	if c.Tools.SofficeBinary == "" {
		c.Tools.SofficeBinary = defaultSofficeBinary
	}
	c.Tools.PandocBinary = strings.TrimSpace(c.Tools.PandocBinary)
	if c.Tools.PandocBinary == "" {
		c.Tools.PandocBinary = defaultPandocBinary
	}
	if c.Tools.TimeoutSeconds <= 0 {
		c.Tools.TimeoutSeconds = defaultToolTimeout
	}
	if c.Tools.FlushWaitSeconds < 0 {
		c.Tools.FlushWaitSeconds = defaultFlushWaitSeconds
	}
}

func (c *Config) normalizeSite() {
	c.Site.HostURL = strings.TrimRight(strings.TrimSpace(c.Site.HostURL), "/")
	if c.Site.HostURL == "" {
		c.Site.HostURL = defaultHostURL
	}
	c.Site.Repository = strings.TrimSpace(c.Site.Repository)
	if c.Site.Repository == "" {
		if value, ok := os.LookupEnv("GITHUB_REPOSITORY"); ok {
			c.Site.Repository = strings.TrimSpace(value)
		}
	}
	if strings.TrimSpace(c.Site.Layout) == "" {
		c.Site.Layout = defaultLayout
	}
	if strings.TrimSpace(c.Site.Sidebar) == "" {
		c.Site.Sidebar = defaultSidebar
	}
}

func (c *Config) normalizeRetry() {
	if c.Retry.MaxAttempts <= 0 {
		c.Retry.MaxAttempts = defaultRetryMaxAttempts
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
