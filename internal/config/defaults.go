package config

const (
	defaultOutputDir        = "converted_docs"
	defaultDocsDir          = "docs/components"
	defaultStagingDir       = "docs/staging"
	defaultRegistryPath     = "docs/registry.md"
	defaultStateFile        = "conversion-state.json"
	defaultLogDir           = "~/.local/share/docmill/logs"
	defaultSofficeBinary    = "soffice"
	defaultPandocBinary     = "pandoc"
	defaultToolTimeout      = 300
	defaultFlushWaitSeconds = 10
	defaultHostURL          = "https://github.com"
	defaultLayout           = "page"
	defaultSidebar          = "auto"
	defaultRetryMaxAttempts = 3
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir:    defaultOutputDir,
			DocsDir:      defaultDocsDir,
			StagingDir:   defaultStagingDir,
			RegistryPath: defaultRegistryPath,
			StateFile:    defaultStateFile,
			LogDir:       defaultLogDir,
		},
		Tools: Tools{
			SofficeBinary:    defaultSofficeBinary,
			PandocBinary:     defaultPandocBinary,
			TimeoutSeconds:   defaultToolTimeout,
			FlushWaitSeconds: defaultFlushWaitSeconds,
		},
		Site: Site{
			HostURL:  defaultHostURL,
			Layout:   defaultLayout,
			Sidebar:  defaultSidebar,
			EditLink: true,
		},
		Retry: Retry{
			MaxAttempts: defaultRetryMaxAttempts,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
