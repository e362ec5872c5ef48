// Package config loads, validates, and normalizes docmill configuration.
//
// Configuration lives in a TOML file (default ~/.config/docmill/config.toml,
// or ./docmill.toml for project-local setups). Load applies defaults, expands
// ~ in path fields, pulls a small set of values from the environment, and
// validates the result, so the rest of the code can treat the Config value as
// trusted.
package config
