// ABOUTME: Configuration package documentation
// ABOUTME: Describes config file lookup and defaults
// Package config loads the shtooka CLI settings from a TOML file.
//
// Lookup order: the --config flag, $XDG_CONFIG_HOME/shtooka/config.toml,
// then ~/.config/shtooka/config.toml. A missing file yields the defaults.
// Unknown keys are rejected.
package config
