// Package config loads, normalizes, and validates swingmatch configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the SWINGMATCH_EXTRACTOR and
// SWINGMATCH_LOG_LEVEL environment overrides. The Config type centralizes the
// directories, comparison tunables, extractor invocation and logging settings
// the CLI needs.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
