// Package config loads, normalizes, and validates nfoforge configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the NFOFORGE_RELEASER_NAME
// environment fallback. The Config type centralizes the render policies, the
// dynamic range display settings, the ffprobe binary and logging options so
// the CLI can build a render in one pass.
//
// Always obtain settings through this package so downstream code receives
// canonical policy names, expanded paths, and clear validation errors.
package config
