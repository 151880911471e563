// Package config loads, normalizes, and validates audiomatch configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the AUDIOMATCH_HELPER environment fallback for the
// native helper binary. The Config type centralizes every knob the CLI and the
// watch loop need so enumeration, matching, and logging are configured in one
// pass.
package config
