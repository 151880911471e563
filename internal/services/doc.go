// Package services defines shared utilities consumed by the enumeration,
// matching, and CLI layers.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs and device sources for logging.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent exit codes.
//
// Use these helpers when wiring new suppliers or commands so error handling and
// observability stay uniform across the tool.
package services
