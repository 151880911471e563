// Package preflight provides readiness checks for the filesystem paths and
// endpoints audiomatch depends on.
//
// These checks run in two contexts:
//   - The watch loop calls RunAll before its first rematch and logs every
//     failed check as a warning. A failed check never stops the loop.
//   - The CLI "audiomatch deps" command prints each result next to the tool
//     availability report.
//
// Checks are gated by configuration: an unset log_dir, foreign path, helper,
// or metrics bind is skipped rather than reported.
package preflight
