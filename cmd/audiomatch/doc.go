// Command audiomatch enumerates host audio devices, classifies them, and
// cross-references them against a browser-style device export.
//
// Subcommands:
//
//	devices   list native devices with their classification
//	classify  classify a single device name
//	match     cross-reference native devices against a browser export
//	watch     rematch on hotplug events or export changes
//	deps      report availability of the audio tools each source needs
//	config    create or validate the TOML configuration
//
// Human-readable output goes to stdout as tables; --json switches to indented
// JSON. Logs always go to stderr (and to log_dir when configured). Exit codes
// follow the error class: 2 invalid input, 3 configuration, 4 external tool.
package main
