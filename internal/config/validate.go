package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateNative(); err != nil {
		return err
	}
	if err := c.validateForeign(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	return c.validateWatch()
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateNative() error {
	switch c.Native.Source {
	case SourceAuto, SourceSystemProfiler, SourceEndpoints, SourceWMI, SourceALSA, SourcePulse:
	case SourceHelper:
		if c.Native.HelperPath == "" {
			return fmt.Errorf("native.helper_path must be set when native.source is %q (or set %s)", SourceHelper, helperEnvVar)
		}
	default:
		return fmt.Errorf("native.source: unsupported value %q", c.Native.Source)
	}
	switch c.Native.Direction {
	case DirectionOutput, DirectionInput:
	default:
		return fmt.Errorf("native.direction: unsupported value %q (want output or input)", c.Native.Direction)
	}
	if c.Native.TimeoutSeconds > maxNativeTimeoutSeconds {
		return fmt.Errorf("native.timeout_seconds must be at most %d", maxNativeTimeoutSeconds)
	}
	return nil
}

func (c *Config) validateForeign() error {
	switch c.Foreign.Kind {
	case KindAudioOutput, KindAudioInput, KindAny:
		return nil
	default:
		return fmt.Errorf("foreign.kind: unsupported value %q (want audiooutput, audioinput, or any)", c.Foreign.Kind)
	}
}

func (c *Config) validateMatching() error {
	switch c.Matching.Assignment {
	case AssignmentGreedy, AssignmentOptimal:
		return nil
	default:
		return fmt.Errorf("matching.assignment: unsupported value %q (want greedy or optimal)", c.Matching.Assignment)
	}
}

func (c *Config) validateWatch() error {
	if c.Watch.DebounceMS < 0 {
		return errors.New("watch.debounce_ms must be non-negative")
	}
	if c.Watch.PollIntervalSeconds < minWatchPollIntervalSecond {
		return fmt.Errorf("watch.poll_interval_seconds must be at least %d", minWatchPollIntervalSecond)
	}
	return nil
}
