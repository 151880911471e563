package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	if err := c.normalizeNative(); err != nil {
		return err
	}
	if err := c.normalizeForeign(); err != nil {
		return err
	}
	c.normalizeMatching()
	c.Watch.MetricsBind = strings.TrimSpace(c.Watch.MetricsBind)
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if format == "" {
		format = defaultLogFormat
	}
	c.Logging.Format = format
	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	c.Logging.Level = level
}

func (c *Config) normalizeNative() error {
	c.Native.Source = lowerOrDefault(c.Native.Source, defaultNativeSource)
	c.Native.Direction = lowerOrDefault(c.Native.Direction, defaultNativeDirection)
	if c.Native.TimeoutSeconds <= 0 {
		c.Native.TimeoutSeconds = defaultNativeTimeout
	}

	c.Native.HelperPath = strings.TrimSpace(c.Native.HelperPath)
	if c.Native.HelperPath == "" {
		if value, ok := os.LookupEnv(helperEnvVar); ok {
			c.Native.HelperPath = strings.TrimSpace(value)
		}
	}
	if c.Native.HelperPath != "" && strings.ContainsAny(c.Native.HelperPath, `/\~`) {
		expanded, err := expandPath(c.Native.HelperPath)
		if err != nil {
			return fmt.Errorf("native.helper_path: %w", err)
		}
		c.Native.HelperPath = expanded
	}

	c.Native.PowerShellBinary = trimOrDefault(c.Native.PowerShellBinary, defaultPowerShellBinary)
	c.Native.SystemProfilerBinary = trimOrDefault(c.Native.SystemProfilerBinary, defaultSystemProfiler)
	c.Native.AplayBinary = trimOrDefault(c.Native.AplayBinary, defaultAplayBinary)
	c.Native.ArecordBinary = trimOrDefault(c.Native.ArecordBinary, defaultArecordBinary)
	c.Native.PactlBinary = trimOrDefault(c.Native.PactlBinary, defaultPactlBinary)
	return nil
}

func (c *Config) normalizeForeign() error {
	path := strings.TrimSpace(c.Foreign.Path)
	if path != "" && path != "-" {
		expanded, err := expandPath(path)
		if err != nil {
			return fmt.Errorf("foreign.path: %w", err)
		}
		path = expanded
	}
	c.Foreign.Path = path
	c.Foreign.Kind = lowerOrDefault(c.Foreign.Kind, defaultForeignKind)
	c.Foreign.ExcludeIDs = compactStrings(c.Foreign.ExcludeIDs, false)
	return nil
}

func (c *Config) normalizeMatching() {
	c.Matching.Assignment = lowerOrDefault(c.Matching.Assignment, defaultAssignment)
	if c.Matching.MinIDContainment <= 0 {
		c.Matching.MinIDContainment = defaultMinIDContainment
	}
	c.Matching.DisabledStrategies = compactStrings(c.Matching.DisabledStrategies, true)
}

func lowerOrDefault(value, fallback string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return fallback
	}
	return value
}

func trimOrDefault(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}

func compactStrings(values []string, lower bool) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if lower {
			value = strings.ToLower(value)
		}
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
