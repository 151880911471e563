package browser

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"audiomatch/internal/config"
	"audiomatch/internal/device"
	"audiomatch/internal/services"
)

// Stdin is the path value that reads the export from standard input.
const Stdin = "-"

// Options filters a foreign device list.
type Options struct {
	// Kind keeps only records of this kind. Records without a kind are always
	// kept. Empty or "any" disables the filter.
	Kind string
	// ExcludeIDs drops records whose deviceId matches exactly.
	ExcludeIDs []string
}

// OptionsFromConfig converts the [foreign] section into Options.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	return Options{
		Kind:       cfg.Foreign.Kind,
		ExcludeIDs: append([]string(nil), cfg.Foreign.ExcludeIDs...),
	}
}

// Load reads and filters the export at path. "-" reads from stdin.
func Load(path string, opts Options) ([]device.Foreign, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, services.Wrap(services.ErrInvalidInput, "browser", "load", "no foreign device file given", nil)
	}
	if path == Stdin {
		return Read(os.Stdin, opts)
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, services.Wrap(services.ErrInvalidInput, "browser", "load", "expand path", err)
	}
	f, err := os.Open(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "browser", "load", expanded, err)
		}
		return nil, services.Wrap(services.ErrInvalidInput, "browser", "load", expanded, err)
	}
	defer f.Close()
	return Read(f, opts)
}

// Read decodes and filters a foreign device list from r.
func Read(r io.Reader, opts Options) ([]device.Foreign, error) {
	list, err := device.DecodeForeign(r)
	if err != nil {
		return nil, err
	}
	return Filter(list, opts), nil
}

// Filter applies the kind and exclusion rules, preserving order. The result
// is never nil.
func Filter(list []device.Foreign, opts Options) []device.Foreign {
	kind := strings.ToLower(strings.TrimSpace(opts.Kind))
	if kind == config.KindAny {
		kind = ""
	}
	excluded := make(map[string]struct{}, len(opts.ExcludeIDs))
	for _, id := range opts.ExcludeIDs {
		if id = strings.TrimSpace(id); id != "" {
			excluded[id] = struct{}{}
		}
	}
	out := make([]device.Foreign, 0, len(list))
	for _, f := range list {
		if kind != "" && f.Kind != "" && !strings.EqualFold(f.Kind, kind) {
			continue
		}
		if _, skip := excluded[strings.TrimSpace(f.DeviceID)]; skip {
			continue
		}
		out = append(out, f)
	}
	return out
}
