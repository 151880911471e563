package services

import "context"

type contextKey string

const (
	runIDKey    contextKey = "run_id"
	sourceKey   contextKey = "source"
	platformKey contextKey = "platform"
)

// WithRunID annotates context with the enumeration/match run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithSource annotates context with the native device source name.
func WithSource(ctx context.Context, source string) context.Context {
	if source == "" {
		return ctx
	}
	return context.WithValue(ctx, sourceKey, source)
}

// SourceFromContext returns the native device source name if present.
func SourceFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(sourceKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithPlatform annotates context with the host platform (GOOS).
func WithPlatform(ctx context.Context, platform string) context.Context {
	if platform == "" {
		return ctx
	}
	return context.WithValue(ctx, platformKey, platform)
}

// PlatformFromContext returns the host platform if present.
func PlatformFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(platformKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
