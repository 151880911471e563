package native

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"audiomatch/internal/services"
)

// Executor abstracts command execution so sources can be tested with canned
// output.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) ([]byte, error)
}

// commandExecutor executes commands using os/exec with a C locale so tool
// output keeps its English field names.
type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.Env = append(os.Environ(), "LC_ALL=C", "LANG=C")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return out, fmt.Errorf("%w: %s", err, firstLine(msg))
		}
		return out, err
	}
	return out, nil
}

// run invokes binary with a per-command timeout and tags failures with the
// appropriate marker.
func (e *Enumerator) run(ctx context.Context, source, binary string, args ...string) ([]byte, error) {
	runCtx := ctx
	var cancel context.CancelFunc
	if e.settings.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, e.settings.Timeout)
		defer cancel()
	}
	out, err := e.exec.Run(runCtx, binary, args)
	if err != nil {
		marker := services.ErrExternalTool
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			marker = services.ErrTimeout
		}
		return nil, services.Wrap(marker, source, binary, "command failed", err)
	}
	return out, nil
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return strings.TrimSpace(s[:idx])
	}
	return s
}
