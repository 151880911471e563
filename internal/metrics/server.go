package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"audiomatch/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// Serve exposes /metrics on bind until ctx is cancelled. Bind errors are
// returned before any request is accepted.
func (r *Recorder) Serve(ctx context.Context, bind string, logger *slog.Logger) error {
	logger = logging.NewComponentLogger(logger, "metrics")
	listener, err := net.Listen("tcp", bind)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics endpoint listening",
		logging.String(logging.FieldEventType, "metrics_listening"),
		logging.String("address", listener.Addr().String()),
	)
	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
