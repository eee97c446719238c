package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	absherai "github.com/Shahad-Alharbi-creater/AbsherAi"
	"github.com/Shahad-Alharbi-creater/AbsherAi/internal/config"
	httpAdapter "github.com/Shahad-Alharbi-creater/AbsherAi/pkg/adapters/http"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/hub"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/runner"
)

// ShutdownTimeout bounds the wait for in-flight requests on shutdown.
const ShutdownTimeout = 5 * time.Second

// NewServeHandler builds the HTTP API for host, which must render into h.
func NewServeHandler(host *Host, h *hub.Hub) http.Handler {
	return httpAdapter.NewHandler(host.Controller, h,
		httpAdapter.WithTranscript(host.Recorder),
		httpAdapter.WithMetricsHandler(promhttp.HandlerFor(host.Registry, promhttp.HandlerOpts{})),
		httpAdapter.WithVersion(absherai.Version),
		httpAdapter.WithLogger(host.Logger),
	)
}

// Serve exposes one session over HTTP until ctx is cancelled or a signal arrives.
func Serve(ctx context.Context, cfg config.Config, debug bool) error {
	logger := createLogger(cfg.Level(), debug)
	sm := runner.NewSignalManager(ctx)
	defer sm.Stop()
	ctx = sm.Context()

	h := hub.New(hub.WithLogger(logger))
	host, err := NewHost(ctx, cfg, h, logger)
	if err != nil {
		return fmt.Errorf("error initializing session: %w", err)
	}
	defer host.Close()

	release, err := host.Guard(ctx)
	if err != nil {
		return err
	}
	defer release()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           NewServeHandler(host, h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "address", srv.Addr, "session_id", host.SessionID())
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", ShutdownTimeout, "error", err)
			if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		return nil
	}
}
