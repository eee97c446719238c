package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	absherai "github.com/Shahad-Alharbi-creater/AbsherAi"
	"github.com/Shahad-Alharbi-creater/AbsherAi/internal/config"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/adapters/mcp"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/hub"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/runner"
)

// MCP transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// ServeMCP exposes one session as MCP tools over transport.
func ServeMCP(ctx context.Context, cfg config.Config, transport string, port int, debug bool) error {
	if transport != TransportStdio && transport != TransportSSE {
		return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
	}

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

	srv := mcp.NewServer(host.Controller, h, absherai.Version, mcp.WithLogger(logger))

	if transport == TransportStdio {
		// Ensure logs don't corrupt JSON-RPC on Stdout
		log.SetOutput(os.Stderr)
		logger.Info("starting MCP server (stdio)", "session_id", host.SessionID())
		return srv.ServeStdio()
	}

	logger.Info("starting MCP server (SSE)", "port", port, "session_id", host.SessionID())
	if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("MCP server stopped gracefully")
	return nil
}
