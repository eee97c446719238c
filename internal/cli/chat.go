package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Shahad-Alharbi-creater/AbsherAi/internal/config"
	"github.com/Shahad-Alharbi-creater/AbsherAi/internal/presentation/tui"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/runner"
)

// ChatOptions configures an interactive terminal session.
type ChatOptions struct {
	Debug bool
	// Plain disables the banner and markdown rendering.
	Plain  bool
	Input  io.Reader
	Output io.Writer
}

// RunChat runs one terminal session until the user exits, input ends, or the
// process is interrupted.
func RunChat(ctx context.Context, cfg config.Config, opts ChatOptions) error {
	logger := createLogger(cfg.Level(), opts.Debug)

	in, out := opts.Input, opts.Output
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	var termOpts []runner.TerminalOption
	if f, ok := out.(*os.File); ok && !opts.Plain && runner.IsInteractive(f) {
		tui.PrintBanner(out)
		if render, err := tui.NewRenderer(); err == nil {
			termOpts = append(termOpts, runner.WithRenderer(render))
		} else {
			logger.Warn("markdown rendering disabled", "error", err)
		}
	}
	terminal := runner.NewTerminal(out, termOpts...)

	sm := runner.NewSignalManager(ctx)
	defer sm.Stop()

	host, err := NewHost(sm.Context(), cfg, terminal, logger)
	if err != nil {
		return fmt.Errorf("error initializing session: %w", err)
	}
	defer host.Close()

	release, err := host.Guard(sm.Context())
	if err != nil {
		return err
	}
	defer release()

	if caps := host.Controller.Capabilities(); caps.Listen {
		terminal.Notice(fmt.Sprintf("اكتب %s للتحدث بالميكروفون.", runner.ListenWords[0]))
	}

	r := runner.NewRunner(terminal, runner.WithInput(in), runner.WithLogger(logger))
	return r.Run(sm.Context(), host.Controller)
}
