package runner

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Shahad-Alharbi-creater/AbsherAi/internal/logging"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
)

// Session is the part of the session controller the Runner drives.
type Session interface {
	Open(ctx context.Context)
	SubmitUserInput(ctx context.Context, text string)
	Dispatch(ctx context.Context, cmd domain.Command) error
	Listen(ctx context.Context) error
}

// Keywords understood by the Runner itself.
var (
	ExitWords   = []string{"exit", "quit", "خروج"}
	ListenWords = []string{"/mic", "/listen", "/مايك"}
	// ChoicePrefix marks a typed number as a button press on a question row.
	ChoicePrefix = "#"
)

// Runner handles the chat loop of a session using provided IO.
type Runner struct {
	Terminal *Terminal
	Input    io.Reader
	Logger   *slog.Logger
}

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithInput configures the input stream (stdin by default).
func WithInput(r io.Reader) Option {
	return func(rn *Runner) {
		rn.Input = r
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(rn *Runner) {
		rn.Logger = logger
	}
}

// NewRunner creates a Runner bound to a Terminal, which must be the UI the
// session renders into.
func NewRunner(t *Terminal, opts ...Option) *Runner {
	r := &Runner{
		Terminal: t,
		Input:    os.Stdin,
		Logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type inputResult struct {
	text string
	err  error
}

// Run opens the session and processes input lines until EOF, an exit
// word, a signal, or ctx cancellation. A clean stop returns nil.
func (r *Runner) Run(ctx context.Context, s Session) error {
	signals := NewSignalManager(ctx)
	defer signals.Stop()
	ctx = signals.Context()

	s.Open(ctx)

	lines := r.pump(ctx)
	for {
		select {
		case <-ctx.Done():
			r.Logger.Debug("runner stopped", "reason", context.Cause(ctx))
			return nil
		case res, ok := <-lines:
			if !ok {
				return nil
			}
			if res.err != nil {
				signals.CheckRace()
				if ctx.Err() != nil {
					return nil
				}
				return res.err
			}
			if !r.handleLine(ctx, s, res.text) {
				return nil
			}
		}
	}
}

// pump reads lines in the background so that Run can honor cancellation.
func (r *Runner) pump(ctx context.Context) <-chan inputResult {
	ch := make(chan inputResult)
	reader := bufio.NewReader(r.Input)
	go func() {
		defer close(ch)
		for {
			text, err := reader.ReadString('\n')
			if text != "" {
				select {
				case ch <- inputResult{text: text}:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					return
				}
				select {
				case ch <- inputResult{err: err}:
				case <-ctx.Done():
				}
				return
			}
		}
	}()
	return ch
}

// handleLine routes one line. It returns false when the user asked to leave.
func (r *Runner) handleLine(ctx context.Context, s Session, line string) bool {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return true
	case matches(ExitWords, line):
		return false
	case matches(ListenWords, line):
		if err := s.Listen(ctx); err != nil {
			r.Logger.Debug("listen unavailable", "error", err)
		}
		return true
	}

	if choice, ok := r.Terminal.Select(line); ok {
		if err := s.Dispatch(ctx, choice.Command); err != nil {
			r.Logger.Warn("choice rejected", "label", choice.Label, "error", err)
		}
		return true
	}

	clean, err := SanitizeInput(line)
	if err != nil {
		r.Terminal.Notice("⚠️ " + err.Error())
		return true
	}
	start := time.Now()
	s.SubmitUserInput(ctx, clean)
	r.Logger.Debug("input handled", "duration", time.Since(start))
	return true
}

func matches(words []string, line string) bool {
	for _, w := range words {
		if strings.EqualFold(w, line) {
			return true
		}
	}
	return false
}

// parseChoice accepts Western and Arabic-Indic digits.
func parseChoice(s string) (int, bool) {
	if s == "" || len(s) > 8 {
		return 0, false
	}
	n := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			n = n*10 + int(r-'0')
		case r >= '٠' && r <= '٩':
			n = n*10 + int(r-'٠')
		default:
			return 0, false
		}
	}
	return n, true
}
