package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
)

// ContentRenderer is a function that transforms the content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// Terminal implements ports.UI on a character stream. Choice rows are printed
// as a numbered list and remembered so a typed number can select one.
type Terminal struct {
	mu       sync.Mutex
	out      *termenv.Output
	renderer ContentRenderer
	choices  []domain.Choice
	// answers marks a yes/no/other row.
	answers bool
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithRenderer configures the content renderer for bot messages.
func WithRenderer(renderer ContentRenderer) TerminalOption {
	return func(t *Terminal) {
		t.renderer = renderer
	}
}

// NewTerminal creates a Terminal writing to w (stdout if nil). Colors are
// enabled only when w is a terminal.
func NewTerminal(w io.Writer, opts ...TerminalOption) *Terminal {
	if w == nil {
		w = os.Stdout
	}
	t := &Terminal{out: termenv.NewOutput(w)}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Render implements ports.UI.
func (t *Terminal) Render(_ context.Context, msg domain.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()

	text := msg.Text
	prefix := t.out.String("أنت:").Foreground(t.out.Color("#60a5fa")).Bold()
	if msg.Speaker == domain.SpeakerBot {
		prefix = t.out.String("أبشر:").Foreground(t.out.Color("#22c55e")).Bold()
		if t.renderer != nil {
			if rendered, err := t.renderer(text); err == nil {
				text = rendered
			}
		}
	}
	fmt.Fprintf(t.out, "%s %s\n", prefix, strings.TrimSpace(text))
}

// RenderChoices implements ports.UI.
func (t *Terminal) RenderChoices(_ context.Context, prompt string, choices []domain.Choice) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.choices = slices.Clone(choices)
	t.answers = slices.ContainsFunc(choices, func(c domain.Choice) bool {
		return c.Command.Kind == domain.CommandAnswer
	})
	if prompt != "" {
		fmt.Fprintln(t.out, prompt)
	}
	format := "[%d]"
	if t.answers {
		format = "[" + ChoicePrefix + "%d]"
	}
	for i, c := range choices {
		num := t.out.String(fmt.Sprintf(format, i+1)).Faint()
		fmt.Fprintf(t.out, "  %s %s\n", num, c.Label)
	}
}

// Choice returns the n-th (1-based) choice of the last row.
func (t *Terminal) Choice(n int) (domain.Choice, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n < 1 || n > len(t.choices) {
		return domain.Choice{}, false
	}
	return t.choices[n-1], true
}

// Select maps a typed line to a choice of the last row. A leading
// ChoicePrefix always selects; a bare number selects only outside a question,
// where it would otherwise be an answer such as a duration.
func (t *Terminal) Select(line string) (domain.Choice, bool) {
	explicit := strings.HasPrefix(line, ChoicePrefix)
	n, ok := parseChoice(strings.TrimSpace(strings.TrimPrefix(line, ChoicePrefix)))
	if !ok {
		return domain.Choice{}, false
	}

	t.mu.Lock()
	answers := t.answers
	t.mu.Unlock()
	if answers && !explicit {
		return domain.Choice{}, false
	}
	return t.Choice(n)
}

// Notice prints a host-level line that is not part of the conversation.
func (t *Terminal) Notice(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, t.out.String(msg).Italic())
}
