// Package transcript keeps an append-only audit trail of a session's messages.
package transcript

import (
	"context"
	"log/slog"
	"time"

	"github.com/Shahad-Alharbi-creater/AbsherAi/internal/logging"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/ports"
	"github.com/google/uuid"
)

// Recorder decorates a UI and appends every rendered message to a TranscriptStore.
// Store failures are logged and never interrupt the conversation.
type Recorder struct {
	next      ports.UI
	store     ports.TranscriptStore
	sessionID string
	logger    *slog.Logger
}

// Option configures the Recorder.
type Option func(*Recorder)

// WithSessionID fixes the transcript key (a random id is used otherwise).
func WithSessionID(id string) Option {
	return func(r *Recorder) {
		if id != "" {
			r.sessionID = id
		}
	}
}

// WithLogger sets the recorder logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRecorder wraps next.
func NewRecorder(next ports.UI, store ports.TranscriptStore, opts ...Option) *Recorder {
	r := &Recorder{
		next:      next,
		store:     store,
		sessionID: uuid.NewString(),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SessionID returns the transcript key.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

// Render implements ports.UI.
func (r *Recorder) Render(ctx context.Context, msg domain.Message) {
	r.next.Render(ctx, msg)

	entry := ports.TranscriptEntry{
		ID:      uuid.NewString(),
		Speaker: msg.Speaker,
		Text:    msg.Text,
		At:      time.Now().UTC(),
	}
	if err := r.store.Append(context.WithoutCancel(ctx), r.sessionID, entry); err != nil {
		r.logger.Warn("failed to append transcript entry", "session_id", r.sessionID, "error", err)
	}
}

// RenderChoices implements ports.UI. Choice rows are not part of the transcript.
func (r *Recorder) RenderChoices(ctx context.Context, prompt string, choices []domain.Choice) {
	r.next.RenderChoices(ctx, prompt, choices)
}

// Entries returns the transcript recorded so far.
func (r *Recorder) Entries(ctx context.Context) ([]ports.TranscriptEntry, error) {
	return r.store.List(ctx, r.sessionID)
}
