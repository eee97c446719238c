package ports

import (
	"context"
	"time"

	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
)

// TranscriptEntry is one rendered chat message.
type TranscriptEntry struct {
	ID      string         `json:"id"`
	Speaker domain.Speaker `json:"speaker"`
	Text    string         `json:"text"`
	At      time.Time      `json:"at"`
}

// TranscriptStore is an append-only audit trail of a session's messages.
// It is never read back to restore session state.
type TranscriptStore interface {
	// Append adds an entry to the session's transcript.
	Append(ctx context.Context, sessionID string, entry TranscriptEntry) error

	// List returns the transcript in append order. Unknown sessions yield an empty slice.
	List(ctx context.Context, sessionID string) ([]TranscriptEntry, error)
}
