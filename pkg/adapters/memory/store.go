package memory

import (
	"context"
	"sync"

	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/ports"
)

// TranscriptStore implements ports.TranscriptStore in memory.
// Safe for concurrent use.
type TranscriptStore struct {
	data map[string][]ports.TranscriptEntry
	mu   sync.RWMutex
}

// NewTranscriptStore creates a new in-memory transcript store.
func NewTranscriptStore() *TranscriptStore {
	return &TranscriptStore{
		data: make(map[string][]ports.TranscriptEntry),
	}
}

// Append adds an entry to the session's transcript.
func (s *TranscriptStore) Append(ctx context.Context, sessionID string, entry ports.TranscriptEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = append(s.data[sessionID], entry)
	return nil
}

// List returns a copy of the session's transcript so callers can't mutate the store.
func (s *TranscriptStore) List(ctx context.Context, sessionID string) ([]ports.TranscriptEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.data[sessionID]
	ret := make([]ports.TranscriptEntry, len(entries))
	copy(ret, entries)
	return ret, nil
}

// Sessions returns the ids of sessions with a transcript.
func (s *TranscriptStore) Sessions(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.data))
	for id := range s.data {
		sessions = append(sessions, id)
	}
	return sessions, nil
}
