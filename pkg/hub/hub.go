// Package hub turns UI effects into UIEvents and fans them out to remote hosts.
package hub

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Shahad-Alharbi-creater/AbsherAi/internal/logging"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
	"github.com/google/uuid"
)

// DefaultBuffer is the per-subscriber channel capacity.
const DefaultBuffer = 32

// Hub implements ports.UI. Every rendered message or choice row becomes a
// UIEvent that is delivered to all subscribers and to the active capture.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan domain.UIEvent]struct{}

	captureMu sync.Mutex
	recMu     sync.Mutex
	recording []domain.UIEvent
	capturing bool

	buffer int
	logger *slog.Logger
}

// Option configures the Hub.
type Option func(*Hub)

// WithLogger sets the hub logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Hub) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithBuffer sets the per-subscriber buffer size.
func WithBuffer(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.buffer = n
		}
	}
}

// New creates an empty hub.
func New(opts ...Option) *Hub {
	h := &Hub{
		subscribers: make(map[chan domain.UIEvent]struct{}),
		buffer:      DefaultBuffer,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Render implements ports.UI.
func (h *Hub) Render(_ context.Context, msg domain.Message) {
	h.publish(domain.UIEvent{
		ID:      uuid.NewString(),
		Kind:    domain.UIEventMessage,
		At:      time.Now().UTC(),
		Message: &msg,
	})
}

// RenderChoices implements ports.UI.
func (h *Hub) RenderChoices(_ context.Context, prompt string, choices []domain.Choice) {
	h.publish(domain.UIEvent{
		ID:      uuid.NewString(),
		Kind:    domain.UIEventChoices,
		At:      time.Now().UTC(),
		Prompt:  prompt,
		Choices: append([]domain.Choice(nil), choices...),
	})
}

// Subscribe registers a subscriber. The returned function unsubscribes and
// closes the channel. Slow subscribers lose events instead of blocking the session.
func (h *Hub) Subscribe() (<-chan domain.UIEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan domain.UIEvent, h.buffer)
	h.subscribers[ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers, ch)
			close(ch)
		})
	}
}

// Subscribers returns the number of active subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Capture runs fn and returns the events published while it ran.
// Captures are serialized; events published by background work (such as a
// pending listen) during a capture are included in it.
func (h *Hub) Capture(fn func()) []domain.UIEvent {
	h.captureMu.Lock()
	defer h.captureMu.Unlock()

	h.recMu.Lock()
	h.recording = nil
	h.capturing = true
	h.recMu.Unlock()

	fn()

	h.recMu.Lock()
	defer h.recMu.Unlock()
	events := h.recording
	h.recording = nil
	h.capturing = false
	if events == nil {
		events = []domain.UIEvent{}
	}
	return events
}

func (h *Hub) publish(ev domain.UIEvent) {
	h.recMu.Lock()
	if h.capturing {
		h.recording = append(h.recording, ev)
	}
	h.recMu.Unlock()

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subscribers {
		select {
		case ch <- ev:
		default:
			h.logger.Warn("hub: subscriber buffer full, dropping event", "event_id", ev.ID, "kind", ev.Kind)
		}
	}
}
