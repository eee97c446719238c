// Package speech narrates bot messages with an at-most-one-utterance policy.
package speech

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Shahad-Alharbi-creater/AbsherAi/internal/logging"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/ports"
)

// Narrator speaks text through a Synthesizer in the background.
// While an utterance is in flight every further request is dropped: requests
// are never queued and the running utterance is never interrupted.
type Narrator struct {
	synth  ports.Synthesizer
	logger *slog.Logger
	hooks  domain.LifecycleHooks

	busy   atomic.Bool
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// Option configures a Narrator.
type Option func(*Narrator)

// WithLogger sets the narrator logger.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Narrator) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithLifecycleHooks registers the OnSpeechDropped callback.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(n *Narrator) {
		n.hooks = hooks
	}
}

// NewNarrator creates a narrator. A nil synthesizer yields a silent narrator
// whose Available reports false.
func NewNarrator(synth ports.Synthesizer, opts ...Option) *Narrator {
	ctx, cancel := context.WithCancel(context.Background())
	n := &Narrator{
		synth:  synth,
		logger: logging.NewNop(),
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Available reports whether speech synthesis is configured.
func (n *Narrator) Available() bool {
	return n.synth != nil
}

// Busy reports whether an utterance is in flight.
func (n *Narrator) Busy() bool {
	return n.busy.Load()
}

// Say starts speaking text and returns immediately. It reports whether the
// utterance was accepted; a request made while another is in flight is dropped.
// The utterance outlives ctx; use Close to stop narration.
func (n *Narrator) Say(ctx context.Context, text string) bool {
	if n.synth == nil || text == "" {
		return false
	}
	if n.ctx.Err() != nil {
		return false
	}
	if !n.busy.CompareAndSwap(false, true) {
		n.logger.DebugContext(ctx, "utterance dropped", "text", text)
		if n.hooks.OnSpeechDropped != nil {
			n.hooks.OnSpeechDropped(ctx, &domain.InputEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSpeechDropped},
				Text:      text,
			})
		}
		return false
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer n.busy.Store(false)

		if err := n.synth.Speak(n.ctx, text); err != nil && n.ctx.Err() == nil {
			n.logger.Warn("speech synthesis failed", "error", err)
		}
	}()
	return true
}

// Wait blocks until the in-flight utterance, if any, has ended.
func (n *Narrator) Wait() {
	n.wg.Wait()
}

// Close cancels the in-flight utterance and waits for it to stop.
func (n *Narrator) Close() {
	n.cancel()
	n.wg.Wait()
}
