package speech

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingSynth records utterances and blocks each one until released.
type blockingSynth struct {
	mu      sync.Mutex
	spoken  []string
	started chan string
	release chan struct{}
	err     error
}

func newBlockingSynth() *blockingSynth {
	return &blockingSynth{
		started: make(chan string, 8),
		release: make(chan struct{}),
	}
}

func (s *blockingSynth) Speak(ctx context.Context, text string) error {
	s.mu.Lock()
	s.spoken = append(s.spoken, text)
	s.mu.Unlock()
	s.started <- text
	select {
	case <-s.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	return s.err
}

func (s *blockingSynth) Spoken() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.spoken...)
}

func TestNarrator_DropsWhileBusy(t *testing.T) {
	synth := newBlockingSynth()
	var dropped []string
	n := NewNarrator(synth, WithLifecycleHooks(domain.LifecycleHooks{
		OnSpeechDropped: func(ctx context.Context, e *domain.InputEvent) {
			dropped = append(dropped, e.Text)
		},
	}))
	ctx := context.Background()

	require.True(t, n.Say(ctx, "first"))
	assert.Equal(t, "first", <-synth.started)
	assert.True(t, n.Busy())

	assert.False(t, n.Say(ctx, "second"))
	assert.Equal(t, []string{"second"}, dropped)

	close(synth.release)
	n.Wait()
	assert.False(t, n.Busy())
	assert.Equal(t, []string{"first"}, synth.Spoken(), "the dropped utterance is never queued")

	require.True(t, n.Say(ctx, "third"))
	n.Wait()
	assert.Equal(t, []string{"first", "third"}, synth.Spoken())
}

func TestNarrator_OutlivesCallerContext(t *testing.T) {
	synth := newBlockingSynth()
	n := NewNarrator(synth)

	ctx, cancel := context.WithCancel(context.Background())
	require.True(t, n.Say(ctx, "long"))
	<-synth.started
	cancel()

	assert.True(t, n.Busy())
	close(synth.release)
	n.Wait()
	assert.False(t, n.Busy())
}

func TestNarrator_Close(t *testing.T) {
	synth := newBlockingSynth()
	n := NewNarrator(synth)

	require.True(t, n.Say(context.Background(), "hello"))
	<-synth.started
	n.Close()
	assert.False(t, n.Busy())
	assert.False(t, n.Say(context.Background(), "after close"))
}

func TestNarrator_FailureFreesSlot(t *testing.T) {
	synth := newBlockingSynth()
	synth.err = errors.New("no audio device")
	close(synth.release)
	n := NewNarrator(synth)

	require.True(t, n.Say(context.Background(), "one"))
	n.Wait()
	assert.True(t, n.Say(context.Background(), "two"))
	n.Wait()
}

func TestNarrator_Silent(t *testing.T) {
	n := NewNarrator(nil)
	assert.False(t, n.Available())
	assert.False(t, n.Say(context.Background(), "text"))
	n.Close()
}
