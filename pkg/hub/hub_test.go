package hub

import (
	"context"
	"testing"

	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_Capture(t *testing.T) {
	h := New()
	ctx := context.Background()

	h.Render(ctx, domain.Message{Speaker: domain.SpeakerBot, Text: "before"})

	events := h.Capture(func() {
		h.Render(ctx, domain.Message{Speaker: domain.SpeakerBot, Text: "inside"})
		h.RenderChoices(ctx, "", []domain.Choice{{Label: "استمرار", Command: domain.ContinueCommand()}})
	})

	require.Len(t, events, 2)
	assert.Equal(t, domain.UIEventMessage, events[0].Kind)
	assert.Equal(t, "inside", events[0].Message.Text)
	assert.NotEmpty(t, events[0].ID)
	assert.NotEqual(t, events[0].ID, events[1].ID)
	assert.Equal(t, domain.UIEventChoices, events[1].Kind)
	assert.Equal(t, domain.ContinueCommand(), events[1].Choices[0].Command)

	assert.Empty(t, h.Capture(func() {}))
	assert.NotNil(t, h.Capture(func() {}), "empty captures encode as []")
}

func TestHub_Subscribe(t *testing.T) {
	h := New(WithBuffer(1))
	ctx := context.Background()

	ch, cancel := h.Subscribe()
	assert.Equal(t, 1, h.Subscribers())

	h.Render(ctx, domain.Message{Text: "one"})
	h.Render(ctx, domain.Message{Text: "two"}) // dropped: buffer full

	ev := <-ch
	assert.Equal(t, "one", ev.Message.Text)
	select {
	case ev := <-ch:
		t.Fatalf("unexpected event %q", ev.Message.Text)
	default:
	}

	cancel()
	cancel()
	assert.Equal(t, 0, h.Subscribers())
	_, open := <-ch
	assert.False(t, open)
}
