package transcript_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/adapters/memory"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/hub"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/ports"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/transcript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	h := hub.New()
	store := memory.NewTranscriptStore()
	rec := transcript.NewRecorder(h, store, transcript.WithSessionID("s1"))
	ctx := context.Background()

	events := h.Capture(func() {
		rec.Render(ctx, domain.Message{Speaker: domain.SpeakerBot, Text: "أهلاً"})
		rec.RenderChoices(ctx, "", []domain.Choice{{Label: "استمرار"}})
		rec.Render(ctx, domain.Message{Speaker: domain.SpeakerUser, Text: "تجديد"})
	})
	assert.Len(t, events, 3, "the wrapped UI still sees everything")

	entries, err := rec.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "أهلاً", entries[0].Text)
	assert.Equal(t, domain.SpeakerUser, entries[1].Speaker)
	assert.Equal(t, "s1", rec.SessionID())
}

type failingStore struct{}

func (failingStore) Append(context.Context, string, ports.TranscriptEntry) error {
	return errors.New("store down")
}

func (failingStore) List(context.Context, string) ([]ports.TranscriptEntry, error) {
	return nil, errors.New("store down")
}

func TestRecorder_StoreFailureDoesNotBlockUI(t *testing.T) {
	h := hub.New()
	rec := transcript.NewRecorder(h, failingStore{})
	assert.NotEmpty(t, rec.SessionID())

	events := h.Capture(func() {
		rec.Render(context.Background(), domain.Message{Speaker: domain.SpeakerBot, Text: "x"})
	})
	assert.Len(t, events, 1)
}
