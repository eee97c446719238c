// Package tests holds contract suites shared by port implementations.
package tests

import (
	"context"
	"testing"
	"time"

	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/domain"
	"github.com/Shahad-Alharbi-creater/AbsherAi/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunTranscriptStoreContract verifies that a TranscriptStore keeps append order,
// isolates sessions and returns an empty transcript for unknown sessions.
func RunTranscriptStoreContract(t *testing.T, store ports.TranscriptStore) {
	ctx := context.Background()
	sessionID := "contract-" + time.Now().Format("20060102150405.000000000")

	t.Run("Append and List", func(t *testing.T) {
		first := ports.TranscriptEntry{ID: "1", Speaker: domain.SpeakerBot, Text: "أهلاً", At: time.Now().UTC()}
		second := ports.TranscriptEntry{ID: "2", Speaker: domain.SpeakerUser, Text: "تجديد الهوية", At: time.Now().UTC()}

		require.NoError(t, store.Append(ctx, sessionID, first))
		require.NoError(t, store.Append(ctx, sessionID, second))

		entries, err := store.List(ctx, sessionID)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "1", entries[0].ID)
		assert.Equal(t, "أهلاً", entries[0].Text)
		assert.Equal(t, domain.SpeakerUser, entries[1].Speaker)
		assert.Equal(t, "تجديد الهوية", entries[1].Text)
	})

	t.Run("Unknown Session", func(t *testing.T) {
		entries, err := store.List(ctx, "missing-"+sessionID)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("Sessions Are Isolated", func(t *testing.T) {
		other := sessionID + "-other"
		require.NoError(t, store.Append(ctx, other, ports.TranscriptEntry{ID: "x", Speaker: domain.SpeakerBot, Text: "other"}))

		entries, err := store.List(ctx, sessionID)
		require.NoError(t, err)
		for _, e := range entries {
			assert.NotEqual(t, "x", e.ID)
		}
	})
}

// RunCatalogLoaderContract verifies that a CatalogLoader yields valid flows in
// the expected iteration order and that loading is repeatable.
func RunCatalogLoaderContract(t *testing.T, loader ports.CatalogLoader, wantIDs []string) {
	t.Run("Order", func(t *testing.T) {
		_, flows, err := loader.Load()
		require.NoError(t, err)

		ids := make([]string, 0, len(flows))
		for _, f := range flows {
			ids = append(ids, f.ID)
		}
		assert.Equal(t, wantIDs, ids)
	})

	t.Run("Valid Flows", func(t *testing.T) {
		_, flows, err := loader.Load()
		require.NoError(t, err)
		for _, f := range flows {
			assert.NotEmpty(t, f.DisplayName, "flow %s has a display name", f.ID)
			assert.NotNil(t, f.Output, "flow %s has an output rule", f.ID)
			for i, s := range f.Steps {
				assert.Contains(t, []domain.StepKind{domain.StepNarrate, domain.StepQuestion}, s.Kind, "flow %s step %d", f.ID, i)
				assert.NotEmpty(t, s.Text, "flow %s step %d", f.ID, i)
			}
		}
	})

	t.Run("Repeatable", func(t *testing.T) {
		s1, f1, err := loader.Load()
		require.NoError(t, err)
		s2, f2, err := loader.Load()
		require.NoError(t, err)
		assert.Equal(t, s1, s2)
		require.Len(t, f2, len(f1))
		for i := range f1 {
			assert.Equal(t, f1[i].ID, f2[i].ID)
			assert.Equal(t, f1[i].Steps, f2[i].Steps)
		}
	})
}
