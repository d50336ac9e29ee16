package ports

import (
	"context"
	"testing"
	"time"

	"github.com/procwise/procwise/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunProcessStoreContract runs a suite of tests to verify that a ProcessStore
// implementation adheres to the defined interface contract.
func RunProcessStoreContract(t *testing.T, store ProcessStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	process := &domain.Process{
		ID: "contract_process",
		Elements: []domain.Element{
			{ID: "start_1", Name: "Request Received", Type: domain.TypeStartEvent},
			{ID: "end_1", Name: "Request Closed", Type: domain.TypeEndEvent},
			{ID: "flow_1", Type: domain.TypeSequenceFlow, Source: "start_1", Target: "end_1"},
		},
	}

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, sessionID, process)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.True(t, process.Equal(loaded), "loaded process must equal saved process")
	})

	t.Run("Load Does Not Alias Store", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, process))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded.Elements[0].Name = "mutated"

		reloaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "Request Received", reloaded.Elements[0].Name,
			"mutating a loaded process must not leak into the store")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, process))

		err := store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, process)
		_ = store.Save(ctx, id2, process)

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
