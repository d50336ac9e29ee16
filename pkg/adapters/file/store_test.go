package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procwise/procwise/pkg/adapters/file"
	"github.com/procwise/procwise/pkg/domain"
	"github.com/procwise/procwise/pkg/ports"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.NewStore(t.TempDir())
	ports.RunProcessStoreContract(t, store)
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	process := &domain.Process{
		ID: "expense_claim",
		Elements: []domain.Element{
			{ID: "start", Type: domain.TypeStartEvent},
			{ID: "end", Type: domain.TypeEndEvent},
			{ID: "f1", Type: domain.TypeSequenceFlow, Source: "start", Target: "end"},
		},
	}

	require.NoError(t, file.NewStore(dir).Save(ctx, "s1", process))

	// A fresh instance over the same directory sees the session.
	loaded, err := file.NewStore(dir).Load(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, loaded.Equal(process))

	// File layout: one JSON file per session.
	_, err = os.Stat(filepath.Join(dir, "s1.json"))
	assert.NoError(t, err)
}

func TestFileStore_EmptySessionID(t *testing.T) {
	store := file.NewStore(t.TempDir())
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, "", &domain.Process{ID: "p"}))
	_, err := store.Load(ctx, "")
	assert.Error(t, err)
	assert.Error(t, store.Delete(ctx, ""))
}
