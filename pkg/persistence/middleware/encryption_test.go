package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procwise/procwise/pkg/adapters/memory"
	"github.com/procwise/procwise/pkg/domain"
	"github.com/procwise/procwise/pkg/persistence/middleware"
)

func generateKey(t *testing.T) []byte {
	t.Helper()
	k := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func secretProcess() *domain.Process {
	return &domain.Process{
		ID:          "payroll_run",
		Description: "monthly payroll run",
		Elements: []domain.Element{
			{ID: "start", Type: domain.TypeStartEvent},
			{ID: "approve", Name: "Approve salaries", Type: domain.TypeUserTask},
			{ID: "end", Type: domain.TypeEndEvent},
			{ID: "f1", Type: domain.TypeSequenceFlow, Source: "start", Target: "approve"},
			{ID: "f2", Type: domain.TypeSequenceFlow, Source: "approve", Target: "end"},
		},
	}
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlying := memory.NewStore()
	key := generateKey(t)
	secureStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})(underlying)

	ctx := context.Background()
	original := secretProcess()

	require.NoError(t, secureStore.Save(ctx, "s1", original))

	// The backing store must only see the opaque envelope.
	stored, err := underlying.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "__encrypted__", stored.ID)
	assert.Empty(t, stored.Elements)
	assert.NotContains(t, stored.Description, "payroll")

	loaded, err := secureStore.Load(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, loaded.Equal(original))
}

func TestEncryptionMiddleware_WrongKeyFails(t *testing.T) {
	underlying := memory.NewStore()
	ctx := context.Background()

	writer := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlying)
	require.NoError(t, writer.Save(ctx, "s1", secretProcess()))

	reader := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlying)
	_, err := reader.Load(ctx, "s1")
	assert.Error(t, err)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlying := memory.NewStore()
	ctx := context.Background()

	oldKey := generateKey(t)
	writer := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})(underlying)
	require.NoError(t, writer.Save(ctx, "s1", secretProcess()))

	rotated := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    generateKey(t),
		FallbackKeys: [][]byte{oldKey},
	})(underlying)

	loaded, err := rotated.Load(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, loaded.Equal(secretProcess()))
}

func TestEncryptionMiddleware_RejectsPlainData(t *testing.T) {
	underlying := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, underlying.Save(ctx, "s1", secretProcess()))

	secureStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlying)
	_, err := secureStore.Load(ctx, "s1")
	assert.Error(t, err)
}

func TestEncryptionMiddleware_ShortKeyPanics(t *testing.T) {
	assert.Panics(t, func() {
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("too short")})
	})
}
