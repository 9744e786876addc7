package bolt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasklyst/backend/storage"
)

func TestReadWriteRemove(t *testing.T) {
	ctx := context.Background()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"), "")
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Read(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	require.NoError(t, store.Write(ctx, "k", "v"))
	value, err := store.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", value)

	require.NoError(t, store.Remove(ctx, "k"))
	_, err = store.Read(ctx, "k")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	// removing an absent key is not an error
	assert.NoError(t, store.Remove(ctx, "k"))
}

func TestValuesSurviveReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(path, "tasklyst")
	require.NoError(t, err)
	require.NoError(t, store.Write(ctx, "k", "v"))
	require.NoError(t, store.Close())

	reopened, err := Open(path, "tasklyst")
	require.NoError(t, err)
	defer reopened.Close()

	value, err := reopened.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", value)
}
