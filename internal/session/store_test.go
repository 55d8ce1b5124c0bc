package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_MissingFlagIsFalse(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session"))
	v, err := store.Get()
	require.NoError(t, err)
	assert.False(t, v)
}

func TestFileStore_SetGetRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session")
	store := NewFileStore(path)

	require.NoError(t, store.Set(true))
	v, err := store.Get()
	require.NoError(t, err)
	assert.True(t, v)

	require.NoError(t, store.Set(false))
	v, err = store.Get()
	require.NoError(t, err)
	assert.False(t, v)

	require.NoError(t, store.Remove())
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	// Removing an absent flag is fine.
	require.NoError(t, store.Remove())
}

func TestFileStore_GarbageContentIsFalse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session")
	require.NoError(t, os.WriteFile(path, []byte("yes please"), 0o600))

	store := NewFileStore(path)
	v, err := store.Get()
	require.NoError(t, err)
	assert.False(t, v)
}
