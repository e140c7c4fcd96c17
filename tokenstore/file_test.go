package tokenstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "tokens.json"))

	require.NoError(t, store.Set(ctx, "access", "token-a"))
	require.NoError(t, store.Set(ctx, "refresh", "token-r"))

	got, err := store.Get(ctx, "access")
	require.NoError(t, err)
	assert.Equal(t, "token-a", got)

	got, err = store.Get(ctx, "refresh")
	require.NoError(t, err)
	assert.Equal(t, "token-r", got)
}

func TestFileStoreMissingFile(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "does-not-exist.json"))

	got, err := store.Get(ctx, "access")
	require.NoError(t, err)
	assert.Empty(t, got)

	// Removing from a store that never hit disk is fine too.
	require.NoError(t, store.Remove(ctx, "access"))
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tokens.json")

	first := NewFileStore(path)
	require.NoError(t, first.Set(ctx, "access", "token-a"))

	second := NewFileStore(path)
	got, err := second.Get(ctx, "access")
	require.NoError(t, err)
	assert.Equal(t, "token-a", got)
}

func TestFileStoreRemove(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "tokens.json"))

	require.NoError(t, store.Set(ctx, "access", "token-a"))
	require.NoError(t, store.Remove(ctx, "access"))
	require.NoError(t, store.Remove(ctx, "access"))

	got, err := store.Get(ctx, "access")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileStoreFilePermissions(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tokens.json")
	store := NewFileStore(path)

	require.NoError(t, store.Set(ctx, "access", "token-a"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreCreatesParentDirectory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "dir", "tokens.json")
	store := NewFileStore(path)

	require.NoError(t, store.Set(ctx, "access", "token-a"))

	got, err := store.Get(ctx, "access")
	require.NoError(t, err)
	assert.Equal(t, "token-a", got)
}

func TestFileStoreCorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	store := NewFileStore(path)

	_, err := store.Get(ctx, "access")
	assert.Error(t, err)
}
