package blob

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/medisys/clinical-api/pkg/errors"
)

func TestFSStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	name, err := store.Save(ctx, []byte("scan bytes"), "chest.png")
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(name))

	data, err := store.Open(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, []byte("scan bytes"), data)

	require.NoError(t, store.Delete(ctx, name))
	_, err = store.Open(ctx, name)
	assert.True(t, apperr.IsNotFound(err))
}

func TestFSStoreDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete(ctx, "never-existed.png"))
}

func TestFSStoreGeneratesUniqueNames(t *testing.T) {
	ctx := context.Background()
	store, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save(ctx, []byte("a"), "same.jpg")
	require.NoError(t, err)
	second, err := store.Save(ctx, []byte("b"), "same.jpg")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
