package storage_test

import (
	"errors"
	"testing"

	"storefront/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_LoadReturnsCopy(t *testing.T) {
	store := storage.NewMemoryStore(sampleProducts()...)

	loaded := store.Load()
	loaded[0].Name = "changed"

	assert.Equal(t, "Desk Lamp", store.Load()[0].Name)
}

func TestMemoryStore_FailSaves(t *testing.T) {
	store := storage.NewMemoryStore()
	store.FailSaves(errors.New("disk full"))

	err := store.Save(sampleProducts())
	var storageErr *storage.StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Contains(t, err.Error(), "disk full")
	assert.Empty(t, store.Load())

	store.FailSaves(nil)
	require.NoError(t, store.Save(sampleProducts()))
	assert.Len(t, store.Load(), 2)
}
