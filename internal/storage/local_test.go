package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAssignsUUIDName(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	url, err := store.Save(strings.NewReader("fake image bytes"), "banner.PNG")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))
	assert.NotContains(t, url, "banner", "original name must not be reused")

	data, err := os.ReadFile(filepath.Join(store.baseDir, filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))
}

func TestSaveRejectsUnsupportedType(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	_, err = store.Save(strings.NewReader("#!/bin/sh"), "payload.sh")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestDeleteIsIdempotent(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	url, err := store.Save(strings.NewReader("x"), "a.jpg")
	require.NoError(t, err)

	require.NoError(t, store.Delete(url))
	require.NoError(t, store.Delete(url), "second delete must not fail")
	require.NoError(t, store.Delete("/uploads/never-existed.jpg"))
}
