package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryArchiveStorage(t *testing.T) {
	s := NewMemoryArchiveStorage("")
	ctx := context.Background()
	data := []byte("ID,Name\n1,Widget\n")

	require.NoError(t, s.Upload(ctx, "exports/c1/inventory.csv", data, "text/csv"))
	data[0] = 'X'

	got, contentType, ok := s.Object("exports/c1/inventory.csv")
	require.True(t, ok)
	assert.Equal(t, "ID,Name\n1,Widget\n", string(got))
	assert.Equal(t, "text/csv", contentType)
	assert.Equal(t, []string{"exports/c1/inventory.csv"}, s.Keys())

	url, expiresAt, err := s.GenerateDownloadURL(ctx, "exports/c1/inventory.csv", time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "memory://archives/exports/c1/inventory.csv")
	assert.True(t, expiresAt.After(time.Now()))
}

func TestMemoryArchiveStorage_EmptyKey(t *testing.T) {
	s := NewMemoryArchiveStorage("https://files.local")

	require.ErrorIs(t, s.Upload(context.Background(), "", nil, "text/csv"), ErrEmptyKey)
	_, _, err := s.GenerateDownloadURL(context.Background(), "", time.Minute)
	require.ErrorIs(t, err, ErrEmptyKey)

	_, _, ok := s.Object("missing")
	assert.False(t, ok)
}
