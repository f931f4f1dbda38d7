package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_InMemory(t *testing.T) {
	ctx := context.Background()
	s, err := Open(InMemoryConfig(), nil)
	require.NoError(t, err)
	defer s.Close()

	_, found, err := s.Load(ctx, "segment-store")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Save(ctx, "segment-store", []byte(`{"segments":[]}`)))
	require.NoError(t, s.Save(ctx, "segment-store", []byte(`{"segments":[{"id":"s1"}]}`)))

	got, found, err := s.Load(ctx, "segment-store")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"segments":[{"id":"s1"}]}`, string(got))
}

func TestStorage_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cfg := DefaultConfig(dir)
	cfg.GCInterval = 0

	s, err := Open(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, "ui-store", []byte(`{"theme":"dark"}`)))
	require.NoError(t, s.Close())

	reopened, err := Open(cfg, nil)
	require.NoError(t, err)
	defer reopened.Close()

	got, found, err := reopened.Load(ctx, "ui-store")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"theme":"dark"}`, string(got))
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(Config{}, nil)
	assert.Error(t, err)
}
