package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_SaveLoad(t *testing.T) {
	ctx := context.Background()
	s := NewStorage()

	_, found, err := s.Load(ctx, "journey-store")
	require.NoError(t, err)
	assert.False(t, found)

	payload := []byte(`{"journeys":[]}`)
	require.NoError(t, s.Save(ctx, "journey-store", payload))
	payload[0] = 'X'

	got, found, err := s.Load(ctx, "journey-store")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"journeys":[]}`, string(got), "saved bytes are copied")
}

func TestStorage_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewStorage()
	assert.Error(t, s.Save(ctx, "k", []byte("v")))
	_, _, err := s.Load(ctx, "k")
	assert.Error(t, err)
}
