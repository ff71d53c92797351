package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetGet(t *testing.T) {
	c := NewMemory(10, time.Minute)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "stat")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "stat", []byte(`[{"word":"stat"}]`)))
	v, ok, err := c.Get(ctx, "stat")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"word":"stat"}]`, string(v))
}

func TestMemory_Expires(t *testing.T) {
	c := NewMemory(10, 30*time.Millisecond)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "stat", []byte("x")))

	assert.Eventually(t, func() bool {
		_, ok, _ := c.Get(ctx, "stat")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestMemory_EvictsOldest(t *testing.T) {
	c := NewMemory(2, time.Minute)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "a", []byte("1")))
	require.NoError(t, c.Set(ctx, "b", []byte("2")))
	require.NoError(t, c.Set(ctx, "c", []byte("3")))

	assert.Equal(t, 2, c.Len())
	_, ok, _ := c.Get(ctx, "a")
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, "c")
	assert.True(t, ok)
}

func TestMemory_Defaults(t *testing.T) {
	c := NewMemory(0, 0)
	require.NoError(t, c.Set(context.Background(), "k", []byte("v")))
	assert.Equal(t, 1, c.Len())
}
