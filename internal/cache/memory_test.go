package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSetDelete(t *testing.T) {
	c := NewMemory("t")
	ctx := context.Background()

	_, err := c.Get(ctx, "missing")
	assert.True(t, IsNotFound(err))

	require.NoError(t, c.Set(ctx, "k", "v", 0))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	require.NoError(t, c.Delete(ctx, "k"))
	_, err = c.Get(ctx, "k")
	assert.True(t, IsNotFound(err))
}

func TestMemoryTTLExpires(t *testing.T) {
	c := NewMemory("")
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", 20*time.Millisecond))
	time.Sleep(40 * time.Millisecond)

	_, err := c.Get(ctx, "k")
	assert.True(t, IsNotFound(err))
}

func TestNewSelectsDriver(t *testing.T) {
	c, err := New(Config{Driver: "memory"})
	require.NoError(t, err)
	assert.NoError(t, c.Ping(context.Background()))

	c, err = New(Config{})
	require.NoError(t, err)
	assert.NotNil(t, c)

	_, err = New(Config{Driver: "bogus"})
	assert.Error(t, err)
}
