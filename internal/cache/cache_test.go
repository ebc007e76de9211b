package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestClient_Ping(t *testing.T) {
	c, _ := newTestClient(t)
	assert.NoError(t, c.Ping(context.Background()))
}

func TestClient_SetAndTake(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	assert.True(t, mr.Exists("k"))
	assert.Equal(t, time.Minute, mr.TTL("k"))

	got, err := c.Take(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
	assert.False(t, mr.Exists("k"), "take removes the key")

	_, err = c.Take(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestClient_TakeExpired(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Second))
	mr.FastForward(2 * time.Second)

	_, err := c.Take(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestClient_ServerDown(t *testing.T) {
	c, mr := newTestClient(t)
	mr.Close()

	_, err := c.Take(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
}
