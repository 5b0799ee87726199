package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*PresenceStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewPresenceStore(rdb), mr
}

func TestMarkOnlineSetsKeyWithTTL(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.MarkOnline(ctx, 42, 10*time.Minute))
	assert.True(t, mr.Exists("user-is-online-42"))
	assert.Equal(t, 10*time.Minute, mr.TTL("user-is-online-42"))
}

func TestMarkOnlineRefreshesTTL(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.MarkOnline(ctx, 1, 10*time.Minute))
	mr.FastForward(6 * time.Minute)
	require.NoError(t, s.MarkOnline(ctx, 1, 10*time.Minute))
	assert.Equal(t, 10*time.Minute, mr.TTL("user-is-online-1"))

	mr.FastForward(9 * time.Minute)
	assert.True(t, mr.Exists("user-is-online-1"))
	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists("user-is-online-1"))
}

func TestOnline(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.MarkOnline(ctx, 2, time.Minute))

	got, err := s.Online(ctx, []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, map[int64]bool{1: false, 2: true}, got)

	empty, err := s.Online(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
