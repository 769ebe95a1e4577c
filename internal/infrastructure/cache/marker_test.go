package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dastarkhan/internal/core/id"
)

func newMarkers(t *testing.T, ttl time.Duration) (*FeedbackMarkers, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewFeedbackMarkers(client, ttl), mr
}

func TestFeedbackMarkers(t *testing.T) {
	markers, mr := newMarkers(t, time.Hour)
	ctx := context.Background()
	customer, restaurant := id.New(), id.New()
	key := markers.MarkerKey(customer, restaurant)

	seen, err := markers.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, markers.SetMarker(ctx, key))
	seen, err = markers.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, seen)
	assert.Equal(t, time.Hour, mr.TTL(key))

	mr.FastForward(time.Hour + time.Second)
	seen, err = markers.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestFeedbackMarkers_KeyPerPair(t *testing.T) {
	markers, _ := newMarkers(t, 0)
	c, r1, r2 := id.New(), id.New(), id.New()

	assert.NotEqual(t, markers.MarkerKey(c, r1), markers.MarkerKey(c, r2))
	assert.Equal(t, DefaultMarkerTTL, markers.ttl)
}

func TestFeedbackMarkers_ServerDown(t *testing.T) {
	markers, mr := newMarkers(t, time.Minute)
	mr.Close()

	_, err := markers.Exists(context.Background(), "feedback:x")
	assert.Error(t, err)
	assert.Error(t, markers.Ready(context.Background()))
}
