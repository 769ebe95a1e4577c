// Package cache holds the Redis-backed feedback marker used to reject
// repeated submissions before they reach the database.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"dastarkhan/internal/core/id"
	"dastarkhan/internal/domain/feedback"
)

var _ feedback.MarkerCache = (*FeedbackMarkers)(nil)

// DefaultMarkerTTL keeps markers for a month.
const DefaultMarkerTTL = 30 * 24 * time.Hour

// FeedbackMarkers implements feedback.MarkerCache.
type FeedbackMarkers struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFeedbackMarkers creates the cache. A non-positive ttl means DefaultMarkerTTL.
func NewFeedbackMarkers(client *redis.Client, ttl time.Duration) *FeedbackMarkers {
	if ttl <= 0 {
		ttl = DefaultMarkerTTL
	}
	return &FeedbackMarkers{client: client, ttl: ttl}
}

// MarkerKey names the marker of one customer and restaurant pair.
func (c *FeedbackMarkers) MarkerKey(customerID, restaurantID id.ID) string {
	return "feedback:" + restaurantID.String() + ":" + customerID.String()
}

// Exists reports whether key is set.
func (c *FeedbackMarkers) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SetMarker stores key for the configured ttl.
func (c *FeedbackMarkers) SetMarker(ctx context.Context, key string) error {
	return c.client.Set(ctx, key, "1", c.ttl).Err()
}

// Ready implements the readiness probe used by the health handler.
func (c *FeedbackMarkers) Ready(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
