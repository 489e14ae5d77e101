// File: services/booking/pending.go
package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"uprocket/config"
	"uprocket/models"

	"github.com/go-redis/redis/v8"
)

const pendingKeyPrefix = "pendingBooking:"

// PendingBookingStore holds the tentative booking between the booking call
// and the post-payment confirm. Keyed by user: the UI drives one booking
// flow at a time, so a new pre-booking replaces any stale one.
type PendingBookingStore interface {
	Save(ctx context.Context, pending models.PendingBooking) error
	Get(ctx context.Context, userUID string) (*models.PendingBooking, error)
	Delete(ctx context.Context, userUID string) error
}

// RedisPendingBookingStore implements PendingBookingStore on Redis.
type RedisPendingBookingStore struct {
	Client *redis.Client
}

// Save stores the pending booking with the configured hold TTL.
func (s *RedisPendingBookingStore) Save(ctx context.Context, pending models.PendingBooking) error {
	pending.CreatedAt = time.Now()
	data, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("failed to marshal pending booking: %w", err)
	}
	ttl := time.Duration(config.AppConfig.PendingBookingTTL) * time.Second
	if err := s.Client.Set(ctx, pendingKeyPrefix+pending.UserUID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store pending booking: %w", err)
	}
	return nil
}

// Get returns the user's pending booking, or (nil, nil) when none is held.
func (s *RedisPendingBookingStore) Get(ctx context.Context, userUID string) (*models.PendingBooking, error) {
	data, err := s.Client.Get(ctx, pendingKeyPrefix+userUID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pending booking: %w", err)
	}
	var pending models.PendingBooking
	if err := json.Unmarshal([]byte(data), &pending); err != nil {
		return nil, fmt.Errorf("failed to parse pending booking: %w", err)
	}
	return &pending, nil
}

// Delete clears the user's pending booking.
func (s *RedisPendingBookingStore) Delete(ctx context.Context, userUID string) error {
	return s.Client.Del(ctx, pendingKeyPrefix+userUID).Err()
}
