// File: services/booking/store.go
package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"uprocket/models"

	"github.com/go-redis/redis/v8"
)

const flowKeyPrefix = "bookingFlow:"

// flowTTL bounds how long an abandoned booking attempt lingers.
const flowTTL = 30 * time.Minute

// SchedulerStore is the bridge onto the scheduler's state: the selected
// timeslot and booking info are written through here, and the booking call
// reads them back. Write/read ordering is the orchestrator's job; the store
// itself does no validation.
type SchedulerStore interface {
	Put(ctx context.Context, flow models.BookingFlow) error
	Get(ctx context.Context, flowID string) (*models.BookingFlow, error)
	Delete(ctx context.Context, flowID string) error
}

// RedisSchedulerStore implements SchedulerStore on Redis, one JSON blob per
// booking flow with a TTL.
type RedisSchedulerStore struct {
	Client *redis.Client
}

// Put stores the full flow state, stamping the write time.
func (s *RedisSchedulerStore) Put(ctx context.Context, flow models.BookingFlow) error {
	flow.UpdatedAt = time.Now()
	data, err := json.Marshal(flow)
	if err != nil {
		return fmt.Errorf("failed to marshal booking flow: %w", err)
	}
	if err := s.Client.Set(ctx, flowKeyPrefix+flow.FlowID, data, flowTTL).Err(); err != nil {
		return fmt.Errorf("failed to store booking flow: %w", err)
	}
	return nil
}

// Get reads the flow state back, or (nil, nil) when it expired.
func (s *RedisSchedulerStore) Get(ctx context.Context, flowID string) (*models.BookingFlow, error) {
	data, err := s.Client.Get(ctx, flowKeyPrefix+flowID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read booking flow: %w", err)
	}
	var flow models.BookingFlow
	if err := json.Unmarshal([]byte(data), &flow); err != nil {
		return nil, fmt.Errorf("failed to parse booking flow: %w", err)
	}
	return &flow, nil
}

// Delete discards the flow state.
func (s *RedisSchedulerStore) Delete(ctx context.Context, flowID string) error {
	return s.Client.Del(ctx, flowKeyPrefix+flowID).Err()
}
