// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"uprocket/config"

	"github.com/go-redis/redis/v8"
)

// BookingCacheClient holds booking-flow state and pending pre-bookings.
var BookingCacheClient *redis.Client

// InitBookingCache initializes the Redis client for booking-flow state
// (using DB from AppConfig).
func InitBookingCache() {
	BookingCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisBookingDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := BookingCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Booking Cache): %v", err)
	}
}

// GetBookingCacheClient returns the Redis client for booking-flow state.
func GetBookingCacheClient() *redis.Client {
	if BookingCacheClient == nil {
		InitBookingCache()
	}
	return BookingCacheClient
}
