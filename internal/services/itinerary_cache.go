package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/apraveen001/Travel-Agency-System/internal/models"
	"github.com/redis/go-redis/v9"
)

// ItineraryCache stores aggregated itineraries per passenger
type ItineraryCache interface {
	Get(ctx context.Context, passengerID int64) (*models.PassengerItinerary, bool, error)
	Set(ctx context.Context, itinerary *models.PassengerItinerary, ttl time.Duration) error
	Delete(ctx context.Context, passengerIDs ...int64) error
}

// RedisItineraryCache keeps itineraries as JSON values in Redis
type RedisItineraryCache struct {
	client *redis.Client
}

// NewRedisItineraryCache creates a Redis backed itinerary cache
func NewRedisItineraryCache(client *redis.Client) *RedisItineraryCache {
	return &RedisItineraryCache{client: client}
}

func itineraryKey(passengerID int64) string {
	return fmt.Sprintf("itinerary:passenger:%d", passengerID)
}

// Get returns the cached itinerary. A missing key is a miss, not an error.
func (c *RedisItineraryCache) Get(ctx context.Context, passengerID int64) (*models.PassengerItinerary, bool, error) {
	val, err := c.client.Get(ctx, itineraryKey(passengerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached itinerary: %w", err)
	}

	var itinerary models.PassengerItinerary
	if err := json.Unmarshal(val, &itinerary); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached itinerary: %w", err)
	}

	return &itinerary, true, nil
}

// Set stores an itinerary under its passenger id
func (c *RedisItineraryCache) Set(ctx context.Context, itinerary *models.PassengerItinerary, ttl time.Duration) error {
	data, err := json.Marshal(itinerary)
	if err != nil {
		return fmt.Errorf("failed to encode itinerary: %w", err)
	}

	if err := c.client.Set(ctx, itineraryKey(itinerary.Passenger.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache itinerary: %w", err)
	}

	return nil
}

// Delete drops the cached itineraries of the given passengers
func (c *RedisItineraryCache) Delete(ctx context.Context, passengerIDs ...int64) error {
	if len(passengerIDs) == 0 {
		return nil
	}

	keys := make([]string, len(passengerIDs))
	for i, id := range passengerIDs {
		keys[i] = itineraryKey(id)
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate itineraries: %w", err)
	}

	return nil
}
