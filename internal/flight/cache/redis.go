// Package cache provides a Redis read-through cache for the schedule list.
// Availability is never cached; it is computed live on every read.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skyops/pss/internal/flight/domain"
	"github.com/skyops/pss/pkg/logger"
)

const schedulesKey = "pss:flight_schedules:all"

// ScheduleCache caches the full schedule list with a TTL. It is invalidated
// on every schedule upsert.
type ScheduleCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewScheduleCache(client *redis.Client, ttl time.Duration) *ScheduleCache {
	return &ScheduleCache{client: client, ttl: ttl}
}

// GetSchedules returns the cached list, or (nil, nil) on a miss
func (c *ScheduleCache) GetSchedules(ctx context.Context) ([]domain.FlightSchedule, error) {
	data, err := c.client.Get(ctx, schedulesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var schedules []domain.FlightSchedule
	if err := json.Unmarshal(data, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// SetSchedules stores the schedule list
func (c *ScheduleCache) SetSchedules(ctx context.Context, schedules []domain.FlightSchedule) error {
	data, err := json.Marshal(schedules)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, schedulesKey, data, c.ttl).Err()
}

// Invalidate drops the cached list after a schedule write
func (c *ScheduleCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, schedulesKey).Err(); err != nil {
		logger.Warn(ctx).Err(err).Msg("Failed to invalidate schedule cache")
	}
}
