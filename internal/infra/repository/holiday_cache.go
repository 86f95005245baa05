package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-alarm-scheduling/internal/domain"
)

// Companion surfaces read the same keys, so the prefix carries a format
// version for coordinated migrations.
const holidayCacheKeyPrefix = "holiday_cache_v1_"

type holidayCache struct {
	client *redis.Client
}

func NewHolidayCache(client *redis.Client) domain.HolidayCache {
	return &holidayCache{
		client: client,
	}
}

func (c *holidayCache) Load(ctx context.Context, countryCode string) (map[int]map[string]string, error) {
	key := holidayCacheKeyPrefix + countryCode

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var holidays map[int]map[string]string
	if err := json.Unmarshal(data, &holidays); err != nil {
		return nil, ErrInvalidHolidayData
	}
	return holidays, nil
}

func (c *holidayCache) Save(ctx context.Context, countryCode string, holidays map[int]map[string]string) error {
	key := holidayCacheKeyPrefix + countryCode

	data, err := json.Marshal(holidays)
	if err != nil {
		return ErrInvalidHolidayData
	}
	return c.client.Set(ctx, key, data, 0).Err()
}
