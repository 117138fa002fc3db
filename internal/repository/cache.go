package repository

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/ivanpodgorny/cardcheck/internal/entity"
	inerr "github.com/ivanpodgorny/cardcheck/internal/errors"
	"github.com/redis/go-redis/v9"
	"time"
)

// RangeCache хранит диапазоны BIN в Redis в формате JSON, чтобы несколько
// экземпляров сервиса не запрашивали одни и те же префиксы.
type RangeCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewRangeCache(c *redis.Client, ttl time.Duration) *RangeCache {
	return &RangeCache{
		client: c,
		ttl:    ttl,
	}
}

// Get возвращает диапазоны для prefix или errors.ErrCacheMiss, если их нет в кеше.
func (c *RangeCache) Get(ctx context.Context, prefix string) ([]entity.BINRange, error) {
	b, err := c.client.Get(ctx, rangeKey(prefix)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, inerr.ErrCacheMiss
	}

	if err != nil {
		return nil, err
	}

	var ranges []entity.BINRange
	if err := json.Unmarshal(b, &ranges); err != nil {
		return nil, err
	}

	return ranges, nil
}

func (c *RangeCache) Save(ctx context.Context, prefix string, ranges []entity.BINRange) error {
	b, err := json.Marshal(ranges)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, rangeKey(prefix), b, c.ttl).Err()
}

func rangeKey(prefix string) string {
	return "bin_ranges:" + prefix
}
