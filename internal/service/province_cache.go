package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"travel-api/internal/domain"
)

// ProvinceCache guarda lecturas de provincias; best-effort, nunca fuente de verdad.
type ProvinceCache interface {
	Get(ctx context.Context, id int64) (domain.Province, bool, error)
	Set(ctx context.Context, province domain.Province) error
	Delete(ctx context.Context, id int64) error
}

type memoryProvinceCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[int64]memoryCacheEntry
}

type memoryCacheEntry struct {
	province  domain.Province
	expiresAt time.Time
}

func NewMemoryProvinceCache(ttl time.Duration) ProvinceCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &memoryProvinceCache{
		ttl:   ttl,
		items: make(map[int64]memoryCacheEntry),
	}
}

func (c *memoryProvinceCache) Get(_ context.Context, id int64) (domain.Province, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.items[id]
	if !ok {
		return domain.Province{}, false, nil
	}
	if time.Now().UTC().After(entry.expiresAt) {
		delete(c.items, id)
		return domain.Province{}, false, nil
	}
	return entry.province, true, nil
}

func (c *memoryProvinceCache) Set(_ context.Context, province domain.Province) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[province.ID] = memoryCacheEntry{
		province:  province,
		expiresAt: time.Now().UTC().Add(c.ttl),
	}
	return nil
}

func (c *memoryProvinceCache) Delete(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, id)
	return nil
}

type redisProvinceCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisProvinceCache(client *redis.Client, ttl time.Duration) ProvinceCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &redisProvinceCache{
		client: client,
		ttl:    ttl,
		prefix: "province:",
	}
}

func (c *redisProvinceCache) Get(ctx context.Context, id int64) (domain.Province, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Province{}, false, nil
		}
		return domain.Province{}, false, err
	}
	var p domain.Province
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.Province{}, false, err
	}
	return p, true, nil
}

func (c *redisProvinceCache) Set(ctx context.Context, province domain.Province) error {
	raw, err := json.Marshal(province)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return c.client.Set(ctx, c.key(province.ID), raw, c.ttl).Err()
}

func (c *redisProvinceCache) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *redisProvinceCache) key(id int64) string {
	return c.prefix + strconv.FormatInt(id, 10)
}
