package cache

import (
	"context"
	"time"

	"github.com/viccon/sturdyc"
)

type MemoryConfig struct {
	Capacity           int
	NumShards          int
	EvictionPercentage int
	// Retention - как долго sturdyc держит запись. Слой кэша сам TTL не задает,
	// это собственная политика in-process бэкенда.
	Retention time.Duration
}

func DefaultMemoryConfig() MemoryConfig {
	return MemoryConfig{
		Capacity:           10000,
		NumShards:          64,
		EvictionPercentage: 10,
		Retention:          24 * time.Hour,
	}
}

// MemoryCache - кэш в памяти процесса поверх sturdyc. Подключаться некуда, поэтому ошибок нет.
type MemoryCache struct {
	client *sturdyc.Client[string]
}

func NewMemoryCache(cfg MemoryConfig) *MemoryCache {
	def := DefaultMemoryConfig()
	if cfg.Capacity <= 0 {
		cfg.Capacity = def.Capacity
	}
	if cfg.NumShards <= 0 {
		cfg.NumShards = def.NumShards
	}
	if cfg.EvictionPercentage < 1 || cfg.EvictionPercentage > 100 {
		cfg.EvictionPercentage = def.EvictionPercentage
	}
	if cfg.Retention <= 0 {
		cfg.Retention = def.Retention
	}

	return &MemoryCache{
		client: sturdyc.New[string](cfg.Capacity, cfg.NumShards, cfg.Retention, cfg.EvictionPercentage),
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, nil
	}
	val, ok := c.client.Get(key)
	return val, ok, nil
}

func (c *MemoryCache) Set(ctx context.Context, key, value string) error {
	if key == "" || value == "" {
		return nil
	}
	c.client.Set(key, value)
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	c.client.Delete(key)
	return nil
}

func (c *MemoryCache) Size() int {
	return c.client.Size()
}
