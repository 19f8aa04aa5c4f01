package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const defaultConnectTimeout = 5 * time.Second

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// ConnectTimeout ограничивает первую проверку соединения, 0 означает 5s.
	ConnectTimeout time.Duration
}

// RedisCache подключается лениво: первая операция открывает соединение,
// ошибка подключения возвращается из этой операции, а не из конструктора.
// Одновременные первые вызовы ждут одну общую попытку подключения.
type RedisCache struct {
	cfg RedisConfig

	client  atomic.Pointer[redis.Client]
	connect singleflight.Group

	mu     sync.Mutex
	closed bool
}

func NewRedisCache(cfg RedisConfig) *RedisCache {
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = defaultConnectTimeout
	}
	return &RedisCache{cfg: cfg}
}

func (c *RedisCache) ensureConnected(ctx context.Context) (*redis.Client, error) {
	if client := c.client.Load(); client != nil {
		return client, nil
	}

	// попытка общая для всех ожидающих, поэтому не зависит от отмены ctx вызывающего
	ch := c.connect.DoChan("connect", func() (interface{}, error) {
		return c.dial(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: connect %s: %w", ErrCacheUnavailable, c.cfg.Addr, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*redis.Client), nil
	}
}

func (c *RedisCache) dial(ctx context.Context) (*redis.Client, error) {
	if client := c.client.Load(); client != nil {
		return client, nil
	}
	if c.isClosed() {
		return nil, fmt.Errorf("%w: cache closed", ErrCacheUnavailable)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     c.cfg.Addr,
		Password: c.cfg.Password,
		DB:       c.cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, c.cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: connect %s: %v", ErrCacheUnavailable, c.cfg.Addr, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		client.Close()
		return nil, fmt.Errorf("%w: cache closed", ErrCacheUnavailable)
	}
	c.client.Store(client)
	return client, nil
}

func (c *RedisCache) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	client, err := c.ensureConnected(ctx)
	if err != nil {
		return "", false, err
	}
	if key == "" {
		return "", false, nil
	}

	val, err := client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: get %s: %v", ErrCacheUnavailable, key, err)
	}
	return val, true, nil
}

// Set пишет без срока жизни.
func (c *RedisCache) Set(ctx context.Context, key, value string) error {
	client, err := c.ensureConnected(ctx)
	if err != nil {
		return err
	}
	if key == "" || value == "" {
		return nil
	}

	if err := client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrCacheUnavailable, key, err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	client, err := c.ensureConnected(ctx)
	if err != nil {
		return err
	}
	if key == "" {
		return nil
	}

	if err := client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: delete %s: %v", ErrCacheUnavailable, key, err)
	}
	return nil
}

// Close закрывает соединение, после него кэш недоступен.
func (c *RedisCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	client := c.client.Swap(nil)
	if client == nil {
		return nil
	}
	return client.Close()
}
