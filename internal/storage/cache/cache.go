// Package cache stores small derived lists, such as the collection
// taxonomy, between requests.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	redisapp "github.com/zeyaddeeb/zeyaddeeb/internal/storage/redis"
)

const (
	KeyCollectionTypes = "collection:types"
	KeyCollectionTags  = "collection:tags"
)

type Cache interface {
	// GetStrings reports ok=false on a miss.
	GetStrings(ctx context.Context, key string) (values []string, ok bool, err error)
	SetStrings(ctx context.Context, key string, values []string) error
	Delete(ctx context.Context, keys ...string) error
}

type Redis struct {
	client *redisapp.Client
	ttl    time.Duration
}

func NewRedis(client *redisapp.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

func (c *Redis) GetStrings(ctx context.Context, key string) ([]string, bool, error) {
	const op = "cache.Redis.GetStrings"

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	return values, true, nil
}

func (c *Redis) SetStrings(ctx context.Context, key string, values []string) error {
	const op = "cache.Redis.SetStrings"

	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (c *Redis) Delete(ctx context.Context, keys ...string) error {
	const op = "cache.Redis.Delete"

	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Memory is the in-process cache used when no redis address is configured.
type Memory struct {
	c *gocache.Cache
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{c: gocache.New(ttl, 2*ttl)}
}

func (c *Memory) GetStrings(_ context.Context, key string) ([]string, bool, error) {
	v, ok := c.c.Get(key)
	if !ok {
		return nil, false, nil
	}

	values, ok := v.([]string)
	if !ok {
		return nil, false, nil
	}

	return append([]string(nil), values...), true, nil
}

func (c *Memory) SetStrings(_ context.Context, key string, values []string) error {
	c.c.SetDefault(key, append([]string(nil), values...))
	return nil
}

func (c *Memory) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		c.c.Delete(key)
	}
	return nil
}

// Nop never stores anything.
type Nop struct{}

func (Nop) GetStrings(context.Context, string) ([]string, bool, error) { return nil, false, nil }
func (Nop) SetStrings(context.Context, string, []string) error        { return nil }
func (Nop) Delete(context.Context, ...string) error                   { return nil }

var (
	_ Cache = (*Redis)(nil)
	_ Cache = (*Memory)(nil)
	_ Cache = Nop{}
)
