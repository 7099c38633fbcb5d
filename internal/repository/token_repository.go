package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	redisapp "github.com/zeyaddeeb/zeyaddeeb/internal/storage/redis"
)

// RedisTokenRepo keeps the ids of issued access tokens so that signing out
// can revoke them before they expire.
type RedisTokenRepo struct {
	Client *redisapp.Client
}

func NewRedisTokenRepo(client *redisapp.Client) *RedisTokenRepo {
	return &RedisTokenRepo{Client: client}
}

func (r *RedisTokenRepo) SaveToken(ctx context.Context, userID, tokenID string, exp time.Duration) error {
	return r.Client.Set(ctx, accessTokenKey(userID, tokenID), "1", exp).Err()
}

func (r *RedisTokenRepo) TokenExists(ctx context.Context, userID, tokenID string) (bool, error) {
	val, err := r.Client.Get(ctx, accessTokenKey(userID, tokenID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return val == "1", nil
}

func (r *RedisTokenRepo) DeleteToken(ctx context.Context, userID, tokenID string) error {
	return r.Client.Del(ctx, accessTokenKey(userID, tokenID)).Err()
}

func (r *RedisTokenRepo) DeleteAllUserTokens(ctx context.Context, userID string) error {
	keys, err := r.Client.Keys(ctx, accessTokenKey(userID, "*")).Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.Client.Del(ctx, keys...).Err()
}

// CacheTokenRepo is the in-process token store used when no redis address
// is configured.
type CacheTokenRepo struct {
	c *gocache.Cache
}

func NewCacheTokenRepo() *CacheTokenRepo {
	return &CacheTokenRepo{c: gocache.New(gocache.NoExpiration, 10*time.Minute)}
}

func (r *CacheTokenRepo) SaveToken(_ context.Context, userID, tokenID string, exp time.Duration) error {
	r.c.Set(accessTokenKey(userID, tokenID), struct{}{}, exp)
	return nil
}

func (r *CacheTokenRepo) TokenExists(_ context.Context, userID, tokenID string) (bool, error) {
	_, ok := r.c.Get(accessTokenKey(userID, tokenID))
	return ok, nil
}

func (r *CacheTokenRepo) DeleteToken(_ context.Context, userID, tokenID string) error {
	r.c.Delete(accessTokenKey(userID, tokenID))
	return nil
}

func (r *CacheTokenRepo) DeleteAllUserTokens(_ context.Context, userID string) error {
	prefix := accessTokenKey(userID, "")
	for key := range r.c.Items() {
		if strings.HasPrefix(key, prefix) {
			r.c.Delete(key)
		}
	}
	return nil
}

func accessTokenKey(userID, tokenID string) string {
	return "access:" + userID + ":" + tokenID
}
