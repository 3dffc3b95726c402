package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// TagCatalog marks every upstream catalog response.
const TagCatalog = "catalog"

// Store keeps serialized upstream responses. Local is used when Redis is not configured.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, data []byte, ttl time.Duration, tags ...string) error
	Invalidate(ctx context.Context, tag string) error
}

// NewStore returns a Redis store for a non-nil client and the process-wide local store otherwise.
func NewStore(client *redis.Client) Store {
	if client == nil {
		return &Local{c: GetInstance()}
	}
	return &Redis{client: client, prefix: "dashboard:"}
}

// Local is a Store over the in-process Cache.
type Local struct {
	c *Cache
}

func NewLocal(c *Cache) *Local {
	return &Local{c: c}
}

func (l *Local) Load(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := l.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	return b, true, nil
}

func (l *Local) Save(_ context.Context, key string, data []byte, ttl time.Duration, tags ...string) error {
	l.c.Set(key, data, ttl, tags)
	return nil
}

func (l *Local) Invalidate(_ context.Context, tag string) error {
	l.c.DeleteByTag(tag)
	return nil
}

// Redis is a Store backed by go-redis. Tags are kept as Redis sets of member keys.
type Redis struct {
	client *redis.Client
	prefix string
}

func (r *Redis) Load(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (r *Redis) Save(ctx context.Context, key string, data []byte, ttl time.Duration, tags ...string) error {
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.prefix+key, data, ttl)
	for _, tag := range tags {
		pipe.SAdd(ctx, r.prefix+"tag:"+tag, r.prefix+key)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (r *Redis) Invalidate(ctx context.Context, tag string) error {
	tagKey := r.prefix + "tag:" + tag
	keys, err := r.client.SMembers(ctx, tagKey).Result()
	if err != nil {
		return err
	}
	return r.client.Del(ctx, append(keys, tagKey)...).Err()
}

// Remember returns the cached value for key, calling fetch and caching its result on a miss.
// Store errors and undecodable entries are treated as misses.
func Remember[T any](ctx context.Context, s Store, key string, ttl time.Duration, tags []string, fetch func(context.Context) (T, error)) (T, error) {
	if s != nil {
		if b, ok, err := s.Load(ctx, key); err == nil && ok {
			var cached T
			if json.Unmarshal(b, &cached) == nil {
				return cached, nil
			}
		}
	}
	v, err := fetch(ctx)
	if err != nil {
		return v, err
	}
	if s != nil {
		if b, err := json.Marshal(v); err == nil {
			_ = s.Save(ctx, key, b, ttl, tags...)
		}
	}
	return v, nil
}
