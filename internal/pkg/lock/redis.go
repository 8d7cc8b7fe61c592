package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	keyPrefix    = "gallery:lock:"
	retryBackoff = 50 * time.Millisecond
)

// release only if we still own the key
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a Locker shared between processes (API and sync worker).
// Keys expire after ttl so a crashed holder cannot block forever.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a redis-backed Locker
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Redis{client: client, ttl: ttl}
}

// Acquire polls SET NX until it wins or ctx is done
func (r *Redis) Acquire(ctx context.Context, key string) (func(), error) {
	redisKey := keyPrefix + key
	token := uuid.NewString()

	for {
		ok, err := r.client.SetNX(ctx, redisKey, token, r.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, errors.Join(ErrNotAcquired, ctx.Err())
			}
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrNotAcquired, ctx.Err())
		case <-time.After(retryBackoff):
		}
	}

	return func() {
		// release must not depend on the request context
		releaseCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, r.client, []string{redisKey}, token).Err(); err != nil && err != redis.Nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to release lock")
		}
	}, nil
}

// New picks the redis locker when a client is available
func New(client *redis.Client, ttl time.Duration) Locker {
	if client == nil {
		return NewLocal()
	}
	return NewRedis(client, ttl)
}
