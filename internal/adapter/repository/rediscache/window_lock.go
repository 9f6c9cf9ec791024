package rediscache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/srgjo27/reservation_engine/internal/core/domain"
)

const lockPrefix = "lock:"

// releaseScript deletes the key only while it still holds our owner value,
// so an expired lock re-acquired by someone else is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type WindowLock struct {
	rdb      *redis.Client
	newOwner func() string
}

func NewWindowLock(rdb *redis.Client) *WindowLock {
	return &WindowLock{rdb: rdb, newOwner: uuid.NewString}
}

func (l *WindowLock) Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	key = lockPrefix + key
	owner := l.newOwner()

	ok, err := l.rdb.SetNX(ctx, key, owner, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: lock %s is held", domain.ErrConflict, key)
	}

	release := func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.rdb, []string{key}, owner).Err(); err != nil {
			return fmt.Errorf("failed to release lock %s: %w", key, err)
		}
		return nil
	}
	return release, nil
}
