package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"medgate/internal/medadmin/models"
	"medgate/pkg/platform/sentinel"
)

// releaseScript deletes the lock only if this process still owns it, so a
// slow holder cannot release a lock that already expired and was re-acquired
// by someone else.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLock serializes attempts across service instances using SET NX with a
// TTL. The TTL guards against a crashed holder wedging the key.
type RedisLock struct {
	client *redis.Client
	wait   time.Duration
	ttl    time.Duration
	// poll is the retry interval while waiting for a held lock.
	poll time.Duration
}

// NewRedisLock creates a distributed lock manager.
func NewRedisLock(client *redis.Client, wait, ttl time.Duration) *RedisLock {
	return &RedisLock{
		client: client,
		wait:   wait,
		ttl:    ttl,
		poll:   50 * time.Millisecond,
	}
}

// WithLock runs fn while holding the distributed lock for key. Returns
// sentinel.ErrLockTimeout when the lock is not acquired within the wait
// bound. Once fn starts, the lock is held until fn returns (or the TTL
// expires after a crash).
func (l *RedisLock) WithLock(ctx context.Context, key models.AdministrationKey, fn func(ctx context.Context) error) error {
	k := key.String()
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, k, token, l.ttl).Result()
		if err != nil {
			return fmt.Errorf("acquire administration lock: %w", err)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return sentinel.ErrLockTimeout
		}
		select {
		case <-time.After(l.poll):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	defer func() {
		// Release must not be cut short by caller cancellation.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, l.client, []string{k}, token).Err()
	}()

	return fn(ctx)
}
