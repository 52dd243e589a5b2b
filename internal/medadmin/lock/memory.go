// Package lock provides per-key mutual exclusion for administration
// attempts. The in-memory implementation serializes attempts within one
// process; the Redis implementation extends the guarantee across instances.
package lock

import (
	"context"
	"sync"
	"time"

	"medgate/internal/medadmin/models"
	"medgate/pkg/platform/sentinel"
)

// KeyedLock is an in-process lock manager. Waiters block until the holder
// releases or the wait bound elapses.
type KeyedLock struct {
	mu   sync.Mutex
	held map[string]chan struct{}
	wait time.Duration
}

// NewKeyedLock creates a lock manager with the given acquisition wait bound.
func NewKeyedLock(wait time.Duration) *KeyedLock {
	return &KeyedLock{
		held: make(map[string]chan struct{}),
		wait: wait,
	}
}

// WithLock runs fn while holding the exclusive lock for key. Returns
// sentinel.ErrLockTimeout if the lock is not acquired within the wait bound,
// or the context error if the caller cancels while waiting. Once fn starts,
// cancellation no longer interrupts it; the attempt runs to completion.
func (l *KeyedLock) WithLock(ctx context.Context, key models.AdministrationKey, fn func(ctx context.Context) error) error {
	k := key.String()

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	for {
		l.mu.Lock()
		released, taken := l.held[k]
		if !taken {
			l.held[k] = make(chan struct{})
			l.mu.Unlock()
			defer l.release(k)
			return fn(ctx)
		}
		l.mu.Unlock()

		select {
		case <-released:
			// Holder released; race for the lock again.
		case <-timer.C:
			return sentinel.ErrLockTimeout
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (l *KeyedLock) release(k string) {
	l.mu.Lock()
	released := l.held[k]
	delete(l.held, k)
	l.mu.Unlock()
	if released != nil {
		close(released)
	}
}
