package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"medgate/internal/medadmin/models"
	id "medgate/pkg/domain"
	"medgate/pkg/platform/sentinel"
)

type KeyedLockSuite struct {
	suite.Suite
	ctx context.Context
}

func TestKeyedLockSuite(t *testing.T) {
	suite.Run(t, new(KeyedLockSuite))
}

func (s *KeyedLockSuite) SetupTest() {
	s.ctx = context.Background()
}

func newKey() models.AdministrationKey {
	return models.AdministrationKey{
		ResidentID:   id.ResidentID(uuid.New()),
		MedicationID: id.MedicationID(uuid.New()),
	}
}

func (s *KeyedLockSuite) TestSerializesSameKey() {
	l := NewKeyedLock(2 * time.Second)
	key := newKey()

	var mu sync.Mutex
	var inside, maxInside int

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := l.WithLock(s.ctx, key, func(context.Context) error {
				mu.Lock()
				inside++
				if inside > maxInside {
					maxInside = inside
				}
				mu.Unlock()

				time.Sleep(5 * time.Millisecond)

				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
			s.NoError(err)
		}()
	}
	wg.Wait()

	s.Equal(1, maxInside)
}

func (s *KeyedLockSuite) TestDistinctKeysDoNotContend() {
	l := NewKeyedLock(100 * time.Millisecond)
	first, second := newKey(), newKey()

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = l.WithLock(s.ctx, first, func(context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started
	defer close(release)

	err := l.WithLock(s.ctx, second, func(context.Context) error { return nil })
	s.NoError(err)
}

func (s *KeyedLockSuite) TestTimeoutWhileHeld() {
	l := NewKeyedLock(30 * time.Millisecond)
	key := newKey()

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = l.WithLock(s.ctx, key, func(context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started
	defer close(release)

	err := l.WithLock(s.ctx, key, func(context.Context) error {
		s.Fail("must not run while the lock is held")
		return nil
	})
	s.ErrorIs(err, sentinel.ErrLockTimeout)
}

func (s *KeyedLockSuite) TestCallerCancellationWhileWaiting() {
	l := NewKeyedLock(time.Second)
	key := newKey()

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = l.WithLock(s.ctx, key, func(context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started
	defer close(release)

	ctx, cancel := context.WithTimeout(s.ctx, 20*time.Millisecond)
	defer cancel()

	err := l.WithLock(ctx, key, func(context.Context) error { return nil })
	s.ErrorIs(err, context.DeadlineExceeded)
}

func (s *KeyedLockSuite) TestReleasedLockIsReacquirable() {
	l := NewKeyedLock(50 * time.Millisecond)
	key := newKey()

	s.Require().NoError(l.WithLock(s.ctx, key, func(context.Context) error { return nil }))
	s.NoError(l.WithLock(s.ctx, key, func(context.Context) error { return nil }))
}
