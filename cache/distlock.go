package cache

import (
	"time"

	"github.com/go-redsync/redsync/v4"
	goredis "github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

// LockService hands out distributed mutexes backed by Redis. It is
// used to serialize participant first-creation across server
// instances; the database unique index remains the hard guarantee.
type LockService struct {
	rs *redsync.Redsync
}

// NewLockService creates a lock service on top of an existing client.
func NewLockService(client *redis.Client) *LockService {
	pool := goredis.NewPool(client)
	return &LockService{rs: redsync.New(pool)}
}

// AcquireLock tries to take the named lock. The caller must Unlock the
// returned mutex.
func (s *LockService) AcquireLock(name string, expiry time.Duration) (*redsync.Mutex, error) {
	mutex := s.rs.NewMutex(name,
		redsync.WithExpiry(expiry),
		redsync.WithTries(5),
		redsync.WithRetryDelay(50*time.Millisecond),
	)
	if err := mutex.Lock(); err != nil {
		return nil, err
	}
	return mutex, nil
}
