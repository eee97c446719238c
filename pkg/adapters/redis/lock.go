package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	backend "github.com/redis/go-redis/v9"
)

var (
	// ErrLockAcquire is returned when the lock cannot be acquired.
	ErrLockAcquire = errors.New("failed to acquire distributed lock")
)

// UnlockFunc releases a lock.
type UnlockFunc func(ctx context.Context) error

const releaseScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`

const extendScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("pexpire", KEYS[1], ARGV[2])
else
	return 0
end
`

// Locker guards a session key so that only one process writes its transcript.
type Locker struct {
	client *backend.Client
	prefix string
	poll   time.Duration
}

// NewLocker creates a new Redis locker.
func NewLocker(client *backend.Client, prefix string) *Locker {
	return &Locker{
		client: client,
		prefix: prefix,
		poll:   100 * time.Millisecond,
	}
}

func (l *Locker) lockKey(key string) string {
	return l.prefix + "lock:" + key
}

// Lock acquires a lock for key using Redis SET NX PX, polling until ctx is done.
func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error) {
	val, err := l.acquire(ctx, key, ttl)
	if err != nil {
		return nil, err
	}
	return l.unlocker(key, val), nil
}

func (l *Locker) unlocker(key, val string) UnlockFunc {
	return func(ctx context.Context) error {
		return l.client.Eval(ctx, releaseScript, []string{l.lockKey(key)}, val).Err()
	}
}

func (l *Locker) acquire(ctx context.Context, key string, ttl time.Duration) (string, error) {
	lockKey := l.lockKey(key)
	val := uuid.NewString()

	ticker := time.NewTicker(l.poll)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, lockKey, val, ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return "", fmt.Errorf("%w: %s: %v", ErrLockAcquire, key, ctx.Err())
			}
			return "", fmt.Errorf("redis error acquiring lock: %w", err)
		}
		if ok {
			return val, nil
		}

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %s: %v", ErrLockAcquire, key, ctx.Err())
		case <-ticker.C:
		}
	}
}

// Hold acquires the lock and keeps extending it every ttl/3 until the returned
// release function is called. acquireTimeout bounds the wait for the lock.
func (l *Locker) Hold(ctx context.Context, key string, ttl, acquireTimeout time.Duration) (func(), error) {
	acquireCtx, cancelAcquire := context.WithTimeout(ctx, acquireTimeout)
	defer cancelAcquire()

	val, err := l.acquire(acquireCtx, key, ttl)
	if err != nil {
		return nil, err
	}
	unlock := l.unlocker(key, val)
	lockKey := l.lockKey(key)

	holdCtx, stop := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(ttl / 3)
		defer ticker.Stop()
		for {
			select {
			case <-holdCtx.Done():
				return
			case <-ticker.C:
				l.client.Eval(holdCtx, extendScript, []string{lockKey}, val, ttl.Milliseconds())
			}
		}
	}()

	return func() {
		stop()
		<-done
		_ = unlock(context.Background())
	}, nil
}
