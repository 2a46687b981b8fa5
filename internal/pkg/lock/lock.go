// Package lock provides per-player locking so that one player's
// load-resolve-save sequence never interleaves with another request for the
// same player.
package lock

import (
	"context"
	"sync"
	"time"
)

// PlayerLock hands out one mutex per player ID.
// Mutexes are created on first use and kept for the life of the process.
type PlayerLock struct {
	locks sync.Map // map[int64]*sync.Mutex
}

// NewPlayerLock creates a new PlayerLock.
func NewPlayerLock() *PlayerLock {
	return &PlayerLock{}
}

func (pl *PlayerLock) get(playerID int64) *sync.Mutex {
	if v, ok := pl.locks.Load(playerID); ok {
		return v.(*sync.Mutex)
	}
	actual, _ := pl.locks.LoadOrStore(playerID, &sync.Mutex{})
	return actual.(*sync.Mutex)
}

// Lock blocks until the player's lock is held.
func (pl *PlayerLock) Lock(playerID int64) {
	pl.get(playerID).Lock()
}

// Unlock releases the player's lock.
func (pl *PlayerLock) Unlock(playerID int64) {
	if v, ok := pl.locks.Load(playerID); ok {
		v.(*sync.Mutex).Unlock()
	}
}

// TryLock acquires the player's lock without blocking and reports success.
func (pl *PlayerLock) TryLock(playerID int64) bool {
	return pl.get(playerID).TryLock()
}

// LockWithTimeout waits up to timeout (or until ctx is done) for the lock.
// It reports whether the lock is now held by the caller.
func (pl *PlayerLock) LockWithTimeout(ctx context.Context, playerID int64, timeout time.Duration) bool {
	mu := pl.get(playerID)

	acquired := make(chan struct{})
	go func() {
		mu.Lock()
		close(acquired)
	}()

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	select {
	case <-acquired:
		return true
	case <-timeoutCtx.Done():
		// The waiter still gets the lock eventually; hand it straight back.
		go func() {
			<-acquired
			mu.Unlock()
		}()
		return false
	}
}

// WithLock runs fn while holding the player's lock.
func (pl *PlayerLock) WithLock(playerID int64, fn func() error) error {
	pl.Lock(playerID)
	defer pl.Unlock(playerID)
	return fn()
}

// WithLockContext runs fn while holding the player's lock, giving up with
// ErrLockTimeout if the lock is not acquired within timeout.
func (pl *PlayerLock) WithLockContext(ctx context.Context, playerID int64, timeout time.Duration, fn func() error) error {
	if !pl.LockWithTimeout(ctx, playerID, timeout) {
		if err := ctx.Err(); err != nil {
			return err
		}
		return ErrLockTimeout
	}
	defer pl.Unlock(playerID)

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn()
}

// IsLocked reports whether the player's lock is currently held.
// The answer may be stale as soon as it is returned.
func (pl *PlayerLock) IsLocked(playerID int64) bool {
	v, ok := pl.locks.Load(playerID)
	if !ok {
		return false
	}
	mu := v.(*sync.Mutex)
	if mu.TryLock() {
		mu.Unlock()
		return false
	}
	return true
}
