package sync

import (
	"errors"
	"sync/atomic"
)

var (
	// ErrRunActive indicates another reconciliation run holds the lock.
	ErrRunActive = errors.New("sync run already active")
	// ErrNoRunToken indicates the engine was invoked without a held token.
	ErrNoRunToken = errors.New("run token required")
)

// RunLock enforces the at-most-one-active-run rule. The scheduler (cron
// command or HTTP trigger) owns acquisition; the engine only checks that a
// token is held.
type RunLock struct {
	active atomic.Bool
}

// NewRunLock creates a released run lock.
func NewRunLock() *RunLock {
	return &RunLock{}
}

// TryAcquire attempts to take the lock without blocking. The boolean reports
// success; on failure the token is nil.
func (l *RunLock) TryAcquire() (*RunToken, bool) {
	if !l.active.CompareAndSwap(false, true) {
		return nil, false
	}
	return &RunToken{lock: l}, true
}

// RunToken is the explicit proof that a reconciliation run holds the lock.
type RunToken struct {
	lock     *RunLock
	released atomic.Bool
}

// Release returns the lock. Releasing twice is a no-op.
func (t *RunToken) Release() {
	if t == nil || !t.released.CompareAndSwap(false, true) {
		return
	}
	t.lock.active.Store(false)
}

// Held reports whether the token still holds the lock.
func (t *RunToken) Held() bool {
	return t != nil && !t.released.Load()
}
