// Package lock implements the passcode lock that hides playback controls
// from the rest of the desktop while the app is locked.
package lock

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/llehouerou/nowplaying/internal/rx"
)

var (
	// ErrNoPasscode is returned by Lock when no passcode is configured.
	ErrNoPasscode = errors.New("no passcode set")
	// ErrWrongPasscode is returned by Unlock on a mismatch.
	ErrWrongPasscode = errors.New("wrong passcode")
)

// Manager tracks the lock state. It is not safe for concurrent use; run
// it on the main loop.
type Manager struct {
	passcode []byte
	autoLock time.Duration
	now      func() time.Time

	locked   *rx.Value[bool]
	lastSeen time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithAutoLock locks after d without activity. Zero disables it.
func WithAutoLock(d time.Duration) Option {
	return func(m *Manager) { m.autoLock = max(d, 0) }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// StartLocked starts in the locked state when a passcode is set.
func StartLocked() Option {
	return func(m *Manager) { m.locked.Set(len(m.passcode) > 0) }
}

// New creates a manager for passcode. An empty passcode can never lock.
func New(passcode string, opts ...Option) *Manager {
	m := &Manager{
		passcode: []byte(passcode),
		now:      time.Now,
		locked:   rx.NewValue(false),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.lastSeen = m.now()
	return m
}

func (m *Manager) Locked() bool { return m.locked.Get() }

// Changes fires only when the lock state flips.
func (m *Manager) Changes() *rx.Event[bool] { return m.locked.Changes() }

// Value exposes the current state for watchers.
func (m *Manager) Value() *rx.Value[bool] { return m.locked }

func (m *Manager) HasPasscode() bool { return len(m.passcode) > 0 }

func (m *Manager) Lock() error {
	if !m.HasPasscode() {
		return ErrNoPasscode
	}
	m.locked.Set(true)
	return nil
}

func (m *Manager) Unlock(code string) error {
	if !m.Locked() {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(code), m.passcode) != 1 {
		return ErrWrongPasscode
	}
	m.lastSeen = m.now()
	m.locked.Set(false)
	return nil
}

// Touch records user activity.
func (m *Manager) Touch() {
	m.lastSeen = m.now()
}

// CheckAutoLock locks once the idle time reaches the auto-lock duration.
// It reports whether this call locked.
func (m *Manager) CheckAutoLock() bool {
	if m.autoLock == 0 || !m.HasPasscode() || m.Locked() {
		return false
	}
	if m.now().Sub(m.lastSeen) < m.autoLock {
		return false
	}
	m.locked.Set(true)
	return true
}
