package auth

import (
	"sync"
	"time"
)

const (
	// MaxLoginFailures failed attempts inside LockoutWindow lock the
	// source address out for the remainder of the window.
	MaxLoginFailures = 5
	LockoutWindow    = 15 * time.Minute
)

type loginAttempt struct {
	count       int
	windowStart time.Time
}

// LoginLimiter tracks failed logins per remote address. The limit is
// shared across usernames from one address: coarse on purpose.
type LoginLimiter struct {
	mu       sync.Mutex
	attempts map[string]*loginAttempt
	now      func() time.Time
}

func NewLoginLimiter() *LoginLimiter {
	return &LoginLimiter{
		attempts: make(map[string]*loginAttempt),
		now:      time.Now,
	}
}

// Check reports whether the address is currently locked out and, if so,
// how long until the window elapses.
func (l *LoginLimiter) Check(addr string) (locked bool, retryAfter time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.attempts[addr]
	if !ok {
		return false, 0
	}

	elapsed := l.now().Sub(a.windowStart)
	if elapsed >= LockoutWindow {
		delete(l.attempts, addr)
		return false, 0
	}
	if a.count >= MaxLoginFailures {
		return true, LockoutWindow - elapsed
	}
	return false, 0
}

// RecordFailure counts a failed attempt, resetting the window if the
// previous one has elapsed.
func (l *LoginLimiter) RecordFailure(addr string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.attempts[addr]
	if !ok || l.now().Sub(a.windowStart) >= LockoutWindow {
		l.attempts[addr] = &loginAttempt{count: 1, windowStart: l.now()}
		return
	}
	a.count++
}

// Clear drops the address's record; called on any successful login.
func (l *LoginLimiter) Clear(addr string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, addr)
}
