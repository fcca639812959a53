package api

import (
	"strings"
	"sync"
	"time"
)

// loginThrottle counts failed sign-ins per client address and account, so
// one visitor guessing many accounts and many visitors sharing an address
// are limited separately.
type loginThrottle struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	failures map[string][]time.Time
}

func newLoginThrottle(limit int, window time.Duration) *loginThrottle {
	return &loginThrottle{
		limit:    limit,
		window:   window,
		failures: make(map[string][]time.Time),
	}
}

func loginThrottleKey(ip string, email string) string {
	address := strings.TrimSpace(ip)
	if address == "" {
		address = "unknown"
	}
	return address + "|" + normalizeLoginEmail(email)
}

func (throttle *loginThrottle) blocked(key string, now time.Time) bool {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()
	return len(throttle.recentLocked(key, now)) >= throttle.limit
}

func (throttle *loginThrottle) fail(key string, now time.Time) {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()
	throttle.failures[key] = append(throttle.recentLocked(key, now), now)
}

func (throttle *loginThrottle) clear(key string) {
	throttle.mu.Lock()
	defer throttle.mu.Unlock()
	delete(throttle.failures, key)
}

// recentLocked drops failures older than the window. Failures are stored
// in the order they happened.
func (throttle *loginThrottle) recentLocked(key string, now time.Time) []time.Time {
	failures := throttle.failures[key]
	threshold := now.Add(-throttle.window)
	start := 0
	for start < len(failures) && !failures[start].After(threshold) {
		start++
	}
	if start == len(failures) {
		delete(throttle.failures, key)
		return nil
	}
	failures = failures[start:]
	throttle.failures[key] = failures
	return failures
}
