package utils

import (
	"sync"
	"time"
)

// RateLimiter enforces a minimum interval between consecutive calls. The
// geocoding service blocks clients that query faster than once per second,
// so Wait is a hard sequencing constraint, not an optimization.
type RateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	delay    time.Duration
}

// NewRateLimiter creates a RateLimiter with the given minimum delay in
// milliseconds between calls.
func NewRateLimiter(delayMs int) *RateLimiter {
	return &RateLimiter{delay: time.Duration(delayMs) * time.Millisecond}
}

// Wait blocks until at least the configured delay has passed since the
// previous call returned.
func (r *RateLimiter) Wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	elapsed := time.Since(r.lastCall)
	if elapsed < r.delay {
		time.Sleep(r.delay - elapsed)
	}
	r.lastCall = time.Now()
}

// LinkSet tracks listing links already collected in a scrape session.
type LinkSet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewLinkSet creates an empty LinkSet.
func NewLinkSet() *LinkSet {
	return &LinkSet{seen: make(map[string]struct{})}
}

// Add returns true if the link was newly added, false if already present.
func (s *LinkSet) Add(link string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seen[link]; exists {
		return false
	}
	s.seen[link] = struct{}{}
	return true
}

// Size returns the number of unique links tracked.
func (s *LinkSet) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}
