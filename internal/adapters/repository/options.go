package repository

import "time"

// Option applies a configuration option to the InMemoryStore.
type Option func(*InMemoryStore)

// WithMaxSessions bounds the number of live sessions. When full, creating a
// session evicts the least recently used one.
func WithMaxSessions(n int) Option {
	return func(s *InMemoryStore) {
		if n > 0 {
			s.maxSessions = n
		}
	}
}

// WithIdleTTL expires sessions not touched for ttl. Zero disables expiry.
func WithIdleTTL(ttl time.Duration) Option {
	return func(s *InMemoryStore) {
		if ttl >= 0 {
			s.idleTTL = ttl
		}
	}
}

// WithSweepInterval sets how often idle sessions are swept.
func WithSweepInterval(interval time.Duration) Option {
	return func(s *InMemoryStore) {
		if interval > 0 {
			s.sweepInterval = interval
		}
	}
}

// WithEvictionHook registers fn to be called, outside the store lock, for
// every session the store drops on its own.
func WithEvictionHook(fn func(id, reason string)) Option {
	return func(s *InMemoryStore) {
		s.onEvict = fn
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *InMemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}
