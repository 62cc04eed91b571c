// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package ratelimit

import (
	"math"
	"sync"
	"time"

	"github.com/agencyos/portal/internal/logging"
)

// Default per-window allowances.
var defaultLimits = map[Class]int64{
	ClassRead:     120,
	ClassMutation: 30,
	ClassAuth:     10,
	ClassStrict:   5,
}

var _ LimiterInterface = (*Limiter)(nil)

type Limiter struct {
	store  CounterStoreInterface
	window time.Duration
	limits map[Class]int64

	logger logging.LoggerInterface
}

func NewLimiter(store CounterStoreInterface, window time.Duration, logger logging.LoggerInterface) *Limiter {
	if window <= 0 {
		window = time.Minute
	}

	return &Limiter{
		store:  store,
		window: window,
		limits: defaultLimits,
		logger: logger,
	}
}

func (l *Limiter) Check(identity string, class Class) Decision {
	limit, ok := l.limits[class]
	if !ok {
		limit = defaultLimits[ClassMutation]
	}

	count, reset := l.store.Incr(identity+":"+string(class), l.window)
	if count <= limit {
		return Decision{Allowed: true}
	}

	retry := int(math.Ceil(time.Until(reset).Seconds()))
	if retry < 1 {
		retry = 1
	}

	return Decision{Allowed: false, RetryAfter: retry}
}

type counterEntry struct {
	count int64
	reset time.Time
}

var _ CounterStoreInterface = (*InMemoryCounterStore)(nil)

// InMemoryCounterStore is a fixed-window counter map. Counters are reclaimed
// lazily on access and by a periodic sweep so the map stays bounded under
// churning identities.
type InMemoryCounterStore struct {
	mu      sync.Mutex
	entries map[string]*counterEntry

	now       func() time.Time
	stop      chan struct{}
	closeOnce sync.Once
}

func NewInMemoryCounterStore() *InMemoryCounterStore {
	s := &InMemoryCounterStore{
		entries: make(map[string]*counterEntry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}

	go s.sweep()

	return s
}

// Close stops the background sweep goroutine. Safe to call more than once.
func (s *InMemoryCounterStore) Close() {
	s.closeOnce.Do(func() {
		close(s.stop)
	})
}

func (s *InMemoryCounterStore) Incr(key string, window time.Duration) (int64, time.Time) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || now.After(e.reset) {
		e = &counterEntry{reset: now.Add(window)}
		s.entries[key] = e
	}

	e.count++
	return e.count, e.reset
}

func (s *InMemoryCounterStore) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			now := s.now()
			s.mu.Lock()
			for key, e := range s.entries {
				if now.After(e.reset) {
					delete(s.entries, key)
				}
			}
			s.mu.Unlock()
		}
	}
}
