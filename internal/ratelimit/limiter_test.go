// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package ratelimit

import (
	"testing"
	"time"

	"github.com/agencyos/portal/internal/logging"
)

func newTestStore(now *time.Time) *InMemoryCounterStore {
	s := &InMemoryCounterStore{
		entries: make(map[string]*counterEntry),
		now:     func() time.Time { return *now },
	}
	return s
}

func TestLimiterAllowsUnderLimit(t *testing.T) {
	now := time.Now()
	l := NewLimiter(newTestStore(&now), time.Minute, logging.NewNoopLogger())

	for i := int64(0); i < defaultLimits[ClassStrict]; i++ {
		d := l.Check("user-1", ClassStrict)
		if !d.Allowed {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
}

func TestLimiterDeniesOverLimit(t *testing.T) {
	now := time.Now()
	l := NewLimiter(newTestStore(&now), time.Minute, logging.NewNoopLogger())

	for i := int64(0); i < defaultLimits[ClassAuth]; i++ {
		l.Check("user-1", ClassAuth)
	}

	d := l.Check("user-1", ClassAuth)
	if d.Allowed {
		t.Fatal("request over the limit should be denied")
	}
	if d.RetryAfter < 1 {
		t.Errorf("expected positive retry-after, got %d", d.RetryAfter)
	}
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	now := time.Now()
	l := NewLimiter(newTestStore(&now), time.Minute, logging.NewNoopLogger())

	for i := int64(0); i < defaultLimits[ClassStrict]+1; i++ {
		l.Check("user-1", ClassStrict)
	}

	if d := l.Check("user-2", ClassStrict); !d.Allowed {
		t.Error("a different identity must have its own window")
	}
	if d := l.Check("user-1", ClassRead); !d.Allowed {
		t.Error("a different class must have its own window")
	}
}

func TestCounterStoreCloseStopsSweep(t *testing.T) {
	s := NewInMemoryCounterStore()
	s.Close()
	s.Close() // idempotent

	done := make(chan struct{})
	go func() {
		s.sweep()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweep did not return after Close")
	}
}

func TestLimiterWindowResets(t *testing.T) {
	now := time.Now()
	l := NewLimiter(newTestStore(&now), time.Minute, logging.NewNoopLogger())

	for i := int64(0); i < defaultLimits[ClassStrict]; i++ {
		l.Check("user-1", ClassStrict)
	}
	if d := l.Check("user-1", ClassStrict); d.Allowed {
		t.Fatal("expected denial before window reset")
	}

	now = now.Add(2 * time.Minute)

	if d := l.Check("user-1", ClassStrict); !d.Allowed {
		t.Error("expected a fresh window after reset")
	}
}
