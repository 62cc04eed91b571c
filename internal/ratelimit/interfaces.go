// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package ratelimit

import (
	"time"
)

// Class buckets endpoints by abuse sensitivity. Each class carries its own
// per-window allowance.
type Class string

const (
	ClassRead     Class = "read"
	ClassMutation Class = "mutation"
	ClassAuth     Class = "auth"
	ClassStrict   Class = "strict"
)

// Decision is the outcome of a rate-limit check. RetryAfter is whole seconds
// until the current window resets, only meaningful when Allowed is false.
type Decision struct {
	Allowed    bool
	RetryAfter int
}

// CounterStoreInterface is the swappable counter backend. The in-memory
// implementation is process-wide and best-effort; a distributed cache can
// replace it without touching call sites.
type CounterStoreInterface interface {
	// Incr bumps the counter for key, starting a new window of the given
	// length if none is open, and returns the running count plus the window's
	// reset time.
	Incr(key string, window time.Duration) (int64, time.Time)
}

type LimiterInterface interface {
	Check(identity string, class Class) Decision
}
