// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package ratelimit

import (
	"net"
	"net/http"

	httptypes "github.com/agencyos/portal/internal/http/types"
	"github.com/agencyos/portal/internal/logging"
	"github.com/agencyos/portal/pkg/authentication"
)

type Middleware struct {
	limiter LimiterInterface
	enabled bool

	logger logging.LoggerInterface
}

func NewMiddleware(limiter LimiterInterface, enabled bool, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		limiter: limiter,
		enabled: enabled,
		logger:  logger,
	}
}

// Limit returns a middleware enforcing the given class. The counter key is the
// authenticated user when available, otherwise the remote address, so
// pre-auth endpoints are still guarded.
func (m *Middleware) Limit(class Class) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !m.enabled {
				next.ServeHTTP(w, r)
				return
			}

			identity := m.identityKey(r)
			decision := m.limiter.Check(identity, class)
			if !decision.Allowed {
				m.logger.Security().RateLimitExceeded(identity, string(class))
				httptypes.WriteError(w, httptypes.NewRateLimitedError(decision.RetryAfter))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (m *Middleware) identityKey(r *http.Request) string {
	if userID, ok := authentication.GetUserID(r.Context()); ok && userID != "" {
		return userID
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
