// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"errors"
	"net/http"

	httptypes "github.com/agencyos/portal/internal/http/types"
	"github.com/agencyos/portal/internal/logging"
	"github.com/agencyos/portal/internal/monitoring"
	"github.com/agencyos/portal/internal/storage"
	"github.com/agencyos/portal/internal/tracing"
	"github.com/agencyos/portal/internal/types"
	"github.com/agencyos/portal/pkg/authentication"
)

// Middleware resolves the authenticated user ID into a portal principal.
// It runs after authentication and before any role-guarded handler.
type Middleware struct {
	profiles ProfileStoreInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (m *Middleware) ResolvePrincipal() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "identity.Middleware.ResolvePrincipal")
			defer span.End()

			userID, ok := authentication.GetUserID(ctx)
			if !ok {
				httptypes.WriteError(w, httptypes.NewUnauthorizedError("not authenticated"))
				return
			}

			profile, err := m.profiles.GetProfileByID(ctx, userID)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					// Authenticated identity without a portal profile, e.g. an
					// invitation that was never accepted.
					m.logger.Security().AuthnFailure(userID)
					httptypes.WriteError(w, httptypes.NewUnauthorizedError("no profile for authenticated user"))
					return
				}
				m.logger.Errorf("loading profile for %s: %v", userID, err)
				httptypes.WriteError(w, httptypes.NewInternalError())
				return
			}

			principal := &types.Principal{
				UserID:    profile.ID,
				Role:      profile.Role,
				CompanyID: profile.CompanyID,
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, principal)))
		})
	}
}

// RequireAdmin rejects requests whose principal is not an agency admin.
// Must be mounted after ResolvePrincipal.
func (m *Middleware) RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := GetPrincipal(r.Context())
			if !ok {
				httptypes.WriteError(w, httptypes.NewUnauthorizedError("not authenticated"))
				return
			}
			if !principal.IsAdmin() {
				m.logger.Security().AuthzFailure(principal.UserID, "admin-only route")
				httptypes.WriteError(w, httptypes.NewForbiddenError("admin role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func NewMiddleware(profiles ProfileStoreInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		profiles: profiles,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}
