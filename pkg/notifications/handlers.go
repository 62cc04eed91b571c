// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package notifications

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/agencyos/portal/internal/http/types"
	"github.com/agencyos/portal/internal/identity"
	"github.com/agencyos/portal/internal/logging"
	"github.com/agencyos/portal/internal/monitoring"
	"github.com/agencyos/portal/internal/ratelimit"
	"github.com/agencyos/portal/internal/tracing"
)

type API struct {
	service ServiceInterface
	limits  *ratelimit.Middleware

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(
	service ServiceInterface,
	limits *ratelimit.Middleware,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *API {
	return &API{
		service: service,
		limits:  limits,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.With(a.limits.Limit(ratelimit.ClassRead)).Get("/api/v0/notifications", a.list)
	mux.With(a.limits.Limit(ratelimit.ClassMutation)).Post("/api/v0/notifications/mark-read", a.markRead)
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "notifications.API.list")
	defer span.End()

	principal, ok := identity.GetPrincipal(ctx)
	if !ok {
		httptypes.WriteError(w, httptypes.NewUnauthorizedError("not authenticated"))
		return
	}

	notifications, err := a.service.ListNotifications(ctx, principal)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, map[string]any{"notifications": notifications})
}

type markReadBody struct {
	IDs []string `json:"ids"`
}

func (a *API) markRead(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "notifications.API.markRead")
	defer span.End()

	principal, ok := identity.GetPrincipal(ctx)
	if !ok {
		httptypes.WriteError(w, httptypes.NewUnauthorizedError("not authenticated"))
		return
	}

	var body markReadBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httptypes.WriteError(w, httptypes.NewValidationError("invalid request body", nil))
		return
	}

	updated, err := a.service.MarkRead(ctx, principal, body.IDs)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, map[string]any{"updated": updated})
}
