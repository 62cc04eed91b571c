// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package profiles

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	httptypes "github.com/agencyos/portal/internal/http/types"
	"github.com/agencyos/portal/internal/identity"
	"github.com/agencyos/portal/internal/logging"
	"github.com/agencyos/portal/internal/monitoring"
	"github.com/agencyos/portal/internal/ratelimit"
	"github.com/agencyos/portal/internal/tracing"
)

var validate = validator.New()

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
	mux.With(a.limits.Limit(ratelimit.ClassRead)).Get("/api/v0/profile", a.get)
	mux.With(a.limits.Limit(ratelimit.ClassMutation)).Patch("/api/v0/profile", a.update)
	mux.With(a.limits.Limit(ratelimit.ClassStrict)).Post("/api/v0/profile/password", a.changePassword)
	mux.With(a.limits.Limit(ratelimit.ClassRead)).Get("/api/v0/team-members", a.teamMembers)
}

func (a *API) get(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "profiles.API.get")
	defer span.End()

	principal, ok := identity.GetPrincipal(ctx)
	if !ok {
		httptypes.WriteError(w, httptypes.NewUnauthorizedError("not authenticated"))
		return
	}

	profile, err := a.service.GetProfile(ctx, principal)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, profile)
}

type updateProfileBody struct {
	FullName string `json:"full_name" validate:"required,max=200"`
}

func (a *API) update(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "profiles.API.update")
	defer span.End()

	principal, ok := identity.GetPrincipal(ctx)
	if !ok {
		httptypes.WriteError(w, httptypes.NewUnauthorizedError("not authenticated"))
		return
	}

	var body updateProfileBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httptypes.WriteError(w, httptypes.NewValidationError("invalid request body", nil))
		return
	}
	if err := validate.Struct(body); err != nil {
		httptypes.WriteError(w, httptypes.NewValidationError(err.Error(), nil))
		return
	}

	profile, err := a.service.UpdateName(ctx, principal, body.FullName)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, profile)
}

type changePasswordBody struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

func (a *API) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "profiles.API.changePassword")
	defer span.End()

	principal, ok := identity.GetPrincipal(ctx)
	if !ok {
		httptypes.WriteError(w, httptypes.NewUnauthorizedError("not authenticated"))
		return
	}

	var body changePasswordBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httptypes.WriteError(w, httptypes.NewValidationError("invalid request body", nil))
		return
	}
	if err := validate.Struct(body); err != nil {
		httptypes.WriteError(w, httptypes.NewValidationError(err.Error(), nil))
		return
	}

	if err := a.service.ChangePassword(ctx, principal, body.CurrentPassword, body.NewPassword); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) teamMembers(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "profiles.API.teamMembers")
	defer span.End()

	principal, ok := identity.GetPrincipal(ctx)
	if !ok {
		httptypes.WriteError(w, httptypes.NewUnauthorizedError("not authenticated"))
		return
	}

	members, err := a.service.ListTeamMembers(ctx, principal)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, map[string]any{"team_members": members})
}
