// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invitations

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
	"github.com/agencyos/portal/internal/types"
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

// RegisterEndpoints mounts the admin-facing invitation routes. These sit
// behind the authentication and principal middlewares.
func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.With(a.limits.Limit(ratelimit.ClassMutation)).Post("/api/v0/invitations", a.invite)
	mux.With(a.limits.Limit(ratelimit.ClassRead)).Get("/api/v0/invitations", a.list)
}

// RegisterPublicEndpoints mounts the token-based accept routes, reachable
// without a session. They carry the auth rate class.
func (a *API) RegisterPublicEndpoints(mux *chi.Mux) {
	auth := a.limits.Limit(ratelimit.ClassAuth)
	mux.With(auth).Get("/api/v0/invitations/accept", a.validateToken)
	mux.With(auth).Post("/api/v0/invitations/accept", a.accept)
}

type inviteBody struct {
	Email     string  `json:"email" validate:"required,email"`
	Role      string  `json:"role" validate:"required,oneof=admin client"`
	CompanyID *string `json:"company_id"`
}

func (a *API) invite(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "invitations.API.invite")
	defer span.End()

	principal, ok := identity.GetPrincipal(ctx)
	if !ok {
		httptypes.WriteError(w, httptypes.NewUnauthorizedError("not authenticated"))
		return
	}

	var body inviteBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httptypes.WriteError(w, httptypes.NewValidationError("invalid request body", nil))
		return
	}
	if err := validate.Struct(body); err != nil {
		httptypes.WriteError(w, httptypes.NewValidationError(err.Error(), nil))
		return
	}

	invitation, err := a.service.Invite(ctx, principal, body.Email, types.Role(body.Role), body.CompanyID)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusCreated, invitation)
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "invitations.API.list")
	defer span.End()

	principal, ok := identity.GetPrincipal(ctx)
	if !ok {
		httptypes.WriteError(w, httptypes.NewUnauthorizedError("not authenticated"))
		return
	}

	list, err := a.service.ListInvitations(ctx, principal)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, map[string]any{"invitations": list})
}

func (a *API) validateToken(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "invitations.API.validateToken")
	defer span.End()

	token := r.URL.Query().Get("token")
	if len(token) != 36 {
		httptypes.WriteError(w, httptypes.NewValidationError("token must be 36 characters", nil))
		return
	}

	validity, err := a.service.Validate(ctx, token)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, validity)
}

type acceptBody struct {
	Token    string `json:"token" validate:"required,len=36"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

func (a *API) accept(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "invitations.API.accept")
	defer span.End()

	var body acceptBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httptypes.WriteError(w, httptypes.NewValidationError("invalid request body", nil))
		return
	}
	if err := validate.Struct(body); err != nil {
		httptypes.WriteError(w, httptypes.NewValidationError(err.Error(), nil))
		return
	}

	profile, err := a.service.Accept(ctx, body.Token, body.Password)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusCreated, profile)
}
