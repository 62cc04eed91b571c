// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package companies

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

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	read := a.limits.Limit(ratelimit.ClassRead)
	mutation := a.limits.Limit(ratelimit.ClassMutation)

	mux.With(read).Get("/api/v0/subscription", a.subscription)
	mux.With(read).Get("/api/v0/companies", a.list)
	mux.With(mutation).Post("/api/v0/companies", a.create)
	mux.With(mutation).Patch("/api/v0/companies/{id}", a.update)
}

func (a *API) subscription(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "companies.API.subscription")
	defer span.End()

	principal, ok := identity.GetPrincipal(ctx)
	if !ok {
		httptypes.WriteError(w, httptypes.NewUnauthorizedError("not authenticated"))
		return
	}

	subscription, err := a.service.GetSubscription(ctx, principal)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, subscription)
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "companies.API.list")
	defer span.End()

	principal, ok := identity.GetPrincipal(ctx)
	if !ok {
		httptypes.WriteError(w, httptypes.NewUnauthorizedError("not authenticated"))
		return
	}

	companies, err := a.service.ListCompanies(ctx, principal)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, map[string]any{"companies": companies})
}

type createCompanyBody struct {
	Name           string `json:"name" validate:"required,max=200"`
	Plan           string `json:"plan" validate:"omitempty,max=100"`
	MaxActiveLimit int    `json:"max_active_limit" validate:"required,min=1"`
}

func (a *API) create(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "companies.API.create")
	defer span.End()

	principal, ok := identity.GetPrincipal(ctx)
	if !ok {
		httptypes.WriteError(w, httptypes.NewUnauthorizedError("not authenticated"))
		return
	}

	var body createCompanyBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httptypes.WriteError(w, httptypes.NewValidationError("invalid request body", nil))
		return
	}
	if err := validate.Struct(body); err != nil {
		httptypes.WriteError(w, httptypes.NewValidationError(err.Error(), nil))
		return
	}

	company, err := a.service.CreateCompany(ctx, principal, CreateCompanyInput{
		Name:           body.Name,
		Plan:           body.Plan,
		MaxActiveLimit: body.MaxActiveLimit,
	})
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusCreated, company)
}

type updateCompanyBody struct {
	Name           *string `json:"name"`
	Plan           *string `json:"plan"`
	MaxActiveLimit *int    `json:"max_active_limit"`
	Active         *bool   `json:"active"`
}

func (b updateCompanyBody) toCompany() (*types.Company, []string) {
	company := &types.Company{}
	var paths []string
	if b.Name != nil {
		company.Name = *b.Name
		paths = append(paths, "name")
	}
	if b.Plan != nil {
		company.Plan = *b.Plan
		paths = append(paths, "plan")
	}
	if b.MaxActiveLimit != nil {
		company.MaxActiveLimit = *b.MaxActiveLimit
		paths = append(paths, "max_active_limit")
	}
	if b.Active != nil {
		company.Active = *b.Active
		paths = append(paths, "active")
	}
	return company, paths
}

func (a *API) update(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "companies.API.update")
	defer span.End()

	principal, ok := identity.GetPrincipal(ctx)
	if !ok {
		httptypes.WriteError(w, httptypes.NewUnauthorizedError("not authenticated"))
		return
	}

	var body updateCompanyBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httptypes.WriteError(w, httptypes.NewValidationError("invalid request body", nil))
		return
	}

	company, paths := body.toCompany()
	updated, err := a.service.UpdateCompany(ctx, principal, chi.URLParam(r, "id"), company, paths)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, updated)
}
