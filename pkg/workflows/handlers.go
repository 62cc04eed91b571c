// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package workflows

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
	"github.com/agencyos/portal/internal/types"
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
	read := a.limits.Limit(ratelimit.ClassRead)
	mutation := a.limits.Limit(ratelimit.ClassMutation)

	mux.With(read).Get("/api/v0/workflows", a.list)
	mux.With(mutation).Post("/api/v0/workflows", a.create)
	mux.With(mutation).Patch("/api/v0/workflows/{id}", a.update)
	mux.With(mutation).Delete("/api/v0/workflows/{id}", a.delete)
}

type ruleBody struct {
	Name              *string        `json:"name"`
	TriggerType       *string        `json:"trigger_type"`
	TriggerConditions map[string]any `json:"trigger_conditions"`
	ActionType        *string        `json:"action_type"`
	ActionConfig      map[string]any `json:"action_config"`
	IsActive          *bool          `json:"is_active"`
}

func (b *ruleBody) toRule() (*types.WorkflowRule, []string) {
	rule := &types.WorkflowRule{
		TriggerConditions: b.TriggerConditions,
		ActionConfig:      b.ActionConfig,
	}
	var paths []string
	if b.Name != nil {
		rule.Name = *b.Name
		paths = append(paths, "name")
	}
	if b.TriggerType != nil {
		rule.TriggerType = *b.TriggerType
		paths = append(paths, "trigger_type")
	}
	if b.TriggerConditions != nil {
		paths = append(paths, "trigger_conditions")
	}
	if b.ActionType != nil {
		rule.ActionType = *b.ActionType
		paths = append(paths, "action_type")
	}
	if b.ActionConfig != nil {
		paths = append(paths, "action_config")
	}
	if b.IsActive != nil {
		rule.IsActive = *b.IsActive
		paths = append(paths, "is_active")
	}
	return rule, paths
}

func (a *API) create(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "workflows.API.create")
	defer span.End()

	principal, ok := identity.GetPrincipal(ctx)
	if !ok {
		httptypes.WriteError(w, httptypes.NewUnauthorizedError("not authenticated"))
		return
	}

	var body ruleBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httptypes.WriteError(w, httptypes.NewValidationError("invalid request body", nil))
		return
	}

	rule, _ := body.toRule()
	if body.IsActive == nil {
		rule.IsActive = true
	}

	created, err := a.service.CreateRule(ctx, principal, rule)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusCreated, created)
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "workflows.API.list")
	defer span.End()

	principal, ok := identity.GetPrincipal(ctx)
	if !ok {
		httptypes.WriteError(w, httptypes.NewUnauthorizedError("not authenticated"))
		return
	}

	rules, err := a.service.ListRules(ctx, principal)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, map[string]any{"workflows": rules})
}

func (a *API) update(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "workflows.API.update")
	defer span.End()

	principal, ok := identity.GetPrincipal(ctx)
	if !ok {
		httptypes.WriteError(w, httptypes.NewUnauthorizedError("not authenticated"))
		return
	}

	var body ruleBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httptypes.WriteError(w, httptypes.NewValidationError("invalid request body", nil))
		return
	}

	rule, paths := body.toRule()
	updated, err := a.service.UpdateRule(ctx, principal, chi.URLParam(r, "id"), rule, paths)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, updated)
}

func (a *API) delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "workflows.API.delete")
	defer span.End()

	principal, ok := identity.GetPrincipal(ctx)
	if !ok {
		httptypes.WriteError(w, httptypes.NewUnauthorizedError("not authenticated"))
		return
	}

	if err := a.service.DeleteRule(ctx, principal, chi.URLParam(r, "id")); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
