// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package requests

import (
	"encoding/json"
	"net/http"
	"time"

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

	mux.With(mutation).Post("/api/v0/requests", a.create)
	mux.With(read).Get("/api/v0/requests", a.list)
	mux.With(read).Get("/api/v0/requests/{id}", a.get)
	mux.With(mutation).Patch("/api/v0/requests/{id}", a.update)
	mux.With(mutation).Delete("/api/v0/requests/{id}", a.delete)
	mux.With(mutation).Post("/api/v0/requests/{id}/status", a.transition)
	mux.With(mutation).Post("/api/v0/requests/{id}/assign", a.assign)
	mux.With(read).Get("/api/v0/requests/{id}/activity", a.activity)
	mux.With(read).Get("/api/v0/requests/{id}/comments", a.listComments)
	mux.With(mutation).Post("/api/v0/requests/{id}/comments", a.addComment)
}

type createRequestBody struct {
	CompanyID   string     `json:"company_id"`
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high"`
	AssetsLink  string     `json:"assets_link" validate:"omitempty,url"`
	VideoBrief  string     `json:"video_brief"`
	DueDate     *time.Time `json:"due_date"`
}

func (a *API) create(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "requests.API.create")
	defer span.End()

	principal, ok := identity.GetPrincipal(ctx)
	if !ok {
		httptypes.WriteError(w, httptypes.NewUnauthorizedError("not authenticated"))
		return
	}

	var body createRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httptypes.WriteError(w, httptypes.NewValidationError("invalid request body", nil))
		return
	}
	if err := validate.Struct(body); err != nil {
		httptypes.WriteError(w, httptypes.NewValidationError(err.Error(), nil))
		return
	}

	request, err := a.service.CreateRequest(ctx, principal, &CreateRequestInput{
		CompanyID:   body.CompanyID,
		Title:       body.Title,
		Description: body.Description,
		Priority:    types.RequestPriority(body.Priority),
		AssetsLink:  body.AssetsLink,
		VideoBrief:  body.VideoBrief,
		DueDate:     body.DueDate,
	})
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusCreated, request)
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "requests.API.list")
	defer span.End()

	principal, ok := identity.GetPrincipal(ctx)
	if !ok {
		httptypes.WriteError(w, httptypes.NewUnauthorizedError("not authenticated"))
		return
	}

	filter := ListFilter{
		CompanyID: r.URL.Query().Get("company_id"),
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = types.RequestStatus(status)
		if !filter.Status.Valid() {
			httptypes.WriteError(w, httptypes.NewValidationError("invalid status filter", map[string]any{"status": status}))
			return
		}
	}

	list, err := a.service.ListRequests(ctx, principal, filter)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, map[string]any{"requests": list})
}

func (a *API) get(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "requests.API.get")
	defer span.End()

	principal, ok := identity.GetPrincipal(ctx)
	if !ok {
		httptypes.WriteError(w, httptypes.NewUnauthorizedError("not authenticated"))
		return
	}

	request, err := a.service.GetRequest(ctx, principal, chi.URLParam(r, "id"))
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, request)
}

type updateRequestBody struct {
	Title       *string    `json:"title" validate:"omitempty,max=200"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=low medium high"`
	AssetsLink  *string    `json:"assets_link"`
	VideoBrief  *string    `json:"video_brief"`
	DueDate     *time.Time `json:"due_date"`
}

func (b *updateRequestBody) fields() map[string]any {
	fields := map[string]any{}
	if b.Title != nil {
		fields["title"] = *b.Title
	}
	if b.Description != nil {
		fields["description"] = *b.Description
	}
	if b.Priority != nil {
		fields["priority"] = *b.Priority
	}
	if b.AssetsLink != nil {
		fields["assets_link"] = *b.AssetsLink
	}
	if b.VideoBrief != nil {
		fields["video_brief"] = *b.VideoBrief
	}
	if b.DueDate != nil {
		fields["due_date"] = *b.DueDate
	}
	return fields
}

func (a *API) update(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "requests.API.update")
	defer span.End()

	principal, ok := identity.GetPrincipal(ctx)
	if !ok {
		httptypes.WriteError(w, httptypes.NewUnauthorizedError("not authenticated"))
		return
	}

	var body updateRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httptypes.WriteError(w, httptypes.NewValidationError("invalid request body", nil))
		return
	}
	if err := validate.Struct(body); err != nil {
		httptypes.WriteError(w, httptypes.NewValidationError(err.Error(), nil))
		return
	}

	request, err := a.service.UpdateRequest(ctx, principal, chi.URLParam(r, "id"), body.fields())
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, request)
}

type transitionBody struct {
	Status string `json:"status" validate:"required"`
}

func (a *API) transition(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "requests.API.transition")
	defer span.End()

	principal, ok := identity.GetPrincipal(ctx)
	if !ok {
		httptypes.WriteError(w, httptypes.NewUnauthorizedError("not authenticated"))
		return
	}

	var body transitionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httptypes.WriteError(w, httptypes.NewValidationError("invalid request body", nil))
		return
	}
	if err := validate.Struct(body); err != nil {
		httptypes.WriteError(w, httptypes.NewValidationError(err.Error(), nil))
		return
	}

	request, err := a.service.Transition(ctx, principal, chi.URLParam(r, "id"), types.RequestStatus(body.Status))
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, request)
}

type assignBody struct {
	UserID *string `json:"user_id"`
}

func (a *API) assign(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "requests.API.assign")
	defer span.End()

	principal, ok := identity.GetPrincipal(ctx)
	if !ok {
		httptypes.WriteError(w, httptypes.NewUnauthorizedError("not authenticated"))
		return
	}

	var body assignBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httptypes.WriteError(w, httptypes.NewValidationError("invalid request body", nil))
		return
	}

	request, err := a.service.Assign(ctx, principal, chi.URLParam(r, "id"), body.UserID)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, request)
}

func (a *API) delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "requests.API.delete")
	defer span.End()

	principal, ok := identity.GetPrincipal(ctx)
	if !ok {
		httptypes.WriteError(w, httptypes.NewUnauthorizedError("not authenticated"))
		return
	}

	if err := a.service.DeleteRequest(ctx, principal, chi.URLParam(r, "id")); err != nil {
		httptypes.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) activity(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "requests.API.activity")
	defer span.End()

	principal, ok := identity.GetPrincipal(ctx)
	if !ok {
		httptypes.WriteError(w, httptypes.NewUnauthorizedError("not authenticated"))
		return
	}

	entries, err := a.service.ListActivity(ctx, principal, chi.URLParam(r, "id"))
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, map[string]any{"activity": entries})
}

type commentBody struct {
	Body string `json:"body" validate:"required,max=4000"`
}

func (a *API) addComment(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "requests.API.addComment")
	defer span.End()

	principal, ok := identity.GetPrincipal(ctx)
	if !ok {
		httptypes.WriteError(w, httptypes.NewUnauthorizedError("not authenticated"))
		return
	}

	var body commentBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httptypes.WriteError(w, httptypes.NewValidationError("invalid request body", nil))
		return
	}
	if err := validate.Struct(body); err != nil {
		httptypes.WriteError(w, httptypes.NewValidationError(err.Error(), nil))
		return
	}

	comment, err := a.service.AddComment(ctx, principal, chi.URLParam(r, "id"), body.Body)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusCreated, comment)
}

func (a *API) listComments(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "requests.API.listComments")
	defer span.End()

	principal, ok := identity.GetPrincipal(ctx)
	if !ok {
		httptypes.WriteError(w, httptypes.NewUnauthorizedError("not authenticated"))
		return
	}

	comments, err := a.service.ListComments(ctx, principal, chi.URLParam(r, "id"))
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, map[string]any{"comments": comments})
}
