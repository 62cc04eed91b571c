// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/agencyos/portal/internal/http/types"
	"github.com/agencyos/portal/internal/logging"
	"github.com/agencyos/portal/internal/monitoring"
	"github.com/agencyos/portal/internal/ratelimit"
	"github.com/agencyos/portal/internal/tracing"
)

const secretHeader = "X-Webhook-Secret"

type API struct {
	service ServiceInterface
	secret  string
	limits  *ratelimit.Middleware

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(
	service ServiceInterface,
	secret string,
	limits *ratelimit.Middleware,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *API {
	return &API{
		service: service,
		secret:  secret,
		limits:  limits,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.With(a.limits.Limit(ratelimit.ClassAuth)).Post("/api/v0/webhooks/registration", a.registration)
}

func (a *API) registration(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "webhooks.API.registration")
	defer span.End()

	if subtle.ConstantTimeCompare([]byte(r.Header.Get(secretHeader)), []byte(a.secret)) != 1 {
		a.logger.Security().AuthnFailure("webhook caller")
		httptypes.WriteError(w, httptypes.NewUnauthorizedError("invalid webhook secret"))
		return
	}

	var body registrationHookBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httptypes.WriteError(w, httptypes.NewValidationError("invalid request body", nil))
		return
	}

	profile, err := a.service.HandleRegistration(ctx, body.Identity.ID, body.Identity.Traits.Email, body.Identity.Traits.Name)
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, profile)
}
