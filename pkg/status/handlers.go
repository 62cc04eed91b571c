// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/agencyos/portal/internal/http/types"
	"github.com/agencyos/portal/internal/logging"
	"github.com/agencyos/portal/internal/monitoring"
	"github.com/agencyos/portal/internal/tracing"
	"github.com/agencyos/portal/internal/version"
)

type PingerInterface interface {
	Ping(context.Context) error
}

type API struct {
	db PingerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(
	db PingerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *API {
	return &API{
		db:      db,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/api/v0/status", a.status)
	mux.Get("/api/v0/version", a.version)
}

func (a *API) status(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "status.API.status")
	defer span.End()

	available := 1.0
	statusCode := http.StatusOK
	body := map[string]any{"status": "ok"}

	if err := a.db.Ping(ctx); err != nil {
		a.logger.Errorf("database ping failed: %v", err)
		available = 0
		statusCode = http.StatusServiceUnavailable
		body["status"] = "degraded"
	}

	tags := map[string]string{"dependency": "postgres"}
	if err := a.monitor.SetDependencyAvailability(tags, available); err != nil {
		a.logger.Errorf("failed to set dependency availability metric: %v", err)
	}

	httptypes.WriteJSON(w, statusCode, body)
}

func (a *API) version(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "status.API.version")
	defer span.End()

	httptypes.WriteJSON(w, http.StatusOK, map[string]any{"version": version.Version})
}
