// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/agencyos/portal/internal/db"
	"github.com/agencyos/portal/internal/identity"
	"github.com/agencyos/portal/internal/kratos"
	"github.com/agencyos/portal/internal/logging"
	"github.com/agencyos/portal/internal/monitoring"
	"github.com/agencyos/portal/internal/ratelimit"
	"github.com/agencyos/portal/internal/storage"
	"github.com/agencyos/portal/internal/tracing"
	"github.com/agencyos/portal/pkg/authentication"
	"github.com/agencyos/portal/pkg/companies"
	"github.com/agencyos/portal/pkg/invitations"
	"github.com/agencyos/portal/pkg/metrics"
	"github.com/agencyos/portal/pkg/notifications"
	"github.com/agencyos/portal/pkg/profiles"
	"github.com/agencyos/portal/pkg/requests"
	"github.com/agencyos/portal/pkg/status"
	"github.com/agencyos/portal/pkg/webhooks"
	"github.com/agencyos/portal/pkg/workflows"
)

func NewRouter(
	s storage.StorageInterface,
	dbClient db.DBClientInterface,
	authMiddleware *authentication.Middleware,
	kratosClient *kratos.Client,
	webhookSecret string,
	invitationLifetime time.Duration,
	limits *ratelimit.Middleware,
	allowedOrigins []string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	router.Use(
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS(allowedOrigins),
	)

	engine := workflows.NewEngine(s, tracer, monitor, logger)

	requestService := requests.NewService(s, engine, tracer, monitor, logger)
	workflowService := workflows.NewService(s, tracer, monitor, logger)
	invitationService := invitations.NewService(s, dbClient, kratosClient, invitationLifetime, tracer, monitor, logger)
	profileService := profiles.NewService(s, kratosClient, tracer, monitor, logger)
	notificationService := notifications.NewService(s, tracer, monitor, logger)
	companyService := companies.NewService(s, tracer, monitor, logger)

	invitationAPI := invitations.NewAPI(invitationService, limits, tracer, monitor, logger)

	// Unauthenticated surface: observability plus the invitation accept flow.
	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(dbClient, tracer, monitor, logger).RegisterEndpoints(router)
	invitationAPI.RegisterPublicEndpoints(router)
	webhooks.NewAPI(webhooks.NewService(s, dbClient, tracer, monitor, logger), webhookSecret, limits, tracer, monitor, logger).RegisterEndpoints(router)

	// Everything else requires a verified token and a resolved profile.
	identityMiddleware := identity.NewMiddleware(s, tracer, monitor, logger)

	authenticated := chi.NewMux()
	authenticated.Use(
		authMiddleware.Authenticate(),
		identityMiddleware.ResolvePrincipal(),
		db.TransactionMiddleware(dbClient, logger),
	)

	requests.NewAPI(requestService, limits, tracer, monitor, logger).RegisterEndpoints(authenticated)
	workflows.NewAPI(workflowService, limits, tracer, monitor, logger).RegisterEndpoints(authenticated)
	invitationAPI.RegisterEndpoints(authenticated)
	profiles.NewAPI(profileService, limits, tracer, monitor, logger).RegisterEndpoints(authenticated)
	notifications.NewAPI(notificationService, limits, tracer, monitor, logger).RegisterEndpoints(authenticated)
	companies.NewAPI(companyService, limits, tracer, monitor, logger).RegisterEndpoints(authenticated)

	router.Mount("/", authenticated)

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}

func middlewareCORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
