// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	KratosAdminURL  string `envconfig:"kratos_admin_url" required:"true"`
	KratosPublicURL string `envconfig:"kratos_public_url" required:"true"`

	OIDCIssuer            string   `envconfig:"oidc_issuer"`
	OIDCJWKSURL           string   `envconfig:"oidc_jwks_url"`
	JWTAllowedSubjects    []string `envconfig:"jwt_allowed_subjects"`
	JWTRequiredScope      string   `envconfig:"jwt_required_scope"`
	AuthenticationEnabled bool     `envconfig:"authentication_enabled" default:"true"`

	WebhookSecret      string   `envconfig:"webhook_secret" required:"true"`
	CORSAllowedOrigins []string `envconfig:"cors_allowed_origins" default:"*"`

	InvitationLifetime time.Duration `envconfig:"invitation_lifetime" default:"168h"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	DSN string `envconfig:"DSN" required:"true"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`

	RateLimitEnabled bool          `envconfig:"rate_limit_enabled" default:"true"`
	RateLimitWindow  time.Duration `envconfig:"rate_limit_window" default:"1m"`
}
