// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	ory "github.com/ory/client-go"

	"github.com/agencyos/portal/internal/logging"
	"github.com/agencyos/portal/internal/monitoring"
	"github.com/agencyos/portal/internal/tracing"
)

// ErrInvalidCredentials reports a failed password check, as opposed to the
// identity provider being unreachable.
var ErrInvalidCredentials = errors.New("invalid credentials")

type ClientInterface interface {
	GetIdentityIDByEmail(ctx context.Context, email string) (string, error)
	CreateIdentityWithPassword(ctx context.Context, email, fullName, password string) (string, error)
	UpdateIdentityPassword(ctx context.Context, identityID, password string) error
	VerifyPassword(ctx context.Context, email, password string) error
	DeleteIdentity(ctx context.Context, identityID string) error
}

type Client struct {
	// client talks to the admin API, public to the self-service API.
	client  *ory.APIClient
	public  *ory.APIClient
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewClient(kratosAdminURL, kratosPublicURL string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Client {
	adminConf := ory.NewConfiguration()
	adminConf.Servers = ory.ServerConfigurations{{URL: kratosAdminURL}}
	publicConf := ory.NewConfiguration()
	publicConf.Servers = ory.ServerConfigurations{{URL: kratosPublicURL}}
	return &Client{
		client:  ory.NewAPIClient(adminConf),
		public:  ory.NewAPIClient(publicConf),
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (c *Client) GetIdentityIDByEmail(ctx context.Context, email string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.GetIdentityIDByEmail")
	defer span.End()

	// NOTE: we are setting an empty page token because of https://github.com/ory/sdk/issues/461
	ids, r, err := c.client.IdentityAPI.ListIdentities(ctx).CredentialsIdentifier(email).PageToken("").Execute()
	if err != nil {
		if r != nil && r.StatusCode == http.StatusNotFound {
			return "", nil
		}
		return "", fmt.Errorf("failed to list identities: %w", err)
	}

	if len(ids) == 0 {
		return "", nil
	}

	return ids[0].Id, nil
}

// CreateIdentityWithPassword provisions a new identity carrying password
// credentials, so the user can sign in immediately after accepting an
// invitation.
func (c *Client) CreateIdentityWithPassword(ctx context.Context, email, fullName, password string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.CreateIdentityWithPassword")
	defer span.End()

	traits := map[string]interface{}{
		"email": email,
	}
	if fullName != "" {
		traits["name"] = fullName
	}

	body := ory.CreateIdentityBody{
		SchemaId: "default",
		Traits:   traits,
		Credentials: &ory.IdentityWithCredentials{
			Password: &ory.IdentityWithCredentialsPassword{
				Config: &ory.IdentityWithCredentialsPasswordConfig{
					Password: &password,
				},
			},
		},
	}

	identity, _, err := c.client.IdentityAPI.CreateIdentity(ctx).CreateIdentityBody(body).Execute()
	if err != nil {
		return "", fmt.Errorf("failed to create identity: %w", err)
	}

	return identity.Id, nil
}

// UpdateIdentityPassword replaces the password credentials on an existing
// identity. Traits and schema are carried over unchanged.
func (c *Client) UpdateIdentityPassword(ctx context.Context, identityID, password string) error {
	ctx, span := c.tracer.Start(ctx, "kratos.UpdateIdentityPassword")
	defer span.End()

	identity, _, err := c.client.IdentityAPI.GetIdentity(ctx, identityID).Execute()
	if err != nil {
		return fmt.Errorf("failed to get identity: %w", err)
	}

	state := "active"
	if identity.State != nil {
		state = *identity.State
	}

	body := ory.UpdateIdentityBody{
		SchemaId: identity.SchemaId,
		State:    state,
		Traits:   identity.Traits.(map[string]interface{}),
		Credentials: &ory.IdentityWithCredentials{
			Password: &ory.IdentityWithCredentialsPassword{
				Config: &ory.IdentityWithCredentialsPasswordConfig{
					Password: &password,
				},
			},
		},
	}

	if _, _, err := c.client.IdentityAPI.UpdateIdentity(ctx, identityID).UpdateIdentityBody(body).Execute(); err != nil {
		return fmt.Errorf("failed to update identity credentials: %w", err)
	}

	return nil
}

// VerifyPassword re-authenticates a password through a throwaway
// self-service login flow on the public API. Returns ErrInvalidCredentials
// when Kratos rejects the credentials.
func (c *Client) VerifyPassword(ctx context.Context, email, password string) error {
	ctx, span := c.tracer.Start(ctx, "kratos.VerifyPassword")
	defer span.End()

	flow, _, err := c.public.FrontendAPI.CreateNativeLoginFlow(ctx).Execute()
	if err != nil {
		return fmt.Errorf("failed to create login flow: %w", err)
	}

	body := ory.UpdateLoginFlowWithPasswordMethodAsUpdateLoginFlowBody(&ory.UpdateLoginFlowWithPasswordMethod{
		Identifier: email,
		Method:     "password",
		Password:   password,
	})

	if _, r, err := c.public.FrontendAPI.UpdateLoginFlow(ctx).Flow(flow.Id).UpdateLoginFlowBody(body).Execute(); err != nil {
		if r != nil && (r.StatusCode == http.StatusBadRequest || r.StatusCode == http.StatusUnauthorized) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to submit login flow: %w", err)
	}

	return nil
}

// DeleteIdentity removes an identity. Used to compensate when the profile
// insert that should accompany a freshly created identity is rolled back.
func (c *Client) DeleteIdentity(ctx context.Context, identityID string) error {
	ctx, span := c.tracer.Start(ctx, "kratos.DeleteIdentity")
	defer span.End()

	if _, err := c.client.IdentityAPI.DeleteIdentity(ctx, identityID).Execute(); err != nil {
		return fmt.Errorf("failed to delete identity: %w", err)
	}

	return nil
}
