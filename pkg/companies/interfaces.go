// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package companies

import (
	"context"

	"github.com/agencyos/portal/internal/types"
)

type StorageInterface interface {
	CreateCompany(ctx context.Context, c *types.Company) (*types.Company, error)
	GetCompanyByID(ctx context.Context, id string) (*types.Company, error)
	ListCompanies(ctx context.Context) ([]*types.Company, error)
	UpdateCompany(ctx context.Context, c *types.Company, paths []string) error
	ListClientServicesByCompany(ctx context.Context, companyID string) ([]*types.ClientService, error)
	CountActiveRequestsByCompany(ctx context.Context, companyID string) (int, error)
}

// Subscription is the company view surfaced to portal users: the plan, the
// concurrency ceiling, current usage against it, and the contracted services.
type Subscription struct {
	Company        *types.Company         `json:"company"`
	MaxActiveLimit int                    `json:"max_active_limit"`
	ActiveRequests int                    `json:"active_requests"`
	Services       []*types.ClientService `json:"services"`
}

type CreateCompanyInput struct {
	Name           string
	Plan           string
	MaxActiveLimit int
}

type ServiceInterface interface {
	GetSubscription(ctx context.Context, caller *types.Principal) (*Subscription, error)
	CreateCompany(ctx context.Context, caller *types.Principal, input CreateCompanyInput) (*types.Company, error)
	ListCompanies(ctx context.Context, caller *types.Principal) ([]*types.Company, error)
	UpdateCompany(ctx context.Context, caller *types.Principal, id string, company *types.Company, paths []string) (*types.Company, error)
}
