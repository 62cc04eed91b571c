// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package companies

import (
	"context"
	"errors"

	"github.com/agencyos/portal/internal/authorization"
	httptypes "github.com/agencyos/portal/internal/http/types"
	"github.com/agencyos/portal/internal/logging"
	"github.com/agencyos/portal/internal/monitoring"
	"github.com/agencyos/portal/internal/storage"
	"github.com/agencyos/portal/internal/tracing"
	"github.com/agencyos/portal/internal/types"
)

// Company fields admins may patch.
var updatablePaths = map[string]bool{
	"name":             true,
	"plan":             true,
	"max_active_limit": true,
	"active":           true,
}

type Service struct {
	storage StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage: storage,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// GetSubscription returns the caller's company plan with current usage.
// Admins have no company of their own, so they must use the company CRUD
// routes instead.
func (s *Service) GetSubscription(ctx context.Context, caller *types.Principal) (*Subscription, error) {
	ctx, span := s.tracer.Start(ctx, "companies.Service.GetSubscription")
	defer span.End()

	if caller.CompanyID == nil {
		return nil, httptypes.NewNotFoundError("caller has no company subscription")
	}

	company, err := s.storage.GetCompanyByID(ctx, *caller.CompanyID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, httptypes.NewNotFoundError("company not found")
		}
		s.logger.Errorf("loading company %s: %v", *caller.CompanyID, err)
		return nil, httptypes.NewInternalError()
	}

	active, err := s.storage.CountActiveRequestsByCompany(ctx, company.ID)
	if err != nil {
		s.logger.Errorf("counting active requests for company %s: %v", company.ID, err)
		return nil, httptypes.NewInternalError()
	}

	services, err := s.storage.ListClientServicesByCompany(ctx, company.ID)
	if err != nil {
		s.logger.Errorf("listing services for company %s: %v", company.ID, err)
		return nil, httptypes.NewInternalError()
	}

	return &Subscription{
		Company:        company,
		MaxActiveLimit: company.MaxActiveLimit,
		ActiveRequests: active,
		Services:       services,
	}, nil
}

func (s *Service) CreateCompany(ctx context.Context, caller *types.Principal, input CreateCompanyInput) (*types.Company, error) {
	ctx, span := s.tracer.Start(ctx, "companies.Service.CreateCompany")
	defer span.End()

	if !authorization.CanManageCompanies(caller.Role) {
		s.logger.Security().AuthzFailure(caller.UserID, "company management")
		return nil, httptypes.NewForbiddenError("only admins may manage companies")
	}
	if input.Name == "" {
		return nil, httptypes.NewValidationError("name is required", nil)
	}
	if input.MaxActiveLimit <= 0 {
		return nil, httptypes.NewValidationError("max_active_limit must be positive", nil)
	}

	company, err := s.storage.CreateCompany(ctx, &types.Company{
		Name:           input.Name,
		Plan:           input.Plan,
		MaxActiveLimit: input.MaxActiveLimit,
		Active:         true,
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, httptypes.NewConflictError("a company with that name already exists")
		}
		s.logger.Errorf("creating company %q: %v", input.Name, err)
		return nil, httptypes.NewInternalError()
	}

	s.logger.Infof("company %s created by %s", company.ID, caller.UserID)
	return company, nil
}

func (s *Service) ListCompanies(ctx context.Context, caller *types.Principal) ([]*types.Company, error) {
	ctx, span := s.tracer.Start(ctx, "companies.Service.ListCompanies")
	defer span.End()

	if !authorization.CanManageCompanies(caller.Role) {
		s.logger.Security().AuthzFailure(caller.UserID, "company management")
		return nil, httptypes.NewForbiddenError("only admins may manage companies")
	}

	companies, err := s.storage.ListCompanies(ctx)
	if err != nil {
		s.logger.Errorf("listing companies: %v", err)
		return nil, httptypes.NewInternalError()
	}
	return companies, nil
}

func (s *Service) UpdateCompany(ctx context.Context, caller *types.Principal, id string, company *types.Company, paths []string) (*types.Company, error) {
	ctx, span := s.tracer.Start(ctx, "companies.Service.UpdateCompany")
	defer span.End()

	if !authorization.CanManageCompanies(caller.Role) {
		s.logger.Security().AuthzFailure(caller.UserID, "company management")
		return nil, httptypes.NewForbiddenError("only admins may manage companies")
	}
	if len(paths) == 0 {
		return nil, httptypes.NewValidationError("no fields to update", nil)
	}
	for _, path := range paths {
		if !updatablePaths[path] {
			return nil, httptypes.NewValidationError("unknown field "+path, nil)
		}
		if path == "max_active_limit" && company.MaxActiveLimit <= 0 {
			return nil, httptypes.NewValidationError("max_active_limit must be positive", nil)
		}
	}

	company.ID = id
	if err := s.storage.UpdateCompany(ctx, company, paths); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, httptypes.NewNotFoundError("company not found")
		}
		s.logger.Errorf("updating company %s: %v", id, err)
		return nil, httptypes.NewInternalError()
	}

	updated, err := s.storage.GetCompanyByID(ctx, id)
	if err != nil {
		s.logger.Errorf("reloading company %s: %v", id, err)
		return nil, httptypes.NewInternalError()
	}
	return updated, nil
}
