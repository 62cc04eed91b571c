// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"time"

	"github.com/agencyos/portal/internal/types"
)

type StorageInterface interface {
	// requests
	CreateRequest(ctx context.Context, r *types.Request) (*types.Request, error)
	GetRequestByID(ctx context.Context, id string) (*types.Request, error)
	ListRequests(ctx context.Context, filter RequestFilter) ([]*types.Request, error)
	UpdateRequestStatus(ctx context.Context, id string, status types.RequestStatus) (*types.Request, error)
	UpdateRequestAssignee(ctx context.Context, id string, assigneeID *string) (*types.Request, error)
	UpdateRequestFields(ctx context.Context, id string, fields map[string]any) (*types.Request, error)
	DeleteRequest(ctx context.Context, id string) error
	CountActiveRequestsByCompany(ctx context.Context, companyID string) (int, error)

	// companies
	CreateCompany(ctx context.Context, c *types.Company) (*types.Company, error)
	GetCompanyByID(ctx context.Context, id string) (*types.Company, error)
	ListCompanies(ctx context.Context) ([]*types.Company, error)
	UpdateCompany(ctx context.Context, c *types.Company, paths []string) error
	ListClientServicesByCompany(ctx context.Context, companyID string) ([]*types.ClientService, error)

	// profiles
	CreateProfile(ctx context.Context, p *types.Profile) (*types.Profile, error)
	GetProfileByID(ctx context.Context, id string) (*types.Profile, error)
	UpdateProfileName(ctx context.Context, id, fullName string) (*types.Profile, error)
	ListAdminProfiles(ctx context.Context) ([]*types.Profile, error)
	ListProfilesByCompany(ctx context.Context, companyID string) ([]*types.Profile, error)

	// invitations
	CreateInvitation(ctx context.Context, i *types.Invitation) (*types.Invitation, error)
	GetInvitationByToken(ctx context.Context, token string) (*types.Invitation, error)
	GetPendingInvitationByEmail(ctx context.Context, email string) (*types.Invitation, error)
	ListInvitations(ctx context.Context) ([]*types.Invitation, error)
	MarkInvitationAccepted(ctx context.Context, id string, acceptedAt time.Time) error
	MarkInvitationExpired(ctx context.Context, id string) error

	// notifications
	CreateNotification(ctx context.Context, n *types.Notification) (*types.Notification, error)
	ListNotificationsByProfile(ctx context.Context, profileID string) ([]*types.Notification, error)
	MarkNotificationsRead(ctx context.Context, profileID string, ids []string) (int64, error)

	// audit
	CreateAuditLog(ctx context.Context, entry *types.AuditLog) error
	ListAuditLogsByEntity(ctx context.Context, entityType, entityID string) ([]*types.AuditLog, error)

	// workflow rules
	CreateWorkflowRule(ctx context.Context, rule *types.WorkflowRule) (*types.WorkflowRule, error)
	GetWorkflowRuleByID(ctx context.Context, id string) (*types.WorkflowRule, error)
	ListWorkflowRules(ctx context.Context, activeOnly bool) ([]*types.WorkflowRule, error)
	UpdateWorkflowRule(ctx context.Context, rule *types.WorkflowRule, paths []string) (*types.WorkflowRule, error)
	DeleteWorkflowRule(ctx context.Context, id string) error

	// comments
	CreateComment(ctx context.Context, c *types.RequestComment) (*types.RequestComment, error)
	ListCommentsByRequest(ctx context.Context, requestID string) ([]*types.RequestComment, error)
}

// RequestFilter narrows ListRequests. Zero values mean no constraint.
type RequestFilter struct {
	CompanyID string
	Status    types.RequestStatus
}
