// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package requests

import (
	"context"
	"time"

	"github.com/agencyos/portal/internal/storage"
	"github.com/agencyos/portal/internal/types"
)

type StorageInterface interface {
	CreateRequest(ctx context.Context, r *types.Request) (*types.Request, error)
	GetRequestByID(ctx context.Context, id string) (*types.Request, error)
	ListRequests(ctx context.Context, filter storage.RequestFilter) ([]*types.Request, error)
	UpdateRequestStatus(ctx context.Context, id string, status types.RequestStatus) (*types.Request, error)
	UpdateRequestAssignee(ctx context.Context, id string, assigneeID *string) (*types.Request, error)
	UpdateRequestFields(ctx context.Context, id string, fields map[string]any) (*types.Request, error)
	DeleteRequest(ctx context.Context, id string) error
	CountActiveRequestsByCompany(ctx context.Context, companyID string) (int, error)

	GetCompanyByID(ctx context.Context, id string) (*types.Company, error)
	GetProfileByID(ctx context.Context, id string) (*types.Profile, error)
	ListAdminProfiles(ctx context.Context) ([]*types.Profile, error)

	CreateAuditLog(ctx context.Context, entry *types.AuditLog) error
	ListAuditLogsByEntity(ctx context.Context, entityType, entityID string) ([]*types.AuditLog, error)
	CreateNotification(ctx context.Context, n *types.Notification) (*types.Notification, error)

	CreateComment(ctx context.Context, c *types.RequestComment) (*types.RequestComment, error)
	ListCommentsByRequest(ctx context.Context, requestID string) ([]*types.RequestComment, error)
}

// DispatcherInterface hands lifecycle events to the automation engine.
// Dispatch must not call back into the request service.
type DispatcherInterface interface {
	Dispatch(ctx context.Context, event types.WorkflowEvent)
}

type ServiceInterface interface {
	CreateRequest(ctx context.Context, caller *types.Principal, input *CreateRequestInput) (*types.Request, error)
	GetRequest(ctx context.Context, caller *types.Principal, id string) (*types.Request, error)
	ListRequests(ctx context.Context, caller *types.Principal, filter ListFilter) ([]*types.Request, error)
	UpdateRequest(ctx context.Context, caller *types.Principal, id string, fields map[string]any) (*types.Request, error)
	Transition(ctx context.Context, caller *types.Principal, id string, target types.RequestStatus) (*types.Request, error)
	Assign(ctx context.Context, caller *types.Principal, id string, assigneeID *string) (*types.Request, error)
	DeleteRequest(ctx context.Context, caller *types.Principal, id string) error
	ListActivity(ctx context.Context, caller *types.Principal, id string) ([]*types.AuditLog, error)
	AddComment(ctx context.Context, caller *types.Principal, id, body string) (*types.RequestComment, error)
	ListComments(ctx context.Context, caller *types.Principal, id string) ([]*types.RequestComment, error)
}

// CreateRequestInput carries the caller-settable fields of a new request.
type CreateRequestInput struct {
	CompanyID   string
	Title       string
	Description string
	Priority    types.RequestPriority
	AssetsLink  string
	VideoBrief  string
	DueDate     *time.Time
}

// ListFilter narrows request listings. CompanyID is only honored for admins.
type ListFilter struct {
	CompanyID string
	Status    types.RequestStatus
}
