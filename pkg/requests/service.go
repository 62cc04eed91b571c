// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package requests

import (
	"context"
	"errors"
	"time"

	"github.com/agencyos/portal/internal/authorization"
	"github.com/agencyos/portal/internal/db"
	httptypes "github.com/agencyos/portal/internal/http/types"
	"github.com/agencyos/portal/internal/logging"
	"github.com/agencyos/portal/internal/monitoring"
	"github.com/agencyos/portal/internal/storage"
	"github.com/agencyos/portal/internal/tracing"
	"github.com/agencyos/portal/internal/types"
)

type Service struct {
	storage    StorageInterface
	dispatcher DispatcherInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	dispatcher DispatcherInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:    storage,
		dispatcher: dispatcher,
		tracer:     tracer,
		monitor:    monitor,
		logger:     logger,
	}
}

func (s *Service) CreateRequest(ctx context.Context, caller *types.Principal, input *CreateRequestInput) (*types.Request, error) {
	ctx, span := s.tracer.Start(ctx, "requests.Service.CreateRequest")
	defer span.End()

	companyID := input.CompanyID
	if !caller.IsAdmin() {
		// Clients always create within their own company.
		if caller.CompanyID == nil {
			return nil, httptypes.NewForbiddenError("caller has no company")
		}
		if companyID != "" && companyID != *caller.CompanyID {
			return nil, httptypes.NewForbiddenError("cannot create requests for another company")
		}
		companyID = *caller.CompanyID
	}
	if companyID == "" {
		return nil, httptypes.NewValidationError("company_id is required", nil)
	}

	company, err := s.storage.GetCompanyByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, httptypes.NewNotFoundError("company not found")
		}
		s.logger.Errorf("loading company %s: %v", companyID, err)
		return nil, httptypes.NewInternalError()
	}
	if !company.Active {
		return nil, httptypes.NewCompanyInactiveError()
	}

	current, err := s.storage.CountActiveRequestsByCompany(ctx, companyID)
	if err != nil {
		s.logger.Errorf("counting active requests for company %s: %v", companyID, err)
		return nil, httptypes.NewInternalError()
	}
	if current >= company.MaxActiveLimit {
		return nil, httptypes.NewLimitReachedError(company.MaxActiveLimit, current)
	}

	priority := input.Priority
	if priority == "" {
		priority = types.PriorityMedium
	}
	if !priority.Valid() {
		return nil, httptypes.NewValidationError("invalid priority", map[string]any{"priority": string(priority)})
	}

	request, err := s.storage.CreateRequest(ctx, &types.Request{
		CompanyID:   companyID,
		Title:       input.Title,
		Description: input.Description,
		Status:      types.StatusQueue,
		Priority:    priority,
		AssetsLink:  input.AssetsLink,
		VideoBrief:  input.VideoBrief,
		DueDate:     input.DueDate,
		CreatedBy:   caller.UserID,
	})
	if err != nil {
		s.logger.Errorf("creating request: %v", err)
		return nil, httptypes.NewInternalError()
	}

	s.audit(ctx, &types.AuditLog{
		CompanyID:  request.CompanyID,
		UserID:     caller.UserID,
		Action:     "request_created",
		EntityType: "request",
		EntityID:   request.ID,
		NewValues:  map[string]any{"title": request.Title, "status": string(request.Status), "priority": string(request.Priority)},
	})
	s.dispatcher.Dispatch(ctx, types.WorkflowEvent{Kind: types.EventRequestCreated, Request: request})

	return request, nil
}

func (s *Service) GetRequest(ctx context.Context, caller *types.Principal, id string) (*types.Request, error) {
	ctx, span := s.tracer.Start(ctx, "requests.Service.GetRequest")
	defer span.End()

	request, err := s.loadScoped(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	s.hydrateAssignee(ctx, request)
	return request, nil
}

func (s *Service) ListRequests(ctx context.Context, caller *types.Principal, filter ListFilter) ([]*types.Request, error) {
	ctx, span := s.tracer.Start(ctx, "requests.Service.ListRequests")
	defer span.End()

	storeFilter := storage.RequestFilter{Status: filter.Status}
	if caller.IsAdmin() {
		storeFilter.CompanyID = filter.CompanyID
	} else {
		if caller.CompanyID == nil {
			return nil, httptypes.NewForbiddenError("caller has no company")
		}
		storeFilter.CompanyID = *caller.CompanyID
	}

	list, err := s.storage.ListRequests(ctx, storeFilter)
	if err != nil {
		s.logger.Errorf("listing requests: %v", err)
		return nil, httptypes.NewInternalError()
	}
	for _, request := range list {
		s.hydrateAssignee(ctx, request)
	}
	return list, nil
}

func (s *Service) UpdateRequest(ctx context.Context, caller *types.Principal, id string, fields map[string]any) (*types.Request, error) {
	ctx, span := s.tracer.Start(ctx, "requests.Service.UpdateRequest")
	defer span.End()

	if len(fields) == 0 {
		return nil, httptypes.NewValidationError("no updatable fields in request body", nil)
	}
	if p, ok := fields["priority"]; ok {
		priority, _ := p.(string)
		if !types.RequestPriority(priority).Valid() {
			return nil, httptypes.NewValidationError("invalid priority", map[string]any{"priority": priority})
		}
	}

	before, err := s.loadScoped(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	request, err := s.storage.UpdateRequestFields(ctx, id, fields)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, httptypes.NewNotFoundError("request not found")
		}
		s.logger.Errorf("updating request %s: %v", id, err)
		return nil, httptypes.NewInternalError()
	}

	s.audit(ctx, &types.AuditLog{
		CompanyID:  request.CompanyID,
		UserID:     caller.UserID,
		Action:     "request_updated",
		EntityType: "request",
		EntityID:   request.ID,
		OldValues:  fieldSnapshot(before, fields),
		NewValues:  fieldSnapshot(request, fields),
	})

	s.hydrateAssignee(ctx, request)
	return request, nil
}

func (s *Service) Transition(ctx context.Context, caller *types.Principal, id string, target types.RequestStatus) (*types.Request, error) {
	ctx, span := s.tracer.Start(ctx, "requests.Service.Transition")
	defer span.End()

	request, err := s.loadScoped(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if !target.Valid() || request.Status == target {
		return nil, httptypes.NewInvalidTransitionError(string(request.Status), string(target))
	}
	if !authorization.CanTransition(caller.Role, request.Status, target) {
		s.logger.Security().AuthzFailure(caller.UserID, "request status transition")
		return nil, httptypes.NewForbiddenError("role may not perform this status change")
	}

	from := request.Status
	updated, err := s.storage.UpdateRequestStatus(ctx, id, target)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, httptypes.NewNotFoundError("request not found")
		}
		s.logger.Errorf("transitioning request %s to %s: %v", id, target, err)
		return nil, httptypes.NewInternalError()
	}

	s.audit(ctx, &types.AuditLog{
		CompanyID:  updated.CompanyID,
		UserID:     caller.UserID,
		Action:     "status_change",
		EntityType: "request",
		EntityID:   updated.ID,
		OldValues:  map[string]any{"status": string(from)},
		NewValues:  map[string]any{"status": string(target)},
	})
	s.dispatcher.Dispatch(ctx, types.WorkflowEvent{
		Kind:       types.EventStatusChange,
		Request:    updated,
		FromStatus: from,
		ToStatus:   target,
	})

	s.hydrateAssignee(ctx, updated)
	return updated, nil
}

func (s *Service) Assign(ctx context.Context, caller *types.Principal, id string, assigneeID *string) (*types.Request, error) {
	ctx, span := s.tracer.Start(ctx, "requests.Service.Assign")
	defer span.End()

	if !authorization.CanAssign(caller.Role) {
		s.logger.Security().AuthzFailure(caller.UserID, "request assignment")
		return nil, httptypes.NewForbiddenError("only admins may assign requests")
	}

	request, err := s.loadScoped(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	var assignee *types.Profile
	if assigneeID != nil {
		assignee, err = s.storage.GetProfileByID(ctx, *assigneeID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, httptypes.NewNotFoundError("assignee not found")
			}
			s.logger.Errorf("loading assignee %s: %v", *assigneeID, err)
			return nil, httptypes.NewInternalError()
		}
		if assignee.Role != types.RoleAdmin {
			return nil, httptypes.NewInvalidAssigneeError(*assigneeID)
		}
	}

	if sameAssignee(request.AssignedTo, assigneeID) {
		request.Assignee = assignee
		return request, nil
	}

	old := request.AssignedTo
	updated, err := s.storage.UpdateRequestAssignee(ctx, id, assigneeID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, httptypes.NewNotFoundError("request not found")
		}
		s.logger.Errorf("assigning request %s: %v", id, err)
		return nil, httptypes.NewInternalError()
	}

	s.audit(ctx, &types.AuditLog{
		CompanyID:  updated.CompanyID,
		UserID:     caller.UserID,
		Action:     "assignment_change",
		EntityType: "request",
		EntityID:   updated.ID,
		OldValues:  map[string]any{"assigned_to": derefOrNil(old)},
		NewValues:  map[string]any{"assigned_to": derefOrNil(assigneeID)},
	})

	if assignee != nil {
		s.notify(ctx, &types.Notification{
			ProfileID: assignee.ID,
			Kind:      "assignment",
			Title:     "Request assigned to you",
			Body:      updated.Title,
			RequestID: &updated.ID,
		})
	}

	updated.Assignee = assignee
	return updated, nil
}

func (s *Service) DeleteRequest(ctx context.Context, caller *types.Principal, id string) error {
	ctx, span := s.tracer.Start(ctx, "requests.Service.DeleteRequest")
	defer span.End()

	request, err := s.loadScoped(ctx, caller, id)
	if err != nil {
		return err
	}

	if !authorization.CanDelete(caller.Role, request.Status) {
		s.logger.Security().AuthzFailure(caller.UserID, "request deletion")
		return httptypes.NewForbiddenError("requests past the queue can only be deleted by admins")
	}

	if err := s.storage.DeleteRequest(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return httptypes.NewNotFoundError("request not found")
		}
		s.logger.Errorf("deleting request %s: %v", id, err)
		return httptypes.NewInternalError()
	}

	s.audit(ctx, &types.AuditLog{
		CompanyID:  request.CompanyID,
		UserID:     caller.UserID,
		Action:     "request_deleted",
		EntityType: "request",
		EntityID:   request.ID,
		OldValues:  map[string]any{"title": request.Title, "status": string(request.Status)},
	})
	return nil
}

func (s *Service) ListActivity(ctx context.Context, caller *types.Principal, id string) ([]*types.AuditLog, error) {
	ctx, span := s.tracer.Start(ctx, "requests.Service.ListActivity")
	defer span.End()

	if _, err := s.loadScoped(ctx, caller, id); err != nil {
		return nil, err
	}

	entries, err := s.storage.ListAuditLogsByEntity(ctx, "request", id)
	if err != nil {
		s.logger.Errorf("listing activity for request %s: %v", id, err)
		return nil, httptypes.NewInternalError()
	}
	return entries, nil
}

func (s *Service) AddComment(ctx context.Context, caller *types.Principal, id, body string) (*types.RequestComment, error) {
	ctx, span := s.tracer.Start(ctx, "requests.Service.AddComment")
	defer span.End()

	if body == "" {
		return nil, httptypes.NewValidationError("comment body is required", nil)
	}

	request, err := s.loadScoped(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	comment, err := s.storage.CreateComment(ctx, &types.RequestComment{
		RequestID: request.ID,
		AuthorID:  caller.UserID,
		Body:      body,
	})
	if err != nil {
		s.logger.Errorf("creating comment on request %s: %v", id, err)
		return nil, httptypes.NewInternalError()
	}

	s.notifyCommentCounterpart(ctx, caller, request)
	return comment, nil
}

func (s *Service) ListComments(ctx context.Context, caller *types.Principal, id string) ([]*types.RequestComment, error) {
	ctx, span := s.tracer.Start(ctx, "requests.Service.ListComments")
	defer span.End()

	if _, err := s.loadScoped(ctx, caller, id); err != nil {
		return nil, err
	}

	comments, err := s.storage.ListCommentsByRequest(ctx, id)
	if err != nil {
		s.logger.Errorf("listing comments for request %s: %v", id, err)
		return nil, httptypes.NewInternalError()
	}
	return comments, nil
}

// loadScoped fetches a request and enforces company visibility. Clients get
// a 404 for requests outside their company so existence is not leaked.
func (s *Service) loadScoped(ctx context.Context, caller *types.Principal, id string) (*types.Request, error) {
	request, err := s.storage.GetRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, httptypes.NewNotFoundError("request not found")
		}
		s.logger.Errorf("loading request %s: %v", id, err)
		return nil, httptypes.NewInternalError()
	}
	if !caller.IsAdmin() && !caller.SameCompany(request.CompanyID) {
		return nil, httptypes.NewNotFoundError("request not found")
	}
	return request, nil
}

func (s *Service) hydrateAssignee(ctx context.Context, request *types.Request) {
	if request.AssignedTo == nil {
		return
	}
	profile, err := s.storage.GetProfileByID(ctx, *request.AssignedTo)
	if err != nil {
		s.logger.Warnf("hydrating assignee %s for request %s: %v", *request.AssignedTo, request.ID, err)
		return
	}
	request.Assignee = profile
}

// audit records the trail entry, swallowing failures. The insert runs
// outside the request transaction: a failed side-effect write inside it
// would abort the transaction and silently roll back the primary mutation.
func (s *Service) audit(ctx context.Context, entry *types.AuditLog) {
	if err := s.storage.CreateAuditLog(db.ContextWithoutTx(ctx), entry); err != nil {
		s.logger.Errorf("writing audit log for %s %s: %v", entry.EntityType, entry.EntityID, err)
	}
}

// notify runs outside the request transaction for the same reason as audit.
func (s *Service) notify(ctx context.Context, n *types.Notification) {
	if _, err := s.storage.CreateNotification(db.ContextWithoutTx(ctx), n); err != nil {
		s.logger.Errorf("creating notification for profile %s: %v", n.ProfileID, err)
	}
}

// notifyCommentCounterpart routes the comment notification across the
// agency/client boundary: client comments go to the assignee, admin comments
// to the request creator.
func (s *Service) notifyCommentCounterpart(ctx context.Context, caller *types.Principal, request *types.Request) {
	var target string
	if caller.IsAdmin() {
		target = request.CreatedBy
	} else if request.AssignedTo != nil {
		target = *request.AssignedTo
	}
	if target == "" || target == caller.UserID {
		return
	}
	s.notify(ctx, &types.Notification{
		ProfileID: target,
		Kind:      "comment",
		Title:     "New comment on request",
		Body:      request.Title,
		RequestID: &request.ID,
	})
}

// fieldSnapshot projects the audited fields out of a request so the trail
// records only what actually changed.
func fieldSnapshot(r *types.Request, fields map[string]any) map[string]any {
	snap := map[string]any{}
	for key := range fields {
		switch key {
		case "title":
			snap[key] = r.Title
		case "description":
			snap[key] = r.Description
		case "priority":
			snap[key] = string(r.Priority)
		case "assets_link":
			snap[key] = r.AssetsLink
		case "video_brief":
			snap[key] = r.VideoBrief
		case "due_date":
			if r.DueDate != nil {
				snap[key] = r.DueDate.Format(time.RFC3339)
			} else {
				snap[key] = nil
			}
		}
	}
	return snap
}

func sameAssignee(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func derefOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
