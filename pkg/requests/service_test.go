// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package requests

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/agencyos/portal/internal/db"
	httptypes "github.com/agencyos/portal/internal/http/types"
	"github.com/agencyos/portal/internal/storage"
	"github.com/agencyos/portal/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package requests -destination ./mock_requests.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package requests -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package requests -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package requests -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go

var (
	companyA = "company-a"
	companyB = "company-b"

	adminCaller  = &types.Principal{UserID: "admin-1", Role: types.RoleAdmin}
	clientCaller = &types.Principal{UserID: "client-1", Role: types.RoleClient, CompanyID: &companyA}
)

type serviceMocks struct {
	storage    *MockStorageInterface
	dispatcher *MockDispatcherInterface
}

func newTestService(ctrl *gomock.Controller) (*Service, serviceMocks) {
	mockStorage := NewMockStorageInterface(ctrl)
	mockDispatcher := NewMockDispatcherInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockSecurity := NewMockSecurityLoggerInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).AnyTimes().
		DoAndReturn(func(ctx context.Context, _ string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		})
	mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warnf(gomock.Any(), gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Security().AnyTimes().Return(mockSecurity)
	mockSecurity.EXPECT().AuthzFailure(gomock.Any(), gomock.Any()).AnyTimes()

	s := NewService(mockStorage, mockDispatcher, mockTracer, mockMonitor, mockLogger)
	return s, serviceMocks{storage: mockStorage, dispatcher: mockDispatcher}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %q, got nil", code)
	}
	if got := httptypes.AsAPIError(err).Code; got != code {
		t.Errorf("expected error code %q, got %q (%v)", code, got, err)
	}
}

func TestService_Transition(t *testing.T) {
	stored := func(status types.RequestStatus) *types.Request {
		return &types.Request{ID: "req-1", CompanyID: companyA, Title: "Logo refresh", Status: status}
	}

	testCases := []struct {
		name         string
		caller       *types.Principal
		target       types.RequestStatus
		setupMocks   func(serviceMocks)
		expectedCode string
	}{
		{
			name:   "admin advances queue to active",
			caller: adminCaller,
			target: types.StatusActive,
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().GetRequestByID(gomock.Any(), "req-1").Return(stored(types.StatusQueue), nil)
				m.storage.EXPECT().UpdateRequestStatus(gomock.Any(), "req-1", types.StatusActive).Return(stored(types.StatusActive), nil)
				m.storage.EXPECT().CreateAuditLog(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, entry *types.AuditLog) error {
					if entry.Action != "status_change" {
						t.Errorf("expected audit action status_change, got %s", entry.Action)
					}
					if entry.OldValues["status"] != "queue" || entry.NewValues["status"] != "active" {
						t.Errorf("audit values wrong: %v -> %v", entry.OldValues, entry.NewValues)
					}
					return nil
				})
				m.dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Do(func(_ context.Context, event types.WorkflowEvent) {
					if event.Kind != types.EventStatusChange || event.ToStatus != types.StatusActive {
						t.Errorf("unexpected workflow event: %+v", event)
					}
				})
			},
		},
		{
			name:   "admin moves backward review to active",
			caller: adminCaller,
			target: types.StatusActive,
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().GetRequestByID(gomock.Any(), "req-1").Return(stored(types.StatusReview), nil)
				m.storage.EXPECT().UpdateRequestStatus(gomock.Any(), "req-1", types.StatusActive).Return(stored(types.StatusActive), nil)
				m.storage.EXPECT().CreateAuditLog(gomock.Any(), gomock.Any()).Return(nil)
				m.dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any())
			},
		},
		{
			name:   "admin skips queue to done",
			caller: adminCaller,
			target: types.StatusDone,
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().GetRequestByID(gomock.Any(), "req-1").Return(stored(types.StatusQueue), nil)
				m.storage.EXPECT().UpdateRequestStatus(gomock.Any(), "req-1", types.StatusDone).Return(stored(types.StatusDone), nil)
				m.storage.EXPECT().CreateAuditLog(gomock.Any(), gomock.Any()).Return(nil)
				m.dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any())
			},
		},
		{
			name:   "client cannot self-advance out of queue",
			caller: clientCaller,
			target: types.StatusActive,
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().GetRequestByID(gomock.Any(), "req-1").Return(stored(types.StatusQueue), nil)
			},
			expectedCode: httptypes.CodeForbidden,
		},
		{
			name:   "client cannot move a request into review",
			caller: clientCaller,
			target: types.StatusReview,
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().GetRequestByID(gomock.Any(), "req-1").Return(stored(types.StatusActive), nil)
			},
			expectedCode: httptypes.CodeForbidden,
		},
		{
			name:   "client cannot move backward",
			caller: clientCaller,
			target: types.StatusQueue,
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().GetRequestByID(gomock.Any(), "req-1").Return(stored(types.StatusActive), nil)
			},
			expectedCode: httptypes.CodeForbidden,
		},
		{
			name:   "unknown target status",
			caller: adminCaller,
			target: types.RequestStatus("archived"),
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().GetRequestByID(gomock.Any(), "req-1").Return(stored(types.StatusQueue), nil)
			},
			expectedCode: httptypes.CodeInvalidTransition,
		},
		{
			name:   "same status is not a transition",
			caller: adminCaller,
			target: types.StatusActive,
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().GetRequestByID(gomock.Any(), "req-1").Return(stored(types.StatusActive), nil)
			},
			expectedCode: httptypes.CodeInvalidTransition,
		},
		{
			name:   "client cannot see another company's request",
			caller: &types.Principal{UserID: "client-2", Role: types.RoleClient, CompanyID: &companyB},
			target: types.StatusActive,
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().GetRequestByID(gomock.Any(), "req-1").Return(stored(types.StatusQueue), nil)
			},
			expectedCode: httptypes.CodeNotFound,
		},
		{
			name:   "request vanished",
			caller: adminCaller,
			target: types.StatusActive,
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().GetRequestByID(gomock.Any(), "req-1").Return(nil, storage.ErrNotFound)
			},
			expectedCode: httptypes.CodeNotFound,
		},
		{
			name:   "row deleted between load and update",
			caller: adminCaller,
			target: types.StatusActive,
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().GetRequestByID(gomock.Any(), "req-1").Return(stored(types.StatusQueue), nil)
				m.storage.EXPECT().UpdateRequestStatus(gomock.Any(), "req-1", types.StatusActive).Return(nil, storage.ErrNotFound)
			},
			expectedCode: httptypes.CodeNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, m := newTestService(ctrl)
			tc.setupMocks(m)

			request, err := s.Transition(context.Background(), tc.caller, "req-1", tc.target)

			if tc.expectedCode != "" {
				assertCode(t, err, tc.expectedCode)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if request.Status != tc.target {
				t.Errorf("expected status %s, got %s", tc.target, request.Status)
			}
		})
	}
}

func TestService_Assign(t *testing.T) {
	adminID := "admin-2"
	clientID := "client-9"

	stored := func(assignedTo *string) *types.Request {
		return &types.Request{ID: "req-1", CompanyID: companyA, Title: "Logo refresh", Status: types.StatusActive, AssignedTo: assignedTo}
	}

	testCases := []struct {
		name         string
		caller       *types.Principal
		assigneeID   *string
		setupMocks   func(serviceMocks)
		expectedCode string
	}{
		{
			name:       "assigning notifies the new assignee",
			caller:     adminCaller,
			assigneeID: &adminID,
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().GetRequestByID(gomock.Any(), "req-1").Return(stored(nil), nil)
				m.storage.EXPECT().GetProfileByID(gomock.Any(), adminID).Return(&types.Profile{ID: adminID, Role: types.RoleAdmin}, nil)
				m.storage.EXPECT().UpdateRequestAssignee(gomock.Any(), "req-1", &adminID).Return(stored(&adminID), nil)
				m.storage.EXPECT().CreateAuditLog(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, entry *types.AuditLog) error {
					if entry.Action != "assignment_change" {
						t.Errorf("expected audit action assignment_change, got %s", entry.Action)
					}
					return nil
				})
				m.storage.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n *types.Notification) (*types.Notification, error) {
					if n.ProfileID != adminID {
						t.Errorf("notification went to %s, expected %s", n.ProfileID, adminID)
					}
					return n, nil
				})
			},
		},
		{
			name:       "re-assigning the same user emits no notification",
			caller:     adminCaller,
			assigneeID: &adminID,
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().GetRequestByID(gomock.Any(), "req-1").Return(stored(&adminID), nil)
				m.storage.EXPECT().GetProfileByID(gomock.Any(), adminID).Return(&types.Profile{ID: adminID, Role: types.RoleAdmin}, nil)
			},
		},
		{
			name:       "unassigning emits no notification",
			caller:     adminCaller,
			assigneeID: nil,
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().GetRequestByID(gomock.Any(), "req-1").Return(stored(&adminID), nil)
				m.storage.EXPECT().UpdateRequestAssignee(gomock.Any(), "req-1", nil).Return(stored(nil), nil)
				m.storage.EXPECT().CreateAuditLog(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:         "client cannot assign",
			caller:       clientCaller,
			assigneeID:   &adminID,
			setupMocks:   func(serviceMocks) {},
			expectedCode: httptypes.CodeForbidden,
		},
		{
			name:       "unknown assignee",
			caller:     adminCaller,
			assigneeID: &adminID,
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().GetRequestByID(gomock.Any(), "req-1").Return(stored(nil), nil)
				m.storage.EXPECT().GetProfileByID(gomock.Any(), adminID).Return(nil, storage.ErrNotFound)
			},
			expectedCode: httptypes.CodeNotFound,
		},
		{
			name:       "client profiles are not assignable",
			caller:     adminCaller,
			assigneeID: &clientID,
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().GetRequestByID(gomock.Any(), "req-1").Return(stored(nil), nil)
				m.storage.EXPECT().GetProfileByID(gomock.Any(), clientID).Return(&types.Profile{ID: clientID, Role: types.RoleClient, CompanyID: &companyA}, nil)
			},
			expectedCode: httptypes.CodeInvalidAssignee,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, m := newTestService(ctrl)
			tc.setupMocks(m)

			_, err := s.Assign(context.Background(), tc.caller, "req-1", tc.assigneeID)

			if tc.expectedCode != "" {
				assertCode(t, err, tc.expectedCode)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestService_CreateRequest(t *testing.T) {
	activeCompany := &types.Company{ID: companyA, Name: "Acme", MaxActiveLimit: 3, Active: true}

	testCases := []struct {
		name         string
		caller       *types.Principal
		input        *CreateRequestInput
		setupMocks   func(serviceMocks)
		expectedCode string
	}{
		{
			name:   "client creates in own company under the limit",
			caller: clientCaller,
			input:  &CreateRequestInput{Title: "Logo refresh"},
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().GetCompanyByID(gomock.Any(), companyA).Return(activeCompany, nil)
				m.storage.EXPECT().CountActiveRequestsByCompany(gomock.Any(), companyA).Return(2, nil)
				m.storage.EXPECT().CreateRequest(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *types.Request) (*types.Request, error) {
					if r.Status != types.StatusQueue {
						t.Errorf("new requests must start in queue, got %s", r.Status)
					}
					if r.CompanyID != companyA {
						t.Errorf("expected company %s, got %s", companyA, r.CompanyID)
					}
					r.ID = "req-new"
					return r, nil
				})
				m.storage.EXPECT().CreateAuditLog(gomock.Any(), gomock.Any()).Return(nil)
				m.dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Do(func(_ context.Context, event types.WorkflowEvent) {
					if event.Kind != types.EventRequestCreated {
						t.Errorf("expected request_created event, got %s", event.Kind)
					}
				})
			},
		},
		{
			name:   "active request limit reached",
			caller: clientCaller,
			input:  &CreateRequestInput{Title: "One too many"},
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().GetCompanyByID(gomock.Any(), companyA).Return(activeCompany, nil)
				m.storage.EXPECT().CountActiveRequestsByCompany(gomock.Any(), companyA).Return(3, nil)
			},
			expectedCode: httptypes.CodeLimitReached,
		},
		{
			name:   "inactive company",
			caller: clientCaller,
			input:  &CreateRequestInput{Title: "Logo refresh"},
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().GetCompanyByID(gomock.Any(), companyA).Return(&types.Company{ID: companyA, Active: false}, nil)
			},
			expectedCode: httptypes.CodeCompanyInactive,
		},
		{
			name:         "client cannot create for another company",
			caller:       clientCaller,
			input:        &CreateRequestInput{CompanyID: companyB, Title: "Logo refresh"},
			setupMocks:   func(serviceMocks) {},
			expectedCode: httptypes.CodeForbidden,
		},
		{
			name:         "admin must name a company",
			caller:       adminCaller,
			input:        &CreateRequestInput{Title: "Logo refresh"},
			setupMocks:   func(serviceMocks) {},
			expectedCode: httptypes.CodeValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, m := newTestService(ctrl)
			tc.setupMocks(m)

			request, err := s.CreateRequest(context.Background(), tc.caller, tc.input)

			if tc.expectedCode != "" {
				assertCode(t, err, tc.expectedCode)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if request.Status != types.StatusQueue {
				t.Errorf("expected queue status, got %s", request.Status)
			}
		})
	}
}

func TestService_DeleteRequest(t *testing.T) {
	stored := func(status types.RequestStatus) *types.Request {
		return &types.Request{ID: "req-1", CompanyID: companyA, Title: "Logo refresh", Status: status}
	}

	testCases := []struct {
		name         string
		caller       *types.Principal
		setupMocks   func(serviceMocks)
		expectedCode string
	}{
		{
			name:   "client deletes own queued request",
			caller: clientCaller,
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().GetRequestByID(gomock.Any(), "req-1").Return(stored(types.StatusQueue), nil)
				m.storage.EXPECT().DeleteRequest(gomock.Any(), "req-1").Return(nil)
				m.storage.EXPECT().CreateAuditLog(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, entry *types.AuditLog) error {
					if entry.Action != "request_deleted" {
						t.Errorf("expected audit action request_deleted, got %s", entry.Action)
					}
					return nil
				})
			},
		},
		{
			name:   "client cannot delete past the queue",
			caller: clientCaller,
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().GetRequestByID(gomock.Any(), "req-1").Return(stored(types.StatusActive), nil)
			},
			expectedCode: httptypes.CodeForbidden,
		},
		{
			name:   "admin deletes from any status",
			caller: adminCaller,
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().GetRequestByID(gomock.Any(), "req-1").Return(stored(types.StatusReview), nil)
				m.storage.EXPECT().DeleteRequest(gomock.Any(), "req-1").Return(nil)
				m.storage.EXPECT().CreateAuditLog(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, m := newTestService(ctrl)
			tc.setupMocks(m)

			err := s.DeleteRequest(context.Background(), tc.caller, "req-1")

			if tc.expectedCode != "" {
				assertCode(t, err, tc.expectedCode)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestService_ListRequests(t *testing.T) {
	testCases := []struct {
		name       string
		caller     *types.Principal
		filter     ListFilter
		setupMocks func(serviceMocks)
	}{
		{
			name:   "client listings are pinned to their company",
			caller: clientCaller,
			filter: ListFilter{CompanyID: companyB},
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().ListRequests(gomock.Any(), storage.RequestFilter{CompanyID: companyA}).Return([]*types.Request{}, nil)
			},
		},
		{
			name:   "admin filters pass through",
			caller: adminCaller,
			filter: ListFilter{CompanyID: companyB, Status: types.StatusActive},
			setupMocks: func(m serviceMocks) {
				m.storage.EXPECT().ListRequests(gomock.Any(), storage.RequestFilter{CompanyID: companyB, Status: types.StatusActive}).Return([]*types.Request{}, nil)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, m := newTestService(ctrl)
			tc.setupMocks(m)

			if _, err := s.ListRequests(context.Background(), tc.caller, tc.filter); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestService_AddComment(t *testing.T) {
	adminID := "admin-2"
	stored := &types.Request{ID: "req-1", CompanyID: companyA, Title: "Logo refresh", Status: types.StatusActive, CreatedBy: "client-1", AssignedTo: &adminID}

	t.Run("client comment notifies the assignee", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestService(ctrl)
		m.storage.EXPECT().GetRequestByID(gomock.Any(), "req-1").Return(stored, nil)
		m.storage.EXPECT().CreateComment(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *types.RequestComment) (*types.RequestComment, error) {
			c.ID = "comment-1"
			return c, nil
		})
		m.storage.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n *types.Notification) (*types.Notification, error) {
			if n.ProfileID != adminID {
				t.Errorf("notification went to %s, expected %s", n.ProfileID, adminID)
			}
			return n, nil
		})

		if _, err := s.AddComment(context.Background(), clientCaller, "req-1", "looks great"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("admin comment notifies the creator", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, m := newTestService(ctrl)
		m.storage.EXPECT().GetRequestByID(gomock.Any(), "req-1").Return(stored, nil)
		m.storage.EXPECT().CreateComment(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *types.RequestComment) (*types.RequestComment, error) {
			return c, nil
		})
		m.storage.EXPECT().CreateNotification(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n *types.Notification) (*types.Notification, error) {
			if n.ProfileID != "client-1" {
				t.Errorf("notification went to %s, expected client-1", n.ProfileID)
			}
			return n, nil
		})

		if _, err := s.AddComment(context.Background(), adminCaller, "req-1", "first draft attached"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("empty body rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, _ := newTestService(ctrl)
		_, err := s.AddComment(context.Background(), clientCaller, "req-1", "")
		assertCode(t, err, httptypes.CodeValidation)
	})
}

func TestService_FailedAuditDoesNotFailMutation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newTestService(ctrl)
	stored := &types.Request{ID: "req-1", CompanyID: companyA, Status: types.StatusQueue}
	m.storage.EXPECT().GetRequestByID(gomock.Any(), "req-1").Return(stored, nil)
	m.storage.EXPECT().UpdateRequestStatus(gomock.Any(), "req-1", types.StatusActive).
		Return(&types.Request{ID: "req-1", CompanyID: companyA, Status: types.StatusActive}, nil)
	m.storage.EXPECT().CreateAuditLog(gomock.Any(), gomock.Any()).Return(errors.New("audit table unavailable"))
	m.dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any())

	request, err := s.Transition(context.Background(), adminCaller, "req-1", types.StatusActive)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if request.Status != types.StatusActive {
		t.Errorf("expected active status, got %s", request.Status)
	}
}

// A failed audit or notification insert inside the per-request transaction
// would abort it and roll back the already-acknowledged mutation, so the
// side-effect writes must run on a detached context while the primary
// mutation keeps the transaction.
func TestService_SideEffectsRunOutsideRequestTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newTestService(ctrl)
	ctx := db.ContextWithTx(context.Background(), db.NewMockTxInterface(ctrl))

	stored := &types.Request{ID: "req-1", CompanyID: companyA, Status: types.StatusQueue}
	m.storage.EXPECT().GetRequestByID(gomock.Any(), "req-1").Return(stored, nil)
	m.storage.EXPECT().UpdateRequestStatus(gomock.Any(), "req-1", types.StatusActive).
		DoAndReturn(func(ctx context.Context, id string, status types.RequestStatus) (*types.Request, error) {
			if db.TxFromContext(ctx) == nil {
				t.Error("expected the primary mutation to keep the request transaction")
			}
			return &types.Request{ID: "req-1", CompanyID: companyA, Status: types.StatusActive}, nil
		})
	m.storage.EXPECT().CreateAuditLog(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *types.AuditLog) error {
			if db.TxFromContext(ctx) != nil {
				t.Error("expected the audit write to run outside the request transaction")
			}
			return errors.New("audit table unavailable")
		})
	m.dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any())

	request, err := s.Transition(ctx, adminCaller, "req-1", types.StatusActive)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if request.Status != types.StatusActive {
		t.Errorf("expected active status, got %s", request.Status)
	}
}
