// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

// RequestStatus is the closed set of lifecycle states a request moves through.
type RequestStatus string

const (
	StatusQueue  RequestStatus = "queue"
	StatusActive RequestStatus = "active"
	StatusReview RequestStatus = "review"
	StatusDone   RequestStatus = "done"
)

// statusOrder positions each status on the forward progression graph.
var statusOrder = map[RequestStatus]int{
	StatusQueue:  0,
	StatusActive: 1,
	StatusReview: 2,
	StatusDone:   3,
}

// Valid reports whether s is a member of the closed status set.
func (s RequestStatus) Valid() bool {
	_, ok := statusOrder[s]
	return ok
}

// CanAdvanceTo reports whether target is the immediate forward successor of s.
func (s RequestStatus) CanAdvanceTo(target RequestStatus) bool {
	cur, ok := statusOrder[s]
	if !ok {
		return false
	}
	next, ok := statusOrder[target]
	if !ok {
		return false
	}
	return next == cur+1
}

// IsTerminal reports whether s is the terminal state.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusDone
}

type RequestPriority string

const (
	PriorityLow    RequestPriority = "low"
	PriorityMedium RequestPriority = "medium"
	PriorityHigh   RequestPriority = "high"
)

func (p RequestPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleClient
}

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationExpired  InvitationStatus = "expired"
)

type Company struct {
	ID             string    `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Plan           string    `db:"plan" json:"plan"`
	MaxActiveLimit int       `db:"max_active_limit" json:"max_active_limit"`
	Active         bool      `db:"active" json:"active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

type Profile struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	FullName  string    `db:"full_name" json:"full_name"`
	Role      Role      `db:"role" json:"role"`
	CompanyID *string   `db:"company_id" json:"company_id,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Request struct {
	ID          string          `db:"id" json:"id"`
	CompanyID   string          `db:"company_id" json:"company_id"`
	Title       string          `db:"title" json:"title"`
	Description string          `db:"description" json:"description"`
	Status      RequestStatus   `db:"status" json:"status"`
	Priority    RequestPriority `db:"priority" json:"priority"`
	AssignedTo  *string         `db:"assigned_to" json:"assigned_to,omitempty"`
	AssetsLink  string          `db:"assets_link" json:"assets_link,omitempty"`
	VideoBrief  string          `db:"video_brief" json:"video_brief,omitempty"`
	DueDate     *time.Time      `db:"due_date" json:"due_date,omitempty"`
	CreatedBy   string          `db:"created_by" json:"created_by"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`

	// Assignee is hydrated on reads when assigned_to is set.
	Assignee *Profile `db:"-" json:"assignee,omitempty"`
}

type Invitation struct {
	ID         string           `db:"id" json:"id"`
	Email      string           `db:"email" json:"email"`
	Role       Role             `db:"role" json:"role"`
	CompanyID  *string          `db:"company_id" json:"company_id,omitempty"`
	Token      string           `db:"token" json:"-"`
	Status     InvitationStatus `db:"status" json:"status"`
	ExpiresAt  time.Time        `db:"expires_at" json:"expires_at"`
	InvitedBy  string           `db:"invited_by" json:"invited_by"`
	AcceptedAt *time.Time       `db:"accepted_at" json:"accepted_at,omitempty"`
	CreatedAt  time.Time        `db:"created_at" json:"created_at"`
}

// IsExpired reports whether the invitation's expiry has passed at now.
func (i *Invitation) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

type Notification struct {
	ID        string    `db:"id" json:"id"`
	ProfileID string    `db:"profile_id" json:"profile_id"`
	Kind      string    `db:"kind" json:"kind"`
	Title     string    `db:"title" json:"title"`
	Body      string    `db:"body" json:"body"`
	RequestID *string   `db:"request_id" json:"request_id,omitempty"`
	Read      bool      `db:"read" json:"read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type AuditLog struct {
	ID         string         `db:"id" json:"id"`
	CompanyID  string         `db:"company_id" json:"company_id"`
	UserID     string         `db:"user_id" json:"user_id"`
	Action     string         `db:"action" json:"action"`
	EntityType string         `db:"entity_type" json:"entity_type"`
	EntityID   string         `db:"entity_id" json:"entity_id"`
	OldValues  map[string]any `db:"old_values" json:"old_values,omitempty"`
	NewValues  map[string]any `db:"new_values" json:"new_values,omitempty"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
}

type WorkflowRule struct {
	ID                string         `db:"id" json:"id"`
	Name              string         `db:"name" json:"name"`
	TriggerType       string         `db:"trigger_type" json:"trigger_type"`
	TriggerConditions map[string]any `db:"trigger_conditions" json:"trigger_conditions"`
	ActionType        string         `db:"action_type" json:"action_type"`
	ActionConfig      map[string]any `db:"action_config" json:"action_config"`
	IsActive          bool           `db:"is_active" json:"is_active"`
	CreatedBy         string         `db:"created_by" json:"created_by"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updated_at"`
}

type ClientService struct {
	ID          string `db:"id" json:"id"`
	CompanyID   string `db:"company_id" json:"company_id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	Active      bool   `db:"active" json:"active"`
}

type RequestComment struct {
	ID        string    `db:"id" json:"id"`
	RequestID string    `db:"request_id" json:"request_id"`
	AuthorID  string    `db:"author_id" json:"author_id"`
	Body      string    `db:"body" json:"body"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Workflow event kinds dispatched by the request lifecycle.
const (
	EventRequestCreated = "request_created"
	EventStatusChange   = "status_change"
)

// WorkflowEvent describes a lifecycle occurrence handed to the automation
// engine. FromStatus and ToStatus are only set for status changes.
type WorkflowEvent struct {
	Kind       string
	Request    *Request
	FromStatus RequestStatus
	ToStatus   RequestStatus
}

// Principal is the resolved caller identity attached to each request context.
type Principal struct {
	UserID    string
	Role      Role
	CompanyID *string
}

// IsAdmin reports whether the principal acts agency-wide.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// SameCompany reports whether the principal belongs to companyID.
func (p *Principal) SameCompany(companyID string) bool {
	return p != nil && p.CompanyID != nil && *p.CompanyID == companyID
}
