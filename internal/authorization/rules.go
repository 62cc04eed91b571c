// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package authorization holds the role-based permission table for request
// lifecycle mutations. Handlers and services consult it instead of carrying
// their own role branches.
package authorization

import (
	"github.com/agencyos/portal/internal/types"
)

// transitionRule captures one role's authority over status changes.
type transitionRule struct {
	// anyTransition short-circuits the graph check: the role may move a
	// request between any two valid statuses, including backward.
	anyTransition bool
	// forwardOnly restricts the role to single-step forward edges.
	forwardOnly bool
	// deniedTargets are statuses the role may never move a request into.
	deniedTargets map[types.RequestStatus]bool
}

var transitionTable = map[types.Role]transitionRule{
	types.RoleAdmin: {
		anyTransition: true,
	},
	types.RoleClient: {
		forwardOnly: true,
		// Clients cannot self-advance out of queue nor close out work.
		deniedTargets: map[types.RequestStatus]bool{
			types.StatusActive: true,
			types.StatusReview: true,
			types.StatusDone:   true,
		},
	},
}

// CanTransition decides whether role may move a request from one status to
// another. Both statuses must be members of the closed set; graph legality
// (forward-only for non-admins) and role authority are checked together so
// call sites get a single verdict.
func CanTransition(role types.Role, from, to types.RequestStatus) bool {
	if !from.Valid() || !to.Valid() || from == to {
		return false
	}

	rule, ok := transitionTable[role]
	if !ok {
		return false
	}

	if rule.anyTransition {
		return true
	}

	if rule.deniedTargets[to] {
		return false
	}

	if rule.forwardOnly && !from.CanAdvanceTo(to) {
		return false
	}

	return true
}

// CanDelete decides whether role may hard-delete a request in the given
// status. Deletion from queue is open to all roles; anything later is
// admin-only.
func CanDelete(role types.Role, status types.RequestStatus) bool {
	if role == types.RoleAdmin {
		return true
	}
	return status == types.StatusQueue
}

// CanAssign reports whether role may change a request's assignee.
func CanAssign(role types.Role) bool {
	return role == types.RoleAdmin
}

// CanManageWorkflows reports whether role may administer workflow rules.
func CanManageWorkflows(role types.Role) bool {
	return role == types.RoleAdmin
}

// CanInvite reports whether role may create invitations.
func CanInvite(role types.Role) bool {
	return role == types.RoleAdmin
}

// CanManageCompanies reports whether role may administer company records.
func CanManageCompanies(role types.Role) bool {
	return role == types.RoleAdmin
}
