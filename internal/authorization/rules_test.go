// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"testing"

	"github.com/agencyos/portal/internal/types"
)

func TestCanTransition(t *testing.T) {
	testCases := []struct {
		name    string
		role    types.Role
		from    types.RequestStatus
		to      types.RequestStatus
		allowed bool
	}{
		{"admin forward queue to active", types.RoleAdmin, types.StatusQueue, types.StatusActive, true},
		{"admin forward active to review", types.RoleAdmin, types.StatusActive, types.StatusReview, true},
		{"admin forward review to done", types.RoleAdmin, types.StatusReview, types.StatusDone, true},
		{"admin backward done to review", types.RoleAdmin, types.StatusDone, types.StatusReview, true},
		{"admin backward review to queue", types.RoleAdmin, types.StatusReview, types.StatusQueue, true},
		{"admin skip queue to done", types.RoleAdmin, types.StatusQueue, types.StatusDone, true},
		{"admin same status", types.RoleAdmin, types.StatusActive, types.StatusActive, false},
		{"admin invalid target", types.RoleAdmin, types.StatusQueue, "archived", false},
		{"admin invalid source", types.RoleAdmin, "archived", types.StatusQueue, false},

		{"client cannot self-advance into active", types.RoleClient, types.StatusQueue, types.StatusActive, false},
		{"client cannot move into review", types.RoleClient, types.StatusActive, types.StatusReview, false},
		{"client cannot move into done", types.RoleClient, types.StatusReview, types.StatusDone, false},
		{"client cannot move backward", types.RoleClient, types.StatusReview, types.StatusActive, false},
		{"client invalid target", types.RoleClient, types.StatusQueue, "cancelled", false},

		{"unknown role denied", types.Role("owner"), types.StatusQueue, types.StatusActive, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanTransition(tc.role, tc.from, tc.to); got != tc.allowed {
				t.Errorf("CanTransition(%s, %s, %s) = %v, want %v", tc.role, tc.from, tc.to, got, tc.allowed)
			}
		})
	}
}

func TestCanDelete(t *testing.T) {
	testCases := []struct {
		name    string
		role    types.Role
		status  types.RequestStatus
		allowed bool
	}{
		{"client deletes from queue", types.RoleClient, types.StatusQueue, true},
		{"client cannot delete active", types.RoleClient, types.StatusActive, false},
		{"client cannot delete done", types.RoleClient, types.StatusDone, false},
		{"admin deletes from queue", types.RoleAdmin, types.StatusQueue, true},
		{"admin deletes active", types.RoleAdmin, types.StatusActive, true},
		{"admin deletes done", types.RoleAdmin, types.StatusDone, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanDelete(tc.role, tc.status); got != tc.allowed {
				t.Errorf("CanDelete(%s, %s) = %v, want %v", tc.role, tc.status, got, tc.allowed)
			}
		})
	}
}

func TestCanAssign(t *testing.T) {
	if !CanAssign(types.RoleAdmin) {
		t.Error("admins must be able to assign")
	}
	if CanAssign(types.RoleClient) {
		t.Error("clients must not be able to assign")
	}
}
