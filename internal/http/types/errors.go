// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes surfaced in the response envelope.
const (
	CodeValidation        = "validation_error"
	CodeUnauthorized      = "unauthorized"
	CodeForbidden         = "forbidden"
	CodeNotFound          = "not_found"
	CodeConflict          = "conflict"
	CodeRateLimited       = "rate_limited"
	CodeInvalidTransition = "invalid_status_transition"
	CodeInvalidAssignee   = "invalid_assignee"
	CodeCompanyInactive   = "company_inactive"
	CodeInvitationExpired = "invitation_expired"
	CodeLimitReached      = "limit_reached"
	CodeInternal          = "internal_error"
)

// APIError is the single error type handlers surface. It carries the HTTP
// status, the stable code, and optional machine-readable details.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details map[string]any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(message string, details map[string]any) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: CodeValidation, Message: message, Details: details}
}

func NewUnauthorizedError(message string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Code: CodeUnauthorized, Message: message}
}

func NewForbiddenError(message string) *APIError {
	return &APIError{Status: http.StatusForbidden, Code: CodeForbidden, Message: message}
}

func NewNotFoundError(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Code: CodeNotFound, Message: message}
}

func NewConflictError(message string) *APIError {
	return &APIError{Status: http.StatusConflict, Code: CodeConflict, Message: message}
}

func NewRateLimitedError(retryAfter int) *APIError {
	return &APIError{
		Status:  http.StatusTooManyRequests,
		Code:    CodeRateLimited,
		Message: "rate limit exceeded",
		Details: map[string]any{"retry_after": retryAfter},
	}
}

func NewInvalidTransitionError(from, to string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    CodeInvalidTransition,
		Message: fmt.Sprintf("cannot transition request from %s to %s", from, to),
		Details: map[string]any{"from": from, "to": to},
	}
}

func NewInvalidAssigneeError(userID string) *APIError {
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    CodeInvalidAssignee,
		Message: "requests can only be assigned to admin users",
		Details: map[string]any{"user_id": userID},
	}
}

func NewInvitationExpiredError() *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: CodeInvitationExpired, Message: "invitation has expired"}
}

func NewCompanyInactiveError() *APIError {
	return &APIError{Status: http.StatusForbidden, Code: CodeCompanyInactive, Message: "company is inactive"}
}

func NewLimitReachedError(limit, current int) *APIError {
	return &APIError{
		Status:  http.StatusConflict,
		Code:    CodeLimitReached,
		Message: fmt.Sprintf("active request limit reached (%d of %d)", current, limit),
		Details: map[string]any{"limit": limit, "current": current},
	}
}

func NewInternalError() *APIError {
	return &APIError{Status: http.StatusInternalServerError, Code: CodeInternal, Message: "internal server error"}
}

// AsAPIError maps any error to the envelope type. Unknown errors collapse to
// an opaque 500 so nothing internal leaks to the client.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return NewInternalError()
}
