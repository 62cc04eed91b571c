// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorEnvelope is the wire shape of every error response.
type ErrorEnvelope struct {
	Error   string         `json:"error"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// WriteError converts err to the envelope and writes it. Rate limited
// responses also carry a Retry-After header.
func WriteError(w http.ResponseWriter, err error) {
	apiErr := AsAPIError(err)

	if apiErr.Code == CodeRateLimited {
		if retry, ok := apiErr.Details["retry_after"].(int); ok {
			w.Header().Set("Retry-After", fmt.Sprint(retry))
		}
	}

	WriteJSON(w, apiErr.Status, ErrorEnvelope{
		Error:   apiErr.Message,
		Code:    apiErr.Code,
		Details: apiErr.Details,
	})
}
