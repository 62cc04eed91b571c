// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"context"

	"github.com/agencyos/portal/internal/types"
)

type contextKey struct{}

var principalContextKey = contextKey{}

// WithPrincipal returns a new context carrying the resolved principal.
func WithPrincipal(ctx context.Context, p *types.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// GetPrincipal retrieves the principal from the context.
// Returns nil and false if no principal has been resolved.
func GetPrincipal(ctx context.Context) (*types.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(*types.Principal)
	return p, ok
}
