// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tracing

import "errors"

var errNoEndpoint = errors.New("no otel exporter endpoint configured")
