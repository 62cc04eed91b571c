// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package migrations

import (
	"regexp"
	"strings"
	"testing"

	"github.com/agencyos/portal/internal/types"
)

var priorityCheckPattern = regexp.MustCompile(`priority TEXT NOT NULL DEFAULT 'medium' CHECK \(priority IN \(([^)]+)\)\)`)

// The schema's priority constraint must admit exactly the values the
// application accepts, or rows the database allows would fail validation
// everywhere else.
func TestInitialSchema_PriorityCheckMatchesApplication(t *testing.T) {
	schema, err := EmbedMigrations.ReadFile("00001_initial_schema.sql")
	if err != nil {
		t.Fatalf("reading embedded schema: %v", err)
	}

	match := priorityCheckPattern.FindStringSubmatch(string(schema))
	if match == nil {
		t.Fatal("priority CHECK constraint not found in initial schema")
	}

	allowed := map[string]bool{}
	for _, raw := range strings.Split(match[1], ",") {
		allowed[strings.Trim(strings.TrimSpace(raw), "'")] = true
	}

	for _, p := range []types.RequestPriority{types.PriorityLow, types.PriorityMedium, types.PriorityHigh} {
		if !allowed[string(p)] {
			t.Errorf("schema rejects priority %q that the application accepts", p)
		}
		delete(allowed, string(p))
	}
	for extra := range allowed {
		if !types.RequestPriority(extra).Valid() {
			t.Errorf("schema admits priority %q that the application rejects", extra)
		}
	}
}
