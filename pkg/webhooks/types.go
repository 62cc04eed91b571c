// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

// KratosIdentity is the identity payload Kratos posts to registration hooks.
type KratosIdentity struct {
	ID     string       `json:"id"`
	Traits KratosTraits `json:"traits"`
}

type KratosTraits struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// registrationHookBody is the body of a Kratos "after registration" web_hook.
type registrationHookBody struct {
	Identity KratosIdentity `json:"identity"`
}
