// Copyright 2026 AgencyOS Ltd.
// SPDX-License-Identifier: AGPL-3.0

package main

import "github.com/agencyos/portal/cmd"

func main() {
	cmd.Execute()
}
