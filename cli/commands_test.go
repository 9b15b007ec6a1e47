// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli_test

// Readings commands
const (
	latestCmd  = "latest"
	listCmd    = "list"
	currentCmd = "current"
	summaryCmd = "summary"
	importCmd  = "import"
	exportCmd  = "export"
)

// Subscription commands
const (
	getCmd    = "get"
	switchCmd = "switch"
)

// Blend commands
const (
	predictCmd  = "predict"
	optimizeCmd = "optimize"
)
