// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli

import hfsdk "github.com/hybridfuel/hybridfuel/pkg/sdk/go"

// Keep SDK handle in global var.
var sdk hfsdk.SDK

// SetSDK sets hybridfuel SDK instance.
func SetSDK(s hfsdk.SDK) {
	sdk = s
}
