// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package sdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hybridfuel/hybridfuel"
	"github.com/hybridfuel/hybridfuel/pkg/errors"
)

func (sdk hfSDK) Health() (hybridfuel.HealthInfo, errors.SDKError) {
	reqURL := fmt.Sprintf("%s/health", sdk.url)

	_, body, sdkerr := sdk.processRequest(http.MethodGet, reqURL, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return hybridfuel.HealthInfo{}, sdkerr
	}

	var h hybridfuel.HealthInfo
	if err := json.Unmarshal(body, &h); err != nil {
		return hybridfuel.HealthInfo{}, errors.NewSDKError(err)
	}

	return h, nil
}
