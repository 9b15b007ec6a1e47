// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package sdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hybridfuel/hybridfuel/feedstock"
	"github.com/hybridfuel/hybridfuel/pkg/errors"
)

func (sdk hfSDK) Feedstock() (feedstock.Map, errors.SDKError) {
	reqURL := fmt.Sprintf("%s/feedstock", sdk.url)

	_, body, sdkerr := sdk.processRequest(http.MethodGet, reqURL, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return feedstock.Map{}, sdkerr
	}

	var m feedstock.Map
	if err := json.Unmarshal(body, &m); err != nil {
		return feedstock.Map{}, errors.NewSDKError(err)
	}

	return m, nil
}
