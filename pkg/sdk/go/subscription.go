// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package sdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hybridfuel/hybridfuel/pkg/errors"
)

const subscriptionEndpoint = "subscription"

type subscription struct {
	Topic string `json:"topic"`
}

func (sdk hfSDK) Subscription() (string, errors.SDKError) {
	reqURL := fmt.Sprintf("%s/%s", sdk.url, subscriptionEndpoint)

	_, body, sdkerr := sdk.processRequest(http.MethodGet, reqURL, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return "", sdkerr
	}

	var sub subscription
	if err := json.Unmarshal(body, &sub); err != nil {
		return "", errors.NewSDKError(err)
	}

	return sub.Topic, nil
}

func (sdk hfSDK) SwitchSubscription(topic string) (string, errors.SDKError) {
	data, err := json.Marshal(subscription{Topic: topic})
	if err != nil {
		return "", errors.NewSDKError(err)
	}
	reqURL := fmt.Sprintf("%s/%s", sdk.url, subscriptionEndpoint)

	_, body, sdkerr := sdk.processRequest(http.MethodPut, reqURL, data, nil, http.StatusOK)
	if sdkerr != nil {
		return "", sdkerr
	}

	var sub subscription
	if err := json.Unmarshal(body, &sub); err != nil {
		return "", errors.NewSDKError(err)
	}

	return sub.Topic, nil
}
