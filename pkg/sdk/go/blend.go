// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package sdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hybridfuel/hybridfuel/blend"
	"github.com/hybridfuel/hybridfuel/pkg/errors"
)

const blendEndpoint = "blend"

type blendReq struct {
	CoalMW    float64  `json:"coal_mw"`
	BiogasPct *float64 `json:"biogas_pct,omitempty"`
}

func (sdk hfSDK) PredictBlend(coalMW, biogasPct float64) (blend.Prediction, errors.SDKError) {
	data, err := json.Marshal(blendReq{CoalMW: coalMW, BiogasPct: &biogasPct})
	if err != nil {
		return blend.Prediction{}, errors.NewSDKError(err)
	}
	reqURL := fmt.Sprintf("%s/%s/predict", sdk.url, blendEndpoint)

	_, body, sdkerr := sdk.processRequest(http.MethodPost, reqURL, data, nil, http.StatusOK)
	if sdkerr != nil {
		return blend.Prediction{}, sdkerr
	}

	var p blend.Prediction
	if err := json.Unmarshal(body, &p); err != nil {
		return blend.Prediction{}, errors.NewSDKError(err)
	}

	return p, nil
}

func (sdk hfSDK) OptimizeBlend(coalMW float64) (blend.Optimum, errors.SDKError) {
	data, err := json.Marshal(blendReq{CoalMW: coalMW})
	if err != nil {
		return blend.Optimum{}, errors.NewSDKError(err)
	}
	reqURL := fmt.Sprintf("%s/%s/optimize", sdk.url, blendEndpoint)

	_, body, sdkerr := sdk.processRequest(http.MethodPost, reqURL, data, nil, http.StatusOK)
	if sdkerr != nil {
		return blend.Optimum{}, sdkerr
	}

	var o blend.Optimum
	if err := json.Unmarshal(body, &o); err != nil {
		return blend.Optimum{}, errors.NewSDKError(err)
	}

	return o, nil
}
