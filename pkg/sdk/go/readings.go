// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package sdk

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hybridfuel/hybridfuel/pkg/errors"
	"github.com/hybridfuel/hybridfuel/telemetry"
)

const readingsEndpoint = "readings"

func (sdk hfSDK) LatestReading() (telemetry.Reading, errors.SDKError) {
	reqURL := fmt.Sprintf("%s/%s/latest", sdk.url, readingsEndpoint)

	_, body, sdkerr := sdk.processRequest(http.MethodGet, reqURL, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return telemetry.Reading{}, sdkerr
	}

	var r telemetry.Reading
	if err := json.Unmarshal(body, &r); err != nil {
		return telemetry.Reading{}, errors.NewSDKError(err)
	}

	return r, nil
}

func (sdk hfSDK) Readings(limit int) (ReadingsPage, errors.SDKError) {
	reqURL := withQuery(fmt.Sprintf("%s/%s", sdk.url, readingsEndpoint), "limit", limit)

	_, body, sdkerr := sdk.processRequest(http.MethodGet, reqURL, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return ReadingsPage{}, sdkerr
	}

	var page ReadingsPage
	if err := json.Unmarshal(body, &page); err != nil {
		return ReadingsPage{}, errors.NewSDKError(err)
	}

	return page, nil
}

func (sdk hfSDK) CurrentReading(back int) (telemetry.Snapshot, errors.SDKError) {
	reqURL := withQuery(fmt.Sprintf("%s/%s/current", sdk.url, readingsEndpoint), "back", back)

	_, body, sdkerr := sdk.processRequest(http.MethodGet, reqURL, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return telemetry.Snapshot{}, sdkerr
	}

	var snap telemetry.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return telemetry.Snapshot{}, errors.NewSDKError(err)
	}

	return snap, nil
}

func (sdk hfSDK) Summary(limit int) (telemetry.Summary, errors.SDKError) {
	reqURL := withQuery(fmt.Sprintf("%s/%s/summary", sdk.url, readingsEndpoint), "limit", limit)

	_, body, sdkerr := sdk.processRequest(http.MethodGet, reqURL, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return telemetry.Summary{}, sdkerr
	}

	var sum telemetry.Summary
	if err := json.Unmarshal(body, &sum); err != nil {
		return telemetry.Summary{}, errors.NewSDKError(err)
	}

	return sum, nil
}

func (sdk hfSDK) ImportReadings(csv []byte, mode string) (ImportResult, errors.SDKError) {
	reqURL := fmt.Sprintf("%s/%s/import", sdk.url, readingsEndpoint)
	if mode != "" {
		reqURL = fmt.Sprintf("%s?%s", reqURL, url.Values{"mode": []string{mode}}.Encode())
	}
	headers := map[string]string{"Content-Type": string(CTCSV)}

	_, body, sdkerr := sdk.processRequest(http.MethodPost, reqURL, csv, headers, http.StatusOK)
	if sdkerr != nil {
		return ImportResult{}, sdkerr
	}

	var res ImportResult
	if err := json.Unmarshal(body, &res); err != nil {
		return ImportResult{}, errors.NewSDKError(err)
	}

	return res, nil
}

func (sdk hfSDK) ExportReadings() ([]byte, errors.SDKError) {
	reqURL := fmt.Sprintf("%s/%s/export", sdk.url, readingsEndpoint)

	_, body, sdkerr := sdk.processRequest(http.MethodGet, reqURL, nil, nil, http.StatusOK)
	if sdkerr != nil {
		return nil, sdkerr
	}

	return body, nil
}

// withQuery adds key to reqURL only when val is set, leaving defaults to
// the server.
func withQuery(reqURL, key string, val int) string {
	if val == 0 {
		return reqURL
	}
	q := url.Values{}
	q.Add(key, strconv.Itoa(val))

	return fmt.Sprintf("%s?%s", reqURL, q.Encode())
}
