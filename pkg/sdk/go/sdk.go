// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package sdk

import (
	"bytes"
	"crypto/tls"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/hybridfuel/hybridfuel"
	"github.com/hybridfuel/hybridfuel/blend"
	"github.com/hybridfuel/hybridfuel/feedstock"
	"github.com/hybridfuel/hybridfuel/pkg/errors"
	"github.com/hybridfuel/hybridfuel/telemetry"
	"moul.io/http2curl"
)

const (
	// CTJSON represents JSON content type.
	CTJSON ContentType = "application/json"

	// CTCSV represents CSV content type.
	CTCSV ContentType = "text/csv"

	defTimeout = 30 * time.Second
)

// ContentType represents all possible content types.
type ContentType string

var _ SDK = (*hfSDK)(nil)

// ReadingsPage contains the most recent readings in arrival order.
type ReadingsPage struct {
	Limit    int                 `json:"limit"`
	Total    int                 `json:"total"`
	Readings []telemetry.Reading `json:"readings"`
}

// ImportResult describes an applied history import.
type ImportResult struct {
	Mode     string `json:"mode"`
	Imported int    `json:"imported"`
	Total    int    `json:"total"`
	Warning  string `json:"warning,omitempty"`
}

// SDK contains the HybridFuel API.
//
// Example:
//
//	import sdk "github.com/hybridfuel/hybridfuel/pkg/sdk/go"
//
//	conf := sdk.Config{URL: "http://localhost:9030"}
//	hfSDK := sdk.NewSDK(conf)
//	reading, _ := hfSDK.LatestReading()
//	fmt.Println(reading.Temperature)
type SDK interface {
	// LatestReading returns the most recent reading.
	LatestReading() (telemetry.Reading, errors.SDKError)

	// Readings returns up to limit most recent readings.
	Readings(limit int) (ReadingsPage, errors.SDKError)

	// CurrentReading returns the latest reading with deltas against the
	// reading back entries earlier.
	CurrentReading(back int) (telemetry.Snapshot, errors.SDKError)

	// Summary returns per-field statistics over the last limit readings.
	Summary(limit int) (telemetry.Summary, errors.SDKError)

	// ImportReadings uploads a history CSV file. Mode is merge or replace.
	ImportReadings(csv []byte, mode string) (ImportResult, errors.SDKError)

	// ExportReadings downloads the full history as CSV.
	ExportReadings() ([]byte, errors.SDKError)

	// Subscription returns the current broker topic.
	Subscription() (string, errors.SDKError)

	// SwitchSubscription moves the listener to topic.
	SwitchSubscription(topic string) (string, errors.SDKError)

	// PredictBlend estimates a co-firing blend.
	PredictBlend(coalMW, biogasPct float64) (blend.Prediction, errors.SDKError)

	// OptimizeBlend finds the best safe blend for coalMW.
	OptimizeBlend(coalMW float64) (blend.Optimum, errors.SDKError)

	// Feedstock returns the feedstock sites map.
	Feedstock() (feedstock.Map, errors.SDKError)

	// Health returns service health information.
	Health() (hybridfuel.HealthInfo, errors.SDKError)
}

type hfSDK struct {
	url      string
	client   *http.Client
	curlFlag bool
}

// Config contains sdk configuration parameters.
type Config struct {
	URL             string
	TLSVerification bool
	CurlFlag        bool
	Timeout         time.Duration
}

// NewSDK returns new hybridfuel SDK instance.
func NewSDK(conf Config) SDK {
	timeout := conf.Timeout
	if timeout <= 0 {
		timeout = defTimeout
	}

	return &hfSDK{
		url: conf.URL,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: !conf.TLSVerification,
				},
			},
		},
		curlFlag: conf.CurlFlag,
	}
}

// processRequest creates and send a new HTTP request, and checks for errors in the HTTP response.
// It then returns the response headers, the response body, and the associated error(s) (if any).
func (sdk hfSDK) processRequest(method, reqURL string, data []byte, headers map[string]string, expectedRespCodes ...int) (http.Header, []byte, errors.SDKError) {
	req, err := http.NewRequest(method, reqURL, bytes.NewReader(data))
	if err != nil {
		return make(http.Header), []byte{}, errors.NewSDKError(err)
	}

	// Sets a default value for the Content-Type.
	// Overridden if Content-Type is passed in the headers arguments.
	req.Header.Set("Content-Type", string(CTJSON))

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	if sdk.curlFlag {
		curlCommand, err := http2curl.GetCurlCommand(req)
		if err != nil {
			return nil, nil, errors.NewSDKError(err)
		}
		log.Println(curlCommand.String())
	}

	resp, err := sdk.client.Do(req)
	if err != nil {
		return make(http.Header), []byte{}, errors.NewSDKError(err)
	}
	defer resp.Body.Close()

	sdkerr := errors.CheckError(resp, expectedRespCodes...)
	if sdkerr != nil {
		return make(http.Header), []byte{}, sdkerr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return make(http.Header), []byte{}, errors.NewSDKError(err)
	}

	return resp.Header, body, nil
}
