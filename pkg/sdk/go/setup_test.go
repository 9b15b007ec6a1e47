// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package sdk_test

import (
	"net/http/httptest"
	"time"

	"github.com/hybridfuel/hybridfuel/logger"
	sdk "github.com/hybridfuel/hybridfuel/pkg/sdk/go"
	"github.com/hybridfuel/hybridfuel/pkg/uuid"
	"github.com/hybridfuel/hybridfuel/telemetry"
	"github.com/hybridfuel/hybridfuel/telemetry/api"
	"github.com/hybridfuel/hybridfuel/telemetry/mocks"
)

const instanceID = "5de9b29a-feb9-11ed-be56-0242ac120002"

var base = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func setupServer() (*httptest.Server, *mocks.Service) {
	svc := new(mocks.Service)
	mux := api.MakeHandler(svc, logger.NewMock(), uuid.NewMock(), instanceID, time.Second)

	return httptest.NewServer(mux), svc
}

func newSDK(url string) sdk.SDK {
	return sdk.NewSDK(sdk.Config{URL: url})
}

func readingAt(sec int) telemetry.Reading {
	return telemetry.Reading{
		Timestamp:   base.Add(time.Duration(sec) * time.Second),
		Temperature: 20 + float64(sec),
		GasLevel:    410,
		DustLevel:   2.5,
		Status:      telemetry.StatusWarning,
	}
}
