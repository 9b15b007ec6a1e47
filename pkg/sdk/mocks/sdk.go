// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"github.com/hybridfuel/hybridfuel"
	"github.com/hybridfuel/hybridfuel/blend"
	"github.com/hybridfuel/hybridfuel/feedstock"
	"github.com/hybridfuel/hybridfuel/pkg/errors"
	sdk "github.com/hybridfuel/hybridfuel/pkg/sdk/go"
	"github.com/hybridfuel/hybridfuel/telemetry"
	"github.com/stretchr/testify/mock"
)

var _ sdk.SDK = (*SDK)(nil)

type SDK struct {
	mock.Mock
}

func sdkErr(ret mock.Arguments, i int) errors.SDKError {
	if e, ok := ret.Get(i).(errors.SDKError); ok {
		return e
	}
	return nil
}

func (m *SDK) LatestReading() (telemetry.Reading, errors.SDKError) {
	ret := m.Called()

	return ret.Get(0).(telemetry.Reading), sdkErr(ret, 1)
}

func (m *SDK) Readings(limit int) (sdk.ReadingsPage, errors.SDKError) {
	ret := m.Called(limit)

	return ret.Get(0).(sdk.ReadingsPage), sdkErr(ret, 1)
}

func (m *SDK) CurrentReading(back int) (telemetry.Snapshot, errors.SDKError) {
	ret := m.Called(back)

	return ret.Get(0).(telemetry.Snapshot), sdkErr(ret, 1)
}

func (m *SDK) Summary(limit int) (telemetry.Summary, errors.SDKError) {
	ret := m.Called(limit)

	return ret.Get(0).(telemetry.Summary), sdkErr(ret, 1)
}

func (m *SDK) ImportReadings(csv []byte, mode string) (sdk.ImportResult, errors.SDKError) {
	ret := m.Called(csv, mode)

	return ret.Get(0).(sdk.ImportResult), sdkErr(ret, 1)
}

func (m *SDK) ExportReadings() ([]byte, errors.SDKError) {
	ret := m.Called()

	return ret.Get(0).([]byte), sdkErr(ret, 1)
}

func (m *SDK) Subscription() (string, errors.SDKError) {
	ret := m.Called()

	return ret.String(0), sdkErr(ret, 1)
}

func (m *SDK) SwitchSubscription(topic string) (string, errors.SDKError) {
	ret := m.Called(topic)

	return ret.String(0), sdkErr(ret, 1)
}

func (m *SDK) PredictBlend(coalMW, biogasPct float64) (blend.Prediction, errors.SDKError) {
	ret := m.Called(coalMW, biogasPct)

	return ret.Get(0).(blend.Prediction), sdkErr(ret, 1)
}

func (m *SDK) OptimizeBlend(coalMW float64) (blend.Optimum, errors.SDKError) {
	ret := m.Called(coalMW)

	return ret.Get(0).(blend.Optimum), sdkErr(ret, 1)
}

func (m *SDK) Health() (hybridfuel.HealthInfo, errors.SDKError) {
	ret := m.Called()

	return ret.Get(0).(hybridfuel.HealthInfo), sdkErr(ret, 1)
}

func (m *SDK) Feedstock() (feedstock.Map, errors.SDKError) {
	ret := m.Called()

	return ret.Get(0).(feedstock.Map), sdkErr(ret, 1)
}
