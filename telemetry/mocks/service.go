// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"context"

	"github.com/hybridfuel/hybridfuel/telemetry"
	"github.com/stretchr/testify/mock"
)

var _ telemetry.Service = (*Service)(nil)

type Service struct {
	mock.Mock
}

func (m *Service) Sync(ctx context.Context) (int, error) {
	ret := m.Called(ctx)

	return ret.Int(0), ret.Error(1)
}

func (m *Service) Latest(ctx context.Context) (telemetry.Reading, error) {
	ret := m.Called(ctx)

	return ret.Get(0).(telemetry.Reading), ret.Error(1)
}

func (m *Service) Tail(ctx context.Context, n int) ([]telemetry.Reading, error) {
	ret := m.Called(ctx, n)

	return ret.Get(0).([]telemetry.Reading), ret.Error(1)
}

func (m *Service) Current(ctx context.Context, nBack int) (telemetry.Snapshot, error) {
	ret := m.Called(ctx, nBack)

	return ret.Get(0).(telemetry.Snapshot), ret.Error(1)
}

func (m *Service) Summary(ctx context.Context, n int) (telemetry.Summary, error) {
	ret := m.Called(ctx, n)

	return ret.Get(0).(telemetry.Summary), ret.Error(1)
}

func (m *Service) Import(ctx context.Context, batch []telemetry.Reading, mode telemetry.ImportMode) (int, error) {
	ret := m.Called(ctx, batch, mode)

	return ret.Int(0), ret.Error(1)
}

func (m *Service) Export(ctx context.Context) ([]telemetry.Reading, error) {
	ret := m.Called(ctx)

	return ret.Get(0).([]telemetry.Reading), ret.Error(1)
}

func (m *Service) Persist(ctx context.Context) error {
	ret := m.Called(ctx)

	return ret.Error(0)
}

func (m *Service) Restore(ctx context.Context) error {
	ret := m.Called(ctx)

	return ret.Error(0)
}

func (m *Service) Topic(ctx context.Context) (string, error) {
	ret := m.Called(ctx)

	return ret.String(0), ret.Error(1)
}

func (m *Service) SwitchTopic(ctx context.Context, topic string) error {
	ret := m.Called(ctx, topic)

	return ret.Error(0)
}
