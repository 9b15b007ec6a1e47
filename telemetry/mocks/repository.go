// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"context"

	"github.com/hybridfuel/hybridfuel/telemetry"
	"github.com/stretchr/testify/mock"
)

var _ telemetry.Repository = (*Repository)(nil)

type Repository struct {
	mock.Mock
}

func (m *Repository) Save(ctx context.Context, readings []telemetry.Reading) error {
	ret := m.Called(ctx, readings)

	return ret.Error(0)
}

func (m *Repository) Load(ctx context.Context) ([]telemetry.Reading, error) {
	ret := m.Called(ctx)

	return ret.Get(0).([]telemetry.Reading), ret.Error(1)
}
