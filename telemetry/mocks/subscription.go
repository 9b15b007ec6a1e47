// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"context"

	"github.com/hybridfuel/hybridfuel/telemetry"
	"github.com/stretchr/testify/mock"
)

var _ telemetry.Subscription = (*Subscription)(nil)

type Subscription struct {
	mock.Mock
}

func (m *Subscription) Topic() string {
	ret := m.Called()

	return ret.String(0)
}

func (m *Subscription) SwitchTopic(ctx context.Context, topic string) error {
	ret := m.Called(ctx, topic)

	return ret.Error(0)
}
