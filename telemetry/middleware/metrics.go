// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"context"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/hybridfuel/hybridfuel/telemetry"
)

type metricsMiddleware struct {
	counter metrics.Counter
	latency metrics.Histogram
	service telemetry.Service
}

var _ telemetry.Service = (*metricsMiddleware)(nil)

// NewMetricsMiddleware instruments the telemetry service by tracking
// request count and latency per method.
func NewMetricsMiddleware(counter metrics.Counter, latency metrics.Histogram, service telemetry.Service) telemetry.Service {
	return &metricsMiddleware{
		counter: counter,
		latency: latency,
		service: service,
	}
}

func (mm *metricsMiddleware) observe(method string, begin time.Time) {
	mm.counter.With("method", method).Add(1)
	mm.latency.With("method", method).Observe(time.Since(begin).Seconds())
}

func (mm *metricsMiddleware) Sync(ctx context.Context) (int, error) {
	defer mm.observe("sync", time.Now())
	return mm.service.Sync(ctx)
}

func (mm *metricsMiddleware) Latest(ctx context.Context) (telemetry.Reading, error) {
	defer mm.observe("latest", time.Now())
	return mm.service.Latest(ctx)
}

func (mm *metricsMiddleware) Tail(ctx context.Context, n int) ([]telemetry.Reading, error) {
	defer mm.observe("tail", time.Now())
	return mm.service.Tail(ctx, n)
}

func (mm *metricsMiddleware) Current(ctx context.Context, nBack int) (telemetry.Snapshot, error) {
	defer mm.observe("current", time.Now())
	return mm.service.Current(ctx, nBack)
}

func (mm *metricsMiddleware) Summary(ctx context.Context, n int) (telemetry.Summary, error) {
	defer mm.observe("summary", time.Now())
	return mm.service.Summary(ctx, n)
}

func (mm *metricsMiddleware) Import(ctx context.Context, batch []telemetry.Reading, mode telemetry.ImportMode) (int, error) {
	defer mm.observe("import", time.Now())
	return mm.service.Import(ctx, batch, mode)
}

func (mm *metricsMiddleware) Export(ctx context.Context) ([]telemetry.Reading, error) {
	defer mm.observe("export", time.Now())
	return mm.service.Export(ctx)
}

func (mm *metricsMiddleware) Persist(ctx context.Context) error {
	defer mm.observe("persist", time.Now())
	return mm.service.Persist(ctx)
}

func (mm *metricsMiddleware) Restore(ctx context.Context) error {
	defer mm.observe("restore", time.Now())
	return mm.service.Restore(ctx)
}

func (mm *metricsMiddleware) Topic(ctx context.Context) (string, error) {
	defer mm.observe("topic", time.Now())
	return mm.service.Topic(ctx)
}

func (mm *metricsMiddleware) SwitchTopic(ctx context.Context, topic string) error {
	defer mm.observe("switch_topic", time.Now())
	return mm.service.SwitchTopic(ctx, topic)
}
