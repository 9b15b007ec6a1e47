// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"context"

	"github.com/hybridfuel/hybridfuel/pkg/tracing"
	"github.com/hybridfuel/hybridfuel/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type tracingMiddleware struct {
	tracer trace.Tracer
	svc    telemetry.Service
}

var _ telemetry.Service = (*tracingMiddleware)(nil)

// NewTracingMiddleware returns a traced telemetry service.
func NewTracingMiddleware(tracer trace.Tracer, svc telemetry.Service) telemetry.Service {
	return &tracingMiddleware{
		tracer: tracer,
		svc:    svc,
	}
}

func (tm *tracingMiddleware) Sync(ctx context.Context) (int, error) {
	ctx, span := tracing.StartSpan(ctx, tm.tracer, "sync")
	defer span.End()

	return tm.svc.Sync(ctx)
}

func (tm *tracingMiddleware) Latest(ctx context.Context) (telemetry.Reading, error) {
	ctx, span := tracing.StartSpan(ctx, tm.tracer, "latest")
	defer span.End()

	return tm.svc.Latest(ctx)
}

func (tm *tracingMiddleware) Tail(ctx context.Context, n int) ([]telemetry.Reading, error) {
	ctx, span := tracing.StartSpan(ctx, tm.tracer, "tail", trace.WithAttributes(
		attribute.Int("limit", n),
	))
	defer span.End()

	return tm.svc.Tail(ctx, n)
}

func (tm *tracingMiddleware) Current(ctx context.Context, nBack int) (telemetry.Snapshot, error) {
	ctx, span := tracing.StartSpan(ctx, tm.tracer, "current", trace.WithAttributes(
		attribute.Int("back", nBack),
	))
	defer span.End()

	return tm.svc.Current(ctx, nBack)
}

func (tm *tracingMiddleware) Summary(ctx context.Context, n int) (telemetry.Summary, error) {
	ctx, span := tracing.StartSpan(ctx, tm.tracer, "summary", trace.WithAttributes(
		attribute.Int("limit", n),
	))
	defer span.End()

	return tm.svc.Summary(ctx, n)
}

func (tm *tracingMiddleware) Import(ctx context.Context, batch []telemetry.Reading, mode telemetry.ImportMode) (int, error) {
	ctx, span := tracing.StartSpan(ctx, tm.tracer, "import", trace.WithAttributes(
		attribute.String("mode", string(mode)),
		attribute.Int("batch", len(batch)),
	))
	defer span.End()

	return tm.svc.Import(ctx, batch, mode)
}

func (tm *tracingMiddleware) Export(ctx context.Context) ([]telemetry.Reading, error) {
	ctx, span := tracing.StartSpan(ctx, tm.tracer, "export")
	defer span.End()

	return tm.svc.Export(ctx)
}

func (tm *tracingMiddleware) Persist(ctx context.Context) error {
	ctx, span := tracing.StartSpan(ctx, tm.tracer, "persist")
	defer span.End()

	return tm.svc.Persist(ctx)
}

func (tm *tracingMiddleware) Restore(ctx context.Context) error {
	ctx, span := tracing.StartSpan(ctx, tm.tracer, "restore")
	defer span.End()

	return tm.svc.Restore(ctx)
}

func (tm *tracingMiddleware) Topic(ctx context.Context) (string, error) {
	ctx, span := tracing.StartSpan(ctx, tm.tracer, "topic")
	defer span.End()

	return tm.svc.Topic(ctx)
}

func (tm *tracingMiddleware) SwitchTopic(ctx context.Context, topic string) error {
	ctx, span := tracing.StartSpan(ctx, tm.tracer, "switch_topic", trace.WithAttributes(
		attribute.String("topic", topic),
	))
	defer span.End()

	return tm.svc.SwitchTopic(ctx, topic)
}
