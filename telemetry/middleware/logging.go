// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/hybridfuel/hybridfuel/telemetry"
)

type loggingMiddleware struct {
	logger  *slog.Logger
	service telemetry.Service
}

var _ telemetry.Service = (*loggingMiddleware)(nil)

// NewLoggingMiddleware adds logging facilities to the telemetry service.
func NewLoggingMiddleware(logger *slog.Logger, service telemetry.Service) telemetry.Service {
	return &loggingMiddleware{
		logger:  logger,
		service: service,
	}
}

func readingGroup(r telemetry.Reading) slog.Attr {
	return slog.Group("reading",
		slog.Time("timestamp", r.Timestamp),
		slog.Float64("temperature", r.Temperature),
		slog.Float64("gas_level", r.GasLevel),
		slog.Float64("dust_level", r.DustLevel),
		slog.String("status", string(r.Status)),
	)
}

// Sync runs on every tick, so only syncs that moved readings are logged,
// and at debug level.
func (lm *loggingMiddleware) Sync(ctx context.Context) (n int, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Int("appended", n),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Sync readings failed", args...)
			return
		}
		if n > 0 {
			lm.logger.Debug("Sync readings completed successfully", args...)
		}
	}(time.Now())

	return lm.service.Sync(ctx)
}

func (lm *loggingMiddleware) Latest(ctx context.Context) (r telemetry.Reading, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("request_id", middleware.GetReqID(ctx)),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("View latest reading failed", args...)
			return
		}
		args = append(args, readingGroup(r))
		lm.logger.Info("View latest reading completed successfully", args...)
	}(time.Now())

	return lm.service.Latest(ctx)
}

func (lm *loggingMiddleware) Tail(ctx context.Context, n int) (rs []telemetry.Reading, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("request_id", middleware.GetReqID(ctx)),
			slog.Group("page",
				slog.Int("limit", n),
				slog.Int("total", len(rs)),
			),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("List readings failed", args...)
			return
		}
		lm.logger.Info("List readings completed successfully", args...)
	}(time.Now())

	return lm.service.Tail(ctx, n)
}

func (lm *loggingMiddleware) Current(ctx context.Context, nBack int) (snap telemetry.Snapshot, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("request_id", middleware.GetReqID(ctx)),
			slog.Int("back", nBack),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("View current reading failed", args...)
			return
		}
		args = append(args, slog.Int("count", snap.Count))
		lm.logger.Info("View current reading completed successfully", args...)
	}(time.Now())

	return lm.service.Current(ctx, nBack)
}

func (lm *loggingMiddleware) Summary(ctx context.Context, n int) (sum telemetry.Summary, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("request_id", middleware.GetReqID(ctx)),
			slog.Int("limit", n),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("View summary failed", args...)
			return
		}
		args = append(args, slog.Int("count", sum.Count))
		lm.logger.Info("View summary completed successfully", args...)
	}(time.Now())

	return lm.service.Summary(ctx, n)
}

func (lm *loggingMiddleware) Import(ctx context.Context, batch []telemetry.Reading, mode telemetry.ImportMode) (n int, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("request_id", middleware.GetReqID(ctx)),
			slog.Group("import",
				slog.String("mode", string(mode)),
				slog.Int("batch", len(batch)),
				slog.Int("history", n),
			),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Import readings failed", args...)
			return
		}
		lm.logger.Info("Import readings completed successfully", args...)
	}(time.Now())

	return lm.service.Import(ctx, batch, mode)
}

func (lm *loggingMiddleware) Export(ctx context.Context) (rs []telemetry.Reading, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("request_id", middleware.GetReqID(ctx)),
			slog.Int("total", len(rs)),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Export readings failed", args...)
			return
		}
		lm.logger.Info("Export readings completed successfully", args...)
	}(time.Now())

	return lm.service.Export(ctx)
}

func (lm *loggingMiddleware) Persist(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Persist history failed", args...)
			return
		}
		lm.logger.Debug("Persist history completed successfully", args...)
	}(time.Now())

	return lm.service.Persist(ctx)
}

func (lm *loggingMiddleware) Restore(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Restore history failed", args...)
			return
		}
		lm.logger.Info("Restore history completed successfully", args...)
	}(time.Now())

	return lm.service.Restore(ctx)
}

func (lm *loggingMiddleware) Topic(ctx context.Context) (topic string, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("request_id", middleware.GetReqID(ctx)),
			slog.String("topic", topic),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("View subscription failed", args...)
			return
		}
		lm.logger.Info("View subscription completed successfully", args...)
	}(time.Now())

	return lm.service.Topic(ctx)
}

func (lm *loggingMiddleware) SwitchTopic(ctx context.Context, topic string) (err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("request_id", middleware.GetReqID(ctx)),
			slog.String("topic", topic),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Switch subscription failed", args...)
			return
		}
		lm.logger.Info("Switch subscription completed successfully", args...)
	}(time.Now())

	return lm.service.SwitchTopic(ctx, topic)
}
