// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package main contains the hybridfuel telemetry service main function.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/hybridfuel/hybridfuel/internal/server"
	httpserver "github.com/hybridfuel/hybridfuel/internal/server/http"
	hflog "github.com/hybridfuel/hybridfuel/logger"
	"github.com/hybridfuel/hybridfuel/pkg/jaeger"
	"github.com/hybridfuel/hybridfuel/pkg/prometheus"
	"github.com/hybridfuel/hybridfuel/pkg/ticker"
	"github.com/hybridfuel/hybridfuel/pkg/uuid"
	"github.com/hybridfuel/hybridfuel/telemetry"
	httpapi "github.com/hybridfuel/hybridfuel/telemetry/api"
	"github.com/hybridfuel/hybridfuel/telemetry/csvfile"
	"github.com/hybridfuel/hybridfuel/telemetry/middleware"
	"github.com/hybridfuel/hybridfuel/telemetry/mqtt"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"
)

const (
	svcName        = "hybridfuel"
	envPrefix      = "HF_"
	envPrefixHTTP  = "HF_HTTP_"
	envPrefixMQTT  = "HF_MQTT_"
	defSvcHTTPPort = "9030"
)

type config struct {
	LogLevel        string        `env:"LOG_LEVEL"        envDefault:"info"`
	InstanceID      string        `env:"INSTANCE_ID"      envDefault:""`
	HistoryFile     string        `env:"HISTORY_FILE"     envDefault:"sensor_history.csv"`
	HistoryCapacity int           `env:"HISTORY_CAPACITY" envDefault:"0"`
	HandoffCapacity int           `env:"HANDOFF_CAPACITY" envDefault:"0"`
	OverflowPolicy  string        `env:"OVERFLOW_POLICY"  envDefault:"drop_oldest"`
	PayloadFormat   string        `env:"PAYLOAD_FORMAT"   envDefault:"json"`
	SyncInterval    time.Duration `env:"SYNC_INTERVAL"    envDefault:"1s"`
	LiveInterval    time.Duration `env:"LIVE_INTERVAL"    envDefault:"1s"`
	JaegerURL       string        `env:"JAEGER_URL"       envDefault:""`
	TraceRatio      float64       `env:"JAEGER_TRACE_RATIO" envDefault:"1.0"`
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	cfg := config{}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		log.Fatalf("failed to load %s configuration : %s", svcName, err.Error())
	}

	logger, err := hflog.New(os.Stdout, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %s", err.Error())
	}

	var exitCode int
	defer hflog.ExitWithError(&exitCode)

	idp := uuid.New()
	if cfg.InstanceID == "" {
		if cfg.InstanceID, err = idp.ID(); err != nil {
			logger.Error(fmt.Sprintf("failed to generate instanceID: %s", err))
			exitCode = 1
			return
		}
	}

	tracer, shutdown, err := newTracer(ctx, cfg)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to init Jaeger: %s", err))
		exitCode = 1
		return
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Error(fmt.Sprintf("error shutting down tracer provider: %v", err))
		}
	}()

	policy, err := telemetry.ParseOverflowPolicy(cfg.OverflowPolicy)
	if err != nil {
		logger.Error(err.Error())
		exitCode = 1
		return
	}
	decoder, err := telemetry.NewDecoder(cfg.PayloadFormat, time.Now)
	if err != nil {
		logger.Error(err.Error())
		exitCode = 1
		return
	}

	handoff := telemetry.NewHandoff(cfg.HandoffCapacity, policy)
	history := telemetry.NewHistory(cfg.HistoryCapacity)
	repo := csvfile.NewRepository(cfg.HistoryFile)

	mqttCfg := mqtt.Config{}
	if err := env.ParseWithOptions(&mqttCfg, env.Options{Prefix: envPrefixMQTT}); err != nil {
		logger.Error(fmt.Sprintf("failed to load %s MQTT configuration : %s", svcName, err))
		exitCode = 1
		return
	}
	listener, err := mqtt.NewListener(mqttCfg, decoder, handoff, idp, logger,
		mqtt.WithCounters(
			prometheus.MakeCounter(svcName, "mqtt", "messages_received_total", "Number of messages received from the broker."),
			prometheus.MakeCounter(svcName, "mqtt", "decode_failures_total", "Number of payloads that could not be decoded."),
			prometheus.MakeCounter(svcName, "mqtt", "readings_dropped_total", "Number of readings dropped by a full handoff."),
			prometheus.MakeCounter(svcName, "mqtt", "stale_messages_total", "Number of messages dropped after a topic switch."),
		),
	)
	if err != nil {
		logger.Error(fmt.Sprintf("failed to create MQTT listener: %s", err))
		exitCode = 1
		return
	}

	svc := newService(history, handoff, repo, listener, logger, tracer)

	if err := svc.Restore(ctx); err != nil {
		logger.Warn("Starting with an empty history", slog.String("file", repo.Path()), slog.Any("error", err))
	}

	syncer := telemetry.NewSyncer(svc, handoff.Ready(), ticker.NewTicker(cfg.SyncInterval), logger)

	httpServerConfig := server.Config{Port: defSvcHTTPPort}
	if err := env.ParseWithOptions(&httpServerConfig, env.Options{Prefix: envPrefixHTTP}); err != nil {
		logger.Error(fmt.Sprintf("failed to load %s HTTP server configuration : %s", svcName, err))
		exitCode = 1
		return
	}
	hs := httpserver.New(ctx, cancel, svcName, httpServerConfig, httpapi.MakeHandler(svc, logger, idp, cfg.InstanceID, cfg.LiveInterval), logger)

	g.Go(func() error {
		return listener.Run(ctx)
	})

	g.Go(func() error {
		return syncer.Run(ctx)
	})

	g.Go(func() error {
		return hs.Start()
	})

	g.Go(func() error {
		return server.StopSignalHandler(ctx, cancel, logger, svcName, hs)
	})

	if err := g.Wait(); err != nil {
		logger.Error(fmt.Sprintf("%s service terminated: %s", svcName, err))
	}

	// Readings still buffered are flushed into the history before the last save.
	if _, err := svc.Sync(context.Background()); err != nil {
		logger.Warn("Failed to sync buffered readings on shutdown", slog.Any("error", err))
	}
	if err := svc.Persist(context.Background()); err != nil {
		logger.Error(fmt.Sprintf("failed to save history on shutdown: %s", err))
		exitCode = 1
	}
}

func newService(history *telemetry.History, handoff *telemetry.Handoff, repo telemetry.Repository, sub telemetry.Subscription, logger *slog.Logger, tracer trace.Tracer) telemetry.Service {
	svc := telemetry.NewService(history, handoff, repo, sub)
	svc = middleware.NewLoggingMiddleware(logger, svc)
	counter, latency := prometheus.MakeMetrics(svcName, "api")
	svc = middleware.NewMetricsMiddleware(counter, latency, svc)
	svc = middleware.NewTracingMiddleware(tracer, svc)

	return svc
}

// newTracer exports spans to Jaeger when a collector URL is configured and
// returns a no-op tracer otherwise.
func newTracer(ctx context.Context, cfg config) (trace.Tracer, func(context.Context) error, error) {
	if cfg.JaegerURL == "" {
		return noop.NewTracerProvider().Tracer(svcName), func(context.Context) error { return nil }, nil
	}

	u, err := url.Parse(cfg.JaegerURL)
	if err != nil {
		return nil, nil, err
	}
	tp, err := jaeger.NewProvider(ctx, svcName, *u, cfg.InstanceID, cfg.TraceRatio)
	if err != nil {
		return nil, nil, err
	}

	return tp.Tracer(svcName), tp.Shutdown, nil
}
