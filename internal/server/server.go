// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package server holds the lifecycle plumbing shared by the service
// binaries: a common server contract and the stop-signal handler.
package server

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hybridfuel/hybridfuel/pkg/errors"
)

// Server is a long-running listener started and stopped by main.
type Server interface {
	Start() error
	Stop() error
}

// Config is the listen configuration, parsed with a per-server env prefix.
type Config struct {
	Host     string `env:"HOST"        envDefault:""`
	Port     string `env:"PORT"        envDefault:"9030"`
	CertFile string `env:"SERVER_CERT" envDefault:""`
	KeyFile  string `env:"SERVER_KEY"  envDefault:""`
}

// BaseServer carries what every server implementation reports and obeys.
type BaseServer struct {
	Ctx      context.Context
	Cancel   context.CancelFunc
	Name     string
	Address  string
	Config   Config
	Logger   *slog.Logger
	Protocol string
}

// stopAll stops every server, chaining the failures in stop order.
func stopAll(servers ...Server) error {
	var err error
	for _, s := range servers {
		serr := s.Stop()
		switch {
		case serr == nil:
		case err == nil:
			err = serr
		default:
			err = errors.Wrap(err, serr)
		}
	}
	return err
}

// StopSignalHandler blocks until SIGINT/SIGTERM or ctx is done. On a
// signal it stops every server and cancels ctx.
func StopSignalHandler(ctx context.Context, cancel context.CancelFunc, logger *slog.Logger, svcName string, servers ...Server) error {
	c := make(chan os.Signal, 2)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM, syscall.SIGABRT)
	defer signal.Stop(c)

	select {
	case sig := <-c:
		defer cancel()
		err := stopAll(servers...)
		if err != nil {
			logger.Error("Shutdown failed", slog.String("service", svcName), slog.Any("error", err))
		}
		logger.Info("Shutdown by signal", slog.String("service", svcName), slog.String("signal", sig.String()))
		return err
	case <-ctx.Done():
		return nil
	}
}
