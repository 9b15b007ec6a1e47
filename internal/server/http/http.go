// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hybridfuel/hybridfuel/internal/server"
)

const (
	stopWaitTime      = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
	httpProtocol      = "http"
	httpsProtocol     = "https"
)

// Server is an HTTP server bound to its lifecycle context.
type Server struct {
	server.BaseServer
	server *http.Server
}

var _ server.Server = (*Server)(nil)

// New wraps handler in an http.Server bound to config's host and port.
func New(ctx context.Context, cancel context.CancelFunc, name string, config server.Config, handler http.Handler, logger *slog.Logger) server.Server {
	addr := fmt.Sprintf("%s:%s", config.Host, config.Port)
	return &Server{
		BaseServer: server.BaseServer{
			Ctx:     ctx,
			Cancel:  cancel,
			Name:    name,
			Address: addr,
			Config:  config,
			Logger:  logger,
		},
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// Start serves until the server fails or its context ends, in which case
// the server is shut down gracefully.
func (s *Server) Start() error {
	errCh := make(chan error, 1)
	tls := s.Config.CertFile != "" || s.Config.KeyFile != ""

	s.Protocol = httpProtocol
	if tls {
		s.Protocol = httpsProtocol
	}
	s.Logger.Info("Server listening",
		slog.String("service", s.Name),
		slog.String("protocol", s.Protocol),
		slog.String("address", s.Address),
	)

	go func() {
		if tls {
			errCh <- s.server.ListenAndServeTLS(s.Config.CertFile, s.Config.KeyFile)
			return
		}
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case <-s.Ctx.Done():
		return s.Stop()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Stop shuts the server down, waiting at most stopWaitTime for open
// requests, and cancels the server context.
func (s *Server) Stop() error {
	defer s.Cancel()

	ctx, cancel := context.WithTimeout(context.Background(), stopWaitTime)
	defer cancel()

	attrs := []any{
		slog.String("service", s.Name),
		slog.String("protocol", s.Protocol),
		slog.String("address", s.Address),
	}
	if err := s.server.Shutdown(ctx); err != nil {
		s.Logger.Error("Server shutdown failed", append(attrs, slog.Any("error", err))...)
		return fmt.Errorf("%s %s server shutdown at %s: %w", s.Name, s.Protocol, s.Address, err)
	}
	s.Logger.Info("Server shut down", attrs...)

	return nil
}
