// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"context"
	"log/slog"

	"github.com/hybridfuel/hybridfuel/pkg/ticker"
)

// Syncer is the consumer loop. It drains the handoff into the history on
// every tick and whenever the handoff signals new data, then persists.
type Syncer struct {
	svc    Service
	ready  <-chan struct{}
	ticker ticker.Ticker
	logger *slog.Logger
}

// NewSyncer returns a Syncer. ready may be nil, leaving the ticker as the
// only trigger.
func NewSyncer(svc Service, ready <-chan struct{}, t ticker.Ticker, logger *slog.Logger) *Syncer {
	return &Syncer{
		svc:    svc,
		ready:  ready,
		ticker: t,
		logger: logger,
	}
}

// Run blocks until ctx is done.
func (s *Syncer) Run(ctx context.Context) error {
	defer s.ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.ticker.Tick():
			s.sync(ctx)
		case <-s.ready:
			s.sync(ctx)
		}
	}
}

func (s *Syncer) sync(ctx context.Context) {
	n, err := s.svc.Sync(ctx)
	if err != nil {
		s.logger.Warn("Failed to sync readings", slog.Any("error", err))
		return
	}
	if n == 0 {
		return
	}
	if err := s.svc.Persist(ctx); err != nil {
		s.logger.Warn("History kept in memory only", slog.Any("error", err))
	}
}
