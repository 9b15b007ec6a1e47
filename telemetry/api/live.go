// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hybridfuel/hybridfuel/pkg/apiutil"
	"github.com/hybridfuel/hybridfuel/pkg/errors"
	"github.com/hybridfuel/hybridfuel/pkg/ticker"
	"github.com/hybridfuel/hybridfuel/telemetry"
)

const writeTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// liveHandler streams the current snapshot to a websocket client every time
// the latest reading changes.
func liveHandler(svc telemetry.Service, logger *slog.Logger, interval time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		back, err := apiutil.ReadNumQuery(r, backKey, defBack)
		if err == nil {
			err = currentReq{back: back}.validate()
		}
		if err != nil {
			encodeError(r.Context(), errors.Wrap(apiutil.ErrValidation, err), w)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("Failed to upgrade connection to websocket", slog.Any("error", err))
			return
		}
		defer conn.Close()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Client frames are discarded; a read error means the client left.
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		t := ticker.NewTicker(interval)
		defer t.Stop()

		var (
			last time.Time
			sent bool
		)
		for {
			snap, err := svc.Current(ctx, back)
			if err != nil {
				logger.Warn("Failed to read current reading for live stream", slog.Any("error", err))
				return
			}
			if !sent || !snap.Reading.Timestamp.Equal(last) {
				if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
					return
				}
				if err := conn.WriteJSON(snapshotRes{Snapshot: snap}); err != nil {
					logger.Debug("Live stream client disconnected", slog.Any("error", err))
					return
				}
				last, sent = snap.Reading.Timestamp, true
			}

			select {
			case <-ctx.Done():
				_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
				return
			case <-t.Tick():
			}
		}
	}
}
