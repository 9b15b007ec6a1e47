// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package ticker wraps time.Ticker behind an interface so periodic loops
// can be driven by a fake clock in tests.
package ticker

import "time"

type Ticker interface {
	Tick() <-chan time.Time
	Stop()
}

type timeTicker struct {
	*time.Ticker
}

// NewTicker returns a Ticker firing every d. A non-positive d falls back
// to one second.
func NewTicker(d time.Duration) Ticker {
	if d <= 0 {
		d = time.Second
	}
	return &timeTicker{time.NewTicker(d)}
}

func (t *timeTicker) Tick() <-chan time.Time {
	return t.C
}

// Manual is a Ticker that fires only when Fire is called.
type Manual struct {
	c chan time.Time
}

var _ Ticker = (*Manual)(nil)

// NewManual returns a Manual ticker.
func NewManual() *Manual {
	return &Manual{c: make(chan time.Time)}
}

// Fire delivers one tick, blocking until it is received.
func (m *Manual) Fire() {
	m.c <- time.Now()
}

func (m *Manual) Tick() <-chan time.Time {
	return m.c
}

func (m *Manual) Stop() {}
