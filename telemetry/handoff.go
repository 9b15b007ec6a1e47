// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"strings"
	"sync"
)

// OverflowPolicy decides which reading a full Handoff gives up.
type OverflowPolicy string

const (
	// DropOldest evicts the head of the queue to make room.
	DropOldest OverflowPolicy = "drop_oldest"
	// DropNewest rejects the incoming reading.
	DropNewest OverflowPolicy = "drop_newest"
)

// ParseOverflowPolicy parses a policy name; empty means DropOldest.
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch OverflowPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case DropOldest, "":
		return DropOldest, nil
	case DropNewest:
		return DropNewest, nil
	default:
		return "", ErrInvalidPolicy
	}
}

// Pusher accepts readings without blocking.
type Pusher interface {
	// Push enqueues r and reports whether it was kept.
	Push(r Reading) bool
}

var _ Pusher = (*Handoff)(nil)

// Handoff is the FIFO between the broker callback and the consumer. Push
// and Drain never block on each other beyond the critical section.
type Handoff struct {
	mu       sync.Mutex
	buf      []Reading
	capacity int
	policy   OverflowPolicy
	dropped  uint64
	ready    chan struct{}
}

// NewHandoff returns a Handoff holding at most capacity readings; 0 means
// unbounded and policy is then never consulted.
func NewHandoff(capacity int, policy OverflowPolicy) *Handoff {
	if capacity < 0 {
		capacity = 0
	}
	if policy == "" {
		policy = DropOldest
	}
	return &Handoff{
		capacity: capacity,
		policy:   policy,
		ready:    make(chan struct{}, 1),
	}
}

func (h *Handoff) Push(r Reading) bool {
	h.mu.Lock()
	if h.capacity > 0 && len(h.buf) >= h.capacity {
		h.dropped++
		if h.policy == DropNewest {
			h.mu.Unlock()
			return false
		}
		h.buf = h.buf[1:]
	}
	h.buf = append(h.buf, r)
	h.mu.Unlock()

	select {
	case h.ready <- struct{}{}:
	default:
	}
	return true
}

// Drain removes and returns everything buffered, oldest first.
func (h *Handoff) Drain() []Reading {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := h.buf
	h.buf = nil
	return out
}

func (h *Handoff) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.buf)
}

// Dropped is the number of readings lost to the overflow policy.
func (h *Handoff) Dropped() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}

// Ready is signalled after a push. Several pushes may share one signal.
func (h *Handoff) Ready() <-chan struct{} {
	return h.ready
}
