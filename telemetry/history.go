// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"iter"
	"sync"
)

// History is the ordered log of readings in arrival order. It is safe for
// concurrent use.
type History struct {
	mu       sync.RWMutex
	entries  []Reading
	capacity int
}

// NewHistory returns a History retaining the last capacity readings; 0
// means unbounded.
func NewHistory(capacity int) *History {
	if capacity < 0 {
		capacity = 0
	}
	return &History{capacity: capacity}
}

// Append adds r unless its timestamp equals the last entry's. It reports
// whether r was stored.
func (h *History) Append(r Reading) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n > 0 && h.entries[n-1].Timestamp.Equal(r.Timestamp) {
		return false
	}
	h.entries = append(h.entries, r)
	h.trim()
	return true
}

func (h *History) trim() {
	if h.capacity > 0 && len(h.entries) > h.capacity {
		h.entries = h.entries[len(h.entries)-h.capacity:]
	}
}

// Latest returns the last appended reading or def when empty.
func (h *History) Latest(def Reading) Reading {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.entries) == 0 {
		return def
	}
	return h.entries[len(h.entries)-1]
}

// Tail yields the last n readings in arrival order, as of the call.
// Ranging over the sequence again replays the same readings.
func (h *History) Tail(n int) iter.Seq[Reading] {
	snap := h.last(n)
	return func(yield func(Reading) bool) {
		for _, r := range snap {
			if !yield(r) {
				return
			}
		}
	}
}

func (h *History) last(n int) []Reading {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if n <= 0 {
		return nil
	}
	if n > len(h.entries) {
		n = len(h.entries)
	}
	out := make([]Reading, n)
	copy(out, h.entries[len(h.entries)-n:])
	return out
}

// Delta is the latest value of f minus its value nBack entries earlier,
// or 0 when there are not enough entries.
func (h *History) Delta(f Field, nBack int) float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := len(h.entries)
	if nBack <= 0 || n <= nBack {
		return 0
	}
	return h.entries[n-1].Value(f) - h.entries[n-1-nBack].Value(f)
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

func (h *History) Capacity() int {
	return h.capacity
}

// Snapshot returns a copy of every entry.
func (h *History) Snapshot() []Reading {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Reading, len(h.entries))
	copy(out, h.entries)
	return out
}
