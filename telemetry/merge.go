// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"slices"
	"strings"
)

// ImportMode selects how an imported batch combines with the history.
type ImportMode string

const (
	// ImportReplace discards the history and keeps the batch, minus
	// consecutive repeats of a timestamp.
	ImportReplace ImportMode = "replace"
	// ImportMerge unions both, keeping existing entries on timestamp
	// collisions, and re-sorts by timestamp.
	ImportMerge ImportMode = "merge"
)

// ParseImportMode parses a mode name; empty means ImportMerge.
func ParseImportMode(s string) (ImportMode, error) {
	switch ImportMode(strings.ToLower(strings.TrimSpace(s))) {
	case ImportMerge, "":
		return ImportMerge, nil
	case ImportReplace:
		return ImportReplace, nil
	default:
		return "", ErrInvalidMode
	}
}

// Import applies batch according to mode. Merged history is ordered by
// timestamp rather than arrival.
func (h *History) Import(batch []Reading, mode ImportMode) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch mode {
	case ImportReplace:
		h.entries = collapse(batch)
	case ImportMerge:
		h.entries = merge(h.entries, batch)
	default:
		return ErrInvalidMode
	}
	h.trim()
	return nil
}

// collapse drops readings whose timestamp equals the one kept before them,
// the same rule Append applies to live readings.
func collapse(batch []Reading) []Reading {
	out := make([]Reading, 0, len(batch))
	for _, r := range batch {
		if n := len(out); n > 0 && out[n-1].Timestamp.Equal(r.Timestamp) {
			continue
		}
		out = append(out, r)
	}
	return out
}

type instant struct {
	sec  int64
	nsec int
}

func merge(existing, batch []Reading) []Reading {
	seen := make(map[instant]struct{}, len(existing)+len(batch))
	out := make([]Reading, 0, len(existing)+len(batch))
	for _, src := range [][]Reading{existing, batch} {
		for _, r := range src {
			k := instant{r.Timestamp.Unix(), r.Timestamp.Nanosecond()}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b Reading) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
	return out
}
