// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"context"
	"strings"
	"sync"

	"github.com/hybridfuel/hybridfuel/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Repository stores the history between runs.
type Repository interface {
	// Save replaces the stored history with readings.
	Save(ctx context.Context, readings []Reading) error

	// Load returns the stored history in stored order. A missing store
	// is an empty history.
	Load(ctx context.Context) ([]Reading, error)
}

// Subscription is the broker topic the listener is attached to.
type Subscription interface {
	// Topic returns the current subscription topic.
	Topic() string

	// SwitchTopic moves the live subscription to topic.
	SwitchTopic(ctx context.Context, topic string) error
}

// Drainer is the consumer side of the handoff.
type Drainer interface {
	Drain() []Reading
}

// Snapshot is the latest reading together with its trend per field.
type Snapshot struct {
	Reading Reading           `json:"reading"`
	Deltas  map[Field]float64 `json:"deltas"`
	Count   int               `json:"count"`
}

// FieldSummary describes the distribution of one field.
type FieldSummary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summary aggregates the most recent readings.
type Summary struct {
	Count  int                    `json:"count"`
	Fields map[Field]FieldSummary `json:"fields"`
}

// Service specifies an API for reading and maintaining sensor telemetry.
type Service interface {
	// Sync moves buffered readings from the handoff into the history and
	// returns how many were appended.
	Sync(ctx context.Context) (int, error)

	// Latest returns the most recent reading, or the default reading.
	Latest(ctx context.Context) (Reading, error)

	// Tail returns up to n most recent readings in arrival order.
	Tail(ctx context.Context, n int) ([]Reading, error)

	// Current returns the latest reading with deltas against the reading
	// nBack entries earlier.
	Current(ctx context.Context, nBack int) (Snapshot, error)

	// Summary returns statistics over the last n readings.
	Summary(ctx context.Context, n int) (Summary, error)

	// Import applies an external batch of readings and persists the result.
	Import(ctx context.Context, batch []Reading, mode ImportMode) (int, error)

	// Export returns the full history.
	Export(ctx context.Context) ([]Reading, error)

	// Persist writes the history to the repository.
	Persist(ctx context.Context) error

	// Restore replaces the history with the repository contents.
	Restore(ctx context.Context) error

	// Topic returns the current subscription topic.
	Topic(ctx context.Context) (string, error)

	// SwitchTopic changes the subscription topic.
	SwitchTopic(ctx context.Context, topic string) error
}

var _ Service = (*service)(nil)

type service struct {
	history *History
	handoff Drainer
	repo    Repository
	sub     Subscription

	// persistMu orders snapshot and save so an older snapshot never
	// lands on disk after a newer one.
	persistMu sync.Mutex
}

// NewService returns a telemetry service instance.
func NewService(history *History, handoff Drainer, repo Repository, sub Subscription) Service {
	return &service{
		history: history,
		handoff: handoff,
		repo:    repo,
		sub:     sub,
	}
}

func (svc *service) Sync(_ context.Context) (int, error) {
	n := 0
	for _, r := range svc.handoff.Drain() {
		if svc.history.Append(r) {
			n++
		}
	}
	return n, nil
}

func (svc *service) Latest(_ context.Context) (Reading, error) {
	return svc.history.Latest(DefaultReading()), nil
}

func (svc *service) Tail(_ context.Context, n int) ([]Reading, error) {
	out := make([]Reading, 0, max(n, 0))
	for r := range svc.history.Tail(n) {
		out = append(out, r)
	}
	return out, nil
}

func (svc *service) Current(_ context.Context, nBack int) (Snapshot, error) {
	snap := Snapshot{
		Reading: svc.history.Latest(DefaultReading()),
		Deltas:  make(map[Field]float64, len(Fields())),
		Count:   svc.history.Len(),
	}
	for _, f := range Fields() {
		snap.Deltas[f] = svc.history.Delta(f, nBack)
	}
	return snap, nil
}

func (svc *service) Summary(_ context.Context, n int) (Summary, error) {
	var readings []Reading
	for r := range svc.history.Tail(n) {
		readings = append(readings, r)
	}

	sum := Summary{
		Count:  len(readings),
		Fields: make(map[Field]FieldSummary, len(Fields())),
	}
	if len(readings) == 0 {
		return sum, nil
	}

	values := make([]float64, len(readings))
	for _, f := range Fields() {
		for i, r := range readings {
			values[i] = r.Value(f)
		}
		fs := FieldSummary{
			Min: floats.Min(values),
			Max: floats.Max(values),
		}
		if len(values) > 1 {
			fs.Mean, fs.StdDev = stat.MeanStdDev(values, nil)
		} else {
			fs.Mean = values[0]
		}
		sum.Fields[f] = fs
	}
	return sum, nil
}

func (svc *service) Import(ctx context.Context, batch []Reading, mode ImportMode) (int, error) {
	if err := svc.history.Import(batch, mode); err != nil {
		return 0, err
	}
	n := svc.history.Len()
	if err := svc.Persist(ctx); err != nil {
		return n, err
	}
	return n, nil
}

func (svc *service) Export(_ context.Context) ([]Reading, error) {
	return svc.history.Snapshot(), nil
}

func (svc *service) Persist(ctx context.Context) error {
	svc.persistMu.Lock()
	defer svc.persistMu.Unlock()

	if err := svc.repo.Save(ctx, svc.history.Snapshot()); err != nil {
		return errors.Wrap(ErrPersistence, err)
	}
	return nil
}

func (svc *service) Restore(ctx context.Context) error {
	readings, err := svc.repo.Load(ctx)
	if err != nil {
		return errors.Wrap(ErrPersistence, err)
	}
	return svc.history.Import(readings, ImportReplace)
}

func (svc *service) Topic(_ context.Context) (string, error) {
	return svc.sub.Topic(), nil
}

func (svc *service) SwitchTopic(ctx context.Context, topic string) error {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return ErrEmptyTopic
	}
	return svc.sub.SwitchTopic(ctx, topic)
}
