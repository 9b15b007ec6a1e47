// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package middleware_test

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-kit/kit/metrics"
	"github.com/hybridfuel/hybridfuel/logger"
	"github.com/hybridfuel/hybridfuel/pkg/errors"
	"github.com/hybridfuel/hybridfuel/telemetry"
	tmw "github.com/hybridfuel/hybridfuel/telemetry/middleware"
	"github.com/hybridfuel/hybridfuel/telemetry/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type recorder struct {
	mu     *sync.Mutex
	counts map[string]float64
	method string
}

func newRecorder() *recorder {
	return &recorder{mu: &sync.Mutex{}, counts: map[string]float64{}}
}

func (r *recorder) With(labelValues ...string) *recorder {
	m := ""
	for i := 0; i+1 < len(labelValues); i += 2 {
		if labelValues[i] == "method" {
			m = labelValues[i+1]
		}
	}
	return &recorder{mu: r.mu, counts: r.counts, method: m}
}

type counter struct{ *recorder }

func (c counter) With(labelValues ...string) metrics.Counter {
	return counter{c.recorder.With(labelValues...)}
}

func (c counter) Add(delta float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[c.method] += delta
}

type histogram struct{ *recorder }

func (h histogram) With(labelValues ...string) metrics.Histogram {
	return histogram{h.recorder.With(labelValues...)}
}

func (h histogram) Observe(float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.counts[h.method]++
}

func TestLoggingMiddleware(t *testing.T) {
	svc := new(mocks.Service)
	var buf bytes.Buffer
	log, err := logger.New(&buf, "debug")
	require.Nil(t, err)
	lm := tmw.NewLoggingMiddleware(log, svc)

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")
	r := telemetry.Reading{Timestamp: time.Unix(10, 0).UTC(), Temperature: 21, Status: telemetry.StatusOK}

	svc.On("Latest", ctx).Return(r, nil).Once()
	got, err := lm.Latest(ctx)
	require.Nil(t, err)
	assert.Equal(t, r, got)
	assert.Contains(t, buf.String(), "View latest reading completed successfully")
	assert.Contains(t, buf.String(), `"request_id":"req-42"`)

	buf.Reset()
	svc.On("SwitchTopic", ctx, "plant/b").Return(telemetry.ErrSubscription).Once()
	err = lm.SwitchTopic(ctx, "plant/b")
	assert.True(t, errors.Contains(err, telemetry.ErrSubscription))
	assert.Contains(t, buf.String(), "Switch subscription failed")
	assert.Contains(t, buf.String(), `"level":"WARN"`)

	buf.Reset()
	svc.On("Sync", mock.Anything).Return(0, nil).Once()
	n, err := lm.Sync(context.Background())
	require.Nil(t, err)
	assert.Equal(t, 0, n)
	assert.Empty(t, buf.String(), "idle sync should not be logged")

	svc.On("Sync", mock.Anything).Return(3, nil).Once()
	n, err = lm.Sync(context.Background())
	require.Nil(t, err)
	assert.Equal(t, 3, n)
	assert.Contains(t, buf.String(), `"appended":3`)

	svc.AssertExpectations(t)
}

func TestMetricsMiddleware(t *testing.T) {
	svc := new(mocks.Service)
	c, h := newRecorder(), newRecorder()
	mm := tmw.NewMetricsMiddleware(counter{c}, histogram{h}, svc)
	ctx := context.Background()

	svc.On("Tail", ctx, 5).Return([]telemetry.Reading{}, nil)
	svc.On("Export", ctx).Return([]telemetry.Reading{}, nil)
	svc.On("Persist", ctx).Return(telemetry.ErrPersistence)

	_, _ = mm.Tail(ctx, 5)
	_, _ = mm.Tail(ctx, 5)
	_, _ = mm.Export(ctx)
	err := mm.Persist(ctx)
	assert.True(t, errors.Contains(err, telemetry.ErrPersistence))

	cases := []struct {
		desc   string
		method string
		count  float64
	}{
		{desc: "tail called twice", method: "tail", count: 2},
		{desc: "export called once", method: "export", count: 1},
		{desc: "failed calls are counted", method: "persist", count: 1},
		{desc: "untouched method", method: "import", count: 0},
	}
	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.count, c.counts[tc.method])
			assert.Equal(t, tc.count, h.counts[tc.method])
		})
	}
}

func TestTracingMiddleware(t *testing.T) {
	svc := new(mocks.Service)
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	tm := tmw.NewTracingMiddleware(tp.Tracer("telemetry"), svc)

	batch := []telemetry.Reading{{Timestamp: time.Unix(1, 0)}}
	svc.On("Import", mock.Anything, batch, telemetry.ImportMerge).Return(1, nil)
	svc.On("Current", mock.Anything, 3).Return(telemetry.Snapshot{}, nil)

	n, err := tm.Import(context.Background(), batch, telemetry.ImportMerge)
	require.Nil(t, err)
	assert.Equal(t, 1, n)
	_, err = tm.Current(context.Background(), 3)
	require.Nil(t, err)

	ended := sr.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "import", ended[0].Name())
	assert.Contains(t, ended[0].Attributes(), attribute.String("mode", "merge"))
	assert.Contains(t, ended[0].Attributes(), attribute.Int("batch", 1))
	assert.Equal(t, "current", ended[1].Name())
	assert.Contains(t, ended[1].Attributes(), attribute.Int("back", 3))
}
