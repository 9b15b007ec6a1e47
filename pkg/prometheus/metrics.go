// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package prometheus

import (
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

// MakeMetrics registers the per-method request counter and latency summary
// of one service.
//
//	counter, latency := metrics.MakeMetrics("hybridfuel", "api")
func MakeMetrics(namespace, subsystem string) (*kitprometheus.Counter, *kitprometheus.Summary) {
	counter := kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_count",
		Help:      "Number of requests received.",
	}, []string{"method"})
	latency := kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
		Namespace:  namespace,
		Subsystem:  subsystem,
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		Name:       "request_latency_seconds",
		Help:       "Duration of requests in seconds.",
	}, []string{"method"})

	return counter, latency
}

// MakeCounter registers a counter partitioned by labels, used by
// components that count events rather than requests.
func MakeCounter(namespace, subsystem, name, help string, labels ...string) *kitprometheus.Counter {
	return kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	}, labels)
}
