// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package sim

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Results summarises a run. Latencies are in milliseconds.
type Results struct {
	Published   int     `json:"published"`
	Failed      int     `json:"failed"`
	RunTime     float64 `json:"run_time"`
	LatencyMin  float64 `json:"latency_min"`
	LatencyMax  float64 `json:"latency_max"`
	LatencyMean float64 `json:"latency_mean"`
	LatencyStd  float64 `json:"latency_std"`
	MsgsPerSec  float64 `json:"msgs_per_sec"`
}

type recorder struct {
	latencies []float64
	failed    int
}

func (r *recorder) ok(d time.Duration) {
	r.latencies = append(r.latencies, float64(d.Microseconds())/1000)
}

func (r *recorder) fail() {
	r.failed++
}

func (r *recorder) results(runTime time.Duration) Results {
	res := Results{
		Published: len(r.latencies),
		Failed:    r.failed,
		RunTime:   runTime.Seconds(),
	}
	if res.RunTime > 0 {
		res.MsgsPerSec = float64(res.Published) / res.RunTime
	}

	switch len(r.latencies) {
	case 0:
	case 1:
		res.LatencyMin = r.latencies[0]
		res.LatencyMax = r.latencies[0]
		res.LatencyMean = r.latencies[0]
	default:
		res.LatencyMin = floats.Min(r.latencies)
		res.LatencyMax = floats.Max(r.latencies)
		res.LatencyMean, res.LatencyStd = stat.MeanStdDev(r.latencies, nil)
	}

	return res
}
