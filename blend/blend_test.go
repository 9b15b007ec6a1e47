// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package blend_test

import (
	"math"
	"testing"

	"github.com/hybridfuel/hybridfuel/blend"
	"github.com/hybridfuel/hybridfuel/pkg/errors"
	"github.com/stretchr/testify/assert"
)

const delta = 1e-9

func TestPredict(t *testing.T) {
	cases := []struct {
		desc      string
		coal      float64
		biogas    float64
		power     float64
		base      float64
		final     float64
		reduction float64
		safe      bool
		err       error
	}{
		{
			desc:      "default dashboard blend",
			coal:      200,
			biogas:    10,
			power:     175,
			base:      20,
			final:     18.2,
			reduction: 1.8 / 20.01 * 100,
			safe:      true,
		},
		{
			desc:      "no biogas",
			coal:      50,
			biogas:    0,
			power:     40,
			base:      5,
			final:     5,
			reduction: 0,
			safe:      true,
		},
		{
			desc:      "safety limit is inclusive",
			coal:      100,
			biogas:    40,
			power:     140,
			base:      10,
			final:     6.4,
			reduction: 3.6 / 10.01 * 100,
			safe:      true,
		},
		{
			desc:      "pure biogas is unsafe",
			coal:      500,
			biogas:    100,
			power:     550,
			base:      50,
			final:     5,
			reduction: 45 / 50.01 * 100,
			safe:      false,
		},
		{desc: "coal below range", coal: 49.9, biogas: 10, err: blend.ErrInvalidCoal},
		{desc: "coal above range", coal: 501, biogas: 10, err: blend.ErrInvalidCoal},
		{desc: "coal not a number", coal: math.NaN(), biogas: 10, err: blend.ErrInvalidCoal},
		{desc: "negative biogas", coal: 200, biogas: -1, err: blend.ErrInvalidBiogas},
		{desc: "biogas above range", coal: 200, biogas: 100.5, err: blend.ErrInvalidBiogas},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			p, err := blend.Predict(tc.coal, tc.biogas)
			assert.True(t, errors.Contains(err, tc.err), "expected %s got %s", tc.err, err)
			if tc.err != nil {
				return
			}
			assert.InDelta(t, tc.power, p.PowerMW, delta)
			assert.InDelta(t, tc.base, p.BasePollution, delta)
			assert.InDelta(t, tc.final, p.FinalPollution, delta)
			assert.InDelta(t, tc.reduction, p.ReductionPct, delta)
			assert.Equal(t, tc.safe, p.Safe)
		})
	}
}

func TestOptimize(t *testing.T) {
	cases := []struct {
		desc   string
		coal   float64
		biogas float64
		score  float64
		err    error
	}{
		{desc: "mid range coal", coal: 200, biogas: 40, score: 220 / 12.9},
		{desc: "lowest coal", coal: 50, biogas: 40, score: 100 / 3.3},
		{desc: "highest coal", coal: 500, biogas: 40, score: 460 / 32.1},
		{desc: "coal out of range", coal: 10, err: blend.ErrInvalidCoal},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			o, err := blend.Optimize(tc.coal)
			assert.True(t, errors.Contains(err, tc.err), "expected %s got %s", tc.err, err)
			if tc.err != nil {
				return
			}
			assert.Equal(t, tc.biogas, o.BiogasPct)
			assert.True(t, o.Safe)
			assert.InDelta(t, tc.score, o.Score, 1e-6)
		})
	}
}
