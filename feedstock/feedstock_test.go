// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package feedstock_test

import (
	"testing"

	"github.com/hybridfuel/hybridfuel/feedstock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndia(t *testing.T) {
	m := feedstock.India()
	require.Len(t, m.Sites, 5)
	assert.Equal(t, 4, m.Zoom)
	assert.Equal(t, feedstock.Point{Lat: 20.5937, Lon: 78.9629}, m.Center)

	cases := []struct {
		desc string
		site feedstock.Site
		name string
		lat  float64
		lon  float64
		size int
	}{
		{desc: "mumbai", site: m.Sites[0], name: "Mumbai", lat: 19.0760, lon: 72.8777, size: 30},
		{desc: "delhi", site: m.Sites[1], name: "Delhi", lat: 28.6139, lon: 77.2090, size: 30},
		{desc: "chennai", site: m.Sites[2], name: "Chennai", lat: 13.0827, lon: 80.2707, size: 30},
		{desc: "kolkata", site: m.Sites[3], name: "Kolkata", lat: 22.5726, lon: 88.3639, size: 30},
		{desc: "center marker", site: m.Sites[4], name: "India", lat: 20.5937, lon: 78.9629, size: 100},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.name, tc.site.Name)
			assert.Equal(t, tc.lat, tc.site.Lat)
			assert.Equal(t, tc.lon, tc.site.Lon)
			assert.Equal(t, tc.size, tc.site.Size)
		})
	}
}

func TestSitesIsACopy(t *testing.T) {
	got := feedstock.Sites()
	got[0].Name = "Pune"
	assert.Equal(t, "Mumbai", feedstock.Sites()[0].Name)
}
