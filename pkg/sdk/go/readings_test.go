// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package sdk_test

import (
	"net/http"
	"testing"

	"github.com/hybridfuel/hybridfuel/pkg/errors"
	sdk "github.com/hybridfuel/hybridfuel/pkg/sdk/go"
	"github.com/hybridfuel/hybridfuel/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLatestReading(t *testing.T) {
	ts, svc := setupServer()
	defer ts.Close()
	hfSDK := newSDK(ts.URL)

	r := readingAt(3)
	svc.On("Latest", mock.Anything).Return(r, nil).Once()

	got, err := hfSDK.LatestReading()
	require.Nil(t, err)
	assert.Equal(t, r, got)

	svc.On("Latest", mock.Anything).Return(telemetry.Reading{}, errors.New("boom")).Once()
	_, err = hfSDK.LatestReading()
	require.NotNil(t, err)
	assert.Equal(t, http.StatusInternalServerError, err.StatusCode())
}

func TestReadings(t *testing.T) {
	ts, svc := setupServer()
	defer ts.Close()
	hfSDK := newSDK(ts.URL)

	readings := []telemetry.Reading{readingAt(1), readingAt(2)}

	cases := []struct {
		desc   string
		limit  int
		called int
		page   sdk.ReadingsPage
		status int
	}{
		{
			desc:   "server default limit",
			limit:  0,
			called: 20,
			page:   sdk.ReadingsPage{Limit: 20, Total: 2, Readings: readings},
		},
		{
			desc:   "explicit limit",
			limit:  2,
			called: 2,
			page:   sdk.ReadingsPage{Limit: 2, Total: 2, Readings: readings},
		},
		{
			desc:   "invalid limit",
			limit:  -1,
			status: http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			call := svc.On("Tail", mock.Anything, tc.called).Return(readings, nil)
			page, err := hfSDK.Readings(tc.limit)
			if tc.status != 0 {
				require.NotNil(t, err)
				assert.Equal(t, tc.status, err.StatusCode())
				assert.True(t, errors.Contains(err, errors.New("invalid limit size")), err.Error())
			} else {
				require.Nil(t, err)
				assert.Equal(t, tc.page, page)
			}
			call.Unset()
		})
	}
}

func TestCurrentAndSummary(t *testing.T) {
	ts, svc := setupServer()
	defer ts.Close()
	hfSDK := newSDK(ts.URL)

	snap := telemetry.Snapshot{
		Reading: readingAt(4),
		Deltas:  map[telemetry.Field]float64{telemetry.FieldTemperature: 2},
		Count:   4,
	}
	sum := telemetry.Summary{
		Count: 4,
		Fields: map[telemetry.Field]telemetry.FieldSummary{
			telemetry.FieldGas: {Mean: 410, Min: 410, Max: 410},
		},
	}
	svc.On("Current", mock.Anything, 2).Return(snap, nil)
	svc.On("Summary", mock.Anything, 4).Return(sum, nil)

	gotSnap, err := hfSDK.CurrentReading(2)
	require.Nil(t, err)
	assert.Equal(t, snap, gotSnap)

	gotSum, err := hfSDK.Summary(4)
	require.Nil(t, err)
	assert.Equal(t, sum, gotSum)
}

func TestImportExport(t *testing.T) {
	ts, svc := setupServer()
	defer ts.Close()
	hfSDK := newSDK(ts.URL)

	csv := []byte("timestamp,Temperature,CO2,PM2_5,status\n2024-05-01T10:00:01Z,21,410,2.5,WARNING\n")
	batch := []telemetry.Reading{readingAt(1)}
	svc.On("Import", mock.Anything, batch, telemetry.ImportReplace).Return(1, nil)
	svc.On("Export", mock.Anything).Return(batch, nil)

	res, err := hfSDK.ImportReadings(csv, "replace")
	require.Nil(t, err)
	assert.Equal(t, sdk.ImportResult{Mode: "replace", Imported: 1, Total: 1}, res)

	svc.On("Import", mock.Anything, batch, telemetry.ImportMerge).Return(1, telemetry.ErrPersistence)
	res, err = hfSDK.ImportReadings(csv, "merge")
	require.Nil(t, err)
	assert.Equal(t, sdk.ImportResult{Mode: "merge", Imported: 1, Total: 1, Warning: telemetry.ErrPersistence.Error()}, res)

	_, err = hfSDK.ImportReadings([]byte("timestamp,Temperature\n"), "")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode())
	assert.Contains(t, err.Error(), "CO2, PM2_5")

	body, err := hfSDK.ExportReadings()
	require.Nil(t, err)
	assert.Equal(t, string(csv), string(body))
}

func TestSubscription(t *testing.T) {
	ts, svc := setupServer()
	defer ts.Close()
	hfSDK := newSDK(ts.URL)

	svc.On("SwitchTopic", mock.Anything, "plant/b").Return(nil)
	svc.On("Topic", mock.Anything).Return("plant/b", nil)

	topic, err := hfSDK.SwitchSubscription("plant/b")
	require.Nil(t, err)
	assert.Equal(t, "plant/b", topic)

	topic, err = hfSDK.Subscription()
	require.Nil(t, err)
	assert.Equal(t, "plant/b", topic)

	_, err = hfSDK.SwitchSubscription(" ")
	require.NotNil(t, err)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode())
}
