// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package csvfile_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/hybridfuel/hybridfuel/pkg/errors"
	"github.com/hybridfuel/hybridfuel/telemetry"
	"github.com/hybridfuel/hybridfuel/telemetry/csvfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "sensor_history.csv")
	repo := csvfile.NewRepository(path)

	require.Nil(t, repo.Save(context.Background(), sample()))

	got, err := repo.Load(context.Background())
	require.Nil(t, err)
	assert.Equal(t, sample(), got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.Nil(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestSaveOverwrites(t *testing.T) {
	repo := csvfile.NewRepository(filepath.Join(t.TempDir(), "history.csv"))

	require.Nil(t, repo.Save(context.Background(), sample()))
	require.Nil(t, repo.Save(context.Background(), sample()[:1]))

	got, err := repo.Load(context.Background())
	require.Nil(t, err)
	assert.Equal(t, sample()[:1], got)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		desc     string
		content  *string
		readings []telemetry.Reading
		err      error
	}{
		{
			desc:     "load missing file",
			content:  nil,
			readings: nil,
		},
		{
			desc:     "load empty file",
			content:  ptr(""),
			readings: nil,
		},
		{
			desc:    "load file without required columns",
			content: ptr("time,temp\n"),
			err:     telemetry.ErrPersistence,
		},
	}

	for i, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			path := filepath.Join(dir, fmt.Sprintf("history-%d.csv", i))
			if tc.content != nil {
				require.Nil(t, os.WriteFile(path, []byte(*tc.content), 0o644))
			}
			readings, err := csvfile.NewRepository(path).Load(context.Background())
			assert.True(t, errors.Contains(err, tc.err), fmt.Sprintf("%s: expected error %v got %v", tc.desc, tc.err, err))
			assert.Equal(t, tc.readings, readings)
		})
	}
}

func TestSaveFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.Nil(t, os.WriteFile(blocker, nil, 0o644))

	repo := csvfile.NewRepository(filepath.Join(blocker, "history.csv"))
	err := repo.Save(context.Background(), sample())
	assert.True(t, errors.Contains(err, telemetry.ErrPersistence), fmt.Sprintf("expected %v got %v", telemetry.ErrPersistence, err))
}

func TestConcurrentSave(t *testing.T) {
	repo := csvfile.NewRepository(filepath.Join(t.TempDir(), "history.csv"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Nil(t, repo.Save(context.Background(), sample()))
		}()
	}
	wg.Wait()

	got, err := repo.Load(context.Background())
	require.Nil(t, err)
	assert.Equal(t, sample(), got)
}

func ptr(s string) *string {
	return &s
}
