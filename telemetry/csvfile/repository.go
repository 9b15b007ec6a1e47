// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package csvfile

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/hybridfuel/hybridfuel/pkg/errors"
	"github.com/hybridfuel/hybridfuel/telemetry"
)

var _ telemetry.Repository = (*Repository)(nil)

// Repository keeps the history in a single CSV file. Writes go to a
// temporary file in the same directory which then replaces the target.
type Repository struct {
	mu   sync.Mutex
	path string
}

// NewRepository returns a repository backed by the file at path.
func NewRepository(path string) *Repository {
	return &Repository{path: path}
}

func (repo *Repository) Path() string {
	return repo.path
}

func (repo *Repository) Save(_ context.Context, readings []telemetry.Reading) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	dir := filepath.Dir(repo.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(telemetry.ErrPersistence, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(repo.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(telemetry.ErrPersistence, err)
	}
	defer os.Remove(tmp.Name())

	bw := bufio.NewWriter(tmp)
	if err := Write(bw, readings); err != nil {
		tmp.Close()
		return errors.Wrap(telemetry.ErrPersistence, err)
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return errors.Wrap(telemetry.ErrPersistence, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(telemetry.ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(telemetry.ErrPersistence, err)
	}
	if err := os.Rename(tmp.Name(), repo.path); err != nil {
		return errors.Wrap(telemetry.ErrPersistence, err)
	}
	return nil
}

func (repo *Repository) Load(_ context.Context) ([]telemetry.Reading, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	f, err := os.Open(repo.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(telemetry.ErrPersistence, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(telemetry.ErrPersistence, err)
	}
	if info.Size() == 0 {
		return nil, nil
	}

	readings, err := Read(bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrap(telemetry.ErrPersistence, err)
	}
	return readings, nil
}
