// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"encoding/json"
	"strings"

	"github.com/hybridfuel/hybridfuel/pkg/errors"
)

var (
	// ErrDecode indicates a payload that could not be decoded into a reading.
	ErrDecode = errors.New("failed to decode telemetry payload")

	// ErrConnection indicates the broker could not be reached.
	ErrConnection = errors.New("failed to connect to broker")

	// ErrSubscription indicates a failed subscribe or unsubscribe on the broker.
	ErrSubscription = errors.New("failed to switch subscription")

	// ErrImportValidation indicates an imported history file that was rejected.
	ErrImportValidation = errors.New("invalid history file")

	// ErrPersistence indicates a failure to read or write the history file.
	ErrPersistence = errors.New("failed to persist history")

	// ErrEmptyTopic indicates an empty subscription topic.
	ErrEmptyTopic = errors.New("subscription topic must not be empty")

	// ErrInvalidMode indicates an unknown import mode.
	ErrInvalidMode = errors.New("invalid import mode")

	// ErrInvalidField indicates an unknown reading field.
	ErrInvalidField = errors.New("invalid reading field")

	// ErrInvalidPolicy indicates an unknown handoff overflow policy.
	ErrInvalidPolicy = errors.New("invalid overflow policy")

	// ErrUnsupportedFormat indicates an unknown payload format.
	ErrUnsupportedFormat = errors.New("unsupported payload format")
)

var _ errors.Error = (*MissingColumnsError)(nil)

// MissingColumnsError lists the required columns absent from an imported
// history file. It matches ErrImportValidation under errors.Contains.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return e.Msg() + " : " + e.Err().Error()
}

func (e *MissingColumnsError) Msg() string {
	return ErrImportValidation.Error()
}

func (e *MissingColumnsError) Err() errors.Error {
	return errors.New("missing required columns: " + strings.Join(e.Missing, ", "))
}

func (e *MissingColumnsError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Err     string   `json:"error"`
		Missing []string `json:"missing_columns"`
	}{
		Err:     e.Error(),
		Missing: e.Missing,
	})
}

// MissingColumns finds a MissingColumnsError anywhere in err's chain.
func MissingColumns(err error) (*MissingColumnsError, bool) {
	for err != nil {
		if mce, ok := err.(*MissingColumnsError); ok {
			return mce, true
		}
		ce, ok := err.(errors.Error)
		if !ok {
			return nil, false
		}
		next := ce.Err()
		if next == nil {
			return nil, false
		}
		err = next
	}
	return nil, false
}
