// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package csvfile reads and writes the reading history as a CSV table with
// the columns timestamp, Temperature, CO2, PM2_5 and status.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hybridfuel/hybridfuel/pkg/errors"
	"github.com/hybridfuel/hybridfuel/telemetry"
)

const (
	colTimestamp   = "timestamp"
	colTemperature = "Temperature"
	colGas         = "CO2"
	colDust        = "PM2_5"
	colStatus      = "status"
)

// Header is the column row written by Write.
var Header = []string{colTimestamp, colTemperature, colGas, colDust, colStatus}

var required = []string{colTimestamp, colTemperature, colGas, colDust}

// Layouts accepted for the timestamp column, tried in order.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

var errEmptyTimestamp = errors.New("empty timestamp")

// Write encodes readings with a header row.
func Write(w io.Writer, readings []telemetry.Reading) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range readings {
		rec := []string{
			r.Timestamp.Format(time.RFC3339Nano),
			formatFloat(r.Temperature),
			formatFloat(r.GasLevel),
			formatFloat(r.DustLevel),
			string(r.Status),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Read decodes a history table. Columns are matched by header name; a
// missing status column reads as UNKNOWN and unknown columns are ignored.
// Missing required columns produce a *telemetry.MissingColumnsError; any
// other malformed content is wrapped in telemetry.ErrImportValidation.
func Read(r io.Reader) ([]telemetry.Reading, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	switch {
	case err == io.EOF:
		return nil, &telemetry.MissingColumnsError{Missing: required}
	case err != nil:
		return nil, errors.Wrap(telemetry.ErrImportValidation, err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, ok := idx[name]; !ok {
			idx[name] = i
		}
	}

	var missing []string
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &telemetry.MissingColumnsError{Missing: missing}
	}
	statusIdx, hasStatus := idx[colStatus]

	var out []telemetry.Reading
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(telemetry.ErrImportValidation, err)
		}

		reading, err := parseRecord(rec, idx)
		if err != nil {
			return nil, errors.Wrap(telemetry.ErrImportValidation, fmt.Errorf("line %d: %w", line, err))
		}
		reading.Status = telemetry.StatusUnknown
		if hasStatus {
			reading.Status = telemetry.ParseStatus(rec[statusIdx])
		}
		out = append(out, reading)
	}
	return out, nil
}

func parseRecord(rec []string, idx map[string]int) (telemetry.Reading, error) {
	ts, err := parseTime(rec[idx[colTimestamp]])
	if err != nil {
		return telemetry.Reading{}, err
	}
	var r telemetry.Reading
	r.Timestamp = ts
	if r.Temperature, err = parseFloat(rec[idx[colTemperature]]); err != nil {
		return telemetry.Reading{}, err
	}
	if r.GasLevel, err = parseFloat(rec[idx[colGas]]); err != nil {
		return telemetry.Reading{}, err
	}
	if r.DustLevel, err = parseFloat(rec[idx[colDust]]); err != nil {
		return telemetry.Reading{}, err
	}
	return r, nil
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errEmptyTimestamp
	}
	var err error
	for _, layout := range layouts {
		var ts time.Time
		if ts, err = time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, err
}

// parseFloat reads an empty cell as 0.
func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
