// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"strings"
	"time"
)

// Status is the plant condition reported by a sensor.
type Status string

const (
	StatusOK      Status = "OK"
	StatusWarning Status = "WARNING"
	StatusDanger  Status = "DANGER"
	StatusUnknown Status = "UNKNOWN"
)

// ParseStatus maps s onto a known Status. Anything unrecognised, including
// the empty string, is StatusUnknown.
func ParseStatus(s string) Status {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusOK:
		return StatusOK
	case StatusWarning:
		return StatusWarning
	case StatusDanger:
		return StatusDanger
	default:
		return StatusUnknown
	}
}

// Reading is one decoded sensor observation. Timestamp is the arrival
// time assigned by the decoder.
type Reading struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"`
	GasLevel    float64   `json:"gas_level"`
	DustLevel   float64   `json:"dust_level"`
	Status      Status    `json:"status"`
}

// DefaultReading is what consumers show before any reading has arrived.
func DefaultReading() Reading {
	return Reading{Status: StatusUnknown}
}

// Field names a numeric attribute of a Reading.
type Field string

const (
	FieldTemperature Field = "temperature"
	FieldGas         Field = "gas"
	FieldDust        Field = "dust"
)

// Fields lists the numeric fields in display order.
func Fields() []Field {
	return []Field{FieldTemperature, FieldGas, FieldDust}
}

// ParseField accepts the field names and their persisted column aliases.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "temperature", "temp":
		return FieldTemperature, nil
	case "gas", "co2", "gas_level":
		return FieldGas, nil
	case "dust", "pm25", "pm2_5", "dust_level":
		return FieldDust, nil
	default:
		return "", ErrInvalidField
	}
}

// Value returns the value of f, or 0 for an unknown field.
func (r Reading) Value(f Field) float64 {
	switch f {
	case FieldTemperature:
		return r.Temperature
	case FieldGas:
		return r.GasLevel
	case FieldDust:
		return r.DustLevel
	default:
		return 0
	}
}
