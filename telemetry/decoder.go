// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/absmach/senml"
	"github.com/hybridfuel/hybridfuel/pkg/errors"
	"github.com/mitchellh/mapstructure"
)

const (
	// FormatJSON is a flat JSON object with temp, gas, pm25/dust and status keys.
	FormatJSON = "json"
	// FormatSenML is a SenML JSON pack using the same names as records.
	FormatSenML = "senml"
)

var errNotObject = errors.New("payload is not a JSON object")

// Decoder turns one broker payload into a Reading.
type Decoder interface {
	// Decode parses payload. Failures match ErrDecode.
	Decode(payload []byte) (Reading, error)
}

// Clock returns the current time. Decoders stamp readings with it.
type Clock func() time.Time

// NewDecoder returns the decoder for format.
func NewDecoder(format string, now Clock) (Decoder, error) {
	switch strings.ToLower(format) {
	case FormatJSON, "":
		return NewJSONDecoder(now), nil
	case FormatSenML:
		return NewSenMLDecoder(now), nil
	default:
		return nil, errors.Wrap(ErrUnsupportedFormat, errors.New(format))
	}
}

// payload is the weakly typed shape of a flat sensor message. Pointers
// tell an absent key from an explicit zero.
type payload struct {
	Temp   float64  `mapstructure:"temp"`
	Gas    float64  `mapstructure:"gas"`
	PM25   *float64 `mapstructure:"pm25"`
	Dust   *float64 `mapstructure:"dust"`
	Status string   `mapstructure:"status"`
}

func (p payload) reading(ts time.Time) Reading {
	r := Reading{
		Timestamp:   ts,
		Temperature: p.Temp,
		GasLevel:    p.Gas,
		Status:      ParseStatus(p.Status),
	}
	switch {
	case p.PM25 != nil:
		r.DustLevel = *p.PM25
	case p.Dust != nil:
		r.DustLevel = *p.Dust
	}
	return r
}

type jsonDecoder struct {
	now Clock
}

// NewJSONDecoder returns a decoder for flat JSON objects. A nil clock
// uses time.Now.
func NewJSONDecoder(now Clock) Decoder {
	if now == nil {
		now = time.Now
	}
	return jsonDecoder{now: now}
}

func (d jsonDecoder) Decode(data []byte) (Reading, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Reading{}, errors.Wrap(ErrDecode, err)
	}
	if raw == nil {
		return Reading{}, errors.Wrap(ErrDecode, errNotObject)
	}

	var p payload
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &p,
	})
	if err != nil {
		return Reading{}, errors.Wrap(ErrDecode, err)
	}
	if err := dec.Decode(raw); err != nil {
		return Reading{}, errors.Wrap(ErrDecode, err)
	}

	return p.reading(d.now()), nil
}

type senmlDecoder struct {
	now Clock
}

// NewSenMLDecoder returns a decoder for SenML JSON packs. Record names are
// matched after the last "/" or ":" of the resolved base name.
func NewSenMLDecoder(now Clock) Decoder {
	if now == nil {
		now = time.Now
	}
	return senmlDecoder{now: now}
}

func (d senmlDecoder) Decode(data []byte) (Reading, error) {
	pack, err := senml.Decode(data, senml.JSON)
	if err != nil {
		return Reading{}, errors.Wrap(ErrDecode, err)
	}

	var (
		p    payload
		base string
	)
	for _, rec := range pack.Records {
		if rec.BaseName != "" {
			base = rec.BaseName
		}
		name := strings.ToLower(base + rec.Name)
		if i := strings.LastIndexAny(name, "/:"); i >= 0 {
			name = name[i+1:]
		}

		switch name {
		case "temp":
			p.Temp = value(rec.Value)
		case "gas":
			p.Gas = value(rec.Value)
		case "pm25":
			v := value(rec.Value)
			p.PM25 = &v
		case "dust":
			v := value(rec.Value)
			p.Dust = &v
		case "status":
			if rec.StringValue != nil {
				p.Status = *rec.StringValue
			}
		}
	}

	return p.reading(d.now()), nil
}

func value(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
