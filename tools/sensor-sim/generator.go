// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package sim

import (
	"encoding/json"
	"math/rand/v2"
	"strings"

	"github.com/absmach/senml"
	"github.com/hybridfuel/hybridfuel/pkg/errors"
	"github.com/hybridfuel/hybridfuel/telemetry"
)

const senmlBaseName = "hybridfuel:"

var (
	errInvalidRange = errors.New("range minimum exceeds maximum")
	errFormat       = errors.New("unsupported payload format")
)

// Range bounds one generated value.
type Range struct {
	Min float64 `toml:"min"`
	Max float64 `toml:"max"`
}

// Ranges bounds every generated field.
type Ranges struct {
	Temperature Range `toml:"temperature"`
	Gas         Range `toml:"gas"`
	Dust        Range `toml:"dust"`
}

// DefaultRanges matches the values the plant dashboard used to fake.
func DefaultRanges() Ranges {
	return Ranges{
		Temperature: Range{Min: 20, Max: 35},
		Gas:         Range{Min: 12, Max: 18},
		Dust:        Range{Min: 20, Max: 50},
	}
}

func (r Ranges) validate() error {
	for _, rg := range []Range{r.Temperature, r.Gas, r.Dust} {
		if rg.Min > rg.Max {
			return errInvalidRange
		}
	}
	return nil
}

// Sample is one simulated sensor message before encoding.
type Sample struct {
	Temp   float64          `json:"temp"`
	Gas    float64          `json:"gas"`
	PM25   float64          `json:"pm25"`
	Status telemetry.Status `json:"status"`
}

// Generator produces samples uniformly within its ranges.
type Generator struct {
	ranges Ranges
	rnd    *rand.Rand
}

// NewGenerator returns a generator seeded with seed. The same seed always
// yields the same sequence.
func NewGenerator(ranges Ranges, seed uint64) (*Generator, error) {
	if err := ranges.validate(); err != nil {
		return nil, err
	}

	return &Generator{
		ranges: ranges,
		rnd:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

// Next returns the next sample.
func (g *Generator) Next() Sample {
	s := Sample{
		Temp: g.uniform(g.ranges.Temperature),
		Gas:  g.uniform(g.ranges.Gas),
		PM25: g.uniform(g.ranges.Dust),
	}
	s.Status = Classify(s.Temp, s.PM25)

	return s
}

func (g *Generator) uniform(r Range) float64 {
	return r.Min + g.rnd.Float64()*(r.Max-r.Min)
}

// Classify derives the plant status from temperature and dust.
func Classify(temp, dust float64) telemetry.Status {
	switch {
	case temp >= 33 || dust >= 45:
		return telemetry.StatusDanger
	case temp >= 30 || dust >= 35:
		return telemetry.StatusWarning
	default:
		return telemetry.StatusOK
	}
}

// Encode renders s in one of the formats the service decodes.
func Encode(s Sample, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case telemetry.FormatJSON, "":
		return json.Marshal(s)
	case telemetry.FormatSenML:
		status := string(s.Status)
		pack := senml.Pack{
			Records: []senml.Record{
				{BaseName: senmlBaseName, Name: "temp", Value: &s.Temp},
				{Name: "gas", Value: &s.Gas},
				{Name: "pm25", Value: &s.PM25},
				{Name: "status", StringValue: &status},
			},
		}
		return senml.Encode(pack, senml.JSON)
	default:
		return nil, errors.Wrap(errFormat, errors.New(format))
	}
}
