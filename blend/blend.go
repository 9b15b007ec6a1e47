// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package blend estimates the output and particulate emissions of a
// biogas-coal co-firing blend and searches for the best safe blend.
//
// The model is a fixed linear approximation, not a trained predictor.
package blend

import (
	"math"

	"github.com/hybridfuel/hybridfuel/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

const (
	// MinCoalMW and MaxCoalMW bound the accepted coal input.
	MinCoalMW = 50.0
	MaxCoalMW = 500.0

	// MaxBiogasPct is the largest biogas share of the blend.
	MaxBiogasPct = 100.0

	// SafeBiogasPct is the largest biogas share considered safe to fire.
	SafeBiogasPct = 40.0

	coalPowerFactor    = 0.8
	biogasPowerFactor  = 1.5
	coalPollution      = 0.1
	maxReductionFactor = 0.9
)

var (
	// ErrInvalidCoal indicates coal input outside [MinCoalMW, MaxCoalMW].
	ErrInvalidCoal = errors.New("coal input must be between 50 and 500 MW")

	// ErrInvalidBiogas indicates a biogas share outside [0, MaxBiogasPct].
	ErrInvalidBiogas = errors.New("biogas share must be between 0 and 100 percent")
)

// Prediction is the estimated outcome of firing a blend.
type Prediction struct {
	CoalMW         float64 `json:"coal_mw"`
	BiogasPct      float64 `json:"biogas_pct"`
	PowerMW        float64 `json:"power_mw"`
	BasePollution  float64 `json:"base_pollution"`
	Reduction      float64 `json:"reduction"`
	FinalPollution float64 `json:"final_pollution"`
	ReductionPct   float64 `json:"reduction_pct"`
	Safe           bool    `json:"safe"`
}

// Optimum is the best safe blend found for a coal input.
type Optimum struct {
	Prediction `json:",inline"`
	Score      float64 `json:"score"`
}

// Predict estimates the blend of coalMW of coal with biogasPct percent biogas.
func Predict(coalMW, biogasPct float64) (Prediction, error) {
	if err := validateCoal(coalMW); err != nil {
		return Prediction{}, err
	}
	if math.IsNaN(biogasPct) || biogasPct < 0 || biogasPct > MaxBiogasPct {
		return Prediction{}, ErrInvalidBiogas
	}
	return predict(coalMW, biogasPct), nil
}

// Optimize scans whole-percent biogas shares from 0 to 100 and returns the
// safe blend with the highest power to pollution score. Ties keep the
// smallest share.
func Optimize(coalMW float64) (Optimum, error) {
	if err := validateCoal(coalMW); err != nil {
		return Optimum{}, err
	}

	var (
		preds  []Prediction
		scores []float64
	)
	for pct := 0; pct <= int(MaxBiogasPct); pct++ {
		p := predict(coalMW, float64(pct))
		if !p.Safe {
			continue
		}
		preds = append(preds, p)
		scores = append(scores, score(p))
	}

	best := floats.MaxIdx(scores)
	return Optimum{
		Prediction: preds[best],
		Score:      scores[best],
	}, nil
}

func predict(coalMW, biogasPct float64) Prediction {
	base := coalMW * coalPollution
	reduction := biogasPct / 100 * base * maxReductionFactor
	return Prediction{
		CoalMW:         coalMW,
		BiogasPct:      biogasPct,
		PowerMW:        coalMW*coalPowerFactor + biogasPct*biogasPowerFactor,
		BasePollution:  base,
		Reduction:      reduction,
		FinalPollution: base - reduction,
		ReductionPct:   reduction / (base + 0.01) * 100,
		Safe:           biogasPct <= SafeBiogasPct,
	}
}

func score(p Prediction) float64 {
	return p.PowerMW / (p.FinalPollution + 0.1)
}

func validateCoal(coalMW float64) error {
	if math.IsNaN(coalMW) || coalMW < MinCoalMW || coalMW > MaxCoalMW {
		return ErrInvalidCoal
	}
	return nil
}
