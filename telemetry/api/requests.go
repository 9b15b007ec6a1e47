// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"github.com/hybridfuel/hybridfuel/blend"
	"github.com/hybridfuel/hybridfuel/pkg/apiutil"
	"github.com/hybridfuel/hybridfuel/telemetry"
)

const (
	defLimit = 20
	maxLimit = 10000
	defBack  = 1
)

type listReadingsReq struct {
	limit int
}

func (req listReadingsReq) validate() error {
	if req.limit < 1 || req.limit > maxLimit {
		return apiutil.ErrLimitSize
	}

	return nil
}

type currentReq struct {
	back int
}

func (req currentReq) validate() error {
	if req.back < 1 || req.back > maxLimit {
		return apiutil.ErrInvalidQueryParams
	}

	return nil
}

type importReq struct {
	mode     telemetry.ImportMode
	readings []telemetry.Reading
}

func (req importReq) validate() error {
	if req.mode != telemetry.ImportMerge && req.mode != telemetry.ImportReplace {
		return telemetry.ErrInvalidMode
	}

	return nil
}

type switchTopicReq struct {
	Topic string `json:"topic"`
}

func (req switchTopicReq) validate() error {
	if req.Topic == "" {
		return telemetry.ErrEmptyTopic
	}

	return nil
}

type predictReq struct {
	CoalMW    float64 `json:"coal_mw"`
	BiogasPct float64 `json:"biogas_pct"`
}

func (req predictReq) validate() error {
	if req.CoalMW < blend.MinCoalMW || req.CoalMW > blend.MaxCoalMW {
		return blend.ErrInvalidCoal
	}
	if req.BiogasPct < 0 || req.BiogasPct > blend.MaxBiogasPct {
		return blend.ErrInvalidBiogas
	}

	return nil
}

type optimizeReq struct {
	CoalMW float64 `json:"coal_mw"`
}

func (req optimizeReq) validate() error {
	if req.CoalMW < blend.MinCoalMW || req.CoalMW > blend.MaxCoalMW {
		return blend.ErrInvalidCoal
	}

	return nil
}
