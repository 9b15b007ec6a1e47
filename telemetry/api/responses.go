// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"net/http"

	"github.com/hybridfuel/hybridfuel"
	"github.com/hybridfuel/hybridfuel/blend"
	"github.com/hybridfuel/hybridfuel/feedstock"
	"github.com/hybridfuel/hybridfuel/telemetry"
)

var (
	_ hybridfuel.Response = (*readingRes)(nil)
	_ hybridfuel.Response = (*readingsPageRes)(nil)
	_ hybridfuel.Response = (*snapshotRes)(nil)
	_ hybridfuel.Response = (*summaryRes)(nil)
	_ hybridfuel.Response = (*importRes)(nil)
	_ hybridfuel.Response = (*subscriptionRes)(nil)
	_ hybridfuel.Response = (*predictionRes)(nil)
	_ hybridfuel.Response = (*optimumRes)(nil)
	_ hybridfuel.Response = (*feedstockRes)(nil)
)

type readingRes struct {
	telemetry.Reading `json:",inline"`
}

func (res readingRes) Code() int {
	return http.StatusOK
}

func (res readingRes) Headers() map[string]string {
	return map[string]string{}
}

func (res readingRes) Empty() bool {
	return false
}

type readingsPageRes struct {
	Limit    int                 `json:"limit"`
	Total    int                 `json:"total"`
	Readings []telemetry.Reading `json:"readings"`
}

func (res readingsPageRes) Code() int {
	return http.StatusOK
}

func (res readingsPageRes) Headers() map[string]string {
	return map[string]string{}
}

func (res readingsPageRes) Empty() bool {
	return false
}

type snapshotRes struct {
	telemetry.Snapshot `json:",inline"`
}

func (res snapshotRes) Code() int {
	return http.StatusOK
}

func (res snapshotRes) Headers() map[string]string {
	return map[string]string{}
}

func (res snapshotRes) Empty() bool {
	return false
}

type summaryRes struct {
	telemetry.Summary `json:",inline"`
}

func (res summaryRes) Code() int {
	return http.StatusOK
}

func (res summaryRes) Headers() map[string]string {
	return map[string]string{}
}

func (res summaryRes) Empty() bool {
	return false
}

type importRes struct {
	Mode     telemetry.ImportMode `json:"mode"`
	Imported int                  `json:"imported"`
	Total    int                  `json:"total"`
	Warning  string               `json:"warning,omitempty"`
}

func (res importRes) Code() int {
	return http.StatusOK
}

func (res importRes) Headers() map[string]string {
	return map[string]string{}
}

func (res importRes) Empty() bool {
	return false
}

// exportRes is written as CSV rather than JSON.
type exportRes struct {
	readings []telemetry.Reading
}

type subscriptionRes struct {
	Topic string `json:"topic"`
}

func (res subscriptionRes) Code() int {
	return http.StatusOK
}

func (res subscriptionRes) Headers() map[string]string {
	return map[string]string{}
}

func (res subscriptionRes) Empty() bool {
	return false
}

type predictionRes struct {
	blend.Prediction `json:",inline"`
}

func (res predictionRes) Code() int {
	return http.StatusOK
}

func (res predictionRes) Headers() map[string]string {
	return map[string]string{}
}

func (res predictionRes) Empty() bool {
	return false
}

type optimumRes struct {
	blend.Optimum `json:",inline"`
}

func (res optimumRes) Code() int {
	return http.StatusOK
}

func (res optimumRes) Headers() map[string]string {
	return map[string]string{}
}

func (res optimumRes) Empty() bool {
	return false
}

type feedstockRes struct {
	feedstock.Map `json:",inline"`
}

func (res feedstockRes) Code() int {
	return http.StatusOK
}

func (res feedstockRes) Headers() map[string]string {
	return map[string]string{}
}

func (res feedstockRes) Empty() bool {
	return false
}
