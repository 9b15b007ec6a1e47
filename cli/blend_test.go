// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli_test

import (
	"encoding/json"
	"testing"

	"github.com/hybridfuel/hybridfuel/blend"
	"github.com/hybridfuel/hybridfuel/cli"
	sdkmocks "github.com/hybridfuel/hybridfuel/pkg/sdk/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlendCmd(t *testing.T) {
	sdkMock := new(sdkmocks.SDK)
	cli.SetSDK(sdkMock)
	rootCmd := setFlags(cli.NewBlendCmd())

	cases := []struct {
		desc    string
		args    []string
		biogas  float64
		logType outputLog
		errText string
	}{
		{
			desc:    "predict locally",
			args:    []string{predictCmd, "200", "10"},
			biogas:  10,
			logType: entityLog,
		},
		{
			desc:    "predict with missing args",
			args:    []string{predictCmd, "200"},
			logType: usageLog,
		},
		{
			desc:    "predict with invalid number",
			args:    []string{predictCmd, "lots", "10"},
			logType: errLog,
			errText: "invalid syntax",
		},
		{
			desc:    "predict out of range",
			args:    []string{predictCmd, "900", "10"},
			logType: errLog,
			errText: blend.ErrInvalidCoal.Error(),
		},
		{
			desc:    "optimize locally",
			args:    []string{optimizeCmd, "200"},
			biogas:  40,
			logType: entityLog,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			out := executeCommand(t, rootCmd, tc.args...)

			switch tc.logType {
			case entityLog:
				var got blend.Prediction
				require.Nil(t, json.Unmarshal([]byte(out), &got), out)
				assert.Equal(t, tc.biogas, got.BiogasPct)
				assert.True(t, got.Safe)
			case usageLog:
				assert.Contains(t, out, "usage: ")
			case errLog:
				assert.Contains(t, out, tc.errText)
			}
		})
	}
	sdkMock.AssertNotCalled(t, "PredictBlend")
}

func TestBlendRemoteCmd(t *testing.T) {
	sdkMock := new(sdkmocks.SDK)
	cli.SetSDK(sdkMock)
	rootCmd := setFlags(cli.NewBlendCmd())

	p, err := blend.Predict(150, 20)
	require.Nil(t, err)
	sdkMock.On("PredictBlend", 150.0, 20.0).Return(p, nil)

	out := executeCommand(t, rootCmd, predictCmd, "150", "20", "--remote")
	cli.Remote = false

	var got blend.Prediction
	require.Nil(t, json.Unmarshal([]byte(out), &got), out)
	assert.Equal(t, p, got)
	sdkMock.AssertExpectations(t)
}
