// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package cli_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/hybridfuel/hybridfuel/cli"
	"github.com/hybridfuel/hybridfuel/pkg/errors"
	sdkmocks "github.com/hybridfuel/hybridfuel/pkg/sdk/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionCmd(t *testing.T) {
	sdkMock := new(sdkmocks.SDK)
	cli.SetSDK(sdkMock)
	rootCmd := setFlags(cli.NewSubscriptionCmd())

	cases := []struct {
		desc    string
		args    []string
		topic   string
		sdkErr  errors.SDKError
		logType outputLog
	}{
		{
			desc:    "get subscription",
			args:    []string{getCmd},
			topic:   "hybridfuel/sensors",
			logType: entityLog,
		},
		{
			desc:    "switch subscription",
			args:    []string{switchCmd, "plant/b"},
			topic:   "plant/b",
			logType: entityLog,
		},
		{
			desc:    "switch subscription without topic",
			args:    []string{switchCmd},
			logType: usageLog,
		},
		{
			desc:    "switch subscription rejected by broker",
			args:    []string{switchCmd, "plant/c"},
			sdkErr:  errors.NewSDKErrorWithStatus(errors.New("failed to switch subscription"), http.StatusServiceUnavailable),
			logType: errLog,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			getCall := sdkMock.On("Subscription").Return(tc.topic, tc.sdkErr)
			switchCall := sdkMock.On("SwitchSubscription", "plant/b").Return(tc.topic, tc.sdkErr)
			rejectCall := sdkMock.On("SwitchSubscription", "plant/c").Return(tc.topic, tc.sdkErr)

			out := executeCommand(t, rootCmd, tc.args...)

			switch tc.logType {
			case entityLog:
				var got struct {
					Topic string `json:"topic"`
				}
				require.Nil(t, json.Unmarshal([]byte(out), &got), out)
				assert.Equal(t, tc.topic, got.Topic)
			case usageLog:
				assert.Contains(t, out, "usage: switch <topic>")
			case errLog:
				assert.Contains(t, out, "failed to switch subscription")
			}
			getCall.Unset()
			switchCall.Unset()
			rejectCall.Unset()
		})
	}
}
