// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package errors_test

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/hybridfuel/hybridfuel/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNewSDKErrorWithStatus(t *testing.T) {
	base := errors.New("topic must not be empty")

	cases := []struct {
		desc string
		err  error
		sc   int
		msg  string
	}{
		{
			desc: "error without status",
			err:  base,
			sc:   0,
			msg:  fmt.Sprintf("Status: %s: %s", http.StatusText(0), base.Error()),
		},
		{
			desc: "error with bad request status",
			err:  base,
			sc:   http.StatusBadRequest,
			msg:  fmt.Sprintf("Status: %s: %s", http.StatusText(http.StatusBadRequest), base.Error()),
		},
		{
			desc: "nil error with status",
			err:  nil,
			sc:   http.StatusServiceUnavailable,
			msg:  http.StatusText(http.StatusServiceUnavailable),
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			sdkErr := errors.NewSDKErrorWithStatus(tc.err, tc.sc)
			assert.Equal(t, tc.sc, sdkErr.StatusCode())
			assert.Equal(t, tc.msg, sdkErr.Error())
		})
	}
}

func TestCheckError(t *testing.T) {
	cases := []struct {
		desc     string
		status   int
		body     string
		expected []int
		msg      string
		isNil    bool
	}{
		{
			desc:     "expected status",
			status:   http.StatusOK,
			body:     `{}`,
			expected: []int{http.StatusOK},
			isNil:    true,
		},
		{
			desc:     "one of several expected statuses",
			status:   http.StatusNoContent,
			body:     ``,
			expected: []int{http.StatusOK, http.StatusNoContent},
			isNil:    true,
		},
		{
			desc:     "unexpected status with error body",
			status:   http.StatusBadRequest,
			body:     `{"error":"missing required columns: CO2"}`,
			expected: []int{http.StatusOK},
			msg:      "missing required columns: CO2",
		},
		{
			desc:     "unexpected status without error key",
			status:   http.StatusInternalServerError,
			body:     `{"message":"boom"}`,
			expected: []int{http.StatusOK},
			msg:      "response body expected error message json key not found",
		},
		{
			desc:     "unexpected status with non string error",
			status:   http.StatusInternalServerError,
			body:     `{"error":42}`,
			expected: []int{http.StatusOK},
			msg:      "unknown error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			resp := &http.Response{
				StatusCode: tc.status,
				Body:       io.NopCloser(bytes.NewBufferString(tc.body)),
			}
			sdkErr := errors.CheckError(resp, tc.expected...)
			if tc.isNil {
				assert.Nil(t, sdkErr)
				return
			}
			assert.Equal(t, tc.status, sdkErr.StatusCode())
			assert.Equal(t, tc.msg, sdkErr.Msg())
		})
	}
}
