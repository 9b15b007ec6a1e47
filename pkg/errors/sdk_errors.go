// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const errKey = "error"

var (
	errJSONKey = New("response body expected error message json key not found")
	errUnknown = New("unknown error")
)

// SDKError is an error returned by the HybridFuel SDK. It carries the HTTP
// status code of the failed response, or 0 when no response was received.
type SDKError interface {
	Error
	StatusCode() int
}

var _ SDKError = (*sdkError)(nil)

type sdkError struct {
	*link
	statusCode int
}

func (se *sdkError) Error() string {
	if se == nil {
		return ""
	}
	if se.link == nil {
		return http.StatusText(se.statusCode)
	}
	return fmt.Sprintf("Status: %s: %s", http.StatusText(se.statusCode), se.link.Error())
}

func (se *sdkError) StatusCode() int {
	return se.statusCode
}

// NewSDKError returns an SDK Error that formats as the given text.
func NewSDKError(err error) SDKError {
	return NewSDKErrorWithStatus(err, 0)
}

// NewSDKErrorWithStatus returns an SDK Error setting the status code.
func NewSDKErrorWithStatus(err error, statusCode int) SDKError {
	se := &sdkError{statusCode: statusCode}
	if err != nil {
		se.link = &link{msg: err.Error()}
	}
	return se
}

// CheckError returns nil when resp carries one of the expected status codes.
// Otherwise it reads the "error" key of the JSON body into an SDKError.
func CheckError(resp *http.Response, expectedStatusCodes ...int) SDKError {
	for _, code := range expectedStatusCodes {
		if resp.StatusCode == code {
			return nil
		}
	}

	var content map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&content); err != nil {
		return NewSDKErrorWithStatus(err, resp.StatusCode)
	}

	msg, ok := content[errKey]
	if !ok {
		return NewSDKErrorWithStatus(errJSONKey, resp.StatusCode)
	}
	if v, ok := msg.(string); ok {
		return NewSDKErrorWithStatus(errors.New(v), resp.StatusCode)
	}
	return NewSDKErrorWithStatus(errUnknown, resp.StatusCode)
}
