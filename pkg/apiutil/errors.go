// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package apiutil

import "github.com/hybridfuel/hybridfuel/pkg/errors"

// Request errors. Anything wrapped with ErrValidation is rejected before it
// reaches the service.
var (
	// ErrValidation marks an invalid request.
	ErrValidation = errors.New("invalid request")

	// ErrLimitSize indicates that an invalid limit.
	ErrLimitSize = errors.New("invalid limit size")

	// ErrInvalidQueryParams indicates invalid query parameters.
	ErrInvalidQueryParams = errors.New("invalid query parameters")

	// ErrUnsupportedContentType indicates unacceptable or lack of Content-Type.
	ErrUnsupportedContentType = errors.New("unsupported content type")

	// ErrPayloadTooLarge indicates a request body over the accepted size.
	ErrPayloadTooLarge = errors.New("request body too large")

	// ErrMalformedRequest indicates a request body that could not be decoded.
	ErrMalformedRequest = errors.New("malformed request body")
)
