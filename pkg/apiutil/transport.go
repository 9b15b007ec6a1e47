// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package apiutil

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/hybridfuel/hybridfuel"
	"github.com/hybridfuel/hybridfuel/pkg/errors"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// LoggingErrorEncoder logs request validation failures before enc writes
// them. Service errors are left to the logging middleware.
func LoggingErrorEncoder(logger *slog.Logger, enc kithttp.ErrorEncoder) kithttp.ErrorEncoder {
	return func(ctx context.Context, err error, w http.ResponseWriter) {
		if errors.Contains(err, ErrValidation) {
			logger.Warn("Rejected request",
				slog.String("request_id", middleware.GetReqID(ctx)),
				slog.Any("error", err),
			)
		}
		enc(ctx, err, w)
	}
}

// RequestIDMiddleware stores the caller's request ID, or a generated one,
// where middleware.GetReqID finds it.
func RequestIDMiddleware(idp hybridfuel.IDProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(RequestIDHeader)
			if reqID == "" {
				id, err := idp.ID()
				if err != nil {
					w.WriteHeader(http.StatusInternalServerError)
					return
				}
				reqID = id
			}
			w.Header().Set(RequestIDHeader, reqID)
			ctx := context.WithValue(r.Context(), middleware.RequestIDKey, reqID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ReadStringQuery returns the single value of query parameter key, or def
// when it is absent. Repeating the parameter is an error.
func ReadStringQuery(r *http.Request, key, def string) (string, error) {
	switch vals := r.URL.Query()[key]; len(vals) {
	case 0:
		return def, nil
	case 1:
		return vals[0], nil
	default:
		return "", ErrInvalidQueryParams
	}
}

type number interface {
	int | int64 | uint64 | float64
}

// ReadNumQuery parses query parameter key as N, returning def when it is
// absent.
func ReadNumQuery[N number](r *http.Request, key string, def N) (N, error) {
	vals := r.URL.Query()[key]
	if len(vals) == 0 {
		return def, nil
	}
	if len(vals) > 1 {
		return 0, ErrInvalidQueryParams
	}

	var (
		v   N
		err error
		raw = vals[0]
	)
	switch p := any(&v).(type) {
	case *int:
		*p, err = strconv.Atoi(raw)
	case *int64:
		*p, err = strconv.ParseInt(raw, 10, 64)
	case *uint64:
		*p, err = strconv.ParseUint(raw, 10, 64)
	case *float64:
		*p, err = strconv.ParseFloat(raw, 64)
	}
	if err != nil {
		return 0, errors.Wrap(ErrInvalidQueryParams, err)
	}

	return v, nil
}
