// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/hybridfuel/hybridfuel"
	"github.com/hybridfuel/hybridfuel/blend"
	"github.com/hybridfuel/hybridfuel/pkg/apiutil"
	"github.com/hybridfuel/hybridfuel/pkg/errors"
	"github.com/hybridfuel/hybridfuel/telemetry"
	"github.com/hybridfuel/hybridfuel/telemetry/csvfile"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	svcName        = "hybridfuel"
	contentType    = "application/json"
	csvContentType = "text/csv"
	limitKey       = "limit"
	backKey        = "back"
	modeKey        = "mode"
	maxImportSize  = 32 << 20
)

var errNotFound = errors.New("resource not found")

// MakeHandler returns a HTTP handler for the telemetry API. Live clients are
// polled for new readings every liveInterval.
func MakeHandler(svc telemetry.Service, logger *slog.Logger, idp hybridfuel.IDProvider, instanceID string, liveInterval time.Duration) http.Handler {
	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(apiutil.LoggingErrorEncoder(logger, encodeError)),
	}

	mux := chi.NewRouter()
	mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		encodeError(r.Context(), errNotFound, w)
	})

	mux.Group(func(r chi.Router) {
		r.Use(apiutil.RequestIDMiddleware(idp))

		r.Route("/readings", func(r chi.Router) {
			r.Get("/", otelhttp.NewHandler(kithttp.NewServer(
				listReadingsEndpoint(svc),
				decodeListReadings,
				encodeResponse,
				opts...,
			), "list_readings").ServeHTTP)

			r.Get("/latest", otelhttp.NewHandler(kithttp.NewServer(
				latestEndpoint(svc),
				decodeNoop,
				encodeResponse,
				opts...,
			), "view_latest_reading").ServeHTTP)

			r.Get("/current", otelhttp.NewHandler(kithttp.NewServer(
				currentEndpoint(svc),
				decodeCurrent,
				encodeResponse,
				opts...,
			), "view_current_reading").ServeHTTP)

			r.Get("/summary", otelhttp.NewHandler(kithttp.NewServer(
				summaryEndpoint(svc),
				decodeListReadings,
				encodeResponse,
				opts...,
			), "view_summary").ServeHTTP)

			r.Post("/import", otelhttp.NewHandler(kithttp.NewServer(
				importEndpoint(svc),
				decodeImport,
				encodeResponse,
				opts...,
			), "import_readings").ServeHTTP)

			r.Get("/export", otelhttp.NewHandler(kithttp.NewServer(
				exportEndpoint(svc),
				decodeNoop,
				encodeExport,
				opts...,
			), "export_readings").ServeHTTP)

			r.Get("/live", liveHandler(svc, logger, liveInterval))
		})

		r.Route("/subscription", func(r chi.Router) {
			r.Get("/", otelhttp.NewHandler(kithttp.NewServer(
				viewSubscriptionEndpoint(svc),
				decodeNoop,
				encodeResponse,
				opts...,
			), "view_subscription").ServeHTTP)

			r.Put("/", otelhttp.NewHandler(kithttp.NewServer(
				switchSubscriptionEndpoint(svc),
				decodeSwitchTopic,
				encodeResponse,
				opts...,
			), "switch_subscription").ServeHTTP)
		})

		r.Get("/feedstock", otelhttp.NewHandler(kithttp.NewServer(
			feedstockEndpoint(),
			decodeNoop,
			encodeResponse,
			opts...,
		), "view_feedstock").ServeHTTP)

		r.Route("/blend", func(r chi.Router) {
			r.Post("/predict", otelhttp.NewHandler(kithttp.NewServer(
				predictEndpoint(),
				decodePredict,
				encodeResponse,
				opts...,
			), "predict_blend").ServeHTTP)

			r.Post("/optimize", otelhttp.NewHandler(kithttp.NewServer(
				optimizeEndpoint(),
				decodeOptimize,
				encodeResponse,
				opts...,
			), "optimize_blend").ServeHTTP)
		})
	})

	mux.Get("/health", hybridfuel.Health(svcName, instanceID))
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

func decodeNoop(_ context.Context, _ *http.Request) (interface{}, error) {
	return nil, nil
}

func decodeListReadings(_ context.Context, r *http.Request) (interface{}, error) {
	limit, err := apiutil.ReadNumQuery(r, limitKey, defLimit)
	if err != nil {
		return nil, errors.Wrap(apiutil.ErrValidation, err)
	}

	return listReadingsReq{limit: limit}, nil
}

func decodeCurrent(_ context.Context, r *http.Request) (interface{}, error) {
	back, err := apiutil.ReadNumQuery(r, backKey, defBack)
	if err != nil {
		return nil, errors.Wrap(apiutil.ErrValidation, err)
	}

	return currentReq{back: back}, nil
}

func decodeImport(_ context.Context, r *http.Request) (interface{}, error) {
	if !strings.Contains(r.Header.Get("Content-Type"), csvContentType) {
		return nil, errors.Wrap(apiutil.ErrValidation, apiutil.ErrUnsupportedContentType)
	}

	m, err := apiutil.ReadStringQuery(r, modeKey, "")
	if err != nil {
		return nil, errors.Wrap(apiutil.ErrValidation, err)
	}
	mode, err := telemetry.ParseImportMode(m)
	if err != nil {
		return nil, errors.Wrap(apiutil.ErrValidation, err)
	}

	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, maxImportSize))
	if err != nil {
		var mbe *http.MaxBytesError
		if stderrors.As(err, &mbe) {
			return nil, errors.Wrap(apiutil.ErrValidation, apiutil.ErrPayloadTooLarge)
		}
		return nil, errors.Wrap(apiutil.ErrValidation, errors.Wrap(apiutil.ErrMalformedRequest, err))
	}

	readings, err := csvfile.Read(bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(apiutil.ErrValidation, err)
	}

	return importReq{mode: mode, readings: readings}, nil
}

func decodeSwitchTopic(_ context.Context, r *http.Request) (interface{}, error) {
	var req switchTopicReq
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	req.Topic = strings.TrimSpace(req.Topic)

	return req, nil
}

func decodePredict(_ context.Context, r *http.Request) (interface{}, error) {
	var req predictReq
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}

	return req, nil
}

func decodeOptimize(_ context.Context, r *http.Request) (interface{}, error) {
	var req optimizeReq
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}

	return req, nil
}

func decodeJSON(r *http.Request, v any) error {
	if !strings.Contains(r.Header.Get("Content-Type"), contentType) {
		return errors.Wrap(apiutil.ErrValidation, apiutil.ErrUnsupportedContentType)
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(apiutil.ErrValidation, errors.Wrap(apiutil.ErrMalformedRequest, err))
	}

	return nil
}

func encodeResponse(_ context.Context, w http.ResponseWriter, response interface{}) error {
	if ar, ok := response.(hybridfuel.Response); ok {
		for k, v := range ar.Headers() {
			w.Header().Set(k, v)
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(ar.Code())

		if ar.Empty() {
			return nil
		}
	}

	return json.NewEncoder(w).Encode(response)
}

func encodeExport(_ context.Context, w http.ResponseWriter, response interface{}) error {
	res := response.(exportRes)
	w.Header().Set("Content-Type", csvContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="history.csv"`)
	w.WriteHeader(http.StatusOK)

	return csvfile.Write(w, res.readings)
}

type errorRes struct {
	Err            string   `json:"error"`
	MissingColumns []string `json:"missing_columns,omitempty"`
}

func encodeError(_ context.Context, err error, w http.ResponseWriter) {
	validation := errors.Contains(err, apiutil.ErrValidation)
	if validation {
		_, err = errors.Unwrap(err)
	}

	w.Header().Set("Content-Type", contentType)
	switch {
	case errors.Contains(err, apiutil.ErrUnsupportedContentType):
		w.WriteHeader(http.StatusUnsupportedMediaType)
	case errors.Contains(err, apiutil.ErrPayloadTooLarge):
		w.WriteHeader(http.StatusRequestEntityTooLarge)
	case validation,
		errors.Contains(err, telemetry.ErrImportValidation),
		errors.Contains(err, telemetry.ErrInvalidMode),
		errors.Contains(err, telemetry.ErrEmptyTopic),
		errors.Contains(err, blend.ErrInvalidCoal),
		errors.Contains(err, blend.ErrInvalidBiogas):
		w.WriteHeader(http.StatusBadRequest)
	case errors.Contains(err, errNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Contains(err, telemetry.ErrSubscription),
		errors.Contains(err, telemetry.ErrConnection):
		w.WriteHeader(http.StatusServiceUnavailable)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}

	res := errorRes{Err: err.Error()}
	if mce, ok := telemetry.MissingColumns(err); ok {
		res.MissingColumns = mce.Missing
	}
	_ = json.NewEncoder(w).Encode(res)
}
