// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	"github.com/hybridfuel/hybridfuel/blend"
	"github.com/hybridfuel/hybridfuel/feedstock"
	"github.com/hybridfuel/hybridfuel/pkg/apiutil"
	"github.com/hybridfuel/hybridfuel/pkg/errors"
	"github.com/hybridfuel/hybridfuel/telemetry"
)

func latestEndpoint(svc telemetry.Service) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		r, err := svc.Latest(ctx)
		if err != nil {
			return nil, err
		}

		return readingRes{Reading: r}, nil
	}
}

func listReadingsEndpoint(svc telemetry.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(listReadingsReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}

		readings, err := svc.Tail(ctx, req.limit)
		if err != nil {
			return nil, err
		}

		return readingsPageRes{
			Limit:    req.limit,
			Total:    len(readings),
			Readings: readings,
		}, nil
	}
}

func currentEndpoint(svc telemetry.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(currentReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}

		snap, err := svc.Current(ctx, req.back)
		if err != nil {
			return nil, err
		}

		return snapshotRes{Snapshot: snap}, nil
	}
}

func summaryEndpoint(svc telemetry.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(listReadingsReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}

		sum, err := svc.Summary(ctx, req.limit)
		if err != nil {
			return nil, err
		}

		return summaryRes{Summary: sum}, nil
	}
}

func importEndpoint(svc telemetry.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(importReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}

		res := importRes{
			Mode:     req.mode,
			Imported: len(req.readings),
		}
		total, err := svc.Import(ctx, req.readings, req.mode)
		switch {
		case errors.Contains(err, telemetry.ErrPersistence):
			// The history already holds the batch; only the save failed.
			res.Warning = err.Error()
		case err != nil:
			return nil, err
		}
		res.Total = total

		return res, nil
	}
}

func exportEndpoint(svc telemetry.Service) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		readings, err := svc.Export(ctx)
		if err != nil {
			return nil, err
		}

		return exportRes{readings: readings}, nil
	}
}

func viewSubscriptionEndpoint(svc telemetry.Service) endpoint.Endpoint {
	return func(ctx context.Context, _ interface{}) (interface{}, error) {
		topic, err := svc.Topic(ctx)
		if err != nil {
			return nil, err
		}

		return subscriptionRes{Topic: topic}, nil
	}
}

func switchSubscriptionEndpoint(svc telemetry.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(switchTopicReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}

		if err := svc.SwitchTopic(ctx, req.Topic); err != nil {
			return nil, err
		}

		topic, err := svc.Topic(ctx)
		if err != nil {
			return nil, err
		}

		return subscriptionRes{Topic: topic}, nil
	}
}

func feedstockEndpoint() endpoint.Endpoint {
	return func(_ context.Context, _ interface{}) (interface{}, error) {
		return feedstockRes{Map: feedstock.India()}, nil
	}
}

func predictEndpoint() endpoint.Endpoint {
	return func(_ context.Context, request interface{}) (interface{}, error) {
		req := request.(predictReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}

		p, err := blend.Predict(req.CoalMW, req.BiogasPct)
		if err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}

		return predictionRes{Prediction: p}, nil
	}
}

func optimizeEndpoint() endpoint.Endpoint {
	return func(_ context.Context, request interface{}) (interface{}, error) {
		req := request.(optimizeReq)
		if err := req.validate(); err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}

		o, err := blend.Optimize(req.CoalMW)
		if err != nil {
			return nil, errors.Wrap(apiutil.ErrValidation, err)
		}

		return optimumRes{Optimum: o}, nil
	}
}
