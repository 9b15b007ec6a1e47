// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package jaeger_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/hybridfuel/hybridfuel/pkg/jaeger"
	"github.com/stretchr/testify/assert"
)

func TestNewProvider(t *testing.T) {
	cases := []struct {
		desc    string
		svcName string
		url     url.URL
		err     bool
	}{
		{
			desc:    "plain http collector",
			svcName: "hybridfuel",
			url:     url.URL{Scheme: "http", Host: "localhost:4318", Path: "/v1/traces"},
		},
		{
			desc:    "empty url",
			svcName: "hybridfuel",
			url:     url.URL{},
			err:     true,
		},
		{
			desc:    "empty service name",
			svcName: "",
			url:     url.URL{Scheme: "http", Host: "localhost:4318", Path: "/v1/traces"},
			err:     true,
		},
		{
			desc:    "unsupported scheme",
			svcName: "hybridfuel",
			url:     url.URL{Scheme: "udp", Host: "localhost:6831"},
			err:     true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			tp, err := jaeger.NewProvider(context.Background(), tc.svcName, tc.url, "instance", 1.0)
			if tc.err {
				assert.NotNil(t, err)
				assert.Nil(t, tp)
				return
			}
			assert.Nil(t, err)
			assert.NotNil(t, tp)
			assert.Nil(t, tp.Shutdown(context.Background()))
		})
	}
}
