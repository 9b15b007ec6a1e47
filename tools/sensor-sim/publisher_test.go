// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package sim_test

import (
	"context"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/hybridfuel/hybridfuel/logger"
	"github.com/hybridfuel/hybridfuel/pkg/errors"
	"github.com/hybridfuel/hybridfuel/pkg/ticker"
	"github.com/hybridfuel/hybridfuel/pkg/uuid"
	"github.com/hybridfuel/hybridfuel/telemetry"
	sim "github.com/hybridfuel/hybridfuel/tools/sensor-sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBroker = errors.New("broker refused")

type fakeToken struct {
	mqtt.Token
	err error
}

func (t fakeToken) WaitTimeout(time.Duration) bool {
	return true
}

func (t fakeToken) Error() error {
	return t.err
}

type fakeClient struct {
	mqtt.Client

	mu         sync.Mutex
	opts       *mqtt.ClientOptions
	connectErr error
	publishErr error
	published  [][]byte
	topics     []string
	closed     bool
}

func (c *fakeClient) factory(opts *mqtt.ClientOptions) mqtt.Client {
	c.opts = opts
	return c
}

func (c *fakeClient) Connect() mqtt.Token {
	return fakeToken{err: c.connectErr}
}

func (c *fakeClient) Publish(topic string, _ byte, _ bool, payload interface{}) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.publishErr != nil {
		return fakeToken{err: c.publishErr}
	}
	c.topics = append(c.topics, topic)
	c.published = append(c.published, payload.([]byte))
	return fakeToken{}
}

func (c *fakeClient) Disconnect(uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *fakeClient) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.published)
}

func newPublisher(t *testing.T, cfg sim.Config, client *fakeClient) *sim.Publisher {
	gen, err := sim.NewGenerator(cfg.Ranges, 3)
	require.Nil(t, err, "unexpected error creating generator")

	pub, err := sim.NewPublisher(cfg, gen, uuid.NewMock(), logger.NewMock(), client.factory)
	require.Nil(t, err, "unexpected error creating publisher")

	return pub
}

func TestNewPublisher(t *testing.T) {
	cfg := sim.DefaultConfig()
	client := &fakeClient{}
	newPublisher(t, cfg, client)

	assert.Equal(t, "hybridfuel-sim-"+uuid.Prefix+"000000000001", client.opts.ClientID)

	cfg.Format = "xml"
	gen, err := sim.NewGenerator(cfg.Ranges, 1)
	require.Nil(t, err, "unexpected error creating generator")
	_, err = sim.NewPublisher(cfg, gen, uuid.NewMock(), logger.NewMock(), client.factory)
	assert.NotNil(t, err, "expected error for unsupported format")
}

func TestRunCount(t *testing.T) {
	cfg := sim.DefaultConfig()
	cfg.Count = 3
	client := &fakeClient{}
	pub := newPublisher(t, cfg, client)

	tick := ticker.NewManual()
	done := make(chan sim.Results)
	go func() {
		res, err := pub.Run(context.Background(), tick)
		assert.Nil(t, err, "unexpected error running publisher")
		done <- res
	}()

	tick.Fire()
	tick.Fire()
	res := <-done

	assert.Equal(t, 3, res.Published)
	assert.Equal(t, 0, res.Failed)
	assert.Equal(t, 3, client.count())
	assert.Equal(t, []string{cfg.Topic, cfg.Topic, cfg.Topic}, client.topics)
	assert.True(t, client.closed, "publisher should disconnect when done")

	dec := telemetry.NewJSONDecoder(nil)
	for _, p := range client.published {
		_, err := dec.Decode(p)
		assert.Nil(t, err, "published payload should decode")
	}
}

func TestRunCancel(t *testing.T) {
	cfg := sim.DefaultConfig()
	client := &fakeClient{}
	pub := newPublisher(t, cfg, client)

	ctx, cancel := context.WithCancel(context.Background())
	tick := ticker.NewManual()
	done := make(chan sim.Results)
	go func() {
		res, err := pub.Run(ctx, tick)
		assert.Nil(t, err, "unexpected error running publisher")
		done <- res
	}()

	tick.Fire()
	cancel()
	res := <-done

	assert.Equal(t, 2, res.Published)
	assert.True(t, client.closed, "publisher should disconnect on cancel")
}

func TestRunErrors(t *testing.T) {
	cases := []struct {
		desc       string
		connectErr error
		publishErr error
		published  int
		failed     int
		err        error
	}{
		{
			desc:       "connection refused",
			connectErr: errBroker,
			err:        telemetry.ErrConnection,
		},
		{
			desc:       "publish rejected",
			publishErr: errBroker,
			failed:     1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			cfg := sim.DefaultConfig()
			cfg.Count = 1
			client := &fakeClient{connectErr: tc.connectErr, publishErr: tc.publishErr}
			pub := newPublisher(t, cfg, client)

			res, err := pub.Run(context.Background(), ticker.NewManual())
			assert.True(t, errors.Contains(err, tc.err), "expected error %v, got %v", tc.err, err)
			assert.Equal(t, tc.published, res.Published)
			assert.Equal(t, tc.failed, res.Failed)
		})
	}
}
