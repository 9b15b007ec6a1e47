// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package sim

import (
	"context"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/hybridfuel/hybridfuel"
	"github.com/hybridfuel/hybridfuel/pkg/errors"
	"github.com/hybridfuel/hybridfuel/pkg/ticker"
	"github.com/hybridfuel/hybridfuel/telemetry"
)

const (
	clientIDPrefix    = "hybridfuel-sim-"
	disconnectQuiesce = 250
)

var errPublishTimeout = errors.New("publish timed out")

// Config describes one simulation run.
type Config struct {
	URL      string        `toml:"url"`
	Topic    string        `toml:"topic"`
	QoS      byte          `toml:"qos"`
	ClientID string        `toml:"client_id"`
	Username string        `toml:"username"`
	Password string        `toml:"password"`
	Format   string        `toml:"format"`
	Interval time.Duration `toml:"interval"`
	Count    int           `toml:"count"`
	Seed     uint64        `toml:"seed"`
	Timeout  time.Duration `toml:"timeout"`
	Retain   bool          `toml:"retain"`
	Ranges   Ranges        `toml:"ranges"`
}

// DefaultConfig publishes JSON to the topic the service listens on by
// default, once a second, until stopped.
func DefaultConfig() Config {
	return Config{
		URL:      "tcp://localhost:1883",
		Topic:    "hybridfuel/sensors",
		Format:   telemetry.FormatJSON,
		Interval: time.Second,
		Timeout:  10 * time.Second,
		Ranges:   DefaultRanges(),
	}
}

// ClientFactory builds the paho client from the prepared options.
type ClientFactory func(opts *mqtt.ClientOptions) mqtt.Client

// Publisher sends generated samples to the broker.
type Publisher struct {
	cfg    Config
	gen    *Generator
	client mqtt.Client
	logger *slog.Logger
	now    func() time.Time
}

// NewPublisher prepares the broker client. A nil factory uses
// mqtt.NewClient.
func NewPublisher(cfg Config, gen *Generator, idp hybridfuel.IDProvider, logger *slog.Logger, factory ClientFactory) (*Publisher, error) {
	if factory == nil {
		factory = mqtt.NewClient
	}
	if _, err := Encode(Sample{}, cfg.Format); err != nil {
		return nil, err
	}

	clientID := cfg.ClientID
	if clientID == "" {
		id, err := idp.ID()
		if err != nil {
			return nil, err
		}
		clientID = clientIDPrefix + id
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.URL).
		SetClientID(clientID).
		SetCleanSession(true).
		SetAutoReconnect(true).
		SetConnectTimeout(cfg.Timeout).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			logger.Warn("Simulator lost broker connection", slog.Any("error", err))
		})
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	return &Publisher{
		cfg:    cfg,
		gen:    gen,
		client: factory(opts),
		logger: logger,
		now:    time.Now,
	}, nil
}

// Run connects and publishes one sample immediately and one per tick until
// Count samples were attempted or ctx ends. A zero Count never stops on
// its own.
func (p *Publisher) Run(ctx context.Context, tick ticker.Ticker) (Results, error) {
	defer tick.Stop()

	token := p.client.Connect()
	if !token.WaitTimeout(p.cfg.Timeout) {
		return Results{}, errors.Wrap(telemetry.ErrConnection, errPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return Results{}, errors.Wrap(telemetry.ErrConnection, err)
	}
	defer p.client.Disconnect(disconnectQuiesce)

	p.logger.Info("Simulator connected", slog.String("url", p.cfg.URL), slog.String("topic", p.cfg.Topic))

	var (
		rec   recorder
		start = p.now()
	)
	for attempts := 0; p.cfg.Count == 0 || attempts < p.cfg.Count; attempts++ {
		if attempts > 0 {
			select {
			case <-ctx.Done():
				return rec.results(p.now().Sub(start)), nil
			case <-tick.Tick():
			}
		}
		if err := p.publish(&rec); err != nil {
			return rec.results(p.now().Sub(start)), err
		}
	}

	return rec.results(p.now().Sub(start)), nil
}

func (p *Publisher) publish(rec *recorder) error {
	sample := p.gen.Next()
	payload, err := Encode(sample, p.cfg.Format)
	if err != nil {
		return err
	}

	sent := p.now()
	token := p.client.Publish(p.cfg.Topic, p.cfg.QoS, p.cfg.Retain, payload)
	switch {
	case !token.WaitTimeout(p.cfg.Timeout):
		err = errPublishTimeout
	default:
		err = token.Error()
	}
	if err != nil {
		rec.fail()
		p.logger.Warn("Publish sample failed", slog.String("topic", p.cfg.Topic), slog.Any("error", err))
		return nil
	}

	rec.ok(p.now().Sub(sent))
	p.logger.Debug("Published sample",
		slog.Float64("temp", sample.Temp),
		slog.Float64("gas", sample.Gas),
		slog.Float64("pm25", sample.PM25),
		slog.String("status", string(sample.Status)),
	)

	return nil
}
