// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

// Package mqtt contains the broker side of telemetry ingestion: a paho
// client that subscribes to the sensor topic and hands decoded readings to
// the consumer without ever blocking on it.
package mqtt

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/hybridfuel/hybridfuel"
	"github.com/hybridfuel/hybridfuel/pkg/errors"
	"github.com/hybridfuel/hybridfuel/telemetry"
)

const (
	clientIDPrefix    = "hybridfuel-"
	disconnectQuiesce = 250
)

var (
	errTimeout  = errors.New("operation timed out")
	errNoClient = errors.New("client id could not be generated")
)

// Config holds the broker connection settings.
type Config struct {
	URL                  string        `env:"URL"                    envDefault:"tcp://localhost:1883"`
	Topic                string        `env:"TOPIC"                  envDefault:"hybridfuel/sensors"`
	QoS                  byte          `env:"QOS"                    envDefault:"0"`
	ClientID             string        `env:"CLIENT_ID"              envDefault:""`
	Username             string        `env:"USERNAME"               envDefault:""`
	Password             string        `env:"PASSWORD"               envDefault:""`
	Timeout              time.Duration `env:"TIMEOUT"                envDefault:"10s"`
	KeepAlive            time.Duration `env:"KEEP_ALIVE"             envDefault:"30s"`
	MaxReconnectInterval time.Duration `env:"MAX_RECONNECT_INTERVAL" envDefault:"1m"`
}

// ClientFactory builds the paho client from the prepared options.
type ClientFactory func(opts *mqtt.ClientOptions) mqtt.Client

// Option configures a Listener.
type Option func(*Listener)

// WithClientFactory replaces mqtt.NewClient.
func WithClientFactory(f ClientFactory) Option {
	return func(l *Listener) {
		l.factory = f
	}
}

// WithCounters sets the counters for received messages, decode failures,
// handoff drops and stale messages from a previous topic.
func WithCounters(received, failed, dropped, stale metrics.Counter) Option {
	return func(l *Listener) {
		l.received = received
		l.failed = failed
		l.dropped = dropped
		l.stale = stale
	}
}

var _ telemetry.Subscription = (*Listener)(nil)

// Listener owns the single broker connection and the current topic.
type Listener struct {
	cfg     Config
	decoder telemetry.Decoder
	out     telemetry.Pusher
	logger  *slog.Logger
	factory ClientFactory
	client  mqtt.Client

	// switchMu serializes topic switches with (re)subscription on connect.
	switchMu sync.Mutex
	topicMu  sync.RWMutex
	topic    string

	received metrics.Counter
	failed   metrics.Counter
	dropped  metrics.Counter
	stale    metrics.Counter
}

// NewListener prepares the paho client. It does not connect.
func NewListener(cfg Config, decoder telemetry.Decoder, out telemetry.Pusher, idp hybridfuel.IDProvider, logger *slog.Logger, opts ...Option) (*Listener, error) {
	topic := strings.TrimSpace(cfg.Topic)
	if topic == "" {
		return nil, telemetry.ErrEmptyTopic
	}

	l := &Listener{
		cfg:      cfg,
		decoder:  decoder,
		out:      out,
		logger:   logger,
		factory:  mqtt.NewClient,
		topic:    topic,
		received: discard.NewCounter(),
		failed:   discard.NewCounter(),
		dropped:  discard.NewCounter(),
		stale:    discard.NewCounter(),
	}
	for _, opt := range opts {
		opt(l)
	}

	clientID := cfg.ClientID
	if clientID == "" {
		id, err := idp.ID()
		if err != nil {
			return nil, errors.Wrap(errNoClient, err)
		}
		clientID = clientIDPrefix + id
	}

	co := mqtt.NewClientOptions().
		AddBroker(cfg.URL).
		SetClientID(clientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetCleanSession(true).
		SetKeepAlive(cfg.KeepAlive).
		SetConnectTimeout(cfg.Timeout).
		SetAutoReconnect(true).
		SetMaxReconnectInterval(cfg.MaxReconnectInterval).
		SetOnConnectHandler(l.onConnect).
		SetConnectionLostHandler(l.onConnectionLost).
		SetReconnectingHandler(func(_ mqtt.Client, _ *mqtt.ClientOptions) {
			l.logger.Info("Reconnecting to MQTT broker", slog.String("url", cfg.URL))
		})
	l.client = l.factory(co)

	return l, nil
}

// Connect makes one connection attempt bounded by the configured timeout.
func (l *Listener) Connect(ctx context.Context) error {
	if err := l.wait(ctx, l.client.Connect()); err != nil {
		return errors.Wrap(telemetry.ErrConnection, err)
	}
	return nil
}

// Reconnect retries Connect with exponential backoff until it succeeds or
// ctx is done.
func (l *Listener) Reconnect(ctx context.Context) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 0
	if l.cfg.MaxReconnectInterval > 0 {
		bo.MaxInterval = l.cfg.MaxReconnectInterval
	}

	notify := func(err error, next time.Duration) {
		l.logger.Debug("Broker still unreachable", slog.Any("error", err), slog.Duration("retry_in", next))
	}
	return backoff.RetryNotify(func() error {
		return l.Connect(ctx)
	}, backoff.WithContext(bo, ctx), notify)
}

// Run connects and keeps the connection until ctx is done. A failed first
// attempt is reported once and retried in the background; the rest of the
// service keeps serving the stored history meanwhile.
func (l *Listener) Run(ctx context.Context) error {
	if err := l.Connect(ctx); err != nil {
		l.logger.Warn("MQTT broker unreachable, serving stored data until it is back", slog.String("url", l.cfg.URL), slog.Any("error", err))
		if err := l.Reconnect(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}

	<-ctx.Done()
	return l.Close()
}

// Topic returns the topic readings are currently attributed to.
func (l *Listener) Topic() string {
	l.topicMu.RLock()
	defer l.topicMu.RUnlock()
	return l.topic
}

func (l *Listener) setTopic(topic string) {
	l.topicMu.Lock()
	l.topic = topic
	l.topicMu.Unlock()
}

// SwitchTopic moves the subscription to topic on the live connection: the
// new topic is recorded and subscribed first, then the old one is dropped.
// When the connection is down the topic is only recorded and subscribed on
// the next connect.
func (l *Listener) SwitchTopic(ctx context.Context, topic string) error {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return telemetry.ErrEmptyTopic
	}

	l.switchMu.Lock()
	defer l.switchMu.Unlock()

	old := l.Topic()
	if topic == old {
		return nil
	}
	l.setTopic(topic)

	if !l.client.IsConnectionOpen() {
		l.logger.Info("Subscription recorded, applied on next connect", slog.String("topic", topic))
		return nil
	}

	if err := l.wait(ctx, l.client.Subscribe(topic, l.cfg.QoS, l.handler(topic))); err != nil {
		l.setTopic(old)
		return errors.Wrap(telemetry.ErrSubscription, err)
	}
	if err := l.wait(ctx, l.client.Unsubscribe(old)); err != nil {
		l.logger.Warn("Failed to unsubscribe from previous topic", slog.String("topic", old), slog.Any("error", err))
	}

	l.logger.Info("Switched subscription", slog.String("from", old), slog.String("to", topic))
	return nil
}

// Close unsubscribes and disconnects.
func (l *Listener) Close() error {
	l.switchMu.Lock()
	defer l.switchMu.Unlock()

	if !l.client.IsConnected() {
		return nil
	}

	topic := l.Topic()
	ctx, cancel := context.WithTimeout(context.Background(), l.cfg.Timeout)
	defer cancel()

	var err error
	if l.client.IsConnectionOpen() {
		if uerr := l.wait(ctx, l.client.Unsubscribe(topic)); uerr != nil {
			err = errors.Wrap(telemetry.ErrSubscription, uerr)
		}
	}
	l.client.Disconnect(disconnectQuiesce)
	return err
}

func (l *Listener) onConnect(c mqtt.Client) {
	l.switchMu.Lock()
	defer l.switchMu.Unlock()

	topic := l.Topic()
	ctx, cancel := context.WithTimeout(context.Background(), l.cfg.Timeout)
	defer cancel()

	if err := l.wait(ctx, c.Subscribe(topic, l.cfg.QoS, l.handler(topic))); err != nil {
		l.logger.Error("Failed to subscribe after connect", slog.String("topic", topic), slog.Any("error", err))
		return
	}
	l.logger.Info("Connected to MQTT broker", slog.String("url", l.cfg.URL), slog.String("topic", topic))
}

func (l *Listener) onConnectionLost(_ mqtt.Client, err error) {
	l.logger.Error("MQTT connection lost", slog.Any("error", err))
}

// handler returns the callback for one subscription. Messages arriving
// after topic stopped being current are counted as stale and dropped.
func (l *Listener) handler(topic string) mqtt.MessageHandler {
	return func(_ mqtt.Client, msg mqtt.Message) {
		if current := l.Topic(); current != topic {
			l.stale.Add(1)
			l.logger.Debug("Dropped message from previous topic", slog.String("topic", msg.Topic()), slog.String("current", current))
			return
		}
		l.received.Add(1)

		r, err := l.decoder.Decode(msg.Payload())
		if err != nil {
			l.failed.Add(1)
			l.logger.Warn(fmt.Sprintf("Failed to decode message: %s", err), slog.String("topic", msg.Topic()))
			return
		}
		if !l.out.Push(r) {
			l.dropped.Add(1)
			l.logger.Warn("Handoff full, reading dropped", slog.String("topic", msg.Topic()))
		}
	}
}

func (l *Listener) wait(ctx context.Context, token mqtt.Token) error {
	timeout := l.cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return errTimeout
	}
}
