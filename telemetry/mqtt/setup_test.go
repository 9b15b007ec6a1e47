// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package mqtt_test

import (
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/hybridfuel/hybridfuel/pkg/errors"
)

var errBroker = errors.New("broker refused")

type fakeToken struct {
	mqtt.Token
	done chan struct{}
	err  error
}

func completed(err error) *fakeToken {
	t := &fakeToken{done: make(chan struct{}), err: err}
	close(t.done)
	return t
}

func pending() *fakeToken {
	return &fakeToken{done: make(chan struct{})}
}

func (t *fakeToken) Done() <-chan struct{} {
	return t.done
}

func (t *fakeToken) Error() error {
	return t.err
}

type fakeMessage struct {
	mqtt.Message
	topic   string
	payload []byte
}

func (m fakeMessage) Topic() string {
	return m.topic
}

func (m fakeMessage) Payload() []byte {
	return m.payload
}

// fakeClient records subscriptions and lets tests deliver messages the way
// the paho router would.
type fakeClient struct {
	mqtt.Client

	mu             sync.Mutex
	opts           *mqtt.ClientOptions
	connected      bool
	connectErrs    []error
	connectCalls   int
	subscribeErr   map[string]error
	hangSubscribe  bool
	handlers       map[string]mqtt.MessageHandler
	subscribed     []string
	unsubscribed   []string
	disconnections int
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		subscribeErr: make(map[string]error),
		handlers:     make(map[string]mqtt.MessageHandler),
	}
}

func (c *fakeClient) factory(opts *mqtt.ClientOptions) mqtt.Client {
	c.opts = opts
	return c
}

func (c *fakeClient) Connect() mqtt.Token {
	c.mu.Lock()
	c.connectCalls++
	if len(c.connectErrs) > 0 {
		err := c.connectErrs[0]
		c.connectErrs = c.connectErrs[1:]
		c.mu.Unlock()
		return completed(err)
	}
	c.connected = true
	c.mu.Unlock()

	if c.opts.OnConnect != nil {
		c.opts.OnConnect(c)
	}
	return completed(nil)
}

func (c *fakeClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

func (c *fakeClient) IsConnectionOpen() bool {
	return c.IsConnected()
}

func (c *fakeClient) Subscribe(topic string, _ byte, cb mqtt.MessageHandler) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hangSubscribe {
		return pending()
	}
	if err := c.subscribeErr[topic]; err != nil {
		return completed(err)
	}
	c.handlers[topic] = cb
	c.subscribed = append(c.subscribed, topic)
	return completed(nil)
}

func (c *fakeClient) Unsubscribe(topics ...string) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, t := range topics {
		delete(c.handlers, t)
		c.unsubscribed = append(c.unsubscribed, t)
	}
	return completed(nil)
}

func (c *fakeClient) Disconnect(_ uint) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.connected = false
	c.disconnections++
}

func (c *fakeClient) handler(topic string) mqtt.MessageHandler {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handlers[topic]
}

// deliver routes payload to the handler registered for topic and reports
// whether one existed.
func (c *fakeClient) deliver(topic, payload string) bool {
	h := c.handler(topic)
	if h == nil {
		return false
	}
	h(c, fakeMessage{topic: topic, payload: []byte(payload)})
	return true
}

func (c *fakeClient) snapshot() (subscribed, unsubscribed []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.subscribed...), append([]string(nil), c.unsubscribed...)
}
