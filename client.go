// Package hived is a resilient client facade over a RabbitMQ broker.
//
// A Client assembles a broker connector and a message gateway from
// plain connection parameters. The gateway hides connection loss,
// transient broker errors and JSON (de)serialization behind a
// put/get/ack/reject surface; see the gateway package for details.
package hived

import (
	"log/slog"

	"github.com/hivedmq/hived-go/gateway"
	"github.com/hivedmq/hived-go/internal/rabbitmq"
)

// Client is the main entry point for hived-go.
type Client struct {
	gateway *gateway.Gateway
}

type clientConfig struct {
	vhost    string
	port     int
	exchange string
	queue    string
	logger   *slog.Logger
}

// ClientOption configures the Client.
type ClientOption func(*clientConfig)

// WithVHost sets the broker virtual host. Defaults to "/".
func WithVHost(vhost string) ClientOption {
	return func(cfg *clientConfig) {
		cfg.vhost = vhost
	}
}

// WithPort sets the broker port. Defaults to 5672.
func WithPort(port int) ClientOption {
	return func(cfg *clientConfig) {
		cfg.port = port
	}
}

// WithExchange sets the default exchange for outgoing messages.
func WithExchange(exchange string) ClientOption {
	return func(cfg *clientConfig) {
		cfg.exchange = exchange
	}
}

// WithQueue sets the default queue for incoming messages.
func WithQueue(queue string) ClientOption {
	return func(cfg *clientConfig) {
		cfg.queue = queue
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(cfg *clientConfig) {
		cfg.logger = logger
	}
}

// NewClient creates a client for the given broker. Nothing connects
// until the first gateway operation.
func NewClient(host, username, password string, options ...ClientOption) *Client {
	cfg := &clientConfig{
		vhost:  "/",
		port:   5672,
		logger: slog.Default(),
	}

	for _, opt := range options {
		opt(cfg)
	}

	connector := rabbitmq.NewConnector(host, username, password,
		rabbitmq.WithVHost(cfg.vhost),
		rabbitmq.WithPort(cfg.port),
		rabbitmq.WithConnectorLogger(cfg.logger),
	)

	gw := gateway.New(connector,
		gateway.WithExchange(cfg.exchange),
		gateway.WithQueue(cfg.queue),
		gateway.WithLogger(cfg.logger),
	)

	return &Client{gateway: gw}
}

// Gateway returns the message gateway.
func (c *Client) Gateway() *gateway.Gateway {
	return c.gateway
}

// Close releases broker resources.
func (c *Client) Close() error {
	return c.gateway.Close()
}
