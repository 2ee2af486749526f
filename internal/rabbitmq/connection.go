package rabbitmq

import (
	"context"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the slice of *amqp.Channel the gateway operates on.
// *amqp.Channel satisfies it; tests substitute mocks.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Get(queue string, autoAck bool) (amqp.Delivery, bool, error)
	Ack(tag uint64, multiple bool) error
	Reject(tag uint64, requeue bool) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	Close() error
}

// Conn is a live broker connection from which channels are derived.
type Conn interface {
	Channel() (Channel, error)
	Close() error
	IsClosed() bool
}

// Dialer establishes fresh broker connections. Each Dial call must
// return a new connection; the caller owns it.
type Dialer interface {
	Dial() (Conn, error)
}

// Connector dials RabbitMQ from host and credential parameters.
type Connector struct {
	uri    amqp.URI
	logger *slog.Logger
}

// ConnectorOption configures the Connector.
type ConnectorOption func(*Connector)

// WithVHost sets the virtual host.
func WithVHost(vhost string) ConnectorOption {
	return func(c *Connector) {
		c.uri.Vhost = vhost
	}
}

// WithPort sets the broker port.
func WithPort(port int) ConnectorOption {
	return func(c *Connector) {
		c.uri.Port = port
	}
}

// WithConnectorLogger sets the logger.
func WithConnectorLogger(logger *slog.Logger) ConnectorOption {
	return func(c *Connector) {
		c.logger = logger
	}
}

// NewConnector creates a Connector for the given broker.
func NewConnector(host, username, password string, options ...ConnectorOption) *Connector {
	c := &Connector{
		uri: amqp.URI{
			Scheme:   "amqp",
			Host:     host,
			Port:     5672,
			Username: username,
			Password: password,
			Vhost:    "/",
		},
		logger: slog.Default(),
	}

	for _, opt := range options {
		opt(c)
	}

	return c
}

// URL returns the connection URL with the password elided.
func (c *Connector) URL() string {
	uri := c.uri
	uri.Password = "***"
	return uri.String()
}

// Dial implements Dialer.
func (c *Connector) Dial() (Conn, error) {
	conn, err := amqp.Dial(c.uri.String())
	if err != nil {
		c.logger.Error("broker dial failed", "url", c.URL(), "error", err)
		return nil, err
	}

	c.logger.Debug("connected to broker", "url", c.URL())
	return &liveConn{conn: conn, logger: c.logger}, nil
}

// liveConn adapts *amqp.Connection to Conn.
type liveConn struct {
	conn   *amqp.Connection
	logger *slog.Logger
}

func (c *liveConn) Channel() (Channel, error) {
	ch, err := c.conn.Channel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}

func (c *liveConn) Close() error {
	c.logger.Debug("closing broker connection")
	return c.conn.Close()
}

func (c *liveConn) IsClosed() bool {
	return c.conn.IsClosed()
}
