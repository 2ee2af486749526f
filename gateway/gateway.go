package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/hivedmq/hived-go/internal/rabbitmq"
)

const (
	// MaxTries is the total number of attempts the retry wrapper makes
	// for one operation, counting the first.
	MaxTries = 3

	// MetaField is the reserved key injected into every fetched message
	// to carry broker-supplied delivery metadata. Application payloads
	// must not use it for their own data.
	MetaField = "_meta"

	// PollInterval is the delay between fetch attempts while a blocking
	// Get waits for a message.
	PollInterval = 500 * time.Millisecond

	// NotificationsExchange is the exchange subscription queues are
	// bound to.
	NotificationsExchange = "notifications"
)

// Gateway is a resilient facade over one broker connection. It
// connects lazily, retries operations across reconnects, and
// translates between wire messages and Documents. Not safe for
// concurrent use.
type Gateway struct {
	dialer          rabbitmq.Dialer
	defaultExchange string
	defaultQueue    string
	logger          *slog.Logger
	sleep           func(time.Duration)

	conn         rabbitmq.Conn
	channel      rabbitmq.Channel
	subscription string
}

// Option configures the Gateway.
type Option func(*Gateway)

// WithExchange sets the default exchange for Put.
func WithExchange(exchange string) Option {
	return func(g *Gateway) {
		g.defaultExchange = exchange
	}
}

// WithQueue sets the default queue for Get.
func WithQueue(queue string) Option {
	return func(g *Gateway) {
		g.defaultQueue = queue
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// WithSleep replaces the delay between polling attempts. Tests use it
// to substitute a counting stub for the real timer.
func WithSleep(sleep func(time.Duration)) Option {
	return func(g *Gateway) {
		g.sleep = sleep
	}
}

// New creates a Gateway. No connection is made until the first
// operation.
func New(dialer rabbitmq.Dialer, options ...Option) *Gateway {
	g := &Gateway{
		dialer: dialer,
		logger: slog.Default(),
		sleep:  time.Sleep,
	}

	for _, opt := range options {
		opt(g)
	}

	return g
}

// connect replaces the cached connection and channel with fresh ones.
func (g *Gateway) connect() error {
	conn, err := g.dialer.Dial()
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return err
	}

	g.conn = conn
	g.channel = ch

	if g.subscription != "" {
		if err := g.declareSubscription(); err != nil {
			g.disconnect()
			return err
		}
	}

	return nil
}

// disconnect discards the cached connection and channel. Close errors
// are ignored; the pair is replaced wholesale on the next attempt.
func (g *Gateway) disconnect() {
	if g.channel != nil {
		_ = g.channel.Close()
	}
	if g.conn != nil {
		_ = g.conn.Close()
	}
	g.channel = nil
	g.conn = nil
}

// retry is the single choke point for broker I/O. It ensures a cached
// channel, runs fn against it, and on a broker error discards the
// connection and starts over, up to MaxTries attempts in total. Failed
// dials count as attempts. Non-broker errors propagate unretried.
func (g *Gateway) retry(op string, fn func(rabbitmq.Channel) error) error {
	var lastErr error

	for attempt := 1; attempt <= MaxTries; attempt++ {
		if g.channel == nil {
			if err := g.connect(); err != nil {
				lastErr = err
				continue
			}
		}

		err := fn(g.channel)
		if err == nil {
			return nil
		}
		if !rabbitmq.IsBrokerError(err) {
			return err
		}

		g.logger.Debug("broker operation failed, reconnecting",
			"op", op,
			"attempt", attempt,
			"error", err)
		lastErr = err
		g.disconnect()
	}

	return &ConnectionError{Op: op, Attempts: MaxTries, Err: lastErr}
}

// publishOptions configures a single Put.
type publishOptions struct {
	exchange   string
	routingKey string
}

// PublishOption configures a single Put.
type PublishOption func(*publishOptions)

// WithPublishExchange overrides the Gateway's default exchange.
func WithPublishExchange(exchange string) PublishOption {
	return func(o *publishOptions) {
		o.exchange = exchange
	}
}

// WithRoutingKey sets the routing key. Defaults to "".
func WithRoutingKey(key string) PublishOption {
	return func(o *publishOptions) {
		o.routingKey = key
	}
}

// Put publishes payload as a persistent application/json message. A
// payload that cannot be serialized fails with *SerializationError
// before any broker I/O; broker trouble surfaces as *ConnectionError
// once retries are exhausted.
func (g *Gateway) Put(ctx context.Context, payload Payload, options ...PublishOption) error {
	if payload == nil {
		return ErrNilPayload
	}

	body, err := payload.messageBody()
	if err != nil {
		return err
	}

	opts := publishOptions{exchange: g.defaultExchange}
	for _, opt := range options {
		opt(&opts)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	}

	return g.retry("publish", func(ch rabbitmq.Channel) error {
		return ch.PublishWithContext(ctx, opts.exchange, opts.routingKey, false, false, msg)
	})
}

// getOptions configures a single Get.
type getOptions struct {
	queue string
	block bool
}

// GetOption configures a single Get.
type GetOption func(*getOptions)

// FromQueue overrides the Gateway's default queue.
func FromQueue(name string) GetOption {
	return func(o *getOptions) {
		o.queue = name
	}
}

// NonBlocking makes Get return immediately when the queue is empty
// instead of polling.
func NonBlocking() GetOption {
	return func(o *getOptions) {
		o.block = false
	}
}

// Get fetches one message. On an empty queue it returns (nil, 0, nil)
// when non-blocking, otherwise it sleeps PollInterval between fetch
// attempts until a message arrives or ctx is done. The returned
// Document carries the broker's delivery metadata under MetaField; the
// delivery tag is the handle for Ack and Reject.
func (g *Gateway) Get(ctx context.Context, options ...GetOption) (Document, uint64, error) {
	opts := getOptions{queue: g.defaultQueue, block: true}
	for _, opt := range options {
		opt(&opts)
	}

	for {
		var (
			delivery amqp.Delivery
			ok       bool
		)
		err := g.retry("get", func(ch rabbitmq.Channel) error {
			var getErr error
			delivery, ok, getErr = ch.Get(opts.queue, false)
			return getErr
		})
		if err != nil {
			return nil, 0, err
		}

		if ok {
			return g.decode(delivery)
		}
		if !opts.block {
			return nil, 0, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		g.sleep(PollInterval)
	}
}

// decode parses a delivery body and injects the metadata field.
func (g *Gateway) decode(delivery amqp.Delivery) (Document, uint64, error) {
	doc := Document{}
	if err := json.Unmarshal(delivery.Body, &doc); err != nil {
		// Discard the message: redelivery would fail the same way.
		g.Ack(delivery.DeliveryTag)
		return nil, 0, &SerializationError{Body: delivery.Body, Err: err}
	}

	if _, ok := doc[MetaField]; !ok {
		doc[MetaField] = deliveryMetadata(delivery)
	}

	return doc, delivery.DeliveryTag, nil
}

// deliveryMetadata passes the broker's header table through verbatim.
func deliveryMetadata(delivery amqp.Delivery) Document {
	meta := make(Document, len(delivery.Headers))
	for k, v := range delivery.Headers {
		meta[k] = v
	}
	return meta
}

// Ack acknowledges a fetched message by its delivery tag. Best effort:
// broker failures are logged and swallowed, since the broker
// redelivers unacknowledged messages on its own.
func (g *Gateway) Ack(tag uint64) {
	err := g.retry("ack", func(ch rabbitmq.Channel) error {
		return ch.Ack(tag, false)
	})
	if err != nil {
		g.logger.Warn("ack failed", "deliveryTag", tag, "error", err)
	}
}

// Reject returns a fetched message to its queue. Best effort like Ack.
func (g *Gateway) Reject(tag uint64) {
	err := g.retry("reject", func(ch rabbitmq.Channel) error {
		return ch.Reject(tag, true)
	})
	if err != nil {
		g.logger.Warn("reject failed", "deliveryTag", tag, "error", err)
	}
}

// Subscribe binds an ephemeral queue to the notifications exchange by
// routing key and makes it the Gateway's default queue. The queue is
// redeclared under a fresh name on every reconnect.
func (g *Gateway) Subscribe(routingKey string) error {
	g.subscription = routingKey
	g.disconnect()

	if err := g.connect(); err != nil {
		return fmt.Errorf("subscribe %q: %w", routingKey, err)
	}
	return nil
}

func (g *Gateway) declareSubscription() error {
	name := fmt.Sprintf("%s_%s", g.subscription, uuid.New())

	if _, err := g.channel.QueueDeclare(name, false, true, true, false, nil); err != nil {
		return err
	}
	if err := g.channel.QueueBind(name, g.subscription, NotificationsExchange, false, nil); err != nil {
		return err
	}

	g.defaultQueue = name
	g.logger.Info("subscribed", "routingKey", g.subscription, "queue", name)
	return nil
}

// Close releases the cached connection. The Gateway reconnects lazily
// if used again.
func (g *Gateway) Close() error {
	if g.conn == nil {
		return nil
	}

	err := g.conn.Close()
	g.conn = nil
	g.channel = nil
	return err
}
