// Package gateway provides a resilient put/get/ack/reject facade over
// a single RabbitMQ connection.
//
// A Gateway owns one connection and one channel, established lazily on
// first use. Every broker operation runs through a bounded retry
// wrapper that discards and rebuilds the pair on transient broker
// errors, so callers never see a connection drop unless the broker
// stays down for all MaxTries attempts. Outgoing payloads are
// JSON-serialized persistent messages; incoming bodies are parsed into
// a Document with the broker's delivery metadata injected under
// MetaField.
//
// The Gateway is synchronous and single-caller: it performs no internal
// locking, and callers sharing one instance across goroutines must
// serialize access themselves.
package gateway
