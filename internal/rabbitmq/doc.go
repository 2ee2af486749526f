// Package rabbitmq provides the AMQP wire layer for the hived gateway.
//
// This package includes:
//   - Channel, Conn, Dialer: interfaces covering exactly the broker
//     surface the gateway uses, so it can be tested without a broker
//   - Connector: a Dialer that builds an AMQP URI from connection
//     parameters and establishes fresh connections on demand
//   - IsBrokerError: classification of transient broker failures that
//     warrant a reconnect-and-retry
//
// The gateway owns exactly one connection and channel at a time and
// replaces both wholesale on failure; nothing here pools or repairs.
package rabbitmq
