package rabbitmq

import (
	"errors"
	"io"
	"net"

	amqp "github.com/rabbitmq/amqp091-go"
)

// IsBrokerError reports whether err is a broker or transport failure
// that a reconnect may cure. AMQP protocol errors, closed
// channels/connections and network-level failures qualify; anything
// else (bad payloads, caller mistakes) does not.
func IsBrokerError(err error) bool {
	if err == nil {
		return false
	}

	var amqpErr *amqp.Error
	if errors.As(err, &amqpErr) {
		return true
	}

	// amqp091 reports closed connections/channels with this sentinel.
	if errors.Is(err, amqp.ErrClosed) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	return false
}
