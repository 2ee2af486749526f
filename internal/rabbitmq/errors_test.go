package rabbitmq

import (
	"errors"
	"fmt"
	"io"
	"net"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
)

func TestIsBrokerError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		broker bool
	}{
		{
			name:   "nil error",
			err:    nil,
			broker: false,
		},
		{
			name:   "amqp protocol error",
			err:    &amqp.Error{Code: amqp.ChannelError, Reason: "channel error"},
			broker: true,
		},
		{
			name:   "closed connection sentinel",
			err:    amqp.ErrClosed,
			broker: true,
		},
		{
			name:   "wrapped amqp error",
			err:    fmt.Errorf("publish: %w", &amqp.Error{Code: amqp.ConnectionForced, Reason: "forced"}),
			broker: true,
		},
		{
			name:   "network error",
			err:    &net.OpError{Op: "dial", Err: errors.New("connection refused")},
			broker: true,
		},
		{
			name:   "eof",
			err:    io.EOF,
			broker: true,
		},
		{
			name:   "unexpected eof",
			err:    io.ErrUnexpectedEOF,
			broker: true,
		},
		{
			name:   "plain error",
			err:    errors.New("something else"),
			broker: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.broker, IsBrokerError(tt.err))
		})
	}
}
