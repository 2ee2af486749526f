package rabbitmq

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConnector(t *testing.T) {
	t.Run("creates connector with defaults", func(t *testing.T) {
		c := NewConnector("localhost", "guest", "guest")

		assert.Equal(t, "amqp", c.uri.Scheme)
		assert.Equal(t, "localhost", c.uri.Host)
		assert.Equal(t, 5672, c.uri.Port)
		assert.Equal(t, "guest", c.uri.Username)
		assert.Equal(t, "guest", c.uri.Password)
		assert.Equal(t, "/", c.uri.Vhost)
		assert.NotNil(t, c.logger)
	})

	t.Run("applies options", func(t *testing.T) {
		logger := slog.Default()
		c := NewConnector("broker.internal", "svc", "s3cret",
			WithVHost("hived"),
			WithPort(5671),
			WithConnectorLogger(logger),
		)

		assert.Equal(t, "hived", c.uri.Vhost)
		assert.Equal(t, 5671, c.uri.Port)
		assert.Equal(t, logger, c.logger)
	})
}

func TestConnectorURL(t *testing.T) {
	t.Run("elides the password", func(t *testing.T) {
		c := NewConnector("localhost", "guest", "s3cret")

		url := c.URL()
		assert.NotContains(t, url, "s3cret")
		assert.Contains(t, url, "guest")
		assert.Contains(t, url, "localhost")
	})
}
