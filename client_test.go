package hived

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClient(t *testing.T) {
	t.Run("creates client without connecting", func(t *testing.T) {
		client := NewClient("localhost", "guest", "guest")

		assert.NotNil(t, client)
		assert.NotNil(t, client.Gateway())
		// Nothing was dialed, so there is nothing to tear down.
		assert.NoError(t, client.Close())
	})

	t.Run("applies options", func(t *testing.T) {
		client := NewClient("broker.internal", "svc", "s3cret",
			WithVHost("hived"),
			WithPort(5671),
			WithExchange("events"),
			WithQueue("events.worker"),
			WithLogger(slog.Default()),
		)

		assert.NotNil(t, client.Gateway())
		assert.NoError(t, client.Close())
	})
}
