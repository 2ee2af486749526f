package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawBody(t *testing.T) {
	t.Run("passes through unchanged", func(t *testing.T) {
		body, err := RawBody(`{"already":"serialized"}`).messageBody()

		assert.NoError(t, err)
		assert.Equal(t, []byte(`{"already":"serialized"}`), body)
	})
}

func TestDocument(t *testing.T) {
	t.Run("serializes to JSON", func(t *testing.T) {
		body, err := Document{"key": "value"}.messageBody()

		assert.NoError(t, err)
		assert.JSONEq(t, `{"key":"value"}`, string(body))
	})

	t.Run("empty document serializes to an empty object", func(t *testing.T) {
		body, err := Document{}.messageBody()

		assert.NoError(t, err)
		assert.Equal(t, []byte("{}"), body)
	})

	t.Run("unserializable values fail with SerializationError", func(t *testing.T) {
		_, err := Document{"bad": make(chan int)}.messageBody()

		var serErr *SerializationError
		assert.ErrorAs(t, err, &serErr)
		assert.Nil(t, serErr.Body)
	})
}
