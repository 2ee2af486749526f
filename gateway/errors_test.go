package gateway

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectionError(t *testing.T) {
	t.Run("reports operation and attempts", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := &ConnectionError{Op: "publish", Attempts: 3, Err: cause}

		assert.Contains(t, err.Error(), "publish")
		assert.Contains(t, err.Error(), "3 attempts")
		assert.ErrorIs(t, err, cause)
	})
}

func TestSerializationError(t *testing.T) {
	t.Run("includes the offending body when present", func(t *testing.T) {
		cause := errors.New("invalid character")
		err := &SerializationError{Body: []byte("not json"), Err: cause}

		assert.Contains(t, err.Error(), "not json")
		assert.ErrorIs(t, err, cause)
	})

	t.Run("outgoing path has no body", func(t *testing.T) {
		cause := errors.New("unsupported type")
		err := &SerializationError{Err: cause}

		assert.Contains(t, err.Error(), "not serializable")
		assert.ErrorIs(t, err, cause)
	})
}
