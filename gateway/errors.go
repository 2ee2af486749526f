package gateway

import (
	"errors"
	"fmt"
)

// ErrNilPayload is returned by Put when no payload is supplied.
var ErrNilPayload = errors.New("gateway: payload cannot be nil")

// ConnectionError reports that the broker stayed unreachable or kept
// erroring for every attempt the retry wrapper made. It is the only
// way connection trouble surfaces from Put and Get; Ack and Reject
// swallow it.
type ConnectionError struct {
	Op       string // channel operation that failed
	Attempts int    // attempts made before giving up
	Err      error  // last underlying failure
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("gateway: %s failed after %d attempts: %v", e.Op, e.Attempts, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// SerializationError reports a payload that could not be marshaled to
// JSON, or an incoming body that could not be parsed. It is never
// retried: the same bytes would fail the same way again.
type SerializationError struct {
	Body []byte // offending incoming body, nil on the outgoing path
	Err  error
}

func (e *SerializationError) Error() string {
	if e.Body != nil {
		return fmt.Sprintf("gateway: malformed message body %q: %v", e.Body, e.Err)
	}
	return fmt.Sprintf("gateway: payload not serializable: %v", e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}
