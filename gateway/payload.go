package gateway

import "encoding/json"

// Payload is an outgoing message body: either a RawBody already in
// wire form, or a Document to be serialized. The interface is sealed;
// the Gateway branches on which variant it receives.
type Payload interface {
	messageBody() ([]byte, error)
}

// RawBody is a pre-serialized message body, published as-is.
type RawBody string

func (b RawBody) messageBody() ([]byte, error) {
	return []byte(b), nil
}

// Document is a structured message payload. Outgoing documents are
// JSON-serialized; incoming bodies are parsed into one, with MetaField
// carrying the broker's delivery metadata.
type Document map[string]interface{}

func (d Document) messageBody() ([]byte, error) {
	body, err := json.Marshal(d)
	if err != nil {
		return nil, &SerializationError{Err: err}
	}
	return body, nil
}
