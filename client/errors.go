package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrClosed reports that the session tore down before a reply arrived, or
// that a request was issued against a torn-down session. Callers never hang
// on a dead session; they get this instead.
var ErrClosed = errors.New("client: session closed")

// MarshalError reports that an outgoing value could not be encoded. The
// failed call is the only casualty; the session continues.
type MarshalError struct {
	Method string
	Err    error
}

func (e *MarshalError) Error() string {
	return fmt.Sprintf("client: marshal %s params: %v", e.Method, e.Err)
}

func (e *MarshalError) Unwrap() error {
	return e.Err
}

// DecodeError reports that a reply arrived but its result payload did not
// match the shape the descriptor promised. Raw carries the payload for
// diagnosis.
type DecodeError struct {
	Method string
	Raw    json.RawMessage
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("client: decode %s result: %v", e.Method, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
