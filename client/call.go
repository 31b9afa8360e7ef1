package client

import (
	"context"
	"encoding/json"
)

// Descriptor binds a method name to its parameter and result shapes. The
// catalogue of concrete descriptors lives with the protocol packages (see
// package mcp); the client only needs the method string and the two types.
type Descriptor[P, R any] struct {
	Method string
}

// Call issues the request described by d and awaits its typed result. It is
// the only way requests are issued; convenience operations are direct
// specializations with a fixed descriptor.
//
// The returned error is exactly one of: a params *MarshalError, a
// *jsonrpc.Error carrying the peer's error code and message, a *DecodeError
// when the result payload does not match R, ErrClosed when the session tore
// down first, or ctx's error when the caller gave up waiting. In the last
// case the request stays registered and a late reply is drained silently.
func Call[P, R any](ctx context.Context, c *Client, d Descriptor[P, R], params P) (R, error) {
	var zero R

	raw, err := marshalParams(params)
	if err != nil {
		return zero, &MarshalError{Method: d.Method, Err: err}
	}

	result, err := c.call(ctx, d.Method, raw)
	if err != nil {
		return zero, err
	}

	var out R
	if err := json.Unmarshal(result, &out); err != nil {
		return zero, &DecodeError{Method: d.Method, Raw: result, Err: err}
	}
	return out, nil
}
