package jsonrpc

import (
	"encoding/json"
	"fmt"
)

// Error is the JSON-RPC error object carried by an error reply. It is
// returned as-is to the caller whose request it answers, so peer error codes
// and messages survive the trip.
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("jsonrpc: %d: %s", e.Code, e.Message)
}

// Is matches errors by code, so callers can test for a specific peer error
// with errors.Is(err, &jsonrpc.Error{Code: jsonrpc.CodeMethodNotFound}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Error codes defined by the JSON-RPC 2.0 specification.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)
