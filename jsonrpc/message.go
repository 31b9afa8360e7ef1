package jsonrpc

import (
	"encoding/json"
)

// Version is the JSON-RPC protocol version carried by every message.
const Version = "2.0"

// Kind classifies a parsed message. Only Response and Error participate in
// request correlation.
type Kind int

const (
	// KindInvalid marks a structurally broken envelope (e.g. no method and
	// no id).
	KindInvalid Kind = iota
	// KindRequest is a peer-originated request (id and method).
	KindRequest
	// KindNotification has a method but no id and requires no reply.
	KindNotification
	// KindResponse is a successful reply (id and result).
	KindResponse
	// KindError is an error reply (id and error object).
	KindError
)

// String returns the kind name for logs.
func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindNotification:
		return "notification"
	case KindResponse:
		return "response"
	case KindError:
		return "error"
	default:
		return "invalid"
	}
}

// Message is the JSON-RPC envelope, a tagged union over the request,
// response, error and notification shapes. Which fields are set determines
// the variant; see Kind.
type Message struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      ID              `json:"id,omitzero"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// NewRequest builds a request envelope. A nil params slice is omitted from
// the wire entirely, distinguishing "no parameters" from "null parameter".
func NewRequest(id ID, method string, params json.RawMessage) *Message {
	return &Message{
		JSONRPC: Version,
		ID:      id,
		Method:  method,
		Params:  params,
	}
}

// NewNotification builds a notification envelope (no id, no reply expected).
func NewNotification(method string, params json.RawMessage) *Message {
	return &Message{
		JSONRPC: Version,
		Method:  method,
		Params:  params,
	}
}

// Kind classifies the message.
func (m *Message) Kind() Kind {
	switch {
	case m.Error != nil && m.ID.Valid():
		return KindError
	case m.Result != nil && m.ID.Valid():
		return KindResponse
	case m.Method != "" && m.ID.Valid():
		return KindRequest
	case m.Method != "":
		return KindNotification
	default:
		return KindInvalid
	}
}
