package jsonrpc

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is a JSON-RPC request id. The wire form is either an integer or a
// string. This client only ever generates integer ids; string ids are
// accepted when parsing but can never match a pending request.
//
// The zero ID is "absent" (a notification has no id).
type ID struct {
	num   int64
	str   string
	isStr bool
	valid bool
}

// Int64ID returns an integer id.
func Int64ID(n int64) ID {
	return ID{num: n, valid: true}
}

// StringID returns a string id.
func StringID(s string) ID {
	return ID{str: s, isStr: true, valid: true}
}

// Valid reports whether the id is present at all.
func (id ID) Valid() bool {
	return id.valid
}

// Int64 returns the integer value of the id. ok is false for string ids
// and for the absent id.
func (id ID) Int64() (n int64, ok bool) {
	if !id.valid || id.isStr {
		return 0, false
	}
	return id.num, true
}

// String renders the id for logs.
func (id ID) String() string {
	switch {
	case !id.valid:
		return "<none>"
	case id.isStr:
		return strconv.Quote(id.str)
	default:
		return strconv.FormatInt(id.num, 10)
	}
}

// MarshalJSON implements json.Marshaler.
func (id ID) MarshalJSON() ([]byte, error) {
	switch {
	case !id.valid:
		return []byte("null"), nil
	case id.isStr:
		return json.Marshal(id.str)
	default:
		return strconv.AppendInt(nil, id.num, 10), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler. Floats with a fractional part
// and other JSON shapes are rejected; JSON null parses as the absent id.
func (id *ID) UnmarshalJSON(data []byte) error {
	*id = ID{}
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid request id %s", data)
	}
	*id = Int64ID(n)
	return nil
}
