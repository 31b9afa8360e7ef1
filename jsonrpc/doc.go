// Package jsonrpc provides the JSON-RPC 2.0 wire envelope used by the
// mcpline client: the message union, the int-or-string request id, and the
// error object.
//
// One message occupies exactly one newline-delimited line on the wire.
// Framing itself lives with the transport; this package only defines the
// envelope and its classification.
//
// # Related Packages
//
//   - github.com/signadot/mcpline/client - correlation engine over a stream pair
//   - github.com/signadot/mcpline/mcp - typed MCP request/result shapes
package jsonrpc
