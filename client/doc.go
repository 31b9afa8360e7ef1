// Package client implements a JSON-RPC 2.0 request/response session with a
// peer process over a pair of byte streams, typically the stdin/stdout of a
// spawned MCP server.
//
// A Client owns two background loops: a writer draining a bounded outgoing
// queue onto the write half, and a reader parsing newline-delimited messages
// off the read half and completing the pending request they answer. Any
// number of callers may issue requests concurrently; replies are paired with
// their callers by id, so out-of-order replies are fine.
//
// The client implements no retries, timeouts or request cancellation. When
// the session ends, every in-flight call resolves to ErrClosed rather than
// hanging.
//
// # Related Packages
//
//   - github.com/signadot/mcpline/jsonrpc - the wire envelope
//   - github.com/signadot/mcpline/mcp - typed MCP operations built on Call
package client
