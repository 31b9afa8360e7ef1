// Package mcp defines typed Model Context Protocol operations on top of the
// generic client call: the method names and the parameter/result shapes for
// initialize, tools, resources and ping.
//
// Each operation is a client.Descriptor plus a convenience function that is
// a direct specialization of client.Call with that descriptor and no
// additional behavior.
//
// # Related Packages
//
//   - github.com/signadot/mcpline/client - the session the operations run on
package mcp
