// Command mcpline talks to MCP servers over stdio from the command line:
// it spawns a server, runs the initialize handshake, and issues tools,
// resources and ping requests against it.
package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}
