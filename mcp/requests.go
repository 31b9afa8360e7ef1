package mcp

import (
	"context"
	"fmt"

	"github.com/signadot/mcpline/client"
)

// Request descriptors, one per MCP operation this client issues.
var (
	InitializeRequest    = client.Descriptor[*InitializeParams, *InitializeResult]{Method: "initialize"}
	ListToolsRequest     = client.Descriptor[*ListToolsParams, *ListToolsResult]{Method: "tools/list"}
	CallToolRequest      = client.Descriptor[*CallToolParams, *CallToolResult]{Method: "tools/call"}
	ListResourcesRequest = client.Descriptor[*ListResourcesParams, *ListResourcesResult]{Method: "resources/list"}
	ReadResourceRequest  = client.Descriptor[*ReadResourceParams, *ReadResourceResult]{Method: "resources/read"}
	PingRequest          = client.Descriptor[EmptyParams, PingResult]{Method: "ping"}
)

// initializedMethod is the notification completing the handshake.
const initializedMethod = "notifications/initialized"

// Initialize sends the initialize request.
func Initialize(ctx context.Context, c *client.Client, params *InitializeParams) (*InitializeResult, error) {
	return client.Call(ctx, c, InitializeRequest, params)
}

// Handshake runs the full MCP open sequence: initialize, then the
// initialized notification. It returns the server's initialize result.
func Handshake(ctx context.Context, c *client.Client, info Implementation) (*InitializeResult, error) {
	res, err := Initialize(ctx, c, &InitializeParams{
		ProtocolVersion: ProtocolVersion,
		ClientInfo:      info,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize: %w", err)
	}
	if err := c.Notify(ctx, initializedMethod, nil); err != nil {
		return nil, fmt.Errorf("initialized notification: %w", err)
	}
	return res, nil
}

// ListTools lists one page of the server's tools. params may be nil.
func ListTools(ctx context.Context, c *client.Client, params *ListToolsParams) (*ListToolsResult, error) {
	return client.Call(ctx, c, ListToolsRequest, params)
}

// AllTools follows nextCursor until the server's toolset is exhausted.
func AllTools(ctx context.Context, c *client.Client) ([]Tool, error) {
	var (
		tools  []Tool
		params *ListToolsParams
	)
	for {
		page, err := ListTools(ctx, c, params)
		if err != nil {
			return nil, err
		}
		tools = append(tools, page.Tools...)
		if page.NextCursor == "" {
			return tools, nil
		}
		params = &ListToolsParams{Cursor: page.NextCursor}
	}
}

// CallTool invokes a named tool with the given arguments.
func CallTool(ctx context.Context, c *client.Client, name string, args map[string]any) (*CallToolResult, error) {
	return client.Call(ctx, c, CallToolRequest, &CallToolParams{Name: name, Arguments: args})
}

// ListResources lists one page of the server's resources. params may be nil.
func ListResources(ctx context.Context, c *client.Client, params *ListResourcesParams) (*ListResourcesResult, error) {
	return client.Call(ctx, c, ListResourcesRequest, params)
}

// ReadResource fetches one resource by URI.
func ReadResource(ctx context.Context, c *client.Client, uri string) (*ReadResourceResult, error) {
	return client.Call(ctx, c, ReadResourceRequest, &ReadResourceParams{URI: uri})
}

// Ping checks that the server is responsive.
func Ping(ctx context.Context, c *client.Client) error {
	_, err := client.Call(ctx, c, PingRequest, nil)
	return err
}
