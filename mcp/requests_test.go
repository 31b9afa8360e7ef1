package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/signadot/mcpline/client"
	"github.com/signadot/mcpline/jsonrpc"
)

// fakeServer speaks one line of JSON-RPC per request, routing on method.
type fakeServer struct {
	t      *testing.T
	handle func(method string, params json.RawMessage) (result string, errLine string)
	lines  chan string
}

func newFakeServer(t *testing.T, handle func(method string, params json.RawMessage) (string, string)) (*client.Client, *fakeServer) {
	t.Helper()

	outR, outW := io.Pipe() // client -> server
	inR, inW := io.Pipe()   // server -> client

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := client.NewStream(inR, outW, client.WithLogger(quiet))
	t.Cleanup(func() { c.Close() })

	srv := &fakeServer{t: t, handle: handle, lines: make(chan string, 64)}
	go func() {
		sc := bufio.NewScanner(outR)
		for sc.Scan() {
			line := sc.Text()
			srv.lines <- line
			var msg jsonrpc.Message
			if err := json.Unmarshal([]byte(line), &msg); err != nil {
				t.Errorf("server: bad line %q: %v", line, err)
				return
			}
			id, ok := msg.ID.Int64()
			if !ok {
				continue // notification, nothing to answer
			}
			result, errObj := handle(msg.Method, msg.Params)
			if errObj != "" {
				fmt.Fprintf(inW, `{"jsonrpc":"2.0","id":%d,"error":%s}`+"\n", id, errObj)
				continue
			}
			fmt.Fprintf(inW, `{"jsonrpc":"2.0","id":%d,"result":%s}`+"\n", id, result)
		}
	}()
	return c, srv
}

func TestHandshake(t *testing.T) {
	c, srv := newFakeServer(t, func(method string, params json.RawMessage) (string, string) {
		if method != "initialize" {
			return "", `{"code":-32601,"message":"method not found"}`
		}
		var p InitializeParams
		if err := json.Unmarshal(params, &p); err != nil {
			t.Errorf("initialize params: %v", err)
		}
		if p.ProtocolVersion != ProtocolVersion {
			t.Errorf("protocolVersion = %q, want %q", p.ProtocolVersion, ProtocolVersion)
		}
		if p.ClientInfo.Name != "mcpline" {
			t.Errorf("clientInfo.name = %q", p.ClientInfo.Name)
		}
		return `{"protocolVersion":"2025-03-26","capabilities":{"tools":{}},"serverInfo":{"name":"fake","version":"0.1"}}`, ""
	})

	res, err := Handshake(context.Background(), c, Implementation{Name: "mcpline", Version: "0.1.0"})
	if err != nil {
		t.Fatalf("handshake: %v", err)
	}
	if res.ServerInfo.Name != "fake" {
		t.Errorf("serverInfo.name = %q", res.ServerInfo.Name)
	}
	if res.Capabilities.Tools == nil {
		t.Error("expected tools capability")
	}

	// The handshake ends with the initialized notification, which carries
	// no id and no params.
	<-srv.lines // the initialize request
	note := <-srv.lines
	if !strings.Contains(note, `"notifications/initialized"`) {
		t.Errorf("expected initialized notification, got %s", note)
	}
	if strings.Contains(note, `"id"`) || strings.Contains(note, `"params"`) {
		t.Errorf("initialized notification should have no id and no params: %s", note)
	}
}

func TestAllTools_Pagination(t *testing.T) {
	pages := map[string]string{
		"":   `{"tools":[{"name":"alpha"},{"name":"beta"}],"nextCursor":"p2"}`,
		"p2": `{"tools":[{"name":"gamma"}]}`,
	}
	c, _ := newFakeServer(t, func(method string, params json.RawMessage) (string, string) {
		if method != "tools/list" {
			return "", `{"code":-32601,"message":"method not found"}`
		}
		var p ListToolsParams
		if len(params) > 0 {
			if err := json.Unmarshal(params, &p); err != nil {
				t.Errorf("tools/list params: %v", err)
			}
		}
		return pages[p.Cursor], ""
	})

	tools, err := AllTools(context.Background(), c)
	if err != nil {
		t.Fatalf("all tools: %v", err)
	}
	var names []string
	for _, tool := range tools {
		names = append(names, tool.Name)
	}
	if got, want := strings.Join(names, ","), "alpha,beta,gamma"; got != want {
		t.Errorf("tools = %s, want %s", got, want)
	}
}

func TestListTools_NilParamsOmitted(t *testing.T) {
	c, srv := newFakeServer(t, func(method string, params json.RawMessage) (string, string) {
		return `{"tools":[]}`, ""
	})

	if _, err := ListTools(context.Background(), c, nil); err != nil {
		t.Fatalf("list tools: %v", err)
	}
	if line := <-srv.lines; strings.Contains(line, "params") {
		t.Errorf("nil params leaked onto the wire: %s", line)
	}
}

func TestCallTool(t *testing.T) {
	c, _ := newFakeServer(t, func(method string, params json.RawMessage) (string, string) {
		if method != "tools/call" {
			return "", `{"code":-32601,"message":"method not found"}`
		}
		var p CallToolParams
		if err := json.Unmarshal(params, &p); err != nil {
			t.Errorf("tools/call params: %v", err)
		}
		if p.Name != "echo" || p.Arguments["text"] != "hi" {
			t.Errorf("unexpected params: %+v", p)
		}
		return `{"content":[{"type":"text","text":"hi"}]}`, ""
	})

	res, err := CallTool(context.Background(), c, "echo", map[string]any{"text": "hi"})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if len(res.Content) != 1 || res.Content[0].Text != "hi" {
		t.Errorf("content = %+v", res.Content)
	}
	if res.IsError {
		t.Error("unexpected isError")
	}
}

func TestPing(t *testing.T) {
	c, srv := newFakeServer(t, func(method string, params json.RawMessage) (string, string) {
		if method != "ping" {
			return "", `{"code":-32601,"message":"method not found"}`
		}
		return `{}`, ""
	})

	if err := Ping(context.Background(), c); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if line := <-srv.lines; strings.Contains(line, "params") {
		t.Errorf("ping params leaked onto the wire: %s", line)
	}
}
