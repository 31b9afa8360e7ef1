package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse_CommandServer(t *testing.T) {
	f, err := Parse([]byte(`
servers:
  everything:
    command: npx
    args: [-y, "@modelcontextprotocol/server-everything"]
    env:
      LOG_LEVEL: debug
      PORT: "9000"
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	launch, err := f.Resolve("everything")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := &Launch{
		Args: []string{"npx", "-y", "@modelcontextprotocol/server-everything"},
		Env:  []string{"LOG_LEVEL=debug", "PORT=9000"},
	}
	if diff := cmp.Diff(want, launch); diff != "" {
		t.Errorf("launch mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_ImageServer(t *testing.T) {
	f, err := Parse([]byte(`
servers:
  github:
    image: ghcr.io/github/github-mcp-server
    env:
      GITHUB_TOKEN: secret
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	launch, err := f.Resolve("github")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := &Launch{
		Args: []string{
			"docker", "run", "--rm", "-i",
			"-e", "GITHUB_TOKEN=secret",
			"ghcr.io/github/github-mcp-server:latest",
		},
	}
	if diff := cmp.Diff(want, launch); diff != "" {
		t.Errorf("launch mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_BareImageNormalized(t *testing.T) {
	f, err := Parse([]byte(`
servers:
  fetch:
    image: mcp/fetch
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	launch, err := f.Resolve("fetch")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	got := launch.Args[len(launch.Args)-1]
	if got != "docker.io/mcp/fetch:latest" {
		t.Errorf("image ref = %q, want docker.io/mcp/fetch:latest", got)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "both command and image",
			in:   "servers:\n  x:\n    command: a\n    image: b\n",
			want: "mutually exclusive",
		},
		{
			name: "neither command nor image",
			in:   "servers:\n  x:\n    env: {A: b}\n",
			want: "one of command or image",
		},
		{
			name: "args with image",
			in:   "servers:\n  x:\n    image: b\n    args: [c]\n",
			want: "args cannot be combined",
		},
		{
			name: "not yaml",
			in:   "servers: [a, b",
			want: "parse",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestResolve_UnknownServerListsKnown(t *testing.T) {
	f, err := Parse([]byte("servers:\n  beta: {command: b}\n  alpha: {command: a}\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = f.Resolve("gamma")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "[alpha beta]") {
		t.Errorf("error should list known servers sorted, got %q", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "servers.yaml")
	if err := os.WriteFile(path, []byte("servers:\n  a: {command: cat}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(f.Servers) != 1 {
		t.Errorf("servers = %d, want 1", len(f.Servers))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
