// Package config loads mcpline's server-definition file: a YAML map of
// named MCP servers and how to launch them, either as a plain command or as
// a docker image run with stdio attached.
package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/goccy/go-yaml"
	imageref "github.com/novln/docker-parser"
)

// File is the parsed server-definition file.
type File struct {
	Servers map[string]*Server `yaml:"servers"`
}

// Server describes how to launch one MCP server. Exactly one of Command and
// Image must be set.
type Server struct {
	Command string            `yaml:"command,omitempty"`
	Args    []string          `yaml:"args,omitempty"`
	Env     map[string]string `yaml:"env,omitempty"`
	Image   string            `yaml:"image,omitempty"`
}

// Launch is a resolved launch spec: the argv to spawn and the environment
// entries to add on top of the parent environment.
type Launch struct {
	Args []string
	Env  []string
}

// Load reads and parses the file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return f, nil
}

// Parse parses and validates server definitions.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	for name, srv := range f.Servers {
		if srv == nil {
			return nil, fmt.Errorf("server %q: empty definition", name)
		}
		if err := srv.validate(); err != nil {
			return nil, fmt.Errorf("server %q: %w", name, err)
		}
	}
	return &f, nil
}

func (s *Server) validate() error {
	switch {
	case s.Command != "" && s.Image != "":
		return fmt.Errorf("command and image are mutually exclusive")
	case s.Command == "" && s.Image == "":
		return fmt.Errorf("one of command or image is required")
	case s.Image != "" && len(s.Args) > 0:
		return fmt.Errorf("args cannot be combined with image")
	}
	return nil
}

// Resolve returns the launch spec for the named server. An unknown name
// lists the known ones in the error.
func (f *File) Resolve(name string) (*Launch, error) {
	srv, ok := f.Servers[name]
	if !ok {
		return nil, fmt.Errorf("config: unknown server %q (known: %v)", name, f.Names())
	}
	return srv.Launch()
}

// Names returns the defined server names, sorted.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Servers))
	for name := range f.Servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Launch resolves the server into an argv plus environment entries.
//
// A command server is spawned as-is. An image server runs under docker with
// stdio attached; the image reference is validated and normalized first, so
// a bare "foo/bar" becomes "docker.io/foo/bar:latest".
func (s *Server) Launch() (*Launch, error) {
	env := make([]string, 0, len(s.Env))
	keys := make([]string, 0, len(s.Env))
	for k := range s.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+s.Env[k])
	}

	if s.Image != "" {
		ref, err := imageref.Parse(s.Image)
		if err != nil {
			return nil, fmt.Errorf("config: parse image %q: %w", s.Image, err)
		}
		full := fmt.Sprintf("%s/%s:%s", ref.Registry(), ref.ShortName(), ref.Tag())
		args := []string{"docker", "run", "--rm", "-i"}
		for _, e := range env {
			args = append(args, "-e", e)
		}
		args = append(args, full)
		// Env entries ride inside the docker invocation, not the docker
		// process itself.
		return &Launch{Args: args}, nil
	}

	return &Launch{
		Args: append([]string{s.Command}, s.Args...),
		Env:  env,
	}, nil
}
