package client

import (
	"fmt"
	"os"
	"os/exec"
)

// New spawns args as a subprocess and establishes a session over its stdio.
// args follows the Unix convention: the first element is the program, the
// rest are its arguments. The subprocess's stdout is the inbound stream and
// its stdin the outbound one; stderr is discarded unless WithStderr is
// given.
//
// Close kills the subprocess on a best-effort basis; callers wanting a
// stricter lifecycle should manage the process themselves and use NewStream.
func New(args []string, opts ...Option) (*Client, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("client: expected at least one element in args: the program to spawn")
	}

	cmd := exec.Command(args[0], args[1:]...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("client: capture stdin of %s: %w", args[0], err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("client: capture stdout of %s: %w", args[0], err)
	}

	// Stderr is not part of the protocol channel. Apply options to a scratch
	// value to pick up WithStderr before Start; the real client re-applies
	// them in NewStream.
	var cfg Client
	for _, opt := range opts {
		opt(&cfg)
	}
	cmd.Stderr = cfg.stderr
	if len(cfg.env) > 0 {
		cmd.Env = append(os.Environ(), cfg.env...)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("client: spawn %s: %w", args[0], err)
	}

	c := NewStream(stdout, stdin, opts...)
	c.cmd = cmd
	return c, nil
}
