package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/mcpline/client"
	"github.com/signadot/mcpline/config"
	"github.com/signadot/mcpline/mcp"
)

const progName = "mcpline"

var version = "0.1.0"

type MainConfig struct {
	ConfigPath string `cli:"name=config desc='server definition file (default mcpline.yaml)'"`
	Server     string `cli:"name=server aliases=s desc='named server from the config file'"`
	Debug      bool   `cli:"name=debug desc='log protocol events to stderr'"`
	ShowStderr bool   `cli:"name=stderr desc='pass the server stderr through'"`

	Main *cli.Command
}

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, progName).
		WithSynopsis(progName + " [opts] command [opts]").
		WithDescription(progName + " talks to MCP servers over stdio.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			args, err := cfg.Main.Parse(cc, args)
			if err != nil {
				cfg.Main.Usage(cc, err)
				return cli.ExitCodeErr(1)
			}
			if len(args) == 0 {
				cfg.Main.Usage(cc, nil)
				return cli.ExitCodeErr(1)
			}
			return fmt.Errorf("%w: unknown command %q", cli.ErrUsage, args[0])
		}).
		WithSubs(
			ToolsCommand(cfg),
			CallCommand(cfg),
			ResourcesCommand(cfg),
			PingCommand(cfg),
		)
}

// logger builds the session logger. Protocol noise (dropped lines, stray
// replies) stays below Info unless -debug is given.
func (cfg *MainConfig) logger() *slog.Logger {
	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// connect resolves what to spawn, establishes the session, and runs the MCP
// handshake. With -server the launch spec comes from the config file;
// otherwise the remaining args are the raw argv. It returns the unconsumed
// args.
func (cfg *MainConfig) connect(ctx context.Context, args []string) (*client.Client, []string, error) {
	opts := []client.Option{client.WithLogger(cfg.logger())}
	if cfg.ShowStderr {
		opts = append(opts, client.WithStderr(os.Stderr))
	}

	var argv []string
	switch {
	case cfg.Server != "":
		path := cfg.ConfigPath
		if path == "" {
			path = "mcpline.yaml"
		}
		f, err := config.Load(path)
		if err != nil {
			return nil, nil, err
		}
		launch, err := f.Resolve(cfg.Server)
		if err != nil {
			return nil, nil, err
		}
		argv = launch.Args
		opts = append(opts, client.WithEnv(launch.Env))
	case len(args) > 0:
		argv, args = args, nil
	default:
		return nil, nil, fmt.Errorf("%w: give -server or a server command line", cli.ErrUsage)
	}

	c, err := client.New(argv, opts...)
	if err != nil {
		return nil, nil, err
	}
	if _, err := mcp.Handshake(ctx, c, mcp.Implementation{Name: progName, Version: version}); err != nil {
		c.Close()
		return nil, nil, fmt.Errorf("handshake with %s: %w", argv[0], err)
	}
	return c, args, nil
}

// readSource reads a file argument, with "-" meaning stdin, as the other
// tools in this family do.
func readSource(arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(arg)
}
