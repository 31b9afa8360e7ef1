package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/mcpline/mcp"
)

type CallConfig struct {
	MainConfig *MainConfig
	Call       *cli.Command

	ArgsFile string `cli:"name=args desc='read tool arguments (JSON) from a file, - for stdin'"`
}

func CallCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CallConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Call, "call").
		WithAliases("c").
		WithSynopsis("call [-args file] <tool> [json-args]").
		WithDescription("invoke one tool on a server").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return call(cfg, cc, args)
		})
}

func call(cfg *CallConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Call.Parse(cc, args)
	if err != nil {
		cfg.Call.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: call requires a tool name", cli.ErrUsage)
	}
	name := args[0]
	args = args[1:]

	var rawArgs []byte
	switch {
	case cfg.ArgsFile != "":
		rawArgs, err = readSource(cfg.ArgsFile)
		if err != nil {
			return fmt.Errorf("read args: %w", err)
		}
	case len(args) > 0:
		rawArgs, args = []byte(args[0]), args[1:]
	}

	var toolArgs map[string]any
	if len(rawArgs) > 0 {
		if err := json.Unmarshal(rawArgs, &toolArgs); err != nil {
			return fmt.Errorf("%w: tool arguments must be a JSON object: %v", cli.ErrUsage, err)
		}
	}

	ctx := context.Background()
	c, _, err := cfg.MainConfig.connect(ctx, args)
	if err != nil {
		return err
	}
	defer c.Close()

	res, err := mcp.CallTool(ctx, c, name, toolArgs)
	if err != nil {
		return fmt.Errorf("tools/call %s: %w", name, err)
	}

	for _, block := range res.Content {
		switch block.Type {
		case "text":
			fmt.Fprintln(cc.Out, block.Text)
		default:
			fmt.Fprintf(cc.Out, "[%s content]\n", block.Type)
		}
	}
	if res.IsError {
		// Tool-level failure: the content explains it, the exit code
		// reports it.
		return cli.ExitCodeErr(1)
	}
	return nil
}
