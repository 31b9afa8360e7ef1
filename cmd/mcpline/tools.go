package main

import (
	"context"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/mcpline/mcp"
)

type ToolsConfig struct {
	MainConfig *MainConfig
	Tools      *cli.Command

	Filter  string `cli:"name=filter desc='keep tools matching an expr predicate over name and description'"`
	Out     string `cli:"name=o desc='write the toolset snapshot to a file'"`
	Against string `cli:"name=against desc='diff the toolset against a saved snapshot'"`
	Long    bool   `cli:"name=l desc='include tool descriptions'"`
}

func ToolsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ToolsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Tools, "tools").
		WithAliases("t").
		WithSynopsis("tools [-filter expr] [-o file] [-against file] [-- server argv]").
		WithDescription("list the tools a server exposes").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return tools(cfg, cc, args)
		})
}

func tools(cfg *ToolsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Tools.Parse(cc, args)
	if err != nil {
		cfg.Tools.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}

	ctx := context.Background()
	c, _, err := cfg.MainConfig.connect(ctx, args)
	if err != nil {
		return err
	}
	defer c.Close()

	all, err := mcp.AllTools(ctx, c)
	if err != nil {
		return fmt.Errorf("tools/list: %w", err)
	}

	if cfg.Filter != "" {
		flt, err := compileFilter(cfg.Filter)
		if err != nil {
			return fmt.Errorf("%w: %v", cli.ErrUsage, err)
		}
		all, err = flt.apply(all)
		if err != nil {
			return err
		}
	}

	snapshot := renderTools(all, cfg.Long)

	if cfg.Out != "" {
		if err := os.WriteFile(cfg.Out, []byte(snapshot), 0o644); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
	}
	if cfg.Against != "" {
		saved, err := readSource(cfg.Against)
		if err != nil {
			return fmt.Errorf("read snapshot: %w", err)
		}
		fmt.Fprint(cc.Out, diffSnapshots(string(saved), snapshot))
		return nil
	}

	fmt.Fprint(cc.Out, colorizeListing(snapshot))
	return nil
}
