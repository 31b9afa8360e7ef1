package main

import (
	"context"
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/mcpline/mcp"
)

type PingConfig struct {
	MainConfig *MainConfig
	Ping       *cli.Command
}

func PingCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PingConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Ping, "ping").
		WithSynopsis("ping [-- server argv]").
		WithDescription("check that a server responds").
		WithRun(func(cc *cli.Context, args []string) error {
			return ping(cfg, cc, args)
		})
}

func ping(cfg *PingConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Ping.Parse(cc, args)
	if err != nil {
		cfg.Ping.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}

	ctx := context.Background()
	c, _, err := cfg.MainConfig.connect(ctx, args)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := mcp.Ping(ctx, c); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	fmt.Fprintln(cc.Out, "ok")
	return nil
}
