package main

import (
	"context"
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/mcpline/mcp"
)

type ResourcesConfig struct {
	MainConfig *MainConfig
	Resources  *cli.Command

	URI string `cli:"name=uri desc='read one resource instead of listing'"`
}

func ResourcesCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ResourcesConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Resources, "resources").
		WithAliases("r", "res").
		WithSynopsis("resources [-uri uri] [-- server argv]").
		WithDescription("list a server's resources, or read one by uri").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return resources(cfg, cc, args)
		})
}

func resources(cfg *ResourcesConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Resources.Parse(cc, args)
	if err != nil {
		cfg.Resources.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}

	ctx := context.Background()
	c, _, err := cfg.MainConfig.connect(ctx, args)
	if err != nil {
		return err
	}
	defer c.Close()

	if cfg.URI != "" {
		res, err := mcp.ReadResource(ctx, c, cfg.URI)
		if err != nil {
			return fmt.Errorf("resources/read %s: %w", cfg.URI, err)
		}
		for _, content := range res.Contents {
			if content.Text != "" {
				fmt.Fprintln(cc.Out, content.Text)
				continue
			}
			fmt.Fprintf(cc.Out, "[%s blob, %d bytes base64]\n", content.MimeType, len(content.Blob))
		}
		return nil
	}

	var params *mcp.ListResourcesParams
	for {
		page, err := mcp.ListResources(ctx, c, params)
		if err != nil {
			return fmt.Errorf("resources/list: %w", err)
		}
		for _, r := range page.Resources {
			if r.Description != "" {
				fmt.Fprintf(cc.Out, "%s\t%s\t%s\n", r.URI, r.Name, r.Description)
				continue
			}
			fmt.Fprintf(cc.Out, "%s\t%s\n", r.URI, r.Name)
		}
		if page.NextCursor == "" {
			return nil
		}
		params = &mcp.ListResourcesParams{Cursor: page.NextCursor}
	}
}
