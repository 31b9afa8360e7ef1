package main

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/mcpline/mcp"
)

// toolFilter is a compiled boolean expression over a tool's visible fields.
type toolFilter struct {
	src  string
	prog *vm.Program
}

func filterEnv(tool mcp.Tool) map[string]any {
	return map[string]any{
		"name":        tool.Name,
		"description": tool.Description,
	}
}

func compileFilter(src string) (*toolFilter, error) {
	prog, err := expr.Compile(src,
		expr.Env(filterEnv(mcp.Tool{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", src, err)
	}
	return &toolFilter{src: src, prog: prog}, nil
}

// apply keeps the tools the predicate accepts.
func (f *toolFilter) apply(all []mcp.Tool) ([]mcp.Tool, error) {
	var kept []mcp.Tool
	for _, tool := range all {
		out, err := expr.Run(f.prog, filterEnv(tool))
		if err != nil {
			return nil, fmt.Errorf("filter %q on %s: %w", f.src, tool.Name, err)
		}
		if out.(bool) {
			kept = append(kept, tool)
		}
	}
	return kept, nil
}
