package main

import (
	"testing"

	"github.com/signadot/mcpline/mcp"
)

func TestFilter(t *testing.T) {
	all := []mcp.Tool{
		{Name: "git_status", Description: "show the working tree status"},
		{Name: "git_diff", Description: "show changes"},
		{Name: "fetch", Description: "fetch a url"},
	}

	tests := []struct {
		src  string
		want []string
	}{
		{src: `name startsWith "git_"`, want: []string{"git_status", "git_diff"}},
		{src: `"url" in description`, want: []string{"fetch"}},
		{src: `name == "nope"`, want: nil},
		{src: `true`, want: []string{"git_status", "git_diff", "fetch"}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			flt, err := compileFilter(tt.src)
			if err != nil {
				t.Fatalf("compile: %v", err)
			}
			kept, err := flt.apply(all)
			if err != nil {
				t.Fatalf("apply: %v", err)
			}
			var names []string
			for _, tool := range kept {
				names = append(names, tool.Name)
			}
			if len(names) != len(tt.want) {
				t.Fatalf("kept %v, want %v", names, tt.want)
			}
			for i := range names {
				if names[i] != tt.want[i] {
					t.Errorf("kept %v, want %v", names, tt.want)
					break
				}
			}
		})
	}
}

func TestFilter_CompileError(t *testing.T) {
	if _, err := compileFilter(`name +`); err == nil {
		t.Error("expected compile error")
	}
	// Non-boolean expressions are rejected at compile time.
	if _, err := compileFilter(`name`); err == nil {
		t.Error("expected type error for non-boolean filter")
	}
}
