package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/signadot/mcpline/mcp"
)

// renderTools produces the stable text form of a toolset, one tool per
// line, sorted by name. This is both the terminal listing and the snapshot
// format, so diffs line up across runs.
func renderTools(all []mcp.Tool, long bool) string {
	sorted := make([]mcp.Tool, len(all))
	copy(sorted, all)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	var b strings.Builder
	for _, tool := range sorted {
		if !long || tool.Description == "" {
			fmt.Fprintf(&b, "%s\n", tool.Name)
			continue
		}
		desc := strings.SplitN(tool.Description, "\n", 2)[0]
		fmt.Fprintf(&b, "%s\t%s\n", tool.Name, desc)
	}
	return b.String()
}

// diffSnapshots renders a line diff between a saved toolset snapshot and
// the current one, unified-style with -/+ prefixes.
func diffSnapshots(saved, current string) string {
	dmp := diffmatchpatch.New()
	// Diff whole lines, not runs of characters: a toolset diff should never
	// split a tool name.
	savedChars, currentChars, lineArr := dmp.DiffLinesToChars(saved, current)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(savedChars, currentChars, false), lineArr)

	var b strings.Builder
	for _, d := range diffs {
		prefix, paint := " ", fmt.Sprintf
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix, paint = "-", red
		case diffmatchpatch.DiffInsert:
			prefix, paint = "+", green
		}
		for _, line := range splitDiffLines(d.Text) {
			b.WriteString(paint("%s%s\n", prefix, line))
		}
	}
	return b.String()
}

func splitDiffLines(text string) []string {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	return lines
}

var (
	red   = color.New(color.FgRed).SprintfFunc()
	green = color.New(color.FgGreen).SprintfFunc()
	bold  = color.New(color.Bold).SprintfFunc()
)

func init() {
	// Color is for terminals; snapshots and pipes get plain text.
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
}

// colorizeListing bolds the tool names in a rendered listing.
func colorizeListing(listing string) string {
	if color.NoColor {
		return listing
	}
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimSuffix(listing, "\n"), "\n") {
		name, rest, found := strings.Cut(line, "\t")
		if found {
			b.WriteString(bold("%s", name) + "\t" + rest + "\n")
		} else {
			b.WriteString(bold("%s", line) + "\n")
		}
	}
	return b.String()
}
