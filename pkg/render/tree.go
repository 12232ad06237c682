// Package render turns census trees into text: an indented tree, a stacked
// bar chart of subfolders, a treemap and JSON or YAML documents.
package render

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/filetug/extcensus/pkg/census"
	"github.com/samber/lo"
)

const DefaultTopK = 5

const (
	branchMid  = "├── "
	branchLast = "└── "
	indentMid  = "│   "
	indentLast = "    "
)

// TreeOptions controls FormatTree.
// TopK limits the extensions listed per node, a negative value lists all.
// MaxDepth < 0 means unlimited; 0 prints the root only.
type TreeOptions struct {
	TopK     int
	MaxDepth int
	Color    bool
}

func DefaultTreeOptions() TreeOptions {
	return TreeOptions{TopK: DefaultTopK, MaxDepth: -1}
}

type palette struct {
	name   *color.Color
	total  *color.Color
	denied *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		name:   color.New(color.FgCyan, color.Bold),
		total:  color.New(color.FgYellow),
		denied: color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.name, p.total, p.denied} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// FormatTree renders root as one line per node:
//
//	└── [src] (total: 3 | go: 2, md: 1)
//	    ├── [pkg] (total: 2 | go: 2)
//	    └── [locked] (permission denied)
func FormatTree(root *census.Node, opts TreeOptions) string {
	if root == nil {
		return ""
	}
	p := newPalette(opts.Color)

	type frame struct {
		node   *census.Node
		indent string
		last   bool
		depth  int
	}
	lines := make([]string, 0)
	stack := []frame{{node: root, last: true}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		branch := branchMid
		if f.last {
			branch = branchLast
		}
		lines = append(lines, f.indent+branch+nodeLabel(f.node, opts.TopK, p))

		if opts.MaxDepth >= 0 && f.depth >= opts.MaxDepth {
			continue
		}
		childIndent := f.indent + indentMid
		if f.last {
			childIndent = f.indent + indentLast
		}
		kids := f.node.Children
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{
				node:   kids[i],
				indent: childIndent,
				last:   i == len(kids)-1,
				depth:  f.depth + 1,
			})
		}
	}
	return strings.Join(lines, "\n")
}

func nodeLabel(n *census.Node, topK int, p palette) string {
	name := p.name.Sprintf("[%s]", n.Name)
	if n.PermissionDenied {
		return name + " " + p.denied.Sprint("(permission denied)")
	}
	total := n.Total()
	if total == 0 {
		return fmt.Sprintf("%s (total: %s)", name, p.total.Sprint(total))
	}
	parts := lo.Map(n.Counts.MostCommon(topK), func(c census.ExtCount, _ int) string {
		return fmt.Sprintf("%s: %d", census.DisplayExt(c.Ext), c.Count)
	})
	if topK >= 0 && len(n.Counts) > topK {
		parts = append(parts, "…")
	}
	return fmt.Sprintf("%s (total: %s | %s)", name, p.total.Sprint(total), strings.Join(parts, ", "))
}

// FormatNote renders the informational note of a node, or "" when there is none.
func FormatNote(note string) string {
	if note == "" {
		return ""
	}
	return "Note: " + note
}

// Summary is the tree followed by the root's note, separated by a blank line.
func Summary(root *census.Node, opts TreeOptions) string {
	s := FormatTree(root, opts)
	if root != nil && root.Note != "" {
		s += "\n\n" + FormatNote(root.Note)
	}
	return s
}
