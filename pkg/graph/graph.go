// Package graph renders resolved component closures as dependency
// diagrams. Components become nodes, registry-dependency references
// become edges, and the resulting DOT can be rendered to SVG or PNG
// in-process via Graphviz.
package graph

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/loomui/loom/pkg/registry"
)

// ToDOT converts a resolved component closure to Graphviz DOT format.
// Nodes appear in the given order; edges point from a component to each
// of its registry dependencies.
func ToDOT(comps []*registry.Component) string {
	var buf bytes.Buffer
	buf.WriteString("digraph components {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, c := range comps {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", c.ID, nodeLabel(c))
	}

	buf.WriteString("\n")
	for _, c := range comps {
		for _, dep := range c.RegistryDependencies {
			fmt.Fprintf(&buf, "  %q -> %q;\n", c.ID, dep)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(c *registry.Component) string {
	var parts []string
	parts = append(parts, c.Name)
	if c.Category != "" {
		parts = append(parts, c.Category)
	}
	if n := len(c.Dependencies) + len(c.DevDependencies); n > 0 {
		parts = append(parts, fmt.Sprintf("%d external deps", n))
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
