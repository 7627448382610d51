package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/ytcrawl/ytcrawl/pkg/crawl"
)

// ToDOT converts a crawl result to Graphviz DOT format. Each item
// becomes a node labeled with its title, and every related video id
// becomes a directed edge from the item that surfaced it.
func ToDOT(items []*crawl.Item) string {
	var buf bytes.Buffer
	buf.WriteString("digraph related {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("\n")

	for _, it := range items {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", it.ID, nodeLabel(it))
	}

	buf.WriteString("\n")
	for _, it := range items {
		for _, id := range it.RelatedIDs {
			fmt.Fprintf(&buf, "  %q -> %q;\n", it.ID, id)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(it *crawl.Item) string {
	title := it.Title
	if len(title) > 48 {
		title = title[:45] + "..."
	}
	if title == "" {
		return it.ID
	}
	return title + "\n" + it.ID
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
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
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportDOT writes items as DOT to path, plus a rendered SVG alongside
// it when path ends in ".dot".
func ExportDOT(items []*crawl.Item, path string) error {
	dot := ToDOT(items)

	f, err := createFile(path)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(dot); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	if !strings.HasSuffix(path, ".dot") {
		return nil
	}
	svg, err := RenderSVG(dot)
	if err != nil {
		return fmt.Errorf("render SVG: %w", err)
	}
	svgPath := strings.TrimSuffix(path, ".dot") + ".svg"
	sf, err := createFile(svgPath)
	if err != nil {
		return err
	}
	defer sf.Close()
	_, err = sf.Write(svg)
	return err
}
