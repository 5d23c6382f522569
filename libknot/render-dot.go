package libknot

import (
	"bytes"
	"context"
	"fmt"

	"github.com/fine-structures/knots/knot"
	"github.com/goccy/go-graphviz"
	"github.com/pkg/errors"
)

var circlePalette = []string{
	"#1f77b4", "#d62728", "#2ca02c", "#9467bd", "#ff7f0e", "#8c564b", "#e377c2", "#17becf",
}

// ToDOT converts a PD code to Graphviz DOT: crossings become nodes and each arc becomes an edge from the
// crossing it leaves to the crossing it enters, coloured by the Seifert circle it lies on.
func ToDOT(pd knot.PDCode) (string, error) {
	if err := ValidatePD(pd); err != nil {
		return "", err
	}
	enters, under, err := arcEntries(pd)
	if err != nil {
		return "", err
	}
	circles, err := SeifertCircles(pd)
	if err != nil {
		return "", err
	}
	M := pd.MaxLabel()
	circleOf := circleIndex(circles, M)

	leaves := make([]int, M+1)
	for i, c := range pd {
		ent := c.Entering(M)
		for p := 0; p < 4; p++ {
			if !ent[p] {
				leaves[c[p]] = i
			}
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph PD {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for i, c := range pd {
		fmt.Fprintf(&buf, "  c%d [label=\"%s\\n%v\"];\n", i+1, c.Sign(M), c)
	}

	buf.WriteString("\n")
	for x := 1; x <= M; x++ {
		color := circlePalette[circleOf[x]%len(circlePalette)]
		style := "solid"
		if under[x] {
			style = "dashed"
		}
		fmt.Fprintf(&buf, "  c%d -> c%d [label=\"%d\", color=%q, style=%s];\n", leaves[x]+1, enters[x]+1, x, color, style)
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(err, "render")
	}
	return buf.Bytes(), nil
}
