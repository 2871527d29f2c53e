package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gridstack/pkg/geometry"
	"github.com/matzehuels/gridstack/pkg/grid"
)

// DefaultContainerWidth is the pixel width used when params leave it unset.
const DefaultContainerWidth = 1200.0

// pointsPerInch converts pixel sizes to the inches Graphviz expects for
// node width and height. Positions use inputscale so they stay in points.
const pointsPerInch = 72.0

var fillColors = []string{"#8ecfc9", "#ffbe7a", "#82b0d2", "#fa7f6f", "#beb8dc", "#e7dad2", "#96c37d", "#f3d266"}

// ToDOT converts a layout to Graphviz DOT with every item pinned at its
// pixel box. Graphviz's y axis points up, so tops are negated.
func ToDOT(l grid.Layout, p geometry.Params) string {
	if p.ContainerWidth <= 0 {
		p.ContainerWidth = DefaultContainerWidth
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fixedsize=true, fontsize=14, fontname=\"Helvetica\"];\n")
	buf.WriteString("\n")

	for i, it := range l {
		if !grid.IsFinite(it.Y) || !grid.IsFinite(it.X) {
			continue
		}
		pos := geometry.ItemPosition(p, float64(it.X), float64(it.Y), float64(it.W), float64(it.H), 0, geometry.Transient{})
		attrs := []string{
			fmt.Sprintf("label=%q", label(it)),
			fmt.Sprintf("pos=\"%s,%s!\"", num(pos.Left+pos.Width/2), num(-(pos.Top + pos.Height/2))),
			fmt.Sprintf("width=%s", num(pos.Width/pointsPerInch)),
			fmt.Sprintf("height=%s", num(pos.Height/pointsPerInch)),
		}
		if it.Static {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
		} else {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fillColors[i%len(fillColors)]))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", it.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func label(it grid.Item) string {
	return fmt.Sprintf("%s\n%d,%d %dx%d", it.ID, it.X, it.Y, it.W, it.H)
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// RenderSVG renders DOT produced by [ToDOT] to SVG. Nodes keep their pinned
// positions.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// SVG renders l directly.
func SVG(ctx context.Context, l grid.Layout, p geometry.Params) ([]byte, error) {
	return RenderSVG(ctx, ToDOT(l, p))
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-sized svg header with one whose
// width and height match the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
