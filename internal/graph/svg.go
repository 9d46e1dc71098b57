package graph

import (
	"bufio"
	"fmt"
	"html"
	"io"
)

// WriteSVG writes the frame as a standalone SVG document sized to the canvas.
func WriteSVG(w io.Writer, d Diagram, f Frame) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`+"\n",
		CanvasWidth, CanvasHeight, CanvasWidth, CanvasHeight)

	for _, e := range d.Edges {
		if e.Source >= len(f.Positions) || e.Target >= len(f.Positions) {
			continue
		}
		a, b := f.Positions[e.Source], f.Positions[e.Target]
		fmt.Fprintf(bw, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="2"/>`+"\n",
			a.X, a.Y, b.X, b.Y, EdgeColor)
	}

	for i, n := range d.Nodes {
		if i >= len(f.Positions) {
			break
		}
		p := f.Positions[i]
		fmt.Fprintf(bw, `  <circle cx="%.2f" cy="%.2f" r="%g" fill="%s" stroke="#fff" stroke-width="1.5"><title>%s</title></circle>`+"\n",
			p.X, p.Y, n.Radius, n.Color, html.EscapeString(n.Name))
		fmt.Fprintf(bw, `  <text x="%.2f" y="%.2f" font-size="8" fill="#37352F">%s</text>`+"\n",
			p.X+n.Radius+2, p.Y+3, html.EscapeString(n.Initials))
	}

	fmt.Fprintln(bw, `</svg>`)
	return bw.Flush()
}
