package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/obliquity/internal/chart"
	"github.com/san-kum/obliquity/internal/discrepancy"
	"github.com/san-kum/obliquity/internal/viz"
)

const defaultInk = "#00ff00"

// CanvasToSVG converts a Braille canvas to SVG format. ink maps a cell's ink
// to a CSS colour; nil draws everything in green.
func CanvasToSVG(canvas *viz.Canvas, scale float64, ink func(uint32) string) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	dotRadius := scale * 0.4
	w, h := canvas.PixelSize()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !canvas.Lit(x, y) {
				continue
			}
			fill := defaultInk
			if ink != nil {
				fill = ink(canvas.Ink[y/4][x/2])
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n", cx, cy, dotRadius, fill)
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesSVG draws the discrepancy series as a line chart with the day axis
// labelled the same way as the terminal chart.
func SeriesSVG(samples []discrepancy.Sample, width, height int, stroke, title string) string {
	if len(samples) < 2 {
		return ""
	}
	const margin = 40.0
	plotW := float64(width) - 2*margin
	plotH := float64(height) - 2*margin

	maxY := discrepancy.Peak(samples).Minutes
	if maxY <= 0 {
		maxY = 1
	}
	n := len(samples)
	px := func(i int) float64 { return margin + float64(i)/float64(n-1)*plotW }
	py := func(v float64) float64 { return margin + plotH - v/maxY*plotH }

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="monospace" font-size="10">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)
	if title != "" {
		fmt.Fprintf(&sb, "<text x=\"%.1f\" y=\"%.1f\" fill=\"#ffffff\" text-anchor=\"middle\">%s</text>\n",
			float64(width)/2, margin/2, html.EscapeString(title))
	}
	fmt.Fprintf(&sb, "<path fill=\"none\" stroke=\"#666666\" d=\"M%.1f,%.1f L%.1f,%.1f L%.1f,%.1f\"/>\n",
		margin, margin, margin, margin+plotH, margin+plotW, margin+plotH)
	fmt.Fprintf(&sb, "<text x=\"%.1f\" y=\"%.1f\" fill=\"#888888\" text-anchor=\"end\">%.1f</text>\n",
		margin-4, margin+4, maxY)

	for i, label := range chart.TickLabels(n) {
		if label == "" {
			continue
		}
		fmt.Fprintf(&sb, "<text x=\"%.1f\" y=\"%.1f\" fill=\"#888888\" text-anchor=\"middle\">%s</text>\n",
			px(i), margin+plotH+14, html.EscapeString(label))
	}

	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke)
	for i, s := range samples {
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", px(i), py(s.Minutes))
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", px(i), py(s.Minutes))
		}
	}
	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
