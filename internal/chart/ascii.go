package chart

import (
	"strings"

	"github.com/guptarohit/asciigraph"
)

const (
	DefaultWidth  = 64
	DefaultHeight = 10
)

// ASCIIChart is a Charter that renders to text with asciigraph. The plot is
// rebuilt on Redraw; the current-day marker is drawn on every String call so
// moving it never costs a full redraw.
type ASCIIChart struct {
	Width   int
	Height  int
	Caption string

	labels    []int
	values    []float64
	highlight int
	plot      string
	axisCol   int
	redraws   int
}

// NewASCIIChart returns a chart of the given plot size. Width is raised to 2
// and height to 1 so the day marker always has a column to sit in.
func NewASCIIChart(width, height int) *ASCIIChart {
	return &ASCIIChart{
		Width:     max(width, 2),
		Height:    max(height, 1),
		Caption:   "discrepancy (minutes)",
		highlight: -1,
	}
}

func (c *ASCIIChart) SetData(labels []int, values []float64) {
	c.labels = labels
	c.values = values
	if c.highlight >= len(values) {
		c.highlight = len(values) - 1
	}
}

// Redraw re-plots the data. Terminal output has no transitions, so animate
// is accepted and ignored.
func (c *ASCIIChart) Redraw(animate bool) {
	c.redraws++
	c.Width = max(c.Width, 2)
	if len(c.values) < 2 {
		c.plot, c.axisCol = "", 0
		return
	}
	plot := asciigraph.Plot(c.values,
		asciigraph.Height(c.Height),
		asciigraph.Width(c.Width),
		asciigraph.LowerBound(0),
		asciigraph.Precision(1),
	)
	c.axisCol = axisColumn(plot)
	c.plot = plot + "\n" + c.tickRow()
	if c.Caption != "" {
		c.plot += "\n" + strings.Repeat(" ", c.axisCol+1) + c.Caption
	}
}

// Redraws returns how many times the chart was re-plotted.
func (c *ASCIIChart) Redraws() int { return c.redraws }

// Highlight marks the column of day under the plot.
func (c *ASCIIChart) Highlight(day int) { c.highlight = day }

// Len returns the number of points currently charted.
func (c *ASCIIChart) Len() int { return len(c.values) }

func (c *ASCIIChart) String() string {
	if c.plot == "" {
		return ""
	}
	if c.highlight < 0 || c.highlight >= len(c.values) {
		return c.plot
	}
	col := c.axisCol + 1 + c.column(c.highlight)
	marker := []rune(strings.Repeat(" ", c.axisCol+1+c.Width))
	if col >= len(marker) {
		return c.plot
	}
	marker[col] = '▲'
	return c.plot + "\n" + string(marker)
}

// column maps a data index to a plot column.
func (c *ASCIIChart) column(i int) int {
	n := len(c.values)
	if n < 2 || c.Width < 2 {
		return 0
	}
	return (i*(c.Width-1) + (n-1)/2) / (n - 1)
}

// tickRow lays out the axis labels under the plot. The named marks go
// first, with End flush against the right edge; numeric labels fill whatever
// columns are left, one blank apart from their neighbours.
func (c *ASCIIChart) tickRow() string {
	base := c.axisCol + 1
	row := []rune(strings.Repeat(" ", base+c.Width))
	used := make([]bool, c.Width)
	put := func(col int, label []rune) {
		for j, r := range label {
			row[base+col+j] = r
			used[col+j] = true
		}
	}

	labels := TickLabels(len(c.values))
	last := len(labels) - 1
	limit := c.Width
	if end := []rune(labels[last]); isMark(labels[last]) && len(end) <= c.Width {
		put(c.Width-len(end), end)
		limit = c.Width - len(end) - 1
	}
	next := 0
	for i, l := range labels[:last] {
		if !isMark(l) {
			continue
		}
		label := []rune(l)
		col := max(c.column(i), next)
		if col+len(label) > limit {
			continue
		}
		put(col, label)
		next = col + len(label) + 1
	}

	for i, l := range labels {
		if l == "" || isMark(l) {
			continue
		}
		label := []rune(l)
		col := c.column(i)
		if col+len(label) > c.Width || taken(used, col-1, col+len(label)+1) {
			continue
		}
		put(col, label)
	}
	return strings.TrimRight(string(row), " ")
}

// isMark reports whether a tick label is one of the named positions rather
// than a day number.
func isMark(label string) bool {
	return label != "" && (label[0] < '0' || label[0] > '9')
}

// taken reports whether any column in [from, to) is occupied.
func taken(used []bool, from, to int) bool {
	for i := max(from, 0); i < min(to, len(used)); i++ {
		if used[i] {
			return true
		}
	}
	return false
}

// axisColumn finds the rune offset of the y axis in an asciigraph plot.
func axisColumn(plot string) int {
	first, _, _ := strings.Cut(plot, "\n")
	for i, r := range []rune(first) {
		if r == '┤' || r == '┼' {
			return i
		}
	}
	return 0
}
