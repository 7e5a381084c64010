package chart

import (
	"fmt"

	"github.com/san-kum/obliquity/internal/discrepancy"
)

// Charter is the charting capability. SetData replaces the backing data;
// Redraw repaints, optionally without transition effects.
type Charter interface {
	SetData(labels []int, values []float64)
	Redraw(animate bool)
}

// Adapter publishes discrepancy series to a Charter.
type Adapter struct {
	charter   Charter
	published int
}

func NewAdapter(c Charter) *Adapter {
	return &Adapter{charter: c}
}

// Publish replaces the chart data with samples: labels are day indices and
// values are minutes. The redraw is never animated since the chart follows a
// live control.
func (a *Adapter) Publish(samples []discrepancy.Sample) {
	labels := make([]int, len(samples))
	values := make([]float64, len(samples))
	for i, s := range samples {
		labels[i] = s.Day
		values[i] = s.Minutes
	}
	a.charter.SetData(labels, values)
	a.charter.Redraw(false)
	a.published++
}

// Published returns how many series have been pushed so far.
func (a *Adapter) Published() int { return a.published }

// TickLabel returns the axis label for index in a series of total points.
// Start, the quarter marks and End take precedence over the every-30th
// numeric labels; all other positions are blank.
func TickLabel(index, total int) string {
	switch {
	case index == 0:
		return "Start"
	case index == total*1/4:
		return "Quarter"
	case index == total*2/4:
		return "Half"
	case index == total*3/4:
		return "3/4"
	case index == total-1:
		return "End"
	case index%30 == 0:
		return fmt.Sprint(index)
	}
	return ""
}

// TickLabels returns TickLabel for every index of a series of total points.
func TickLabels(total int) []string {
	out := make([]string, total)
	for i := range out {
		out[i] = TickLabel(i, total)
	}
	return out
}

// Tooltip formats the hover text for one sample.
func Tooltip(s discrepancy.Sample) string {
	return fmt.Sprintf("Day %d: %.2f minutes", s.Day, s.Minutes)
}
