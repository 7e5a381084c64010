package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/obliquity/internal/scene"
)

// Styles holds the lipgloss styles derived from a Theme.
type Styles struct {
	Title     lipgloss.Style
	Panel     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Active    lipgloss.Style
	Editing   lipgloss.Style
	Running   lipgloss.Style
	Paused    lipgloss.Style
	Error     lipgloss.Style
	KeyHint   lipgloss.Style
	Chart     lipgloss.Style
	SparkHigh lipgloss.Style
	SparkMid  lipgloss.Style
	SparkLow  lipgloss.Style
	theme     Theme
}

func NewStyles(t Theme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		Label:     lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		Value:     lipgloss.NewStyle().Foreground(t.Text),
		Active:    lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Editing:   lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Underline(true),
		Running:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88")),
		Paused:    lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")),
		KeyHint:   lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Chart:     lipgloss.NewStyle().Foreground(t.Secondary),
		SparkHigh: lipgloss.NewStyle().Foreground(t.Arc),
		SparkMid:  lipgloss.NewStyle().Foreground(t.Accent),
		SparkLow:  lipgloss.NewStyle().Foreground(t.Secondary),
		theme:     t,
	}
}

// Ink paints a run of canvas cells in the theme colour for the ink.
func (s Styles) Ink(ink uint32, text string) string {
	if ink == 0 && strings.Trim(text, "⠀") == "" {
		return text
	}
	return lipgloss.NewStyle().Foreground(s.theme.SceneColor(scene.Color(ink))).Render(text)
}

// GradientText blends the colours of text from start to end.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	c1, err1 := colorful.Hex(string(start))
	c2, err2 := colorful.Hex(string(end))
	if err1 != nil || err2 != nil {
		return lipgloss.NewStyle().Foreground(start).Render(text)
	}

	var b strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		col := lipgloss.Color(c1.BlendLuv(c2, t).Clamped().Hex())
		b.WriteString(lipgloss.NewStyle().Foreground(col).Render(string(r)))
	}
	return b.String()
}

// ProgressBar renders a gauge filled to fraction of width.
func (s Styles) ProgressBar(fraction float64, width int) string {
	filled := max(0, min(width, int(fraction*float64(width))))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case fraction > 0.8:
		return s.SparkHigh.Render(bar)
	case fraction > 0.4:
		return s.SparkMid.Render(bar)
	}
	return s.SparkLow.Render(bar)
}

// Sparkline renders values as a one-line bar chart, marking index mark.
func (s Styles) Sparkline(values []float64, width, mark int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	n := min(width, len(values))
	var b strings.Builder
	for i := 0; i < n; i++ {
		idx := i * len(values) / n
		norm := (values[idx] - lo) / rng
		c := string(chars[max(0, min(len(chars)-1, int(norm*float64(len(chars)-1))))])
		markHere := mark >= 0 && idx <= mark && mark < (i+1)*len(values)/n
		switch {
		case markHere:
			b.WriteString(s.Active.Render(c))
		case norm > 0.7:
			b.WriteString(s.SparkHigh.Render(c))
		case norm > 0.3:
			b.WriteString(s.SparkMid.Render(c))
		default:
			b.WriteString(s.SparkLow.Render(c))
		}
	}
	return b.String()
}

// Separator draws a decorative rule.
func (s Styles) Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(mid-3, 0))
	right := strings.Repeat("─", max(width-mid-3, 0))
	return s.KeyHint.Render(left + " ◆ " + right)
}
