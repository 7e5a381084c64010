package viz

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/obliquity/internal/animation"
	"github.com/san-kum/obliquity/internal/chart"
	"github.com/san-kum/obliquity/internal/discrepancy"
	"github.com/san-kum/obliquity/internal/scene"
)

const (
	canvasWidth  = 56
	canvasHeight = 22
	sideWidth    = 46

	// MaxObliquity bounds the tilt reachable from the keyboard.
	MaxObliquity = 90.0
)

// Field is an editable parameter.
type Field int

const (
	FieldObliquity Field = iota
	FieldDays
	FieldDay
	fieldCount
)

func (f Field) String() string {
	switch f {
	case FieldObliquity:
		return "Obliquity"
	case FieldDays:
		return "Days"
	case FieldDay:
		return "Day"
	}
	return "?"
}

// Settings seeds a new App.
type Settings struct {
	Obliquity     float64
	DayCount      int
	CurrentDay    int
	Period        time.Duration
	LineThreshold int
	LineTarget    int
	Theme         string
	FPS           int
	Cache         *discrepancy.Cache
	Clock         animation.Clock
	Logger        *slog.Logger
}

type frameMsg time.Time

// App is the interactive terminal front end. It turns key presses into
// controller and driver calls and draws the scene, chart and readout.
type App struct {
	ctrl     *scene.Controller
	driver   *animation.Driver
	frames   *animation.FrameQueue
	renderer *Renderer
	chart    *chart.ASCIIChart
	canvas   *Canvas

	theme  Theme
	styles Styles
	fps    int

	snap     scene.Snapshot
	field    Field
	editing  bool
	editBuf  string
	err      error
	ticking  bool
	showHelp bool
}

// NewApp builds the renderer, chart, controller and animation driver.
func NewApp(s Settings) (*App, error) {
	a := &App{
		frames:   animation.NewFrameQueue(),
		renderer: NewRenderer(),
		chart:    chart.NewASCIIChart(sideWidth-16, 8),
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		theme:    GetTheme(s.Theme),
		fps:      s.FPS,
	}
	if a.fps <= 0 {
		a.fps = 60
	}
	a.styles = NewStyles(a.theme)

	opts := []scene.Option{
		scene.WithObliquity(s.Obliquity),
		scene.WithDayCount(s.DayCount),
		scene.WithCurrentDay(s.CurrentDay),
		scene.WithSeriesCache(s.Cache),
		scene.WithLogger(s.Logger),
		scene.OnReadout(a.onReadout),
	}
	if s.LineThreshold > 0 || s.LineTarget > 0 {
		opts = append(opts, scene.WithLineThinning(
			cmpOr(s.LineThreshold, scene.DefaultLineThreshold),
			cmpOr(s.LineTarget, scene.DefaultLineTarget),
		))
	}
	ctrl, err := scene.New(a.renderer, chart.NewAdapter(a.chart), opts...)
	if err != nil {
		return nil, err
	}
	a.ctrl = ctrl
	a.snap = ctrl.Snapshot()
	a.chart.Highlight(a.snap.CurrentDay)

	dopts := []animation.Option{animation.WithPeriod(s.Period), animation.WithLogger(s.Logger)}
	if s.Clock != nil {
		dopts = append(dopts, animation.WithClock(s.Clock))
	}
	a.driver = animation.New(ctrl, a.frames, dopts...)
	return a, nil
}

func cmpOr(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func (a *App) Controller() *scene.Controller { return a.ctrl }
func (a *App) Driver() *animation.Driver     { return a.driver }

func (a *App) onReadout(s scene.Snapshot) {
	a.snap = s
	a.chart.Highlight(s.CurrentDay)
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(a.fps), func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Update handles input events and animation frames.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a, a.handleKey(msg)
	case tea.WindowSizeMsg:
		w := max(20, msg.Width-sideWidth-6)
		h := max(8, msg.Height-4)
		a.canvas = NewCanvas(w, h)
	case frameMsg:
		a.frames.Fire(time.Time(msg))
		if a.driver.Running() {
			return a, a.tick()
		}
		a.ticking = false
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.editing {
		a.editKey(msg)
		return nil
	}
	switch msg.String() {
	case "q", "ctrl+c":
		a.driver.Stop()
		return tea.Quit
	case "tab":
		a.field = (a.field + 1) % fieldCount
	case "shift+tab":
		a.field = (a.field + fieldCount - 1) % fieldCount
	case "up", "k":
		a.nudge(1)
	case "down", "j":
		a.nudge(-1)
	case "K":
		a.nudge(0.1)
	case "J":
		a.nudge(-0.1)
	case "right", "l":
		a.stepDay(1)
	case "left", "h":
		a.stepDay(-1)
	case "enter":
		a.editing, a.editBuf, a.err = true, "", nil
	case " ":
		return a.toggleAnimation()
	case "c":
		a.ctrl.ResetCamera()
	case "x":
		a.renderer.Camera.RotateX(0.1)
	case "X":
		a.renderer.Camera.RotateX(-0.1)
	case "y":
		a.renderer.Camera.RotateY(0.1)
	case "Y":
		a.renderer.Camera.RotateY(-0.1)
	case "z":
		a.renderer.Camera.RotateZ(0.1)
	case "Z":
		a.renderer.Camera.RotateZ(-0.1)
	case "+", "=":
		a.renderer.Camera.ZoomIn()
	case "-", "_":
		a.renderer.Camera.ZoomOut()
	case "t":
		a.theme = NextTheme(a.theme)
		a.styles = NewStyles(a.theme)
	case "?":
		a.showHelp = !a.showHelp
	}
	return nil
}

func (a *App) editKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "enter":
		a.commit(a.editBuf)
		a.editing, a.editBuf = false, ""
	case "esc":
		a.editing, a.editBuf = false, ""
	case "backspace":
		if len(a.editBuf) > 0 {
			a.editBuf = a.editBuf[:len(a.editBuf)-1]
		}
	default:
		if s := msg.String(); len(s) == 1 {
			c := s[0]
			if (c >= '0' && c <= '9') || c == '.' || c == '-' {
				a.editBuf += s
			}
		}
	}
}

func (a *App) commit(text string) {
	if text == "" {
		return
	}
	switch a.field {
	case FieldObliquity:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			a.err = fmt.Errorf("obliquity: %w", err)
			return
		}
		a.setObliquity(v)
	case FieldDays, FieldDay:
		n, err := strconv.Atoi(text)
		if err != nil {
			a.err = fmt.Errorf("%s: %w", strings.ToLower(a.field.String()), err)
			return
		}
		if a.field == FieldDays {
			a.setDays(n)
		} else {
			a.setDay(n)
		}
	}
}

func (a *App) nudge(step float64) {
	switch a.field {
	case FieldObliquity:
		a.setObliquity(a.ctrl.Obliquity() + step)
	case FieldDays:
		a.setDays(a.ctrl.DayCount() + int(sign(step)))
	case FieldDay:
		a.stepDay(int(sign(step)))
	}
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func (a *App) setObliquity(v float64) {
	v = max(0, min(MaxObliquity, v))
	// Keyboard steps accumulate float error; keep one decimal.
	v = float64(int(v*10+0.5)) / 10
	a.err = a.ctrl.SetObliquity(v)
}

func (a *App) setDays(n int) {
	a.err = a.ctrl.SetDayCount(n)
}

// stepDay moves the current day by delta, wrapping around the orbit.
func (a *App) stepDay(delta int) {
	n := a.ctrl.DayCount()
	a.setDay(((a.ctrl.CurrentDay()+delta)%n + n) % n)
}

// setDay selects a day; the controller clamps it. A running animation
// continues from the new day.
func (a *App) setDay(d int) {
	a.err = nil
	if a.driver.Running() {
		a.driver.Stop()
		a.ctrl.SetCurrentDay(d)
		a.driver.Start()
		return
	}
	a.ctrl.SetCurrentDay(d)
}

func (a *App) toggleAnimation() tea.Cmd {
	if a.driver.Running() {
		a.driver.Stop()
		return nil
	}
	a.driver.Start()
	if a.ticking {
		return nil
	}
	a.ticking = true
	return a.tick()
}

// View renders the scene beside the readout panel.
func (a *App) View() string {
	a.renderer.Draw(a.canvas)
	sceneView := a.styles.Panel.Render(a.canvas.Render(a.styles.Ink))
	side := a.styles.Panel.Width(sideWidth).Render(a.sidePanel())
	main := lipgloss.JoinHorizontal(lipgloss.Top, sceneView, side)
	if a.showHelp {
		return a.styles.Panel.Render(helpText) + "\n" + main
	}
	return main
}

func (a *App) sidePanel() string {
	st := a.styles
	var b strings.Builder
	b.WriteString(GradientText("SOLAR NOON vs CLOCK NOON", a.theme.Primary, a.theme.Secondary) + "\n")
	if a.driver.Running() {
		b.WriteString(st.Running.Render("▶ ANIMATING") + "\n\n")
	} else {
		b.WriteString(st.Paused.Render("⏸ PAUSED") + "\n\n")
	}

	values := map[Field]string{
		FieldObliquity: fmt.Sprintf("%.1f°", a.snap.Obliquity),
		FieldDays:      strconv.Itoa(a.snap.DayCount),
		FieldDay:       fmt.Sprintf("%d / %d", a.snap.CurrentDay, a.snap.DayCount-1),
	}
	for f := Field(0); f < fieldCount; f++ {
		val := values[f]
		switch {
		case f == a.field && a.editing:
			b.WriteString(st.Active.Render("> "+st.Label.Render(f.String())) + st.Editing.Render(a.editBuf+"_") + "\n")
		case f == a.field:
			b.WriteString(st.Active.Render("> "+st.Label.Render(f.String())+val) + "\n")
		default:
			b.WriteString("  " + st.Label.Render(f.String()) + st.Value.Render(val) + "\n")
		}
	}
	b.WriteString("  " + st.Label.Render("") + st.ProgressBar(a.snap.Obliquity/MaxObliquity, 20) + "\n\n")

	b.WriteString(st.Label.Render("Angle") + st.Value.Render(fmt.Sprintf("%.2f°", a.snap.Discrepancy.AngleDeg)) + "\n")
	b.WriteString(st.Label.Render("Time") + st.Value.Render(fmt.Sprintf("%.2f minutes", a.snap.Discrepancy.Minutes)) + "\n")
	if a.err != nil {
		b.WriteString(st.Error.Render(a.err.Error()) + "\n")
	}
	b.WriteString("\n" + st.Chart.Render(a.chart.String()) + "\n")

	series := a.ctrl.Series()
	minutes := make([]float64, len(series))
	for i, s := range series {
		minutes[i] = s.Minutes
	}
	b.WriteString(st.Sparkline(minutes, sideWidth-6, a.snap.CurrentDay) + "\n")
	if a.snap.CurrentDay < len(series) {
		b.WriteString(st.KeyHint.Render(chart.Tooltip(series[a.snap.CurrentDay])) + "\n")
	}
	b.WriteString(st.Separator(sideWidth-4) + "\n")
	b.WriteString(st.KeyHint.Render("TAB:field ↑↓:adjust ←→:day ⏎:edit\nSPC:animate C:camera T:theme ?:help Q:quit"))
	return b.String()
}

const helpText = `KEYBOARD SHORTCUTS
  Tab / Shift+Tab  select parameter
  Up/K  Down/J     adjust by 1 (shift: 0.1°)
  Left/H Right/L   previous / next day
  Enter            type a value, Esc cancels
  Space            start / stop animation
  C                reset camera
  X Y Z            rotate camera (shift reverses)
  + -              zoom
  T                cycle themes
  ?                toggle this help
  Q                quit`
