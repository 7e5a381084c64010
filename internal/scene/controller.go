package scene

import (
	"fmt"
	"log/slog"
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/obliquity/internal/discrepancy"
	"github.com/san-kum/obliquity/internal/geom"
)

// Scene dimensions in world units.
const (
	OrbitRadius   = 2.0
	EquatorRadius = 1.0
	BodyRadius    = 0.1
	AxisLength    = 1.5
	ArcRadius     = 0.04
	arcSteps      = 50
	circleSteps   = 64
)

// SeriesPublisher receives the full discrepancy series.
type SeriesPublisher interface {
	Publish(samples []discrepancy.Sample)
}

// Snapshot is the externally visible state after an update.
type Snapshot struct {
	Obliquity   float64
	DayCount    int
	CurrentDay  int
	Discrepancy discrepancy.Result
	Sun         r3.Vec // scene coordinates
}

// Controller owns Obliquity, DayCount and CurrentDay and keeps the scene,
// chart and readout consistent with them.
type Controller struct {
	renderer  Renderer
	chart     SeriesPublisher
	cache     *discrepancy.Cache
	log       *slog.Logger
	observers []func(Snapshot)

	lineThreshold int
	lineTarget    int

	obliquity float64
	numDays   int
	day       int

	static       []Handle
	orbitalLines []Handle
	tiltedLines  []Handle
	sun          Handle
	arc          Handle

	series  []discrepancy.Sample
	readout discrepancy.Result
}

// New builds the full scene for the initial parameters. It fails only when
// the initial day count is invalid.
func New(r Renderer, chart SeriesPublisher, opts ...Option) (*Controller, error) {
	c := &Controller{
		renderer:      r,
		chart:         chart,
		log:           discardLogger(),
		lineThreshold: DefaultLineThreshold,
		lineTarget:    DefaultLineTarget,
		obliquity:     DefaultObliquity,
		numDays:       DefaultDayCount,
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := discrepancy.ValidateDayCount(c.numDays); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if !finite(c.obliquity) {
		return nil, fmt.Errorf("%w, got %v", ErrInvalidObliquity, c.obliquity)
	}
	c.day = clampDay(c.day, c.numDays)

	c.renderer.SetTilt(c.obliquity)
	c.buildStatic()
	c.rebuildLines()
	c.rebuildSun()
	c.rebuildArc()
	c.recomputeSeries()
	c.refresh()
	return c, nil
}

func (c *Controller) Obliquity() float64 { return c.obliquity }
func (c *Controller) DayCount() int      { return c.numDays }
func (c *Controller) CurrentDay() int    { return c.day }

// Readout returns the discrepancy for the current day.
func (c *Controller) Readout() discrepancy.Result { return c.readout }

// Series returns a copy of the current per-day series.
func (c *Controller) Series() []discrepancy.Sample { return slices.Clone(c.series) }

// LineStep returns the stride between drawn reference lines.
func (c *Controller) LineStep() int {
	if c.numDays > c.lineThreshold {
		return (c.numDays + c.lineTarget - 1) / c.lineTarget
	}
	return 1
}

// LineCount returns the number of reference lines drawn per set.
func (c *Controller) LineCount() int { return len(c.orbitalLines) }

func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Obliquity:   c.obliquity,
		DayCount:    c.numDays,
		CurrentDay:  c.day,
		Discrepancy: c.readout,
		Sun:         r3.Scale(OrbitRadius, toScene(discrepancy.SunPosition(c.day, c.numDays))),
	}
}

// SetObliquity changes the axial tilt. Repeating the current value is a no-op.
// The tilted reference lines ride on the tilt transform and are not rebuilt;
// the mismatch arc, readout and chart series are. NaN and infinities are
// rejected with ErrInvalidObliquity and leave the controller unchanged.
func (c *Controller) SetObliquity(deg float64) error {
	if !finite(deg) {
		c.log.Debug("rejected obliquity", "degrees", deg, "current", c.obliquity)
		return fmt.Errorf("%w, got %v", ErrInvalidObliquity, deg)
	}
	if deg == c.obliquity {
		return nil
	}
	c.obliquity = deg
	c.renderer.SetTilt(deg)
	c.rebuildArc()
	c.recomputeSeries()
	c.refresh()
	return nil
}

// SetDayCount changes the number of samples per orbit. Counts below
// discrepancy.MinDayCount are rejected and leave the controller unchanged.
func (c *Controller) SetDayCount(n int) error {
	if err := discrepancy.ValidateDayCount(n); err != nil {
		c.log.Debug("rejected day count", "days", n, "current", c.numDays)
		return fmt.Errorf("scene: %w", err)
	}
	if n == c.numDays {
		return nil
	}
	c.numDays = n
	c.day = min(c.day, n-1)
	c.rebuildLines()
	c.rebuildSun()
	c.rebuildArc()
	c.recomputeSeries()
	c.refresh()
	return nil
}

// SetCurrentDay selects a day. Out-of-range input is clamped into
// [0, DayCount-1]; the applied day is returned.
func (c *Controller) SetCurrentDay(day int) int {
	day = clampDay(day, c.numDays)
	if day == c.day {
		return day
	}
	c.day = day
	c.rebuildSun()
	c.rebuildArc()
	c.refresh()
	return day
}

// ResetCamera restores the default viewpoint.
func (c *Controller) ResetCamera() { c.renderer.ResetCamera() }

// Close disposes every object the controller created.
func (c *Controller) Close() {
	c.disposeAll(c.static)
	c.disposeAll(c.orbitalLines)
	c.disposeAll(c.tiltedLines)
	c.dispose(&c.sun)
	c.dispose(&c.arc)
	c.static, c.orbitalLines, c.tiltedLines = nil, nil, nil
}

func (c *Controller) buildStatic() {
	c.static = append(c.static,
		c.renderer.Create(Polyline{Layer: LayerOrbital, Points: circle(OrbitRadius), Color: ColorOrbit, Opacity: 1}),
		c.renderer.Create(Polyline{Layer: LayerTilted, Points: circle(EquatorRadius), Color: ColorEquator, Opacity: 1}),
		c.renderer.Create(Polyline{Layer: LayerTilted, Points: []r3.Vec{{}, {Y: AxisLength}}, Color: ColorPlanet, Opacity: 1}),
		c.renderer.Create(Marker{Layer: LayerOrbital, Radius: BodyRadius, Color: ColorPlanet}),
	)
}

func (c *Controller) rebuildLines() {
	c.disposeAll(c.orbitalLines)
	c.disposeAll(c.tiltedLines)
	c.orbitalLines, c.tiltedLines = c.orbitalLines[:0], c.tiltedLines[:0]

	step := c.LineStep()
	for i := 0; i < c.numDays; i += step {
		dir := toScene(discrepancy.SunPosition(i, c.numDays))
		c.orbitalLines = append(c.orbitalLines, c.renderer.Create(Polyline{
			Layer: LayerOrbital, Points: []r3.Vec{{}, r3.Scale(OrbitRadius, dir)}, Color: ColorOrbitLine, Opacity: 0.3,
		}))
		c.tiltedLines = append(c.tiltedLines, c.renderer.Create(Polyline{
			Layer: LayerTilted, Points: []r3.Vec{{}, r3.Scale(EquatorRadius, dir)}, Color: ColorTiltLine, Opacity: 0.3,
		}))
	}
}

func (c *Controller) rebuildSun() {
	c.dispose(&c.sun)
	pos := r3.Scale(OrbitRadius, toScene(discrepancy.SunPosition(c.day, c.numDays)))
	c.sun = c.renderer.Create(Marker{Layer: LayerOrbital, Position: pos, Radius: BodyRadius, Color: ColorSun})
}

// rebuildArc draws the solar-noon ray, the clock-noon ray and the arc between
// them. The arc end comes from the same rotate-then-flatten step the model
// uses, so the drawn arc spans exactly the reported discrepancy.
func (c *Controller) rebuildArc() {
	c.dispose(&c.arc)

	p := discrepancy.SunPosition(c.day, c.numDays)
	solar := r3.Scale(OrbitRadius, toScene(p))
	clock := r3.Scale(EquatorRadius, geom.About(geom.ZAxis, c.obliquity).Rotate(toScene(p)))
	flat := toScene(discrepancy.ProjectToReferencePlane(p, c.obliquity))

	from := math.Atan2(solar.Z, solar.X)
	sweep := math.Remainder(math.Atan2(flat.Z, flat.X)-from, 2*math.Pi)
	arc := make([]r3.Vec, arcSteps+1)
	for i := range arc {
		a := from + sweep*float64(i)/arcSteps
		arc[i] = r3.Scale(EquatorRadius, r3.Vec{X: math.Cos(a), Z: math.Sin(a)})
	}

	c.arc = c.renderer.Create(Group{Shapes: []Shape{
		Polyline{Layer: LayerOrbital, Points: []r3.Vec{{}, solar}, Color: ColorSolarNoon, Opacity: 1},
		Polyline{Layer: LayerOrbital, Points: []r3.Vec{{}, clock}, Color: ColorClockNoon, Opacity: 1},
		Tube{Points: arc, Radius: ArcRadius, Color: ColorArc},
	}})
}

func (c *Controller) recomputeSeries() {
	c.series = c.cache.Series(c.obliquity, c.numDays)
	if c.chart != nil {
		c.chart.Publish(c.series)
	}
}

func (c *Controller) refresh() {
	c.readout = discrepancy.Compute(c.obliquity, c.day, c.numDays)
	if len(c.observers) == 0 {
		return
	}
	snap := c.Snapshot()
	for _, fn := range c.observers {
		fn(snap)
	}
}

func (c *Controller) dispose(h *Handle) {
	if *h != 0 {
		c.renderer.Dispose(*h)
		*h = 0
	}
}

func (c *Controller) disposeAll(hs []Handle) {
	for _, h := range hs {
		c.renderer.Dispose(h)
	}
}

// toScene maps the model frame (orbit in X-Y, tilt about Y) to the scene
// frame (orbit in X-Z, Y up).
func toScene(v r3.Vec) r3.Vec {
	return r3.Vec{X: v.X, Y: v.Z, Z: v.Y}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clampDay(day, n int) int {
	return max(0, min(day, n-1))
}

func circle(r float64) []r3.Vec {
	pts := make([]r3.Vec, circleSteps+1)
	for i := range pts {
		a := float64(i) / circleSteps * 2 * math.Pi
		pts[i] = r3.Vec{X: r * math.Cos(a), Z: r * math.Sin(a)}
	}
	return pts
}
