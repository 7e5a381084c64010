package animation

import (
	"io"
	"log/slog"
	"math"
	"time"
)

// DefaultPeriod is the wall-clock length of one animated orbit.
const DefaultPeriod = 4000 * time.Millisecond

// State is the driver's run state.
type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Target is the part of the scene controller the driver moves.
type Target interface {
	DayCount() int
	CurrentDay() int
	SetCurrentDay(day int) int
}

// Driver maps elapsed time onto the target's current day.
type Driver struct {
	target    Target
	clock     Clock
	scheduler Scheduler
	period    time.Duration
	log       *slog.Logger
	onDay     []func(day int)

	state    State
	start    time.Time
	startDay int
	frame    FrameID
	gen      uint64
}

type Option func(*Driver)

// WithPeriod sets the duration of one orbit. Non-positive values are ignored.
func WithPeriod(d time.Duration) Option {
	return func(dr *Driver) {
		if d > 0 {
			dr.period = d
		}
	}
}

func WithClock(c Clock) Option { return func(d *Driver) { d.clock = c } }

func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.log = l
		}
	}
}

// OnDay registers fn to run after each step that changed the day.
func OnDay(fn func(day int)) Option {
	return func(d *Driver) { d.onDay = append(d.onDay, fn) }
}

func New(target Target, scheduler Scheduler, opts ...Option) *Driver {
	d := &Driver{
		target:    target,
		clock:     SystemClock{},
		scheduler: scheduler,
		period:    DefaultPeriod,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) State() State          { return d.state }
func (d *Driver) Running() bool         { return d.state == Running }
func (d *Driver) Period() time.Duration { return d.period }

// Start records the start time and day and requests the first frame. Calling
// Start while running does nothing.
func (d *Driver) Start() {
	if d.state == Running {
		return
	}
	d.state = Running
	d.start = d.clock.Now()
	d.startDay = d.target.CurrentDay()
	d.gen++
	d.log.Debug("animation started", "day", d.startDay, "period", d.period)
	d.request()
}

// Stop cancels the pending frame. A frame already handed out before Stop
// never advances the day.
func (d *Driver) Stop() {
	if d.state == Stopped {
		return
	}
	d.state = Stopped
	d.gen++
	if d.frame != 0 {
		d.scheduler.CancelFrame(d.frame)
		d.frame = 0
	}
	d.log.Debug("animation stopped", "day", d.target.CurrentDay())
}

// Toggle flips between Running and Stopped.
func (d *Driver) Toggle() {
	if d.state == Running {
		d.Stop()
	} else {
		d.Start()
	}
}

func (d *Driver) request() {
	gen := d.gen
	d.frame = d.scheduler.RequestFrame(func(now time.Time) {
		if gen != d.gen || d.state != Running {
			return
		}
		d.frame = 0
		d.step(now)
		if gen == d.gen && d.state == Running {
			d.request()
		}
	})
}

// DayAt returns the day the animation shows at now.
func (d *Driver) DayAt(now time.Time) int {
	return dayAt(now.Sub(d.start), d.period, d.startDay, d.target.DayCount())
}

func (d *Driver) step(now time.Time) {
	day := d.DayAt(now)
	if day == d.target.CurrentDay() {
		return
	}
	applied := d.target.SetCurrentDay(day)
	for _, fn := range d.onDay {
		fn(applied)
	}
}

func dayAt(elapsed, period time.Duration, startDay, n int) int {
	if n <= 0 {
		return 0
	}
	e := elapsed % period
	if e < 0 {
		e += period
	}
	progress := float64(e) / float64(period)
	day := math.Mod(float64(startDay)+progress*float64(n), float64(n))
	return int(math.Floor(day))
}
