package scene

import (
	"io"
	"log/slog"

	"github.com/san-kum/obliquity/internal/discrepancy"
)

const (
	DefaultObliquity = 23.4
	DefaultDayCount  = 16

	// DefaultLineThreshold is the day count above which reference lines are
	// thinned.
	DefaultLineThreshold = 100
	// DefaultLineTarget is the approximate number of lines kept per set once
	// thinning applies.
	DefaultLineTarget = 32
)

// Option configures a Controller.
type Option func(*Controller)

func WithObliquity(deg float64) Option { return func(c *Controller) { c.obliquity = deg } }
func WithDayCount(n int) Option        { return func(c *Controller) { c.numDays = n } }
func WithCurrentDay(day int) Option    { return func(c *Controller) { c.day = day } }

// WithLineThinning overrides the reference line density policy.
func WithLineThinning(threshold, target int) Option {
	return func(c *Controller) {
		c.lineThreshold = threshold
		if target > 0 {
			c.lineTarget = target
		}
	}
}

// WithSeriesCache shares a series cache with the controller.
func WithSeriesCache(cache *discrepancy.Cache) Option {
	return func(c *Controller) { c.cache = cache }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// OnReadout registers fn to receive a Snapshot after every effective change.
func OnReadout(fn func(Snapshot)) Option {
	return func(c *Controller) { c.observers = append(c.observers, fn) }
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
