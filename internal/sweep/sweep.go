// Package sweep runs the discrepancy model over a range of obliquities in
// parallel.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/obliquity/internal/discrepancy"
)

var ErrInvalidRange = errors.New("sweep: invalid obliquity range")

// Range describes obliquities From..To inclusive in Steps evenly spaced
// values.
type Range struct {
	From, To float64
	Steps    int
}

// Values expands the range. A single step yields From.
func (r Range) Values() ([]float64, error) {
	if r.Steps < 1 || math.IsNaN(r.From) || math.IsNaN(r.To) {
		return nil, fmt.Errorf("%w: %+v", ErrInvalidRange, r)
	}
	out := make([]float64, r.Steps)
	if r.Steps == 1 {
		out[0] = r.From
		return out, nil
	}
	step := (r.To - r.From) / float64(r.Steps-1)
	for i := range out {
		out[i] = r.From + float64(i)*step
	}
	return out, nil
}

// Point summarizes one obliquity's year.
type Point struct {
	Obliquity   float64
	PeakDay     int
	PeakMinutes float64
	MeanMinutes float64
}

// Sweep evaluates every obliquity of a Range.
type Sweep struct {
	NumDays int
	Workers int
	Cache   *discrepancy.Cache
}

// Run returns one Point per obliquity in range order. It stops early when ctx
// is cancelled.
func (s *Sweep) Run(ctx context.Context, r Range) ([]Point, error) {
	if err := discrepancy.ValidateDayCount(s.NumDays); err != nil {
		return nil, fmt.Errorf("sweep: %w", err)
	}
	values, err := r.Values()
	if err != nil {
		return nil, err
	}

	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	points := make([]Point, len(values))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, obl := range values {
		i, obl := i, obl
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			points[i] = evaluate(obl, s.Cache.Series(obl, s.NumDays))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

func evaluate(obl float64, samples []discrepancy.Sample) Point {
	peak := discrepancy.Peak(samples)
	sum := 0.0
	for _, smp := range samples {
		sum += smp.Minutes
	}
	return Point{
		Obliquity:   obl,
		PeakDay:     peak.Day,
		PeakMinutes: peak.Minutes,
		MeanMinutes: sum / float64(len(samples)),
	}
}

// PeakMinutes extracts the peak column, for plotting.
func PeakMinutes(points []Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.PeakMinutes
	}
	return out
}
