package discrepancy

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/obliquity/internal/geom"
)

const (
	// MinutesPerCircle is one full turn expressed as 24 hours of time.
	MinutesPerCircle = 24 * 60

	// MinDayCount is the smallest number of samples that still defines a period.
	MinDayCount = 2
)

// Result is the discrepancy for one day.
type Result struct {
	AngleDeg float64
	Minutes  float64
}

// Sample is one point of the per-year series.
type Sample struct {
	Day          int
	OrbitalAngle float64 // radians
	Minutes      float64
}

// OrbitalAngle maps a day to its angle on the orbit, t = day/numDays · 2π.
func OrbitalAngle(day, numDays int) float64 {
	return float64(day) / float64(numDays) * 2 * math.Pi
}

// tilt rotates the orbital frame into the equatorial frame. The tilt axis is Y.
func tilt(obliquityDeg float64) r3.Rotation {
	return geom.About(geom.YAxis, obliquityDeg)
}

// ProjectToReferencePlane rotates p by the obliquity and drops the component
// normal to the reference (X-Y) plane.
func ProjectToReferencePlane(p r3.Vec, obliquityDeg float64) r3.Vec {
	return project(p, tilt(obliquityDeg))
}

func project(p r3.Vec, rot r3.Rotation) r3.Vec {
	q := rot.Rotate(p)
	q.Z = 0
	return q
}

// Compute returns the discrepancy for day out of numDays at the given
// obliquity. Any integer day is accepted; the orbital angle is periodic in
// numDays. numDays must be positive; otherwise the zero Result is returned.
func Compute(obliquityDeg float64, day, numDays int) Result {
	if numDays <= 0 {
		return Result{}
	}
	return compute(tilt(obliquityDeg), OrbitalAngle(day, numDays))
}

func compute(rot r3.Rotation, t float64) Result {
	p1 := r3.Vec{X: math.Cos(t), Y: math.Sin(t)}
	p2 := project(p1, rot)
	rad := geom.Angle(p1, p2)
	return Result{
		AngleDeg: geom.Degrees(rad),
		Minutes:  rad / (2 * math.Pi) * MinutesPerCircle,
	}
}

// Series computes one Sample per day for day = 0..numDays-1. The tilt
// rotation is built once and shared across the whole series.
func Series(obliquityDeg float64, numDays int) []Sample {
	if numDays <= 0 {
		return nil
	}
	rot := tilt(obliquityDeg)
	out := make([]Sample, numDays)
	for n := 0; n < numDays; n++ {
		t := OrbitalAngle(n, numDays)
		out[n] = Sample{Day: n, OrbitalAngle: t, Minutes: compute(rot, t).Minutes}
	}
	return out
}

// SunPosition returns the sun's position on the unit orbital circle in the
// model frame.
func SunPosition(day, numDays int) r3.Vec {
	t := OrbitalAngle(day, numDays)
	return r3.Vec{X: math.Cos(t), Y: math.Sin(t)}
}

// Peak returns the sample with the largest discrepancy. Ties keep the earliest
// day. An empty series yields the zero Sample.
func Peak(samples []Sample) Sample {
	var best Sample
	for i, s := range samples {
		if i == 0 || s.Minutes > best.Minutes {
			best = s
		}
	}
	return best
}

// MinutesToDegrees converts minutes of time to degrees of arc.
func MinutesToDegrees(minutes float64) float64 {
	return minutes / MinutesPerCircle * 360
}
