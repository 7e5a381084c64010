package config

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/nutation"
)

// EarthObliquity returns the mean obliquity of the ecliptic at t, in degrees.
func EarthObliquity(t time.Time) float64 {
	return nutation.MeanObliquity(julian.TimeToJD(t)).Deg()
}
