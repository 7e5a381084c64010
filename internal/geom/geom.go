package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Unit axes of the model and scene frames.
var (
	XAxis = r3.Vec{X: 1}
	YAxis = r3.Vec{Y: 1}
	ZAxis = r3.Vec{Z: 1}
)

func Radians(deg float64) float64 { return deg * math.Pi / 180 }
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// About returns the right-handed rotation by deg degrees about axis.
func About(axis r3.Vec, deg float64) r3.Rotation {
	return r3.NewRotation(Radians(deg), axis)
}

// Angle returns the unsigned angle between p and q in [0, π]. atan2 of the
// cross magnitude and the dot product stays accurate near 0 and π where acos
// loses precision. A zero vector yields 0.
func Angle(p, q r3.Vec) float64 {
	return math.Atan2(r3.Norm(r3.Cross(p, q)), r3.Dot(p, q))
}

// ApproxEqual reports whether every component differs by at most tol.
func ApproxEqual(p, q r3.Vec, tol float64) bool {
	return math.Abs(p.X-q.X) <= tol && math.Abs(p.Y-q.Y) <= tol && math.Abs(p.Z-q.Z) <= tol
}
