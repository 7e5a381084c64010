// Package geom holds the few helpers the obliquity model needs on top of
// gonum's r3 vectors.
//
//   - [Radians], [Degrees]: angle unit conversion
//   - [About]: a right-handed rotation about an axis, in degrees
//   - [Angle]: the unsigned angle between two vectors
package geom
