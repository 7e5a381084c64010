// Package discrepancy computes the gap between solar noon and clock noon for
// a planet whose rotation axis is tilted against its orbital plane.
//
// The model is the two-circle abstraction: a point at orbital angle t on the
// ecliptic circle is rotated by the obliquity and flattened back onto the
// reference plane. The angle between the point and its flattened image is
// the discrepancy, reported in degrees and in minutes of time where one full
// circle is 24 hours.
//
//   - [Compute]: discrepancy for a single day
//   - [Series]: the full ordered per-day series
//   - [ProjectToReferencePlane]: the rotate-then-flatten step on its own
//   - [SunPosition]: the sun's position on the unit orbital circle
//
// Every function is pure and safe for concurrent use.
package discrepancy
