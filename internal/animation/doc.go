// Package animation advances a scene's current day in real time.
//
// A Driver is either Stopped or Running. While running it asks its Scheduler
// for a frame, maps the elapsed time onto a day and reschedules. The clock and
// scheduler are injected so tests can step time by hand.
package animation
