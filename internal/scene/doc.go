// Package scene owns the three model parameters and the renderable objects
// derived from them.
//
// A [Controller] holds obliquity, day count and current day. Each setter
// recomputes only what its parameter invalidates, in a fixed order:
//
//	tilt transform → reference lines → day geometry → chart → readout
//
// Derived objects are created through a [Renderer] and are disposed before
// their replacements are created, so the renderer never holds two versions of
// the same object at once.
//
// # Thread Safety
//
// Controller is NOT safe for concurrent use. Drive it from one goroutine,
// typically the UI event loop.
package scene
