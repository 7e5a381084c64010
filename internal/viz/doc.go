// Package viz is the terminal front end of the obliquity lab.
//
// [Renderer] implements the scene's rendering capability on a braille
// [Canvas] with a rotatable [Camera]. [App] is the Bubble Tea program that
// binds keys to the scene controller and the animation driver and shows the
// readout and discrepancy chart beside the scene. [Recorder] turns canvas
// frames into an animated GIF.
//
// # Key Bindings
//
//	Tab        - Select parameter
//	Up/Down    - Adjust selected parameter
//	Left/Right - Previous/next day
//	Enter      - Type a value
//	Space      - Start/stop animation
//	C          - Reset camera
//	X/Y/Z      - Rotate camera
//	T          - Cycle color themes
//	?          - Show help overlay
package viz
