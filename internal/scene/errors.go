package scene

import "errors"

// ErrInvalidObliquity indicates a NaN or infinite tilt.
var ErrInvalidObliquity = errors.New("scene: obliquity must be a finite number of degrees")
