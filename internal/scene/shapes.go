package scene

import "gonum.org/v1/gonum/spatial/r3"

// Layer selects the transform group a shape belongs to. Shapes on LayerTilted
// follow the tilt transform set with Renderer.SetTilt.
type Layer int

const (
	LayerOrbital Layer = iota
	LayerTilted
)

func (l Layer) String() string {
	if l == LayerTilted {
		return "tilted"
	}
	return "orbital"
}

// Color is a 24-bit RGB value.
type Color uint32

const (
	ColorOrbit       Color = 0x000000
	ColorEquator     Color = 0x666666
	ColorEquatorFill Color = 0xffffff
	ColorOrbitLine   Color = 0xcccccc
	ColorTiltLine    Color = 0xaaaaaa
	ColorPlanet      Color = 0x4d9fff
	ColorSun         Color = 0xffcc33
	ColorSolarNoon   Color = 0xff8800
	ColorClockNoon   Color = 0x0088ff
	ColorArc         Color = 0xff0000
)

// Shape describes geometry handed to a Renderer.
type Shape interface {
	ShapeLayer() Layer
}

// Polyline is an open line strip.
type Polyline struct {
	Layer   Layer
	Points  []r3.Vec
	Color   Color
	Opacity float64
}

// Marker is a sphere.
type Marker struct {
	Layer    Layer
	Position r3.Vec
	Radius   float64
	Color    Color
}

// Tube is a thick curve through Points.
type Tube struct {
	Points []r3.Vec
	Radius float64
	Color  Color
}

// Group bundles shapes that are created and disposed together.
type Group struct {
	Shapes []Shape
}

func (p Polyline) ShapeLayer() Layer { return p.Layer }
func (m Marker) ShapeLayer() Layer   { return m.Layer }
func (Tube) ShapeLayer() Layer       { return LayerOrbital }
func (Group) ShapeLayer() Layer      { return LayerOrbital }

// Handle identifies a shape created by a Renderer. The zero Handle is never
// returned by Create.
type Handle uint64

// Renderer is the rendering capability the controller drives.
type Renderer interface {
	// SetTilt rotates LayerTilted about the scene Z axis by obliquityDeg.
	SetTilt(obliquityDeg float64)
	Create(s Shape) Handle
	// Dispose releases every resource held for h. Disposing an unknown
	// handle is a no-op.
	Dispose(h Handle)
	ResetCamera()
}
