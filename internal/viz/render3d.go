package viz

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/obliquity/internal/geom"
	"github.com/san-kum/obliquity/internal/scene"
)

// Default camera pose: looking down onto the orbital plane from above and in
// front.
const (
	DefaultPitch = 0.54
	DefaultZoom  = 0.75
	viewDistance = 12.0
)

// Camera manages 3D projection to a 2D plane.
type Camera struct {
	RotX, RotY, RotZ float64
	Zoom             float64
	Distance         float64
}

func NewCamera() *Camera {
	c := &Camera{}
	c.Reset()
	return c
}

func (c *Camera) Reset() {
	*c = Camera{RotX: DefaultPitch, Zoom: DefaultZoom, Distance: viewDistance}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p r3.Vec) r3.Vec {
	p = r3.NewRotation(c.RotX, geom.XAxis).Rotate(p)
	p = r3.NewRotation(c.RotY, geom.YAxis).Rotate(p)
	return r3.NewRotation(c.RotZ, geom.ZAxis).Rotate(p)
}

// Project converts world coordinates to sub-pixel screen coordinates.
// Returns x, y, depth, and visibility.
func (c *Camera) Project(p r3.Vec, sw, sh int) (int, int, float64, bool) {
	rot := r3.Scale(c.Zoom, c.RotatePoint(p))
	dist := c.Distance
	if rot.Z >= dist-0.1 {
		return 0, 0, 0, false
	}
	scale := dist / (dist - rot.Z)
	pScale := float64(min(sw, sh)) / 3.0
	sx := int(math.Round(rot.X*scale*pScale)) + sw/2
	sy := int(math.Round(-rot.Y*scale*pScale)) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

// Renderer keeps the shapes created by a scene controller and draws them as a
// braille wireframe. It implements scene.Renderer.
type Renderer struct {
	Camera *Camera

	next    scene.Handle
	shapes  map[scene.Handle]scene.Shape
	tilt    r3.Rotation
	tiltDeg float64
}

func NewRenderer() *Renderer {
	return &Renderer{
		Camera: NewCamera(),
		shapes: make(map[scene.Handle]scene.Shape),
		tilt:   geom.About(geom.ZAxis, 0),
	}
}

// SetTilt rotates the tilted layer about the scene Z axis.
func (r *Renderer) SetTilt(deg float64) {
	r.tiltDeg = deg
	r.tilt = geom.About(geom.ZAxis, deg)
}

func (r *Renderer) Tilt() float64 { return r.tiltDeg }

func (r *Renderer) Create(s scene.Shape) scene.Handle {
	r.next++
	r.shapes[r.next] = s
	return r.next
}

func (r *Renderer) Dispose(h scene.Handle) { delete(r.shapes, h) }

func (r *Renderer) ResetCamera() { r.Camera.Reset() }

// Len reports the number of live shapes.
func (r *Renderer) Len() int { return len(r.shapes) }

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
	color          scene.Color
	dotted         bool
}

// Draw clears c and paints every live shape with a painter's algorithm, far
// edges first.
func (r *Renderer) Draw(c *Canvas) {
	if c == nil {
		return
	}
	c.Clear()
	w, h := c.PixelSize()

	handles := make([]scene.Handle, 0, len(r.shapes))
	for hd := range r.shapes {
		handles = append(handles, hd)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	var edges []projectedEdge
	for _, hd := range handles {
		edges = r.collect(edges, r.shapes[hd], w, h)
	}
	sort.SliceStable(edges, func(i, j int) bool { return edges[i].depth < edges[j].depth })
	for _, e := range edges {
		c.SetInk(uint32(e.color))
		switch {
		case e.x1 == e.x2 && e.y1 == e.y2:
			c.Set(e.x1, e.y1)
		case e.dotted:
			c.DrawDotted(e.x1, e.y1, e.x2, e.y2)
		default:
			c.DrawLine(e.x1, e.y1, e.x2, e.y2)
		}
	}
}

func (r *Renderer) collect(out []projectedEdge, s scene.Shape, w, h int) []projectedEdge {
	switch v := s.(type) {
	case scene.Polyline:
		pts := r.place(v.Layer, v.Points)
		return r.segments(out, pts, v.Color, v.Opacity < 0.5, w, h)
	case scene.Tube:
		return r.segments(out, v.Points, v.Color, false, w, h)
	case scene.Marker:
		center := v.Position
		if v.Layer == scene.LayerTilted {
			center = r.tilt.Rotate(center)
		}
		ring := make([]r3.Vec, 13)
		for i := range ring {
			a := float64(i) / 12 * 2 * math.Pi
			ring[i] = r3.Add(center, r3.Scale(v.Radius, r3.Vec{X: math.Cos(a), Z: math.Sin(a)}))
		}
		out = r.segments(out, ring, v.Color, false, w, h)
		return r.segments(out, []r3.Vec{center, center}, v.Color, false, w, h)
	case scene.Group:
		for _, child := range v.Shapes {
			out = r.collect(out, child, w, h)
		}
	}
	return out
}

func (r *Renderer) place(layer scene.Layer, pts []r3.Vec) []r3.Vec {
	if layer != scene.LayerTilted {
		return pts
	}
	out := make([]r3.Vec, len(pts))
	for i, p := range pts {
		out[i] = r.tilt.Rotate(p)
	}
	return out
}

func (r *Renderer) segments(out []projectedEdge, pts []r3.Vec, col scene.Color, dotted bool, w, h int) []projectedEdge {
	for i := 0; i+1 < len(pts); i++ {
		x1, y1, d1, v1 := r.Camera.Project(pts[i], w, h)
		x2, y2, d2, v2 := r.Camera.Project(pts[i+1], w, h)
		if v1 || v2 {
			out = append(out, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2, col, dotted})
		}
	}
	return out
}
