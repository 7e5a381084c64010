package scene_test

import (
	"fmt"

	"github.com/san-kum/obliquity/internal/discrepancy"
	"github.com/san-kum/obliquity/internal/scene"
)

// countingRenderer records every call so specs can assert on rebuild counts
// and on dispose-before-create ordering.
type countingRenderer struct {
	next    scene.Handle
	live    map[scene.Handle]scene.Shape
	events  []string
	tilts   []float64
	creates map[string]int
	disp    int
	resets  int
}

func newCountingRenderer() *countingRenderer {
	return &countingRenderer{live: map[scene.Handle]scene.Shape{}, creates: map[string]int{}}
}

func kind(s scene.Shape) string {
	switch v := s.(type) {
	case scene.Polyline:
		return "line:" + v.Layer.String()
	case scene.Marker:
		if v.Color == scene.ColorSun {
			return "sun"
		}
		return "marker"
	case scene.Group:
		return "arc"
	case scene.Tube:
		return "tube"
	}
	return "unknown"
}

func (r *countingRenderer) SetTilt(deg float64) {
	r.tilts = append(r.tilts, deg)
	r.events = append(r.events, fmt.Sprintf("tilt %v", deg))
}

func (r *countingRenderer) Create(s scene.Shape) scene.Handle {
	r.next++
	r.live[r.next] = s
	k := kind(s)
	r.creates[k]++
	r.events = append(r.events, "create "+k)
	return r.next
}

func (r *countingRenderer) Dispose(h scene.Handle) {
	s, ok := r.live[h]
	if !ok {
		return
	}
	delete(r.live, h)
	r.disp++
	r.events = append(r.events, "dispose "+kind(s))
}

func (r *countingRenderer) ResetCamera() { r.resets++ }

func (r *countingRenderer) liveOf(k string) int {
	n := 0
	for _, s := range r.live {
		if kind(s) == k {
			n++
		}
	}
	return n
}

func (r *countingRenderer) reset() {
	r.events = nil
	r.tilts = nil
	r.creates = map[string]int{}
	r.disp = 0
}

type countingPublisher struct {
	calls int
	last  []discrepancy.Sample
}

func (p *countingPublisher) Publish(s []discrepancy.Sample) {
	p.calls++
	p.last = s
}
