package viz

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"io"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/obliquity/internal/scene"
)

var ErrNoFrames = errors.New("viz: no frames captured")

const background = 0x0a0a0a

// Recorder captures canvas frames for an animated GIF. Inks are mapped to
// palette entries as they first appear; index 0 is the background.
type Recorder struct {
	scale   int
	delay   int
	paint   func(ink uint32) color.Color
	palette color.Palette
	index   map[uint32]uint8
	frames  []*image.Paletted
}

// NewRecorder returns a recorder drawing each braille dot as a scale×scale
// square. delay is the per-frame delay in hundredths of a second.
func NewRecorder(scale, delay int, paint func(ink uint32) color.Color) *Recorder {
	if scale < 1 {
		scale = 1
	}
	if paint == nil {
		paint = func(uint32) color.Color { return color.White }
	}
	return &Recorder{
		scale:   scale,
		delay:   delay,
		paint:   paint,
		palette: color.Palette{hexColor(background)},
		index:   map[uint32]uint8{},
	}
}

func (r *Recorder) Len() int { return len(r.frames) }

// Capture appends the current contents of c as a frame.
func (r *Recorder) Capture(c *Canvas) {
	w, h := c.PixelSize()
	img := image.NewPaletted(image.Rect(0, 0, w*r.scale, h*r.scale), nil)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !c.Lit(x, y) {
				continue
			}
			idx := r.inkIndex(c.Ink[y/4][x/2])
			for py := 0; py < r.scale; py++ {
				for px := 0; px < r.scale; px++ {
					img.SetColorIndex(x*r.scale+px, y*r.scale+py, idx)
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

func (r *Recorder) inkIndex(ink uint32) uint8 {
	if idx, ok := r.index[ink]; ok {
		return idx
	}
	if len(r.palette) == 256 {
		return uint8(len(r.palette) - 1)
	}
	r.palette = append(r.palette, r.paint(ink))
	idx := uint8(len(r.palette) - 1)
	r.index[ink] = idx
	return idx
}

// Encode writes all frames as a looping GIF.
func (r *Recorder) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		frame.Palette = r.palette
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.delay)
	}
	return gif.EncodeAll(w, &anim)
}

// InkColor resolves a canvas ink through the theme palette.
func (t Theme) InkColor(ink uint32) color.Color {
	c, err := colorful.Hex(string(t.SceneColor(scene.Color(ink))))
	if err != nil {
		return color.White
	}
	return c
}

func hexColor(rgb uint32) color.Color {
	return color.RGBA{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb), A: 0xff}
}
