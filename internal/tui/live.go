// Package tui renders the animated lab as plain text frames, for terminals
// where the interactive program is not wanted.
package tui

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/obliquity/internal/animation"
	"github.com/san-kum/obliquity/internal/discrepancy"
	"github.com/san-kum/obliquity/internal/scene"
)

const (
	width       = 70
	height      = 21
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer draws a top-down view of the orbit with the solar-noon and
// clock-noon directions for every snapshot it receives.
type LiveRenderer struct {
	out       io.Writer
	frameRate int
	lastFrame time.Time
	now       func() time.Time
	canvas    [][]rune
	clear     bool

	pending *scene.Snapshot
}

func NewLiveRenderer(out io.Writer, frameRate int) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	if frameRate <= 0 {
		frameRate = 30
	}
	return &LiveRenderer{out: out, frameRate: frameRate, now: time.Now, canvas: canvas, clear: true}
}

// SetClearScreen controls whether each frame starts by clearing the terminal.
func (r *LiveRenderer) SetClearScreen(on bool) { r.clear = on }

// OnSnapshot draws s, or holds it back when the previous frame was drawn too
// recently. A held snapshot is replaced by newer ones and drawn by Flush.
func (r *LiveRenderer) OnSnapshot(s scene.Snapshot) {
	now := r.now()
	if now.Sub(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		r.pending = &s
		return
	}
	r.draw(now, s)
}

// Flush draws the held snapshot, if any.
func (r *LiveRenderer) Flush() {
	if r.pending != nil {
		r.draw(r.now(), *r.pending)
	}
}

func (r *LiveRenderer) draw(now time.Time, s scene.Snapshot) {
	r.pending = nil
	r.lastFrame = now
	fmt.Fprint(r.out, r.Frame(s))
}

// Frame renders one snapshot.
func (r *LiveRenderer) Frame(s scene.Snapshot) string {
	r.reset()

	cx, cy := width/2, height/2
	rx, ry := float64(width/2-4), float64(height/2-1)
	plot := func(x, z float64) (int, int) {
		return cx + int(math.Round(x*rx)), cy - int(math.Round(z*ry))
	}

	for i := 0; i < 96; i++ {
		a := float64(i) / 96 * 2 * math.Pi
		px, py := plot(math.Cos(a), math.Sin(a))
		r.set(px, py, '.')
	}

	if s.DayCount > 0 {
		sun := discrepancy.SunPosition(s.CurrentDay, s.DayCount)
		flat := discrepancy.ProjectToReferencePlane(sun, s.Obliquity)
		sx, sy := plot(sun.X, sun.Y)
		r.line(cx, cy, sx, sy, '*')
		r.set(sx, sy, 'O')
		if l := r3.Norm(flat); l > 0 {
			fx, fy := plot(flat.X/l*0.6, flat.Y/l*0.6)
			r.line(cx, cy, fx, fy, '#')
		}
	}
	r.set(cx, cy, '+')

	var b strings.Builder
	if r.clear {
		b.WriteString(clearScreen)
	}
	fmt.Fprintf(&b, "  day %d/%d  obliquity %.1f°\n", s.CurrentDay, s.DayCount, s.Obliquity)
	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(strings.TrimRight(string(row), " "))
		b.WriteString("\n")
	}
	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	fmt.Fprintf(&b, "  * solar noon  # clock noon  discrepancy %.2f° = %.2f minutes\n",
		s.Discrepancy.AngleDeg, s.Discrepancy.Minutes)
	if s.DayCount > 0 {
		filled := (s.CurrentDay + 1) * width / s.DayCount
		b.WriteString("  " + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "|\n")
	}
	return b.String()
}

func (r *LiveRenderer) reset() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

func (r *LiveRenderer) line(x1, y1, x2, y2 int, c rune) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		r.set(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }

// Stop draws any held snapshot and restores the cursor.
func (r *LiveRenderer) Stop() {
	r.Flush()
	fmt.Fprint(r.out, showCursor)
}

// Play fires q from a ticker at fps frames per second on the calling
// goroutine until ctx is done.
func Play(ctx context.Context, q *animation.FrameQueue, fps int) error {
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t := <-ticker.C:
			q.Fire(t)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
