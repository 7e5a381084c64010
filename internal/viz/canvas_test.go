package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(4, 2)
	w, h := c.PixelSize()
	if w != 8 || h != 8 {
		t.Fatalf("PixelSize = %dx%d, want 8x8", w, h)
	}

	c.Set(3, 5)
	if !c.Lit(3, 5) {
		t.Error("pixel should be lit")
	}
	if c.Grid[1][1] == blank {
		t.Error("cell should not be blank")
	}
	c.Unset(3, 5)
	if c.Lit(3, 5) || c.Grid[1][1] != blank {
		t.Error("pixel should be cleared")
	}

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {8, 0}, {0, 8}} {
		c.Set(p[0], p[1])
	}
	if strings.Trim(c.String(), "⠀\n") != "" {
		t.Error("out of range pixels must be ignored")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 19, 19)
	if !c.Lit(0, 0) || !c.Lit(19, 19) || !c.Lit(10, 10) {
		t.Error("diagonal should light both ends and the middle")
	}

	d := NewCanvas(10, 5)
	d.DrawDotted(0, 0, 19, 0)
	lit := 0
	for x := 0; x < 20; x++ {
		if d.Lit(x, 0) {
			lit++
		}
	}
	if lit != 10 {
		t.Errorf("dotted line lit %d pixels, want 10", lit)
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, l := range lines {
		if len([]rune(l)) != 3 {
			t.Errorf("line %q has %d cells, want 3", l, len([]rune(l)))
		}
	}
}

func TestCanvasRenderGroupsInk(t *testing.T) {
	c := NewCanvas(4, 1)
	c.SetInk(7)
	c.Set(0, 0)
	c.Set(2, 0)
	c.SetInk(9)
	c.Set(6, 0)

	var runs []string
	c.Render(func(ink uint32, s string) string {
		runs = append(runs, s)
		return s
	})
	// cells: [7][7][0][9]
	if len(runs) != 3 {
		t.Fatalf("got %d runs, want 3: %q", len(runs), runs)
	}
	if len([]rune(runs[0])) != 2 {
		t.Errorf("first run should cover two cells, got %q", runs[0])
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(2, 2)
	c.SetInk(5)
	c.DrawLine(0, 0, 3, 7)
	c.Clear()
	for _, row := range c.Ink {
		for _, ink := range row {
			if ink != 0 {
				t.Fatal("ink should be reset")
			}
		}
	}
	if strings.Trim(c.String(), "⠀\n") != "" {
		t.Error("canvas should be blank")
	}
}
