package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type stubClock struct{ now time.Time }

func (c *stubClock) Now() time.Time { return c.now }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func newTestApp(t *testing.T, clock *stubClock) *App {
	t.Helper()
	s := Settings{Obliquity: 23.4, DayCount: 16, Theme: "classic"}
	if clock != nil {
		s.Clock = clock
	}
	a, err := NewApp(s)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func press(a *App, keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = a.Update(k)
	}
	return cmd
}

func TestAppAdjustsParameters(t *testing.T) {
	a := newTestApp(t, nil)
	ctrl := a.Controller()

	press(a, keyUp)
	if ctrl.Obliquity() != 24.4 {
		t.Errorf("obliquity = %v, want 24.4", ctrl.Obliquity())
	}
	press(a, runes("J"))
	if ctrl.Obliquity() != 24.3 {
		t.Errorf("obliquity = %v, want 24.3", ctrl.Obliquity())
	}

	press(a, keyTab, keyUp)
	if ctrl.DayCount() != 17 {
		t.Errorf("days = %d, want 17", ctrl.DayCount())
	}

	press(a, keyTab, keyUp, keyUp)
	if ctrl.CurrentDay() != 2 {
		t.Errorf("day = %d, want 2", ctrl.CurrentDay())
	}
}

func TestAppClampsObliquity(t *testing.T) {
	a := newTestApp(t, nil)
	press(a, keyEnter, runes("1"), runes("2"), runes("0"), keyEnter)
	if got := a.Controller().Obliquity(); got != MaxObliquity {
		t.Errorf("obliquity = %v, want %v", got, MaxObliquity)
	}
	press(a, keyEnter, runes("-"), runes("5"), keyEnter)
	if got := a.Controller().Obliquity(); got != 0 {
		t.Errorf("obliquity = %v, want 0", got)
	}
}

func TestAppEditsValues(t *testing.T) {
	a := newTestApp(t, nil)
	press(a, keyEnter, runes("4"), runes("5"), keyEnter)
	if got := a.Controller().Obliquity(); got != 45 {
		t.Errorf("obliquity = %v, want 45", got)
	}

	press(a, keyTab, keyEnter, runes("3"), runes("6"), runes("5"), keyEnter)
	if got := a.Controller().DayCount(); got != 365 {
		t.Errorf("days = %d, want 365", got)
	}

	press(a, keyEnter, runes("9"), keyEsc)
	if got := a.Controller().DayCount(); got != 365 {
		t.Errorf("escape should discard the edit, days = %d", got)
	}
}

func TestAppRejectsInvalidDayCount(t *testing.T) {
	a := newTestApp(t, nil)
	press(a, keyTab, keyEnter, runes("1"), keyEnter)
	if a.Controller().DayCount() != 16 {
		t.Errorf("days = %d, want 16", a.Controller().DayCount())
	}
	if a.err == nil {
		t.Fatal("expected an error to be shown")
	}
	if !strings.Contains(a.View(), "day count") {
		t.Error("view should show the rejection")
	}
}

func TestAppDayKeysWrap(t *testing.T) {
	a := newTestApp(t, nil)
	press(a, keyLeft)
	if got := a.Controller().CurrentDay(); got != 15 {
		t.Errorf("day = %d, want 15", got)
	}
	press(a, keyRight)
	if got := a.Controller().CurrentDay(); got != 0 {
		t.Errorf("day = %d, want 0", got)
	}
}

func TestAppAnimation(t *testing.T) {
	t0 := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)
	clock := &stubClock{now: t0}
	a := newTestApp(t, clock)

	if cmd := press(a, keySpace); cmd == nil {
		t.Fatal("starting the animation should schedule a frame")
	}
	if !a.Driver().Running() {
		t.Fatal("driver should be running")
	}
	if cmd := press(a, keySpace, keySpace); cmd != nil {
		t.Error("restarting while a tick is in flight must not start a second tick chain")
	}

	_, cmd := a.Update(frameMsg(t0.Add(time.Second)))
	if got := a.Controller().CurrentDay(); got != 4 {
		t.Errorf("day = %d, want 4", got)
	}
	if cmd == nil {
		t.Error("a running animation should request the next frame")
	}

	press(a, keySpace)
	_, cmd = a.Update(frameMsg(t0.Add(2 * time.Second)))
	if cmd != nil {
		t.Error("a stopped animation should not tick")
	}
	if got := a.Controller().CurrentDay(); got != 4 {
		t.Errorf("day moved to %d after stop", got)
	}
}

func TestAppManualDayWhileAnimating(t *testing.T) {
	t0 := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)
	clock := &stubClock{now: t0}
	a := newTestApp(t, clock)
	press(a, keySpace)

	clock.now = t0.Add(500 * time.Millisecond)
	press(a, keyTab, keyTab, keyEnter, runes("1"), runes("0"), keyEnter)
	if !a.Driver().Running() {
		t.Fatal("animation should keep running")
	}
	a.Update(frameMsg(clock.now.Add(250 * time.Millisecond)))
	if got := a.Controller().CurrentDay(); got != 11 {
		t.Errorf("day = %d, want 11", got)
	}
}

func TestAppCameraAndTheme(t *testing.T) {
	a := newTestApp(t, nil)
	press(a, runes("x"), runes("y"), runes("+"))
	if a.renderer.Camera.RotX == DefaultPitch {
		t.Error("x should rotate the camera")
	}
	press(a, runes("c"))
	if a.renderer.Camera.RotX != DefaultPitch || a.renderer.Camera.RotY != 0 || a.renderer.Camera.Zoom != DefaultZoom {
		t.Error("c should reset the camera")
	}

	press(a, runes("t"))
	if a.theme.Name != "ocean" {
		t.Errorf("theme = %s, want ocean", a.theme.Name)
	}
}

func TestAppView(t *testing.T) {
	a := newTestApp(t, nil)
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	press(a, keyRight, keyRight, keyRight, keyRight)
	v := a.View()
	for _, want := range []string{"Obliquity", "minutes", "Day 4:", "PAUSED"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
	press(a, runes("?"))
	if !strings.Contains(a.View(), "KEYBOARD SHORTCUTS") {
		t.Error("help overlay missing")
	}
}

func TestAppQuit(t *testing.T) {
	a := newTestApp(t, nil)
	press(a, keySpace)
	cmd := press(a, runes("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
	if a.Driver().Running() {
		t.Error("quitting should stop the animation")
	}
}
