package main

import (
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/boxsim/ecs"
	"github.com/milk9111/boxsim/prefabs"
)

func newTestHost(t *testing.T) (*host, tcell.SimulationScreen, time.Time) {
	t.Helper()
	prefabs.Dir = t.TempDir()
	t.Cleanup(func() { prefabs.Dir = "prefabs" })

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	start := time.Unix(1000, 0)
	h, err := newHost(screen, prefabs.DefaultScene, 0, start)
	if err != nil {
		t.Fatalf("new host: %v", err)
	}
	return h, screen, start
}

func TestKeyName(t *testing.T) {
	cases := []struct {
		name string
		ev   *tcell.EventKey
		want string
		ok   bool
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'D', tcell.ModNone), "d", true},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), "space", true},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), "arrowleft", true},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := keyName(c.ev)
			if got != c.want || ok != c.ok {
				t.Fatalf("expected (%q, %v), got (%q, %v)", c.want, c.ok, got, ok)
			}
		})
	}
}

func TestAverageColor(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	if _, ok := averageColor(img); ok {
		t.Fatalf("expected transparent image to have no colour")
	}
	for y := range 8 {
		for x := range 8 {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 0, A: 255})
		}
	}
	got, ok := averageColor(img)
	if !ok || got != (color.RGBA{R: 200, G: 100, B: 0, A: 255}) {
		t.Fatalf("expected solid colour, got %v (%v)", got, ok)
	}
}

func TestHostHeldKeysExpire(t *testing.T) {
	h, _, start := newTestHost(t)

	h.handle(tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), start)
	h.frame(start.Add(10 * time.Millisecond))
	if !h.input.KeyDown("d") {
		t.Fatalf("expected d held right after the key event")
	}

	h.frame(start.Add(keyHoldWindow + 50*time.Millisecond))
	if h.input.KeyDown("d") {
		t.Fatalf("expected d released after the hold window")
	}
}

func TestHostDrawsFollowedPlayer(t *testing.T) {
	h, screen, start := newTestHost(t)

	for i := 1; i <= 60; i++ {
		h.frame(start.Add(time.Duration(i) * frameInterval))
	}
	if h.sched.Ticks() == 0 {
		t.Fatalf("expected ticks to run")
	}

	cols, rows := screen.Size()
	_, _, style, _ := screen.GetContent(cols/2, rows/2)
	_, bg, _ := style.Decompose()
	if bg == h.background {
		t.Fatalf("expected the followed player at the screen centre")
	}

	var status strings.Builder
	for x := range cols {
		r, _, _, _ := screen.GetContent(x, 0)
		status.WriteRune(r)
	}
	if !strings.Contains(status.String(), "ticks:") {
		t.Fatalf("expected status line, got %q", status.String())
	}
}

func TestHostPauseAndQuit(t *testing.T) {
	h, _, start := newTestHost(t)

	h.handle(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone), start)
	if h.sched.State() != ecs.StatePaused {
		t.Fatalf("expected paused, got %s", h.sched.State())
	}
	h.frame(start.Add(time.Second))
	if h.sched.Ticks() != 0 {
		t.Fatalf("expected no ticks while paused, got %d", h.sched.Ticks())
	}

	h.handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), start)
	if !h.quit {
		t.Fatalf("expected escape to quit")
	}
}
