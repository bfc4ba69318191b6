package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/boxsim/ecs"
	"github.com/milk9111/boxsim/ecs/component"
	"github.com/milk9111/boxsim/ecs/render"
	"github.com/milk9111/boxsim/ecs/system"
	"github.com/milk9111/boxsim/obj"
	"github.com/milk9111/boxsim/prefabs"
	"github.com/milk9111/boxsim/scene"
)

const (
	// One terminal cell covers this many world pixels. Cells are roughly
	// twice as tall as they are wide.
	cellWidth  = 16.0
	cellHeight = 32.0

	// Terminals report key presses and repeats but never releases, so a key
	// stays down for this long after its last event.
	keyHoldWindow = 150 * time.Millisecond
)

type host struct {
	screen tcell.Screen

	spec   *prefabs.SceneSpec
	world  *ecs.World
	sched  *ecs.Scheduler
	camera *obj.Camera
	input  *obj.Input
	script *system.ScriptSystem

	background tcell.Color
	held       map[string]time.Time
	quit       bool
}

func newHost(screen tcell.Screen, sceneName string, tickRate int, now time.Time) (*host, error) {
	cols, rows := screen.Size()
	sc, err := scene.Load(scene.Options{
		Name:        sceneName,
		TickRate:    tickRate,
		MaxFrameLag: 250 * time.Millisecond,
		Images: render.ImageLoaderFunc(func(path string) (image.Image, error) {
			return render.LoadImage(path)
		}),
		ViewWidth:  int(float64(cols) * cellWidth),
		ViewHeight: int(float64(rows) * cellHeight),
		Now:        now,
	})
	if err != nil {
		return nil, err
	}
	return &host{
		screen:     screen,
		spec:       sc.Spec,
		world:      sc.World,
		sched:      sc.Scheduler,
		camera:     sc.Camera,
		input:      sc.Input,
		script:     sc.Script,
		background: tcellColor(sc.Background),
		held:       map[string]time.Time{},
	}, nil
}

func (h *host) handle(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			h.quit = true
			return
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == 'p' {
			h.sched.SetPaused(!h.sched.Paused())
			clear(h.held)
			return
		}
		if name, ok := keyName(ev); ok {
			h.held[name] = now
		}
	case *tcell.EventResize:
		cols, rows := h.screen.Size()
		h.camera.SetScreenSize(int(float64(cols)*cellWidth), int(float64(rows)*cellHeight))
		h.screen.Sync()
	}
}

// frame feeds held keys to the input, runs due ticks and redraws.
func (h *host) frame(now time.Time) {
	h.input.BeginFrame()
	h.input.ReleaseAll()
	for name, at := range h.held {
		if now.Sub(at) > keyHoldWindow {
			delete(h.held, name)
			continue
		}
		h.input.SetKey(name, true)
	}

	h.sched.Tick(now)

	h.screen.Fill(' ', tcell.StyleDefault.Background(h.background))
	h.sched.Render(h.draw)
	h.drawStatus()
	h.screen.Show()
}

func (h *host) draw(lagOffset float64) {
	cols, rows := h.screen.Size()
	for _, e := range h.world.Entities() {
		r, ok := ecs.Get[*component.Renderer](e, ecs.KindRenderer)
		if !ok || !r.Enabled() {
			continue
		}
		pos := r.Present(lagOffset)
		if !h.sched.Visible(e) {
			continue
		}
		c, ok := averageColor(r.Source())
		if !ok {
			continue
		}

		src := r.Source().Bounds()
		sp := h.camera.WorldToScreen(pos)
		x0 := int(math.Floor(sp.X / cellWidth))
		y0 := int(math.Floor(sp.Y / cellHeight))
		x1 := int(math.Ceil((sp.X + float64(src.Dx())) / cellWidth))
		y1 := int(math.Ceil((sp.Y + float64(src.Dy())) / cellHeight))

		glyph, style := ' ', tcell.StyleDefault.Background(tcellColor(c))
		if ecs.Has(e, ecs.KindLight) {
			glyph, style = '░', tcell.StyleDefault.Background(h.background).Foreground(tcellColor(c))
		}
		for y := max(y0, 0); y < min(y1, rows); y++ {
			for x := max(x0, 0); x < min(x1, cols); x++ {
				h.screen.SetContent(x, y, glyph, nil, style)
			}
		}
	}
}

func (h *host) drawStatus() {
	status := fmt.Sprintf(" %s  ticks:%d  %s  [arrows/wasd move, p pause, esc quit] ",
		h.spec.Game.Title, h.sched.Ticks(), h.sched.State())
	if h.script != nil && h.script.Err() != nil {
		status += " script error: " + h.script.Err().Error()
	}
	style := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	for i, r := range []rune(status) {
		h.screen.SetContent(i, 0, r, nil, style)
	}
}

// keyName maps a terminal key to the lower-case names the ebiten host uses.
func keyName(ev *tcell.EventKey) (string, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return "space", true
		}
		return strings.ToLower(string(ev.Rune())), true
	case tcell.KeyLeft:
		return "arrowleft", true
	case tcell.KeyRight:
		return "arrowright", true
	case tcell.KeyUp:
		return "arrowup", true
	case tcell.KeyDown:
		return "arrowdown", true
	case tcell.KeyEnter:
		return "enter", true
	}
	return "", false
}

// averageColor is the mean of the opaque pixels in img.
func averageColor(img image.Image) (color.RGBA, bool) {
	if img == nil {
		return color.RGBA{}, false
	}
	b := img.Bounds()
	var r, g, bl, n uint64
	step := max(1, min(b.Dx(), b.Dy())/8)
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			cr, cg, cb, ca := img.At(x, y).RGBA()
			if ca < 0x8000 {
				continue
			}
			r += uint64(cr >> 8)
			g += uint64(cg >> 8)
			bl += uint64(cb >> 8)
			n++
		}
	}
	if n == 0 {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(r / n), G: uint8(g / n), B: uint8(bl / n), A: 0xff}, true
}

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
