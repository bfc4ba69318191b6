package main

import (
	"image/color"
	"log"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/boxsim/assets"
	"github.com/milk9111/boxsim/ecs"
	"github.com/milk9111/boxsim/ecs/system"
	"github.com/milk9111/boxsim/obj"
	"github.com/milk9111/boxsim/prefabs"
	"github.com/milk9111/boxsim/scene"
)

// maxFrameLag bounds the catch-up after a stall such as a window drag.
const maxFrameLag = 250 * time.Millisecond

type Options struct {
	Scene    string
	Debug    bool
	TickRate int
	Watch    bool
}

type Game struct {
	opts Options

	spec   *prefabs.SceneSpec
	title  string
	world  *ecs.World
	sched  *ecs.Scheduler
	camera *obj.Camera
	input  *obj.Input
	script *system.ScriptSystem

	background color.RGBA
	images     *imageCache
	watcher    *prefabs.Watcher
	pauseUI    *ebitenui.UI
	focused    bool
	quit       bool
}

func NewGame(opts Options) (*Game, error) {
	if opts.Scene == "" {
		opts.Scene = prefabs.DefaultScene
	}
	g := &Game{
		opts:    opts,
		images:  newImageCache(),
		focused: true,
	}
	if err := g.load(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			log.Printf("watch: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// load builds a fresh world from the scene file and starts it.
func (g *Game) load() error {
	sc, err := scene.Load(scene.Options{
		Name:        g.opts.Scene,
		TickRate:    g.opts.TickRate,
		MaxFrameLag: maxFrameLag,
		Images:      assets.Images(),
		Clips:       assets.Clips(),
		Now:         time.Now(),
	})
	if err != nil {
		return err
	}

	g.spec = sc.Spec
	g.world = sc.World
	g.sched = sc.Scheduler
	g.camera = sc.Camera
	g.input = sc.Input
	g.script = sc.Script
	g.background = sc.Background
	g.title = sc.Title()
	g.images.reset()
	return nil
}

func (g *Game) Title() string {
	return g.title
}

func (g *Game) ScreenSize() (int, int) {
	return g.spec.Game.ScreenWidth, g.spec.Game.ScreenHeight
}

func (g *Game) SetPaused(paused bool) {
	g.sched.SetPaused(paused)
	if paused {
		g.input.ReleaseAll()
	}
}

func (g *Game) Quit() {
	g.quit = true
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	g.reloadIfChanged()

	focused := ebiten.IsFocused()
	if g.focused && !focused {
		g.SetPaused(true)
	}
	g.focused = focused

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.SetPaused(!g.sched.Paused())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.opts.Debug = !g.opts.Debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.reload("manual")
	}

	if g.sched.Paused() {
		g.pauseUI.Update()
		g.sched.Tick(time.Now())
		return nil
	}

	pollInput(g.input)
	g.sched.Tick(time.Now())
	return nil
}

func (g *Game) reloadIfChanged() {
	if g.watcher == nil {
		return
	}
	changed, err := g.watcher.Poll()
	if err != nil {
		log.Printf("watch: %v", err)
	}
	if len(changed) > 0 {
		g.reload(changed[0])
	}
}

func (g *Game) reload(reason string) {
	paused := g.sched.Paused()
	if err := g.load(); err != nil {
		log.Printf("reload %s: keeping previous scene: %v", reason, err)
		return
	}
	if paused {
		g.SetPaused(true)
	}
	log.Printf("reloaded scene after %s", reason)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	w, h := g.ScreenSize()
	return float64(w), float64(h)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
