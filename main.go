package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/boxsim/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "draw collider bounds and the tick overlay")
	sceneName := flag.String("scene", prefabs.DefaultScene, "scene file in prefabs/ (.yaml)")
	tickRate := flag.Int("tps", 0, "override the scene tick rate")
	watch := flag.Bool("watch", false, "reload the scene when prefabs/ changes on disk")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	game, err := NewGame(Options{
		Scene:    *sceneName,
		Debug:    *debug,
		TickRate: *tickRate,
		Watch:    *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	w, h := game.ScreenSize()
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(game.Title())
	// The scheduler owns the tick clock; ebiten only has to call Update often.
	ebiten.SetTPS(ebiten.SyncWithFPS)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
