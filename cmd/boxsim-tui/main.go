package main

import (
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/boxsim/prefabs"
)

const frameInterval = 16 * time.Millisecond // ~60 FPS

func main() {
	sceneName := flag.String("scene", prefabs.DefaultScene, "scene file in prefabs/ (.yaml)")
	tickRate := flag.Int("tps", 0, "override the scene tick rate")
	logFile := flag.String("log", "", "write log output to this file instead of discarding it")
	flag.Parse()

	// The terminal owns stdout and stderr while the screen is up.
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	h, err := newHost(screen, *sceneName, *tickRate, time.Now())
	if err != nil {
		screen.Fini()
		log.Fatal(err)
	}
	run(h)
	screen.Fini()
}

// run pumps terminal events and frames until the host quits.
func run(h *host) {
	eventChan := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for !h.quit {
		select {
		case ev := <-eventChan:
			h.handle(ev, time.Now())
		case now := <-ticker.C:
			h.frame(now)
		}
	}
}
