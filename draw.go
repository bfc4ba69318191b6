package main

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/boxsim/ecs"
	"github.com/milk9111/boxsim/ecs/component"
	"golang.org/x/image/colornames"
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)

	g.sched.Render(func(lagOffset float64) {
		off := g.camera.Offset()
		for _, e := range g.world.Entities() {
			r, ok := ecs.Get[*component.Renderer](e, ecs.KindRenderer)
			if !ok || !r.Enabled() {
				continue
			}
			pos := r.Present(lagOffset)
			if !g.sched.Visible(e) {
				continue
			}
			img := g.images.get(r)
			if img == nil {
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(pos.X+off.X, pos.Y+off.Y)
			screen.DrawImage(img, op)
		}
	})

	if g.opts.Debug {
		g.drawDebug(screen)
	}
	if g.sched.Paused() {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	off := g.camera.Offset()
	for _, e := range g.world.Entities() {
		c, ok := ecs.Get[*component.Collider](e, ecs.KindCollider)
		if !ok || !g.sched.Visible(e) {
			continue
		}
		b := c.Bounds()
		vector.StrokeRect(screen, float32(b.X+off.X), float32(b.Y+off.Y), float32(b.Width), float32(b.Height), 1, colornames.Red, false)
	}

	msg := fmt.Sprintf("TPS: %.0f  FPS: %.2f  ticks: %d  lag: %.2f  entities: %d  state: %s",
		ebiten.ActualTPS(), ebiten.ActualFPS(), g.sched.Ticks(), g.sched.LagOffset(), g.world.Len(), g.sched.State())
	if p := g.camera.Following(); p != nil {
		if ph, ok := ecs.Get[*component.Physics](p, ecs.KindPhysics); ok {
			v := ph.Velocity()
			msg += fmt.Sprintf("\n%s: (%.1f, %.1f) v=(%.2f, %.2f)", p.Name(), p.Position.X, p.Position.Y, v.X, v.Y)
		}
	}
	if g.script != nil && g.script.Err() != nil {
		msg += "\nscript: " + g.script.Err().Error()
	}
	ebitenutil.DebugPrint(screen, msg)
}

type cachedImage struct {
	src     image.Image
	version uint64
	img     *ebiten.Image
}

// imageCache mirrors renderer sources into ebiten images, re-uploading a
// surface only when its version changes.
type imageCache struct {
	entries map[*component.Renderer]*cachedImage
}

func newImageCache() *imageCache {
	return &imageCache{entries: map[*component.Renderer]*cachedImage{}}
}

func (c *imageCache) reset() {
	for _, entry := range c.entries {
		if entry.img != nil {
			entry.img.Deallocate()
		}
	}
	clear(c.entries)
}

func (c *imageCache) get(r *component.Renderer) *ebiten.Image {
	src := r.Source()
	if src == nil || src.Bounds().Empty() {
		return nil
	}
	version := r.Surface().Version()
	entry, ok := c.entries[r]
	if ok && entry.src == src && entry.version == version {
		return entry.img
	}

	if ok && entry.img != nil {
		if rgba, isRGBA := src.(*image.RGBA); isRGBA && entry.img.Bounds().Size() == rgba.Bounds().Size() {
			entry.img.WritePixels(rgba.Pix)
			entry.src = src
			entry.version = version
			return entry.img
		}
		entry.img.Deallocate()
	}

	img := ebiten.NewImageFromImage(src)
	c.entries[r] = &cachedImage{src: src, version: version, img: img}
	return img
}

