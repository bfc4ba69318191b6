package component

import (
	"image"
	"image/color"
	"math"

	"github.com/milk9111/boxsim/common"
	"github.com/milk9111/boxsim/ecs"
	"github.com/milk9111/boxsim/ecs/render"
)

// RenderMode selects what a Renderer draws.
type RenderMode uint8

const (
	RenderColor RenderMode = iota
	RenderImage
)

// Renderer owns the holder's drawing surface. An image path takes priority
// over the fill colour once the image has loaded.
type Renderer struct {
	ecs.Base

	surface     *render.Surface
	fill        color.Color
	imagePath   string
	image       image.Image
	loader      render.ImageLoader
	mode        RenderMode
	interpolate bool
	err         error

	position common.Vector2
	oldPos   common.Vector2
	drawPos  common.Vector2
}

type RendererOption func(*Renderer)

// WithColor fills the surface with c.
func WithColor(c color.Color) RendererOption {
	return func(r *Renderer) { r.fill = c }
}

// WithImage draws the image at path, loaded through loader on Start.
func WithImage(path string, loader render.ImageLoader) RendererOption {
	return func(r *Renderer) {
		r.imagePath = path
		r.loader = loader
	}
}

func WithInterpolation(enabled bool) RendererOption {
	return func(r *Renderer) { r.interpolate = enabled }
}

func NewRenderer(holder *ecs.Entity, opts ...RendererOption) *Renderer {
	r := &Renderer{
		Base:     ecs.NewBase(holder),
		surface:  render.NewSurface(pixels(holder.Width), pixels(holder.Height)),
		position: holder.Position,
		oldPos:   holder.Position,
		drawPos:  holder.Position,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.fill != nil {
		r.surface.Clear(r.fill)
	}
	return r
}

func pixels(v float64) int {
	if v <= 0 {
		return 0
	}
	return int(math.Ceil(v))
}

func (r *Renderer) Kind() ecs.Kind {
	return ecs.KindRenderer
}

func (r *Renderer) Start() {
	if r.imagePath != "" && r.image == nil {
		r.loadImage()
	}
}

// Update syncs the draw position with the holder.
func (r *Renderer) Update() {
	r.position = r.Holder().Position
}

// SetImage switches to drawing the image at path.
func (r *Renderer) SetImage(path string, loader render.ImageLoader) error {
	r.imagePath = path
	r.loader = loader
	r.image = nil
	r.loadImage()
	return r.err
}

func (r *Renderer) loadImage() {
	if r.loader == nil {
		r.err = render.ErrImageNotFound
		return
	}
	img, err := r.loader.LoadImage(r.imagePath)
	if err != nil {
		r.err = err
		return
	}
	r.err = nil
	r.image = img
	r.mode = RenderImage
}

// Err is the last image load error.
func (r *Renderer) Err() error {
	return r.err
}

func (r *Renderer) Mode() RenderMode {
	return r.mode
}

func (r *Renderer) ImagePath() string {
	return r.imagePath
}

func (r *Renderer) Surface() *render.Surface {
	return r.surface
}

// Source returns the pixels to draw: the loaded image in image mode, the
// surface otherwise.
func (r *Renderer) Source() image.Image {
	if r.mode == RenderImage && r.image != nil {
		return r.image
	}
	return r.surface.Image()
}

func (r *Renderer) Interpolating() bool {
	return r.interpolate
}

func (r *Renderer) SetInterpolation(enabled bool) {
	r.interpolate = enabled
}

// Present returns the world position to draw at for the given fraction of a
// tick, then records the current position as the next interpolation origin.
func (r *Renderer) Present(lagOffset float64) common.Vector2 {
	pos := r.position
	if r.interpolate {
		pos = r.oldPos.LerpTo(r.position, lagOffset)
	}
	r.drawPos = pos
	r.oldPos = r.position
	return pos
}

// DrawPosition is the position returned by the last Present.
func (r *Renderer) DrawPosition() common.Vector2 {
	return r.drawPos
}

func (r *Renderer) SetPixel(c color.Color, x, y int) error {
	return r.surface.SetPixel(c, x, y)
}

func (r *Renderer) SetPixels(c color.Color, x, y, width, height int) error {
	return r.surface.SetPixels(c, x, y, width, height)
}

// Resize replaces the surface with a transparent one of the new size.
func (r *Renderer) Resize(width, height int) {
	r.surface.Resize(width, height)
}
