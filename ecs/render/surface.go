package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

var ErrOutOfRange = errors.New("render: coordinates out of range")

// Surface is a CPU-side RGBA drawing target. Hosts upload it to the screen
// whenever Version changes.
type Surface struct {
	img     *image.RGBA
	version uint64
}

func NewSurface(width, height int) *Surface {
	return &Surface{img: image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))}
}

func (s *Surface) Width() int {
	return s.img.Bounds().Dx()
}

func (s *Surface) Height() int {
	return s.img.Bounds().Dy()
}

// Image returns the backing image. Callers must not retain it across a
// Resize.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Version increases on every mutation.
func (s *Surface) Version() uint64 {
	return s.version
}

// SetPixel paints one pixel.
func (s *Surface) SetPixel(c color.Color, x, y int) error {
	if x < 0 || x >= s.Width() {
		return fmt.Errorf("%w: x=%d width=%d", ErrOutOfRange, x, s.Width())
	}
	if y < 0 || y >= s.Height() {
		return fmt.Errorf("%w: y=%d height=%d", ErrOutOfRange, y, s.Height())
	}
	s.img.Set(x, y, c)
	s.version++
	return nil
}

// SetPixels fills a width x height rectangle at x, y. The origin must lie on
// the surface and the size must not exceed it; the part of the rectangle past
// the far edges is clipped.
func (s *Surface) SetPixels(c color.Color, x, y, width, height int) error {
	if x < 0 || x >= s.Width() {
		return fmt.Errorf("%w: x=%d width=%d", ErrOutOfRange, x, s.Width())
	}
	if y < 0 || y >= s.Height() {
		return fmt.Errorf("%w: y=%d height=%d", ErrOutOfRange, y, s.Height())
	}
	if width < 0 || width > s.Width() {
		return fmt.Errorf("%w: rect width=%d surface width=%d", ErrOutOfRange, width, s.Width())
	}
	if height < 0 || height > s.Height() {
		return fmt.Errorf("%w: rect height=%d surface height=%d", ErrOutOfRange, height, s.Height())
	}
	r := image.Rect(x, y, x+width, y+height).Intersect(s.img.Bounds())
	draw.Draw(s.img, r, image.NewUniform(c), image.Point{}, draw.Src)
	s.version++
	return nil
}

// DrawSurface composites src over s with its top-left corner at x, y.
func (s *Surface) DrawSurface(src *Surface, x, y int) {
	if src == nil {
		return
	}
	s.DrawImage(src.img, x, y)
}

// DrawImage composites img over s with its top-left corner at x, y.
func (s *Surface) DrawImage(img image.Image, x, y int) {
	if img == nil {
		return
	}
	b := img.Bounds()
	r := image.Rect(x, y, x+b.Dx(), y+b.Dy())
	draw.Draw(s.img, r, img, b.Min, draw.Over)
	s.version++
}

// Clear fills the surface with c.
func (s *Surface) Clear(c color.Color) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	s.version++
}

// Resize replaces the surface with a transparent one of the new size.
func (s *Surface) Resize(width, height int) {
	s.img = image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	s.version++
}
