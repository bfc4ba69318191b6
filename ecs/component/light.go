package component

import (
	"image/color"
	"math"

	"github.com/milk9111/boxsim/ecs"
)

// Light paints a radial falloff into the holder's Renderer. Each cell of the
// (2r-1) square buffer holds intensity minus its distance from the centre,
// and is drawn with alpha level/maxLevel.
type Light struct {
	ecs.Base

	radius    int
	intensity float64
	color     color.RGBA
	maxLevel  float64
	buffer    [][]float64
}

func NewLight(holder *ecs.Entity, radius int, intensity float64, c color.RGBA, maxLevel float64) *Light {
	if maxLevel <= 0 {
		maxLevel = 500
	}
	return &Light{
		Base:      ecs.NewBase(holder),
		radius:    max(radius, 0),
		intensity: intensity,
		color:     c,
		maxLevel:  maxLevel,
	}
}

func (l *Light) Kind() ecs.Kind {
	return ecs.KindLight
}

func (l *Light) Start() {
	l.Reload()
}

func (l *Light) Update() {}

// Reload regenerates the buffer and repaints the renderer.
func (l *Light) Reload() {
	l.generate()
	r, ok := ecs.Get[*Renderer](l.Holder(), ecs.KindRenderer)
	if !ok {
		return
	}
	r.Resize(l.radius*2, l.radius*2)
	for y, row := range l.buffer {
		for x, level := range row {
			_ = r.SetPixel(l.shade(level), x, y)
		}
	}
}

func (l *Light) generate() {
	n := max(l.radius*2-1, 0)
	l.buffer = make([][]float64, n)
	c := l.radius - 1
	r2 := float64(l.radius * l.radius)
	for y := range n {
		l.buffer[y] = make([]float64, n)
		for x := range n {
			d2 := float64((x-c)*(x-c) + (y-c)*(y-c))
			if d2 <= r2 {
				l.buffer[y][x] = l.intensity - math.Sqrt(d2)
			}
		}
	}
}

func (l *Light) shade(level float64) color.NRGBA {
	a := math.Max(0, math.Min(1, level/l.maxLevel))
	return color.NRGBA{R: l.color.R, G: l.color.G, B: l.color.B, A: uint8(math.Round(a * 255))}
}

func (l *Light) Radius() int {
	return l.radius
}

func (l *Light) SetRadius(radius int) {
	l.radius = max(radius, 0)
}

func (l *Light) SetIntensity(intensity float64) {
	l.intensity = intensity
}

// Level returns the buffer value at x, y, or 0 outside the buffer.
func (l *Light) Level(x, y int) float64 {
	if y < 0 || y >= len(l.buffer) || x < 0 || x >= len(l.buffer[y]) {
		return 0
	}
	return l.buffer[y][x]
}
