package common

import "math"

// Vector2 is a 2D float pair. Add, Scale and Normalize mutate in place and
// return the receiver so calls can be chained.
type Vector2 struct {
	X float64
	Y float64
}

func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

func (v *Vector2) Add(o Vector2) *Vector2 {
	v.X += o.X
	v.Y += o.Y
	return v
}

func (v *Vector2) Scale(s float64) *Vector2 {
	v.X *= s
	v.Y *= s
	return v
}

// Normalize scales v to unit length. A zero vector stays zero.
func (v *Vector2) Normalize() *Vector2 {
	l := v.Length()
	if l == 0 {
		v.X, v.Y = 0, 0
		return v
	}
	v.X /= l
	v.Y /= l
	return v
}

func (v Vector2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Plus returns v+o without touching either operand.
func (v Vector2) Plus(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector2) Minus(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector2) Times(s float64) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

// LerpTo interpolates each axis from v towards o by t.
func (v Vector2) LerpTo(o Vector2, t float64) Vector2 {
	return Vector2{X: Lerp(v.X, o.X, t), Y: Lerp(v.Y, o.Y, t)}
}
