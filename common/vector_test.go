package common

import (
	"math"
	"testing"
)

func TestVectorNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   Vector2
	}{
		{"axis_x", Vec(5, 0)},
		{"axis_y", Vec(0, -3)},
		{"pythagorean", Vec(6, 8)},
		{"tiny", Vec(1e-9, 2e-9)},
		{"large", Vec(1e12, -3e11)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := c.in
			v.Normalize()
			if l := v.Length(); math.Abs(l-1) > 1e-9 {
				t.Fatalf("expected unit length, got %v (%+v)", l, v)
			}
			if math.Signbit(v.X) != math.Signbit(c.in.X) && c.in.X != 0 {
				t.Fatalf("normalize flipped x sign: %+v -> %+v", c.in, v)
			}
		})
	}
}

func TestVectorNormalizeZero(t *testing.T) {
	v := Vec(0, 0)
	v.Normalize()
	if v.X != 0 || v.Y != 0 || math.IsNaN(v.X) || math.IsNaN(v.Y) {
		t.Fatalf("zero vector should stay zero, got %+v", v)
	}
}

func TestVectorChaining(t *testing.T) {
	v := Vec(1, 2)
	v.Add(Vec(2, 2)).Scale(2)
	if v.X != 6 || v.Y != 8 {
		t.Fatalf("expected (6,8), got %+v", v)
	}
	if got := v.Length(); got != 10 {
		t.Fatalf("expected length 10, got %v", got)
	}

	p := Vec(1, 1).Plus(Vec(2, 3))
	if p != Vec(3, 4) {
		t.Fatalf("Plus: got %+v", p)
	}
	if m := p.Minus(Vec(3, 4)); m != Vec(0, 0) {
		t.Fatalf("Minus: got %+v", m)
	}
	if l := Vec(0, 0).LerpTo(Vec(10, -10), 0.25); l != Vec(2.5, -2.5) {
		t.Fatalf("LerpTo: got %+v", l)
	}
}
