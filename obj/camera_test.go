package obj

import (
	"testing"

	"github.com/milk9111/boxsim/common"
	"github.com/milk9111/boxsim/ecs"
)

func TestCameraFollowCentresEntity(t *testing.T) {
	c := NewCamera(1280, 720)
	player := ecs.NewEntity("player", 100, 500, 50, 100)
	c.Follow(player)
	c.Update()

	if c.PosX != 125 || c.PosY != 550 {
		t.Fatalf("expected centre (125,550), got (%v,%v)", c.PosX, c.PosY)
	}
	if got := c.Position(); got != common.Vec(125-640, 550-360) {
		t.Fatalf("unexpected top-left %v", got)
	}
	if got := c.WorldToScreen(player.Bounds().Center()); got != common.Vec(640, 360) {
		t.Fatalf("followed entity not at screen centre: %v", got)
	}
	if got := c.ScreenToWorld(common.Vec(640, 360)); got != common.Vec(125, 550) {
		t.Fatalf("ScreenToWorld = %v", got)
	}
}

func TestCameraSmoothing(t *testing.T) {
	c := NewCamera(100, 100)
	c.SnapTo(0, 0)
	c.SetSmooth(0.5)
	c.Follow(ecs.NewEntity("target", 95, 95, 10, 10))

	c.Update()
	if c.PosX != 50 || c.PosY != 50 {
		t.Fatalf("expected half-way (50,50), got (%v,%v)", c.PosX, c.PosY)
	}
	c.Follow(nil)
	c.Update()
	if c.PosX != 50 {
		t.Fatalf("camera moved without a target")
	}
}

func TestCameraContains(t *testing.T) {
	c := NewCamera(1280, 720)

	cases := []struct {
		name string
		e    *ecs.Entity
		want bool
	}{
		{"on_screen", ecs.NewEntity("a", 100, 100, 10, 10), true},
		{"inside_margin", ecs.NewEntity("b", 1350, 100, 10, 10), true},
		{"past_margin", ecs.NewEntity("c", 1400, 100, 10, 10), false},
		{"left_margin_edge", ecs.NewEntity("d", -110, 100, 10, 10), true},
		{"above", ecs.NewEntity("e", 100, -200, 10, 10), false},
		{"huge_floor", ecs.NewEntity("f", -10000, 680, 20000, 50), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.Contains(tc.e); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestCameraSetMargin(t *testing.T) {
	e := ecs.NewEntity("e", 1290, 100, 10, 10)

	cases := []struct {
		name   string
		margin float64
		want   bool
	}{
		{"zero", 0, false},
		{"negative clamps to zero", -50, false},
		{"covers entity", 20, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCamera(1280, 720)
			c.SetMargin(tc.margin)
			if got := c.Contains(e); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
