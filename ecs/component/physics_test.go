package component

import (
	"math"
	"testing"

	"github.com/milk9111/boxsim/common"
	"github.com/milk9111/boxsim/ecs"
)

func newBody(t *testing.T, w *ecs.World, name string, x, y, width, height float64, opts ...PhysicsOption) (*ecs.Entity, *Physics, *Collider) {
	t.Helper()
	e := ecs.NewEntity(name, x, y, width, height)
	p := NewPhysics(e, w, opts...)
	c := NewCollider(e, w, width, height)
	e.MustAdd(p)
	e.MustAdd(c)
	if err := w.AddEntity(e); err != nil {
		t.Fatalf("add %s: %v", name, err)
	}
	return e, p, c
}

func newStatic(t *testing.T, w *ecs.World, name string, x, y, width, height float64) (*ecs.Entity, *Collider) {
	t.Helper()
	e := ecs.NewEntity(name, x, y, width, height)
	c := NewCollider(e, w, width, height)
	e.MustAdd(c)
	if err := w.AddEntity(e); err != nil {
		t.Fatalf("add %s: %v", name, err)
	}
	return e, c
}

func tick(w *ecs.World) {
	w.Each(func(e *ecs.Entity) { e.Update() })
}

func TestTerminalVelocitySqr(t *testing.T) {
	tests := []struct {
		name  string
		mass  float64
		area  float64
		drag  float64
		want  float64
		isInf bool
	}{
		{name: "player", mass: 1, area: 5000, drag: 0.00001, want: 2 * 9.51 / (1.225 * 5000 * 0.00001)},
		{name: "zero drag", mass: 1, area: 5000, drag: 0, isInf: true},
		{name: "zero area", mass: 1, area: 0, drag: 0.00001, isInf: true},
		{name: "zero mass", mass: 0, area: 5000, drag: 0.00001, isInf: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TerminalVelocitySqr(tt.mass, common.Gravity, tt.area, tt.drag)
			if math.IsNaN(got) {
				t.Fatalf("got NaN")
			}
			if tt.isInf {
				if !math.IsInf(got, 1) {
					t.Fatalf("got %v, want +Inf", got)
				}
				return
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPhysicsQueueDrainedEveryUpdate(t *testing.T) {
	w := ecs.NewWorld(ecs.WithGravity(false))
	e, p, _ := newBody(t, w, "body", 0, 0, 10, 10)
	w.StartAll()

	p.QueueVelocity(common.Vec(3, 0))
	p.QueueVelocity(common.Vec(1, -2))
	p.AddVelocity(0.5, 0)
	e.Update()

	if got := p.Queued(); len(got) != 0 {
		t.Fatalf("queue not drained: %v", got)
	}
	if e.Position != common.Vec(4.5, -2) {
		t.Fatalf("position = %v, want {4.5 -2}", e.Position)
	}
	if got := p.LastApplied(); len(got) != 2 {
		t.Fatalf("last applied = %v, want 2 entries", got)
	}

	e.Update()
	if e.Position != common.Vec(5, -2) {
		t.Fatalf("impulses carried over: position = %v", e.Position)
	}
	if got := p.LastApplied(); len(got) != 0 {
		t.Fatalf("last applied = %v, want empty", got)
	}
}

func TestGravityMonotonicAndClamped(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.NewEntity("falling", 0, 0, 50, 100)
	p := NewPhysics(e, w)
	e.MustAdd(p)
	if err := w.AddEntity(e); err != nil {
		t.Fatal(err)
	}
	w.StartAll()

	limit := math.Sqrt(p.TerminalVelocitySqr())
	prev := p.BaseVelocity().Y
	reached := false
	for i := 0; i < 200; i++ {
		tick(w)
		vy := p.BaseVelocity().Y
		if vy < prev {
			t.Fatalf("tick %d: vy decreased from %v to %v", i, prev, vy)
		}
		if vy > limit {
			t.Fatalf("tick %d: vy %v above terminal %v", i, vy, limit)
		}
		if reached && vy != limit {
			t.Fatalf("tick %d: vy left terminal velocity: %v", i, vy)
		}
		reached = reached || vy == limit
		prev = vy
	}
	if !reached {
		t.Fatalf("terminal velocity %v never reached, vy=%v", limit, prev)
	}
}

func TestGravityDeceleratesUpwardMotion(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.NewEntity("jumper", 0, 0, 50, 100)
	p := NewPhysics(e, w)
	e.MustAdd(p)
	if err := w.AddEntity(e); err != nil {
		t.Fatal(err)
	}
	w.StartAll()

	p.SetBaseVelocity(common.Vec(0, -7))
	tick(w)
	step := common.Gravity / 60 * w.DeltaTime()
	if got := p.BaseVelocity().Y; math.Abs(got-(-7+step)) > 1e-9 {
		t.Fatalf("vy = %v, want %v", got, -7+step)
	}
}

func TestPushScenario(t *testing.T) {
	tests := []struct {
		name      string
		mass      float64
		pushable  bool
		wantQueue []common.Vector2
		wantBaseX float64
	}{
		{name: "pushable unit mass", mass: 1, pushable: true, wantQueue: []common.Vector2{{X: 2}}, wantBaseX: 3},
		{name: "pushable heavy", mass: 2, pushable: true, wantQueue: []common.Vector2{{X: 1}}, wantBaseX: 3},
		{name: "not pushable", mass: 1, pushable: false, wantBaseX: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld(ecs.WithGravity(false))
			a, pa, _ := newBody(t, w, "a", 0, 0, 10, 10)
			_, pb, _ := newBody(t, w, "b", 9, 0, 10, 10, WithMass(tt.mass), WithPushable(tt.pushable))
			w.StartAll()

			pa.SetBaseVelocity(common.Vec(3, 0))
			pa.QueueVelocity(common.Vec(4, 0))
			a.Update()

			got := pb.Queued()
			if len(got) != len(tt.wantQueue) {
				t.Fatalf("queue = %v, want %v", got, tt.wantQueue)
			}
			for i := range got {
				if got[i] != tt.wantQueue[i] {
					t.Fatalf("queue[%d] = %v, want %v", i, got[i], tt.wantQueue[i])
				}
			}
			if a.Position.X != -1 {
				t.Fatalf("a not snapped to contact: x=%v", a.Position.X)
			}
			if got := pa.BaseVelocity().X; got != tt.wantBaseX {
				t.Fatalf("base x velocity = %v, want %v", got, tt.wantBaseX)
			}

			events := w.Events().Drain()
			if len(events) != 1 {
				t.Fatalf("events = %d, want 1", len(events))
			}
			evt := events[0].Data.(ecs.CollisionEvent)
			if evt.Side != ecs.SideRight || evt.Other != "b" || evt.Pushed != tt.pushable {
				t.Fatalf("unexpected event %+v", evt)
			}
		})
	}
}
