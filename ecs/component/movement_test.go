package component

import (
	"errors"
	"testing"

	"github.com/milk9111/boxsim/common"
	"github.com/milk9111/boxsim/ecs"
)

type heldKeys map[string]bool

func (k heldKeys) KeyDown(key string) bool                        { return k[key] }
func (k heldKeys) KeyPressed(key string) bool                     { return k[key] }
func (k heldKeys) ButtonDown(int) bool                            { return false }
func (k heldKeys) ButtonPressed(int) bool                         { return false }
func (k heldKeys) ScreenToWorld(p common.Vector2) common.Vector2 { return p }

func TestParseKeybinds(t *testing.T) {
	tests := []struct {
		name    string
		in      map[string]string
		want    Keybinds
		wantErr bool
	}{
		{name: "lower case", in: map[string]string{"jump": "w", "left": "a", "right": "d"}, want: DefaultKeybinds},
		{name: "mixed case", in: map[string]string{"JUMP": "Space", "LEFT": "ArrowLeft", "RIGHT": "ArrowRight"}, want: Keybinds{Jump: "space", Left: "arrowleft", Right: "arrowright"}},
		{name: "missing action", in: map[string]string{"jump": "w", "left": "a"}, wantErr: true},
		{name: "unknown action", in: map[string]string{"jump": "w", "left": "a", "right": "d", "dash": "e"}, wantErr: true},
		{name: "empty key", in: map[string]string{"jump": "", "left": "a", "right": "d"}, wantErr: true},
		{name: "duplicate action", in: map[string]string{"jump": "w", "JUMP": "x", "left": "a", "right": "d"}, wantErr: true},
		{name: "nil map", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKeybinds(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidKeybinds) {
					t.Fatalf("expected ErrInvalidKeybinds, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func newPlayer(t *testing.T, w *ecs.World) (*ecs.Entity, *Physics) {
	t.Helper()
	e := ecs.NewEntity("player", 100, 580, 50, 100)
	p := NewPhysics(e, w)
	e.MustAdd(p)
	e.MustAdd(NewCollider(e, w, 50, 100))
	e.MustAdd(NewMovement(e, w, 5, 7))
	if err := w.AddEntity(e); err != nil {
		t.Fatal(err)
	}
	return e, p
}

func TestMovementWalkAndJump(t *testing.T) {
	keys := heldKeys{}
	w := ecs.NewWorld(ecs.WithInput(keys))
	player, p := newPlayer(t, w)
	newStatic(t, w, "floor", -10000, 680, 20000, 50)
	w.StartAll()

	keys["d"] = true
	tick(w)
	queued := p.Queued()
	if len(queued) != 1 || queued[0] != common.Vec(5, 0) {
		t.Fatalf("queued = %v, want one {5 0} step", queued)
	}
	tick(w)
	if player.Position.X != 105 {
		t.Fatalf("x = %v, want 105", player.Position.X)
	}

	keys["d"] = false
	keys["w"] = true
	tick(w)
	if got := p.BaseVelocity().Y; got != -7 {
		t.Fatalf("vy after jump = %v, want -7", got)
	}

	tick(w)
	if got := p.BaseVelocity().Y; got <= -7 || got >= 0 {
		t.Fatalf("vy = %v, want decelerating upward motion", got)
	}
	if player.Position.Y >= 580 {
		t.Fatalf("player did not leave the floor: y=%v", player.Position.Y)
	}
}

func TestMovementNoJumpInAir(t *testing.T) {
	keys := heldKeys{"w": true}
	w := ecs.NewWorld(ecs.WithInput(keys))
	_, p := newPlayer(t, w)
	w.StartAll()

	tick(w)
	if got := p.BaseVelocity().Y; got < 0 {
		t.Fatalf("jumped without ground: vy=%v", got)
	}
}

func TestMovementCustomKeybinds(t *testing.T) {
	keys := heldKeys{"arrowleft": true}
	w := ecs.NewWorld(ecs.WithInput(keys), ecs.WithGravity(false))
	e := ecs.NewEntity("p", 0, 0, 10, 10)
	p := NewPhysics(e, w)
	m := NewMovement(e, w, 3, 7, WithKeybinds(Keybinds{Jump: "space", Left: "arrowleft", Right: "arrowright"}))
	e.MustAdd(p)
	e.MustAdd(m)

	m.Update()
	if got := m.Direction(); got.X != -1 {
		t.Fatalf("direction = %v, want left", got)
	}
	if q := p.Queued(); len(q) != 1 || q[0].X != -3 {
		t.Fatalf("queued = %v, want {-3 0}", q)
	}
}
