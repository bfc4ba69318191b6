package component

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/milk9111/boxsim/common"
	"github.com/milk9111/boxsim/ecs"
)

var ErrInvalidKeybinds = errors.New("component: invalid keybinds")

// Keybinds maps movement actions to input key names.
type Keybinds struct {
	Jump  string
	Left  string
	Right string
}

var DefaultKeybinds = Keybinds{Jump: "w", Left: "a", Right: "d"}

// ParseKeybinds builds Keybinds from an action->key map. Every action must be
// bound exactly once and unknown actions are rejected.
func ParseKeybinds(m map[string]string) (Keybinds, error) {
	var kb Keybinds
	seen := map[string]bool{}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, action := range keys {
		key := strings.ToLower(strings.TrimSpace(m[action]))
		if key == "" {
			return Keybinds{}, fmt.Errorf("%w: action %q has no key", ErrInvalidKeybinds, action)
		}
		normalized := strings.ToLower(strings.TrimSpace(action))
		if seen[normalized] {
			return Keybinds{}, fmt.Errorf("%w: action %q bound twice", ErrInvalidKeybinds, action)
		}
		seen[normalized] = true
		switch normalized {
		case "jump":
			kb.Jump = key
		case "left":
			kb.Left = key
		case "right":
			kb.Right = key
		default:
			return Keybinds{}, fmt.Errorf("%w: unknown action %q", ErrInvalidKeybinds, action)
		}
	}
	if kb.Jump == "" || kb.Left == "" || kb.Right == "" {
		return Keybinds{}, fmt.Errorf("%w: jump, left and right are required", ErrInvalidKeybinds)
	}
	return kb, nil
}

// Movement turns held keys into walking impulses and jumps on the holder's
// Physics. Walking is queued each tick; a jump changes the base velocity.
type Movement struct {
	ecs.Base

	world    *ecs.World
	speed    float64
	jump     float64
	keybinds Keybinds
	move     common.Vector2
}

type MovementOption func(*Movement)

func WithKeybinds(kb Keybinds) MovementOption {
	return func(m *Movement) { m.keybinds = kb }
}

func NewMovement(holder *ecs.Entity, world *ecs.World, speed, jump float64, opts ...MovementOption) *Movement {
	m := &Movement{
		Base:     ecs.NewBase(holder),
		world:    world,
		speed:    speed,
		jump:     jump,
		keybinds: DefaultKeybinds,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Movement) Kind() ecs.Kind {
	return ecs.KindMovement
}

func (m *Movement) Start() {}

func (m *Movement) Keybinds() Keybinds {
	return m.keybinds
}

// Direction is the input vector computed by the last Update.
func (m *Movement) Direction() common.Vector2 {
	return m.move
}

func (m *Movement) Update() {
	h := m.Holder()
	physics, ok := ecs.Get[*Physics](h, ecs.KindPhysics)
	if !ok || m.world == nil {
		return
	}
	in := m.world.Input()
	if in == nil {
		m.move = common.Vector2{}
		return
	}

	grounded := false
	if col, ok := ecs.Get[*Collider](h, ecs.KindCollider); ok {
		grounded = col.CollideAll().Bottom
	}

	m.move.Y = 0
	if in.KeyDown(m.keybinds.Jump) && physics.BaseVelocity().Y == 0 && grounded {
		m.move.Y = -1
	}

	switch {
	case in.KeyDown(m.keybinds.Right):
		m.move.X = 1
	case in.KeyDown(m.keybinds.Left):
		m.move.X = -1
	default:
		m.move.X = 0
	}

	if m.move.X != 0 {
		physics.QueueVelocity(common.Vec(m.move.X*m.speed, 0))
	}
	if m.move.Y != 0 {
		physics.AddVelocity(0, m.move.Y*m.jump)
	}
}
