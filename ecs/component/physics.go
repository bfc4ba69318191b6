package component

import (
	"math"

	"github.com/milk9111/boxsim/common"
	"github.com/milk9111/boxsim/ecs"
)

// Physics integrates a base velocity plus one-shot queued impulses into the
// holder position once per tick.
type Physics struct {
	ecs.Base

	world *ecs.World

	baseVelocity common.Vector2
	queue        []common.Vector2
	lastApplied  []common.Vector2
	velocity     common.Vector2

	mass                float64
	drag                float64
	gravity             float64
	terminalVelocitySqr float64
	pushable            bool
	moveFactor          float64
}

type PhysicsOption func(*Physics)

func WithMass(mass float64) PhysicsOption {
	return func(p *Physics) { p.mass = mass }
}

func WithDrag(drag float64) PhysicsOption {
	return func(p *Physics) { p.drag = drag }
}

func WithGravity(gravity float64) PhysicsOption {
	return func(p *Physics) { p.gravity = gravity }
}

func WithPushable(pushable bool) PhysicsOption {
	return func(p *Physics) { p.pushable = pushable }
}

func WithMoveFactor(factor float64) PhysicsOption {
	return func(p *Physics) { p.moveFactor = factor }
}

func NewPhysics(holder *ecs.Entity, world *ecs.World, opts ...PhysicsOption) *Physics {
	p := &Physics{
		Base:                ecs.NewBase(holder),
		world:               world,
		mass:                1,
		drag:                common.DefaultDrag,
		gravity:             common.Gravity,
		moveFactor:          common.DefaultMoveFactor,
		terminalVelocitySqr: math.Inf(1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Physics) Kind() ecs.Kind {
	return ecs.KindPhysics
}

// TerminalVelocitySqr returns the squared drag-equilibrium speed
// 2mg / (rho * area * drag). Degenerate inputs yield +Inf.
func TerminalVelocitySqr(mass, gravity, area, drag float64) float64 {
	if mass <= 0 || area <= 0 || drag <= 0 {
		return math.Inf(1)
	}
	v := 2 * mass * gravity / (common.AirDensity * area * drag)
	if !(v > 0) {
		return math.Inf(1)
	}
	return v
}

func (p *Physics) Start() {
	h := p.Holder()
	p.terminalVelocitySqr = TerminalVelocitySqr(p.mass, p.gravity, h.Width*h.Height, p.drag)
}

func (p *Physics) Update() {
	if p.world == nil || p.world.GravityEnabled() {
		p.ApplyGravity()
	}

	total := p.baseVelocity
	for _, v := range p.queue {
		total.Add(v)
	}
	p.lastApplied = append(p.lastApplied[:0], p.queue...)
	p.queue = p.queue[:0]
	p.velocity = total

	p.Holder().Position.Add(total)
}

// ApplyGravity accelerates the body downwards until it reaches terminal
// velocity and clamps it there. Upward motion always decelerates.
func (p *Physics) ApplyGravity() {
	vy := p.baseVelocity.Y
	limit := math.Sqrt(p.terminalVelocitySqr)
	if vy < 0 || vy*vy < p.terminalVelocitySqr {
		vy += p.gravity / 60 * p.deltaTime()
		if vy > limit {
			vy = limit
		}
	} else {
		vy = limit
	}
	p.baseVelocity.Y = vy
}

func (p *Physics) deltaTime() float64 {
	if p.world == nil {
		return 1000.0 / common.DefaultTickRate
	}
	return p.world.DeltaTime()
}

// QueueVelocity adds a one-shot impulse consumed by the next Update.
func (p *Physics) QueueVelocity(v common.Vector2) {
	p.queue = append(p.queue, v)
}

// AddVelocity changes the base velocity, which persists across ticks.
func (p *Physics) AddVelocity(dx, dy float64) {
	p.baseVelocity.X += dx
	p.baseVelocity.Y += dy
}

// Push transfers a share of the last applied horizontal impulse to other.
// It reports whether other accepted it.
func (p *Physics) Push(other *Physics) bool {
	if other == nil || other == p || !other.pushable || other.mass <= 0 {
		return false
	}
	var sum float64
	for _, v := range p.lastApplied {
		sum += v.X
	}
	other.QueueVelocity(common.Vec(p.moveFactor*sum/other.mass, 0))
	return true
}

func (p *Physics) BaseVelocity() common.Vector2 {
	return p.baseVelocity
}

func (p *Physics) SetBaseVelocity(v common.Vector2) {
	p.baseVelocity = v
}

// Velocity is the total displacement applied by the last Update.
func (p *Physics) Velocity() common.Vector2 {
	return p.velocity
}

// Queued returns a copy of the pending impulses.
func (p *Physics) Queued() []common.Vector2 {
	if len(p.queue) == 0 {
		return nil
	}
	return append([]common.Vector2(nil), p.queue...)
}

// LastApplied returns a copy of the impulses consumed by the last Update.
func (p *Physics) LastApplied() []common.Vector2 {
	if len(p.lastApplied) == 0 {
		return nil
	}
	return append([]common.Vector2(nil), p.lastApplied...)
}

func (p *Physics) Mass() float64 {
	return p.mass
}

func (p *Physics) Drag() float64 {
	return p.drag
}

func (p *Physics) Gravity() float64 {
	return p.gravity
}

func (p *Physics) SetGravity(gravity float64) {
	p.gravity = gravity
}

func (p *Physics) Pushable() bool {
	return p.pushable
}

func (p *Physics) SetPushable(pushable bool) {
	p.pushable = pushable
}

func (p *Physics) MoveFactor() float64 {
	return p.moveFactor
}

func (p *Physics) TerminalVelocitySqr() float64 {
	return p.terminalVelocitySqr
}
