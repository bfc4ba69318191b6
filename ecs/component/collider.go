package component

import (
	"github.com/milk9111/boxsim/common"
	"github.com/milk9111/boxsim/ecs"
)

// ClipDistances are the absolute gaps between opposing edges, seen from the
// collider that ran the query.
type ClipDistances struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

// Collision is the result of a single pair query. Side flags name the face
// of the querying box that touches the other one.
type Collision struct {
	Collided bool
	Left     bool
	Right    bool
	Bottom   bool
	Top      bool
	Clip     ClipDistances
}

type Contact struct {
	Other *Collider
	Clip  ClipDistances
}

// CollisionSummary ORs the flags of every pair query made by CollideAll.
type CollisionSummary struct {
	Collided bool
	Left     bool
	Right    bool
	Bottom   bool
	Top      bool
	Contacts []Contact
}

// Collider is an axis-aligned box attached to its holder. A collider whose
// holder has no Physics is static geometry and never resolves itself.
type Collider struct {
	ecs.Base

	world  *ecs.World
	width  float64
	height float64
	offset common.Vector2
}

type ColliderOption func(*Collider)

func WithOffset(x, y float64) ColliderOption {
	return func(c *Collider) { c.offset = common.Vec(x, y) }
}

func NewCollider(holder *ecs.Entity, world *ecs.World, width, height float64, opts ...ColliderOption) *Collider {
	c := &Collider{
		Base:   ecs.NewBase(holder),
		world:  world,
		width:  width,
		height: height,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Collider) Kind() ecs.Kind {
	return ecs.KindCollider
}

func (c *Collider) Start() {}

func (c *Collider) Size() (float64, float64) {
	return c.width, c.height
}

func (c *Collider) Offset() common.Vector2 {
	return c.offset
}

// Bounds is the box in world space.
func (c *Collider) Bounds() common.Rect {
	p := c.Holder().Position
	return common.Rect{X: p.X + c.offset.X, Y: p.Y + c.offset.Y, Width: c.width, Height: c.height}
}

// Collide tests c against other with a tolerance band of
// common.ContactTolerance on each side, so resting contacts count as touching.
// Collided is symmetric for every pair.
func (c *Collider) Collide(other *Collider) Collision {
	return collide(c.Bounds(), other.Bounds(), common.ContactTolerance)
}

// CollideAll queries every other enabled collider in the world.
func (c *Collider) CollideAll() CollisionSummary {
	var res CollisionSummary
	if c.world == nil {
		return res
	}
	for _, e := range c.world.Entities() {
		other, ok := c.partner(e)
		if !ok {
			continue
		}
		col := c.Collide(other)
		res.Left = res.Left || col.Left
		res.Right = res.Right || col.Right
		res.Bottom = res.Bottom || col.Bottom
		res.Top = res.Top || col.Top
		if col.Collided {
			res.Collided = true
			res.Contacts = append(res.Contacts, Contact{Other: other, Clip: col.Clip})
		}
	}
	return res
}

// Update resolves overlaps against every other collider. For each
// overlapping pair, a flagged side whose clip distance is strictly smaller
// than both perpendicular clips wins: the holder snaps to edge contact on
// that side and its velocity on that axis is cleared, or pushed into the
// other body when it has physics.
func (c *Collider) Update() {
	if c.world == nil {
		return
	}
	physics, ok := ecs.Get[*Physics](c.Holder(), ecs.KindPhysics)
	if !ok {
		return
	}
	for _, e := range c.world.Entities() {
		other, ok := c.partner(e)
		if !ok {
			continue
		}
		col := collide(c.Bounds(), other.Bounds(), 0)
		if !col.Collided {
			continue
		}
		sides := winningSides(col)
		if len(sides) == 0 {
			continue
		}
		if c.world.ResolvePolicy() == ecs.ResolveNearestSideOnly {
			sides = nearest(sides)
		}
		otherPhysics, _ := ecs.Get[*Physics](e, ecs.KindPhysics)
		for _, w := range sides {
			c.resolve(w.side, physics, other, otherPhysics)
		}
	}
}

func (c *Collider) partner(e *ecs.Entity) (*Collider, bool) {
	if e == c.Holder() {
		return nil, false
	}
	other, ok := ecs.Get[*Collider](e, ecs.KindCollider)
	if !ok || !other.Enabled() {
		return nil, false
	}
	return other, true
}

func (c *Collider) resolve(side ecs.Side, physics *Physics, other *Collider, otherPhysics *Physics) {
	h := c.Holder()
	ob := other.Bounds()
	v := physics.BaseVelocity()
	pushed := false

	switch side {
	case ecs.SideLeft, ecs.SideRight:
		if otherPhysics != nil {
			pushed = physics.Push(otherPhysics)
		}
		if !pushed {
			v.X = 0
		}
		if side == ecs.SideLeft {
			h.Position.X = ob.Right() - c.offset.X
		} else {
			h.Position.X = ob.X - c.width - c.offset.X
		}
	case ecs.SideBottom:
		v.Y = 0
		h.Position.Y = ob.Y - c.height - c.offset.Y
	case ecs.SideTop:
		v.Y = 0
		h.Position.Y = ob.Bottom() - c.offset.Y
	}
	physics.SetBaseVelocity(v)

	c.world.Events().Push(ecs.Event{
		Type: ecs.EventCollision,
		Data: ecs.CollisionEvent{
			Entity: h.Name(),
			Other:  other.Holder().Name(),
			Side:   side,
			Pushed: pushed,
		},
	})
}

type winningSide struct {
	side ecs.Side
	clip float64
}

// winningSides returns, in left, right, bottom, top order, the flagged sides
// whose clip is strictly smaller than both perpendicular clips.
func winningSides(col Collision) []winningSide {
	d := col.Clip
	var out []winningSide
	if col.Left && d.Left < d.Top && d.Left < d.Bottom {
		out = append(out, winningSide{ecs.SideLeft, d.Left})
	}
	if col.Right && d.Right < d.Top && d.Right < d.Bottom {
		out = append(out, winningSide{ecs.SideRight, d.Right})
	}
	if col.Bottom && d.Bottom < d.Left && d.Bottom < d.Right {
		out = append(out, winningSide{ecs.SideBottom, d.Bottom})
	}
	if col.Top && d.Top < d.Left && d.Top < d.Right {
		out = append(out, winningSide{ecs.SideTop, d.Top})
	}
	return out
}

// nearest keeps the first side with the smallest clip.
func nearest(sides []winningSide) []winningSide {
	best := 0
	for i := range sides {
		if sides[i].clip < sides[best].clip {
			best = i
		}
	}
	return sides[best : best+1]
}

func collide(a, b common.Rect, tol float64) Collision {
	overlapX := a.X < b.Right()+tol && a.Right() > b.X-tol
	overlapY := a.Y < b.Bottom()+tol && a.Bottom() > b.Y-tol

	return Collision{
		Collided: overlapX && overlapY,
		Left:     overlapY && a.X < b.Right()+tol && a.Right() > b.Right()+tol,
		Right:    overlapY && a.Right() > b.X-tol && a.X < b.X-tol,
		Bottom:   overlapX && a.Bottom() > b.Y-tol && a.Y < b.Y-tol,
		Top:      overlapX && a.Y < b.Bottom()+tol && a.Bottom() > b.Bottom()+tol,
		Clip: ClipDistances{
			Top:    abs(b.Bottom() - a.Y),
			Bottom: abs(b.Y - a.Bottom()),
			Left:   abs(b.Right() - a.X),
			Right:  abs(b.X - a.Right()),
		},
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
