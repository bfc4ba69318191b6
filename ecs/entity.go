package ecs

import (
	"fmt"

	"github.com/milk9111/boxsim/common"
)

// Entity owns a position, a size and at most one component per Kind.
// Components run in the order they were attached; the renderer slot is the
// entity's drawing surface and always runs first so it sees the position the
// rest of the tick starts from.
type Entity struct {
	Position common.Vector2
	Width    float64
	Height   float64

	// OnStart and OnUpdate run after the components on Start and Update.
	OnStart  func(e *Entity)
	OnUpdate func(e *Entity)

	name    string
	started bool
	slots   [kindCount]Component
	order   []Kind
}

func NewEntity(name string, x, y, width, height float64) *Entity {
	return &Entity{
		Position: common.Vec(x, y),
		Width:    width,
		Height:   height,
		name:     name,
	}
}

func (e *Entity) Name() string {
	return e.name
}

func (e *Entity) Started() bool {
	return e.started
}

func (e *Entity) Bounds() common.Rect {
	return common.Rect{X: e.Position.X, Y: e.Position.Y, Width: e.Width, Height: e.Height}
}

// AddComponent attaches c and returns it.
func (e *Entity) AddComponent(c Component) (Component, error) {
	if c == nil {
		return nil, fmt.Errorf("entity %q: %w", e.name, ErrNilComponent)
	}
	kind := c.Kind()
	if !kind.Valid() {
		return nil, fmt.Errorf("entity %q: %w: %s", e.name, ErrInvalidComponentKind, kind)
	}
	if h := c.Holder(); h != e {
		return nil, fmt.Errorf("entity %q: %s: %w", e.name, kind, ErrForeignComponent)
	}
	if e.slots[kind] != nil {
		return nil, fmt.Errorf("entity %q: %w: %s", e.name, ErrDuplicateComponent, kind)
	}
	e.slots[kind] = c
	if kind != KindRenderer {
		e.order = append(e.order, kind)
	}
	return c, nil
}

// MustAdd is AddComponent for setup code where a failure is a bug.
func (e *Entity) MustAdd(c Component) Component {
	added, err := e.AddComponent(c)
	if err != nil {
		panic(err)
	}
	return added
}

// GetComponent returns the component in the kind slot, if any.
func (e *Entity) GetComponent(kind Kind) (Component, bool) {
	if !kind.Valid() {
		return nil, false
	}
	c := e.slots[kind]
	return c, c != nil
}

// RemoveComponent detaches the component in the kind slot.
func (e *Entity) RemoveComponent(kind Kind) bool {
	if !kind.Valid() || e.slots[kind] == nil {
		return false
	}
	e.slots[kind] = nil
	for i, k := range e.order {
		if k == kind {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	return true
}

// Components returns attached components in run order.
func (e *Entity) Components() []Component {
	out := make([]Component, 0, len(e.order)+1)
	if r := e.slots[KindRenderer]; r != nil {
		out = append(out, r)
	}
	for _, k := range e.order {
		out = append(out, e.slots[k])
	}
	return out
}

// Start runs once; later calls are no-ops.
func (e *Entity) Start() {
	if e.started {
		return
	}
	e.started = true
	e.each(Component.Start)
	if e.OnStart != nil {
		e.OnStart(e)
	}
}

func (e *Entity) Update() {
	e.each(Component.Update)
	if e.OnUpdate != nil {
		e.OnUpdate(e)
	}
}

func (e *Entity) each(fn func(Component)) {
	if r := e.slots[KindRenderer]; r != nil && r.Enabled() {
		fn(r)
	}
	for _, k := range e.order {
		if c := e.slots[k]; c != nil && c.Enabled() {
			fn(c)
		}
	}
}
