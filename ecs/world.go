package ecs

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNilEntity           = errors.New("ecs: entity is nil")
	ErrUnnamedEntity       = errors.New("ecs: entity has no name")
	ErrDuplicateEntityName = errors.New("ecs: entity name already registered")
)

// ResolvePolicy selects how the collider applies corrections when more than
// one side of a pair qualifies in the same pass.
type ResolvePolicy uint8

const (
	// ResolveEveryWinningSide applies every qualifying correction
	// independently. Corner overlaps can jitter under this policy.
	ResolveEveryWinningSide ResolvePolicy = iota
	// ResolveNearestSideOnly applies only the qualifying side with the
	// smallest clip distance per pair.
	ResolveNearestSideOnly
)

func (p ResolvePolicy) String() string {
	switch p {
	case ResolveNearestSideOnly:
		return "nearest_side"
	default:
		return "every_side"
	}
}

type WorldOption func(*World)

func WithGravity(enabled bool) WorldOption {
	return func(w *World) { w.gravity = enabled }
}

func WithInput(src InputSource) WorldOption {
	return func(w *World) { w.input = src }
}

func WithResolvePolicy(p ResolvePolicy) WorldOption {
	return func(w *World) { w.policy = p }
}

type mutation struct {
	add    *Entity
	remove string
}

// World owns the ordered entity list and the global simulation flags.
// Entities update in registration order. Adding or removing entities while
// the world is being iterated is deferred until the iteration ends.
type World struct {
	entities []*Entity
	byName   map[string]*Entity
	pending  []mutation

	iterating int
	loaded    bool

	gravity   bool
	deltaTime float64
	policy    ResolvePolicy
	input     InputSource
	events    EventQueue
}

// NewWorld creates an empty world with gravity enabled.
func NewWorld(opts ...WorldOption) *World {
	w := &World{
		byName:    map[string]*Entity{},
		gravity:   true,
		deltaTime: 1000.0 / 120.0,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// AddEntity registers e. Once the world is loaded, e is started when it is
// inserted.
func (w *World) AddEntity(e *Entity) error {
	if e == nil {
		return ErrNilEntity
	}
	if e.Name() == "" {
		return ErrUnnamedEntity
	}
	if w.nameTaken(e.Name()) {
		return fmt.Errorf("%w: %q", ErrDuplicateEntityName, e.Name())
	}
	if w.iterating > 0 {
		w.pending = append(w.pending, mutation{add: e})
		return nil
	}
	w.insert(e)
	return nil
}

// RemoveEntity deregisters the entity called name. It reports whether such
// an entity was registered or pending.
func (w *World) RemoveEntity(name string) bool {
	if !w.nameTaken(name) {
		return false
	}
	if w.iterating > 0 {
		w.pending = append(w.pending, mutation{remove: name})
		return true
	}
	w.remove(name)
	return true
}

// GetEntity looks an entity up by name.
func (w *World) GetEntity(name string) (*Entity, bool) {
	e, ok := w.byName[name]
	return e, ok
}

// Entities returns the registered entities in registration order. The slice
// is owned by the world.
func (w *World) Entities() []*Entity {
	return w.entities
}

func (w *World) Len() int {
	return len(w.entities)
}

// Each calls fn for every registered entity with structural mutations
// deferred until it returns.
func (w *World) Each(fn func(e *Entity)) {
	w.begin()
	defer w.end()
	for _, e := range w.entities {
		fn(e)
	}
}

// StartAll marks the world loaded and starts every registered entity.
// Entities added from a Start hook are started when the pass flushes.
func (w *World) StartAll() {
	w.loaded = true
	w.Each(func(e *Entity) {
		e.Start()
	})
}

func (w *World) Loaded() bool {
	return w.loaded
}

func (w *World) GravityEnabled() bool {
	return w.gravity
}

func (w *World) SetGravity(enabled bool) {
	w.gravity = enabled
}

// DeltaTime is the fixed tick interval in milliseconds.
func (w *World) DeltaTime() float64 {
	return w.deltaTime
}

func (w *World) setTickInterval(d time.Duration) {
	w.deltaTime = float64(d) / float64(time.Millisecond)
}

func (w *World) ResolvePolicy() ResolvePolicy {
	return w.policy
}

func (w *World) SetResolvePolicy(p ResolvePolicy) {
	w.policy = p
}

// Input returns the attached input source, or nil.
func (w *World) Input() InputSource {
	return w.input
}

func (w *World) SetInput(src InputSource) {
	w.input = src
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) begin() {
	w.iterating++
}

func (w *World) end() {
	w.iterating--
	if w.iterating > 0 {
		return
	}
	w.iterating = 0
	w.flushPending()
}

func (w *World) flushPending() {
	for len(w.pending) > 0 {
		ops := w.pending
		w.pending = nil
		for _, op := range ops {
			if op.add != nil {
				if _, exists := w.byName[op.add.Name()]; !exists {
					w.insert(op.add)
				}
				continue
			}
			w.remove(op.remove)
		}
	}
}

func (w *World) insert(e *Entity) {
	w.entities = append(w.entities, e)
	w.byName[e.Name()] = e
	if w.loaded && !e.Started() {
		w.begin()
		e.Start()
		w.end()
	}
}

func (w *World) remove(name string) {
	if _, ok := w.byName[name]; !ok {
		return
	}
	delete(w.byName, name)
	for i, e := range w.entities {
		if e.Name() == name {
			w.entities = append(w.entities[:i], w.entities[i+1:]...)
			return
		}
	}
}

// nameTaken reports whether name is registered or will be once pending
// mutations are applied.
func (w *World) nameTaken(name string) bool {
	_, taken := w.byName[name]
	for _, op := range w.pending {
		switch {
		case op.add != nil && op.add.Name() == name:
			taken = true
		case op.remove == name:
			taken = false
		}
	}
	return taken
}
