package ecs

import (
	"errors"
	"testing"
)

func TestWorldAddEntity(t *testing.T) {
	w := NewWorld()
	if err := w.AddEntity(NewEntity("player", 0, 0, 1, 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name string
		e    *Entity
		want error
	}{
		{"nil", nil, ErrNilEntity},
		{"unnamed", NewEntity("", 0, 0, 1, 1), ErrUnnamedEntity},
		{"duplicate", NewEntity("player", 0, 0, 1, 1), ErrDuplicateEntityName},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := w.AddEntity(c.e); !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}
	if w.Len() != 1 {
		t.Fatalf("expected 1 entity, got %d", w.Len())
	}
}

func TestWorldLookupAndRemove(t *testing.T) {
	w := NewWorld()
	for _, name := range []string{"a", "b", "c"} {
		if err := w.AddEntity(NewEntity(name, 0, 0, 1, 1)); err != nil {
			t.Fatal(err)
		}
	}
	if _, ok := w.GetEntity("missing"); ok {
		t.Fatalf("expected lookup miss")
	}
	if !w.RemoveEntity("b") {
		t.Fatalf("RemoveEntity should return true for registered entity")
	}
	if w.RemoveEntity("b") {
		t.Fatalf("RemoveEntity should return false for removed entity")
	}
	names := []string{}
	for _, e := range w.Entities() {
		names = append(names, e.Name())
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "c" {
		t.Fatalf("expected [a c], got %v", names)
	}
}

func TestWorldDefersMutationsDuringIteration(t *testing.T) {
	w := NewWorld()
	for _, name := range []string{"a", "b"} {
		if err := w.AddEntity(NewEntity(name, 0, 0, 1, 1)); err != nil {
			t.Fatal(err)
		}
	}

	visited := 0
	w.Each(func(e *Entity) {
		visited++
		if e.Name() == "a" {
			if err := w.AddEntity(NewEntity("spawned", 0, 0, 1, 1)); err != nil {
				t.Fatalf("deferred add failed: %v", err)
			}
			if err := w.AddEntity(NewEntity("spawned", 0, 0, 1, 1)); !errors.Is(err, ErrDuplicateEntityName) {
				t.Fatalf("pending name not reserved: %v", err)
			}
			if !w.RemoveEntity("b") {
				t.Fatalf("deferred remove should report true")
			}
			if w.Len() != 2 {
				t.Fatalf("mutation applied mid-iteration")
			}
		}
	})

	if visited != 2 {
		t.Fatalf("expected 2 visits, got %d", visited)
	}
	if _, ok := w.GetEntity("spawned"); !ok {
		t.Fatalf("deferred add not applied")
	}
	if _, ok := w.GetEntity("b"); ok {
		t.Fatalf("deferred remove not applied")
	}
}

func TestWorldStartsLateEntities(t *testing.T) {
	var log []string
	w := NewWorld()
	early := NewEntity("early", 0, 0, 1, 1)
	early.MustAdd(newRecorder(early, KindPhysics, &log))
	if err := w.AddEntity(early); err != nil {
		t.Fatal(err)
	}
	if early.Started() {
		t.Fatalf("entity started before load")
	}

	w.StartAll()
	late := NewEntity("late", 0, 0, 1, 1)
	late.MustAdd(newRecorder(late, KindPhysics, &log))
	if err := w.AddEntity(late); err != nil {
		t.Fatal(err)
	}
	if !early.Started() || !late.Started() {
		t.Fatalf("expected both entities started")
	}
}

func TestWorldStartsEntitiesAddedDuringStart(t *testing.T) {
	w := NewWorld()
	child := NewEntity("child", 0, 0, 1, 1)
	parent := NewEntity("parent", 0, 0, 1, 1)
	parent.OnStart = func(*Entity) {
		if err := w.AddEntity(child); err != nil {
			t.Errorf("add child: %v", err)
		}
	}
	if err := w.AddEntity(parent); err != nil {
		t.Fatal(err)
	}

	w.StartAll()
	if _, ok := w.GetEntity("child"); !ok {
		t.Fatalf("child not registered after StartAll")
	}
	if !child.Started() {
		t.Fatalf("child added during StartAll was not started")
	}
}

func TestEventQueue(t *testing.T) {
	var q EventQueue
	q.Push(Event{Type: EventCollision, Data: CollisionEvent{Entity: "a", Other: "b", Side: SideLeft}})
	q.Push(Event{Type: "custom"})
	if q.Len() != 2 || len(q.Pending()) != 2 {
		t.Fatalf("expected 2 pending events")
	}
	events := q.Drain()
	if len(events) != 2 || events[0].Type != EventCollision {
		t.Fatalf("unexpected drain %v", events)
	}
	if q.Len() != 0 || q.Drain() != nil {
		t.Fatalf("queue not empty after drain")
	}
}
