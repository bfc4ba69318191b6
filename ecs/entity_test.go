package ecs

import (
	"errors"
	"testing"
)

type recorder struct {
	Base
	kind Kind
	log  *[]string
}

func newRecorder(e *Entity, kind Kind, log *[]string) *recorder {
	return &recorder{Base: NewBase(e), kind: kind, log: log}
}

func (r *recorder) Kind() Kind { return r.kind }
func (r *recorder) Start()     { *r.log = append(*r.log, "start:"+r.kind.String()) }
func (r *recorder) Update()    { *r.log = append(*r.log, "update:"+r.kind.String()) }

func TestAddComponentErrors(t *testing.T) {
	var log []string
	e := NewEntity("player", 0, 0, 10, 10)
	other := NewEntity("other", 0, 0, 10, 10)
	e.MustAdd(newRecorder(e, KindPhysics, &log))

	cases := []struct {
		name string
		c    Component
		want error
	}{
		{"nil", nil, ErrNilComponent},
		{"invalid_kind", newRecorder(e, Kind(42), &log), ErrInvalidComponentKind},
		{"foreign", newRecorder(other, KindCollider, &log), ErrForeignComponent},
		{"duplicate", newRecorder(e, KindPhysics, &log), ErrDuplicateComponent},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := e.AddComponent(c.c); !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}
}

func TestMustAddPanics(t *testing.T) {
	var log []string
	e := NewEntity("player", 0, 0, 10, 10)
	e.MustAdd(newRecorder(e, KindLight, &log))
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate kind")
		}
	}()
	e.MustAdd(newRecorder(e, KindLight, &log))
}

func TestEntityLifecycleOrder(t *testing.T) {
	var log []string
	e := NewEntity("player", 0, 0, 10, 10)
	e.MustAdd(newRecorder(e, KindPhysics, &log))
	e.MustAdd(newRecorder(e, KindCollider, &log))
	e.MustAdd(newRecorder(e, KindRenderer, &log))
	e.MustAdd(newRecorder(e, KindMovement, &log))
	e.OnStart = func(*Entity) { log = append(log, "start:hook") }
	e.OnUpdate = func(*Entity) { log = append(log, "update:hook") }

	e.Start()
	e.Start()
	e.Update()

	want := []string{
		"start:renderer", "start:physics", "start:collider", "start:movement", "start:hook",
		"update:renderer", "update:physics", "update:collider", "update:movement", "update:hook",
	}
	if len(log) != len(want) {
		t.Fatalf("expected %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("step %d: expected %s, got %s", i, want[i], log[i])
		}
	}
}

func TestDisabledComponentSkipped(t *testing.T) {
	var log []string
	e := NewEntity("player", 0, 0, 10, 10)
	r := newRecorder(e, KindPhysics, &log)
	e.MustAdd(r)
	r.SetEnabled(false)

	e.Update()
	if len(log) != 0 {
		t.Fatalf("disabled component updated: %v", log)
	}
}

func TestGetAndRemoveComponent(t *testing.T) {
	var log []string
	e := NewEntity("player", 0, 0, 10, 10)
	r := newRecorder(e, KindCollider, &log)
	e.MustAdd(r)

	got, ok := Get[*recorder](e, KindCollider)
	if !ok || got != r {
		t.Fatalf("Get returned %v %v", got, ok)
	}
	if _, ok := e.GetComponent(KindPhysics); ok {
		t.Fatalf("expected miss for unattached kind")
	}
	if _, ok := e.GetComponent(Kind(99)); ok {
		t.Fatalf("expected miss for invalid kind")
	}
	if !e.RemoveComponent(KindCollider) || Has(e, KindCollider) {
		t.Fatalf("RemoveComponent did not detach")
	}
	if len(e.Components()) != 0 {
		t.Fatalf("expected no components, got %d", len(e.Components()))
	}
}
