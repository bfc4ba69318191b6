package system

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/boxsim/common"
	"github.com/milk9111/boxsim/ecs"
	"github.com/milk9111/boxsim/ecs/component"
	"github.com/milk9111/boxsim/prefabs"
)

var ErrScriptNotLoaded = errors.New("script: on_load has not run")

// Scene scripts define on_load(engine, state) and update(engine, state).
// state is a map that persists across calls.
const lifecycleDispatchScript = `
if __phase == "load" {
	on_load(__engine, __state)
} else if __phase == "update" {
	update(__engine, __state)
}
`

// ScriptSystem runs a tengo scene script once at load and once per tick.
type ScriptSystem struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	loaded   bool
	failed   bool
	err      error
}

// LoadScriptSystem compiles the named script from prefabs/scripts.
func LoadScriptSystem(name string) (*ScriptSystem, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %q: %w", name, err)
	}
	return NewScriptSystem(name, src)
}

func NewScriptSystem(name string, src []byte) (*ScriptSystem, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + lifecycleDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %q: %w", name, err)
	}
	return &ScriptSystem{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (s *ScriptSystem) Name() string {
	return s.name
}

// Err is the first runtime error. A failed script stops running.
func (s *ScriptSystem) Err() error {
	return s.err
}

// State returns the script state as plain Go values.
func (s *ScriptSystem) State() map[string]any {
	out := make(map[string]any, len(s.state.Value))
	for k, v := range s.state.Value {
		out[k] = tengo.ToInterface(v)
	}
	return out
}

// OnLoad runs on_load. Hosts call it from the scheduler's load hook.
func (s *ScriptSystem) OnLoad(w *ecs.World) error {
	if err := s.run("load", w); err != nil {
		return err
	}
	s.loaded = true
	return nil
}

// Update runs the script's update function once per tick.
func (s *ScriptSystem) Update(w *ecs.World) {
	if s.failed {
		return
	}
	if !s.loaded {
		s.fail(ErrScriptNotLoaded)
		return
	}
	if err := s.run("update", w); err != nil {
		s.fail(err)
	}
}

func (s *ScriptSystem) fail(err error) {
	s.failed = true
	s.err = err
	log.Printf("script: %s: %v", s.name, err)
}

func (s *ScriptSystem) run(phase string, w *ecs.World) error {
	if err := s.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := s.compiled.Set("__engine", buildScriptEngine(s.name, w)); err != nil {
		return err
	}
	if err := s.compiled.Set("__state", s.state); err != nil {
		return err
	}
	if err := s.compiled.Run(); err != nil {
		return fmt.Errorf("%s: %w", phase, err)
	}
	return nil
}

func buildScriptEngine(scriptName string, w *ecs.World) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	entityArg := func(args []tengo.Object, i int) (*ecs.Entity, bool) {
		if w == nil || len(args) <= i {
			return nil, false
		}
		name, ok := tengo.ToString(args[i])
		if !ok {
			return nil, false
		}
		return w.GetEntity(strings.TrimSpace(name))
	}

	values["get_position"] = &tengo.UserFunction{Name: "get_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		e, ok := entityArg(args, 0)
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: e.Position.X}, &tengo.Float{Value: e.Position.Y}}}, nil
	}}

	values["set_position"] = &tengo.UserFunction{Name: "set_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		e, ok := entityArg(args, 0)
		if !ok || len(args) < 3 {
			return tengo.FalseValue, nil
		}
		x, okX := tengo.ToFloat64(args[1])
		y, okY := tengo.ToFloat64(args[2])
		if !okX || !okY {
			return tengo.FalseValue, nil
		}
		e.Position.X = x
		e.Position.Y = y
		return tengo.TrueValue, nil
	}}

	values["collides"] = &tengo.UserFunction{Name: "collides", Value: func(args ...tengo.Object) (tengo.Object, error) {
		a, okA := entityArg(args, 0)
		b, okB := entityArg(args, 1)
		if !okA || !okB {
			return tengo.FalseValue, nil
		}
		ca, okA := ecs.Get[*component.Collider](a, ecs.KindCollider)
		cb, okB := ecs.Get[*component.Collider](b, ecs.KindCollider)
		if !okA || !okB {
			return tengo.FalseValue, nil
		}
		return boolObject(ca.Collide(cb).Collided), nil
	}}

	values["grounded"] = &tengo.UserFunction{Name: "grounded", Value: func(args ...tengo.Object) (tengo.Object, error) {
		e, ok := entityArg(args, 0)
		if !ok {
			return tengo.FalseValue, nil
		}
		c, ok := ecs.Get[*component.Collider](e, ecs.KindCollider)
		if !ok {
			return tengo.FalseValue, nil
		}
		return boolObject(c.CollideAll().Bottom), nil
	}}

	values["play"] = &tengo.UserFunction{Name: "play", Value: func(args ...tengo.Object) (tengo.Object, error) {
		e, ok := entityArg(args, 0)
		if !ok {
			return tengo.FalseValue, nil
		}
		a, ok := ecs.Get[*component.AudioPlayer](e, ecs.KindAudioPlayer)
		if !ok {
			return tengo.FalseValue, nil
		}
		return boolObject(a.Play()), nil
	}}

	values["stop"] = &tengo.UserFunction{Name: "stop", Value: func(args ...tengo.Object) (tengo.Object, error) {
		e, ok := entityArg(args, 0)
		if !ok {
			return tengo.FalseValue, nil
		}
		a, ok := ecs.Get[*component.AudioPlayer](e, ecs.KindAudioPlayer)
		if !ok {
			return tengo.FalseValue, nil
		}
		a.Stop()
		return tengo.TrueValue, nil
	}}

	values["queue_velocity"] = &tengo.UserFunction{Name: "queue_velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		e, ok := entityArg(args, 0)
		if !ok || len(args) < 3 {
			return tengo.FalseValue, nil
		}
		p, ok := ecs.Get[*component.Physics](e, ecs.KindPhysics)
		if !ok {
			return tengo.FalseValue, nil
		}
		x, okX := tengo.ToFloat64(args[1])
		y, okY := tengo.ToFloat64(args[2])
		if !okX || !okY {
			return tengo.FalseValue, nil
		}
		p.QueueVelocity(common.Vec(x, y))
		return tengo.TrueValue, nil
	}}

	values["gravity"] = &tengo.UserFunction{Name: "gravity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if w == nil {
			return tengo.FalseValue, nil
		}
		if len(args) > 0 {
			enabled, _ := tengo.ToBool(args[0])
			w.SetGravity(enabled)
		}
		return boolObject(w.GravityEnabled()), nil
	}}

	values["key_down"] = &tengo.UserFunction{Name: "key_down", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if w == nil || w.Input() == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		key, _ := tengo.ToString(args[0])
		return boolObject(w.Input().KeyDown(key)), nil
	}}

	values["remove"] = &tengo.UserFunction{Name: "remove", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if w == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name, _ := tengo.ToString(args[0])
		return boolObject(w.RemoveEntity(name)), nil
	}}

	values["events"] = &tengo.UserFunction{Name: "events", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if w == nil {
			return &tengo.Array{}, nil
		}
		pending := w.Events().Pending()
		out := make([]tengo.Object, 0, len(pending))
		for _, evt := range pending {
			out = append(out, eventObject(evt))
		}
		return &tengo.Array{Value: out}, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			s, _ := tengo.ToString(a)
			parts = append(parts, s)
		}
		log.Printf("script: %s: %s", scriptName, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func eventObject(evt ecs.Event) tengo.Object {
	fields := map[string]tengo.Object{
		"type": &tengo.String{Value: evt.Type},
	}
	if c, ok := evt.Data.(ecs.CollisionEvent); ok {
		fields["entity"] = &tengo.String{Value: c.Entity}
		fields["other"] = &tengo.String{Value: c.Other}
		fields["side"] = &tengo.String{Value: string(c.Side)}
		fields["pushed"] = boolObject(c.Pushed)
	}
	return &tengo.ImmutableMap{Value: fields}
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}
